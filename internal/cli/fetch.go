package cli

import (
	"fmt"
	"time"

	"github.com/rcliao/reddit-digest/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "fetch [subreddit]",
		Short: "Fetch posts from a subreddit",
		Args:  cobra.ExactArgs(1),
		Run:   runFetch,
	}

	cmd.Flags().IntP("limit", "l", 0, "Number of posts to fetch (default: reddit.default_limit from config)")
	cmd.Flags().StringP("sort", "s", "", "Sort method: hot, new, top, rising (default: reddit.default_sort from config)")
	cmd.Flags().Bool("summarize", true, "Generate summaries")
	cmd.Flags().Bool("save", true, "Save results to file")
	cmd.Flags().Bool("comments", false, "Include comments in summaries")

	RootCmd.AddCommand(cmd)
}

func runFetch(cmd *cobra.Command, args []string) {
	subreddit := args[0]
	limit, _ := cmd.Flags().GetInt("limit")
	sort, _ := cmd.Flags().GetString("sort")
	summarize, _ := cmd.Flags().GetBool("summarize")
	save, _ := cmd.Flags().GetBool("save")
	comments, _ := cmd.Flags().GetBool("comments")

	cfg := loadConfig()
	if limit <= 0 {
		limit = cfg.GetInt("reddit.default_limit", 10)
	}
	if sort == "" {
		sort = cfg.GetString("reddit.default_sort", "hot")
	}

	client := newRedditClient(cfg)

	fmt.Printf("Fetching %d %s posts from r/%s...\n", limit, sort, subreddit)
	posts, err := client.FetchSubreddit(cmd.Context(), subreddit, limit, sort)
	if err != nil {
		logger.Error("failed to fetch posts", "subreddit", subreddit, "error", err)
	}
	if len(posts) == 0 {
		fmt.Println("No posts found.")
		return
	}
	fmt.Printf("Found %d posts.\n", len(posts))

	if summarize {
		if s := newSummarizer(cfg, client); s != nil {
			fmt.Println("Generating summaries...")
			posts = s.SummarizeAll(cmd.Context(), posts, comments)
		} else {
			logger.Warn("summarization disabled: no language model API key set")
		}
	}

	if save {
		storage := openStorage(cfg)
		filename := fmt.Sprintf("%s_%s_%s.json", subreddit, sort, time.Now().Format("20060102_150405"))
		if path, err := storage.SavePosts(posts, filename); err != nil {
			logger.Error("failed to save posts", "error", err)
		} else {
			fmt.Printf("Saved %d posts to %s\n", len(posts), path)
		}
	}

	displayPosts(posts, false)
}

// displayPosts prints the numbered result block for each post.
func displayPosts(posts []model.Post, showSubreddit bool) {
	for i, post := range posts {
		fmt.Printf("\n%d. %s\n", i+1, post.Title)
		if showSubreddit {
			fmt.Printf("   Subreddit: r/%s\n", post.Subreddit)
		}
		fmt.Printf("   Score: %d | Comments: %d\n", post.Score, post.NumComments)
		if post.Summary != "" {
			fmt.Printf("   Summary: %s\n", post.Summary)
		}
		fmt.Printf("   URL: %s\n", post.Permalink)
	}
}
