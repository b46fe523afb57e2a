package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search for posts",
		Long:  "Search for posts across Reddit, or within one subreddit with -r.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("subreddit", "r", "", "Search within a specific subreddit")
	cmd.Flags().IntP("limit", "l", 0, "Number of posts to fetch (default: reddit.default_limit from config)")
	cmd.Flags().Bool("summarize", true, "Generate summaries")
	cmd.Flags().Bool("save", true, "Save results to file")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")
	subreddit, _ := cmd.Flags().GetString("subreddit")
	limit, _ := cmd.Flags().GetInt("limit")
	summarize, _ := cmd.Flags().GetBool("summarize")
	save, _ := cmd.Flags().GetBool("save")

	cfg := loadConfig()
	if limit <= 0 {
		limit = cfg.GetInt("reddit.default_limit", 10)
	}

	client := newRedditClient(cfg)

	location := "all of Reddit"
	if subreddit != "" {
		location = "r/" + subreddit
	}
	fmt.Printf("Searching for %q in %s...\n", query, location)

	posts, err := client.Search(cmd.Context(), query, subreddit, limit)
	if err != nil {
		logger.Error("search failed", "query", query, "error", err)
	}
	if len(posts) == 0 {
		fmt.Println("No posts found.")
		return
	}
	fmt.Printf("Found %d posts.\n", len(posts))

	if summarize {
		if s := newSummarizer(cfg, client); s != nil {
			fmt.Println("Generating summaries...")
			posts = s.SummarizeAll(cmd.Context(), posts, false)
		} else {
			logger.Warn("summarization disabled: no language model API key set")
		}
	}

	if save {
		storage := openStorage(cfg)
		filename := fmt.Sprintf("search_%s_%s.json", sanitizeQuery(query), time.Now().Format("20060102_150405"))
		if path, err := storage.SavePosts(posts, filename); err != nil {
			logger.Error("failed to save posts", "error", err)
		} else {
			fmt.Printf("Saved %d posts to %s\n", len(posts), path)
		}
	}

	displayPosts(posts, true)
}

// sanitizeQuery keeps letters, digits, spaces, dashes and underscores so a
// query can safely become part of a filename.
func sanitizeQuery(query string) string {
	var b strings.Builder
	for _, r := range query {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
