// Package cli implements the reddit-digest CLI commands.
package cli

import (
	"log/slog"
	"os"

	"github.com/rcliao/reddit-digest/internal/config"
	"github.com/rcliao/reddit-digest/internal/reddit"
	"github.com/rcliao/reddit-digest/internal/store"
	"github.com/rcliao/reddit-digest/internal/summarize"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	dataDirFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "reddit-digest",
	Short: "Fetch and summarize Reddit posts",
	Long:  "Fetch posts from Reddit, summarize them with a language model, and keep the results as JSON and markdown files.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "Config file path")
	RootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Data directory (default: storage.data_directory from config)")
}

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func loadConfig() *config.Config {
	return config.New(logger, configPath)
}

func openStorage(cfg *config.Config) *store.Storage {
	dir := dataDirFlag
	if dir == "" {
		dir = cfg.GetString("storage.data_directory", "data")
	}
	return store.New(logger, dir)
}

func newRedditClient(cfg *config.Config) *reddit.Client {
	userAgent := os.Getenv(config.EnvRedditUserAgent)
	if userAgent == "" {
		userAgent = cfg.GetString("reddit.user_agent", "RedditCrawler/1.0")
	}
	return reddit.New(logger, reddit.Credentials{
		ID:        os.Getenv(config.EnvRedditClientID),
		Secret:    os.Getenv(config.EnvRedditClientSecret),
		UserAgent: userAgent,
	})
}

// newSummarizer wires a summarizer from the environment, or nil when no
// language-model key is configured.
func newSummarizer(cfg *config.Config, fetcher summarize.CommentFetcher) *summarize.Summarizer {
	gen := summarize.NewFromEnv(cfg.GetString("summarizer.model", ""))
	if gen == nil {
		return nil
	}
	return summarize.New(logger, gen, fetcher)
}
