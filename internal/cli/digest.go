package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "digest [filename]",
		Short: "Create a digest from saved posts",
		Long:  "Load a saved post file and generate an overall markdown digest from it.",
		Args:  cobra.ExactArgs(1),
		Run:   runDigest,
	}

	cmd.Flags().Bool("create-digest", true, "Create overall digest")

	RootCmd.AddCommand(cmd)
}

func runDigest(cmd *cobra.Command, args []string) {
	filename := args[0]
	createDigest, _ := cmd.Flags().GetBool("create-digest")

	cfg := loadConfig()
	storage := openStorage(cfg)

	posts, err := storage.LoadPosts(filename)
	if err != nil {
		logger.Error("failed to load posts", "filename", filename, "error", err)
	}
	if len(posts) == 0 {
		fmt.Println("No posts found in file.")
		return
	}

	if !createDigest {
		return
	}

	s := newSummarizer(cfg, nil)
	if s == nil {
		fmt.Println("No language model API key set (GEMINI_API_KEY or COHERE_API_KEY).")
		return
	}

	fmt.Println("Creating digest...")
	content := s.CreateDigest(cmd.Context(), posts)

	digestFilename := strings.TrimSuffix(filename, ".json") + "_digest.md"
	if _, err := storage.SaveDigest(content, digestFilename); err != nil {
		logger.Error("failed to save digest", "error", err)
	} else {
		fmt.Printf("Digest created: %s\n", digestFilename)
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println(content)
}
