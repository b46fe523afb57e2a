package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "file-info [filename]",
		Short: "Show information about a saved file",
		Args:  cobra.ExactArgs(1),
		Run:   runFileInfo,
	}

	RootCmd.AddCommand(cmd)
}

func runFileInfo(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	storage := openStorage(cfg)

	info, err := storage.FileInfo(args[0])
	if err != nil {
		logger.Error("failed to read file info", "filename", args[0], "error", err)
		fmt.Println("File not found.")
		return
	}
	if info == nil {
		fmt.Println("File not found.")
		return
	}

	fmt.Printf("File: %s\n", info.Filename)
	fmt.Printf("Size: %.2f MB\n", info.SizeMB)
	fmt.Printf("Created: %s\n", info.Created)
	fmt.Printf("Modified: %s\n", info.Modified)

	if info.PostCount != nil {
		fmt.Printf("Posts: %d\n", *info.PostCount)
		if len(info.Subreddits) > 0 {
			fmt.Printf("Subreddits: %s\n", strings.Join(info.Subreddits, ", "))
		}
	}
}
