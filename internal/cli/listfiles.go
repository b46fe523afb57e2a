package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list-files",
		Short: "List saved files",
		Run:   runListFiles,
	}

	RootCmd.AddCommand(cmd)
}

func runListFiles(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	storage := openStorage(cfg)

	files, err := storage.ListFiles()
	if err != nil {
		logger.Error("failed to list files", "error", err)
	}

	if len(files.JSON) > 0 {
		fmt.Println("Saved post files:")
		for _, f := range files.JSON {
			info, err := storage.FileInfo(f)
			if err != nil || info == nil {
				fmt.Printf("  %s\n", f)
				continue
			}
			count := 0
			if info.PostCount != nil {
				count = *info.PostCount
			}
			fmt.Printf("  %s (%d posts, %.2f MB)\n", f, count, info.SizeMB)
		}
	}

	if len(files.Markdown) > 0 {
		fmt.Println("\nDigest files:")
		for _, f := range files.Markdown {
			info, err := storage.FileInfo(f)
			if err != nil || info == nil {
				fmt.Printf("  %s\n", f)
				continue
			}
			fmt.Printf("  %s (%.2f MB)\n", f, info.SizeMB)
		}
	}

	if len(files.JSON) == 0 && len(files.Markdown) == 0 {
		fmt.Println("No saved files found.")
	}
}
