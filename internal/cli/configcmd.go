package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		Long:  "Print the current configuration and report any validation issues.",
		Run:   runConfig,
	}

	RootCmd.AddCommand(cmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	fmt.Println("Current Configuration:")
	b, _ := json.MarshalIndent(cfg.Values(), "", "  ")
	fmt.Println(string(b))

	issues := cfg.Validate()
	if len(issues) == 0 {
		return
	}
	fmt.Println("\nConfiguration Issues:")
	for key, msg := range issues {
		fmt.Printf("  %s: %s\n", key, msg)
	}
}
