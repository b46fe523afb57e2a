package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "set-config",
		Short: "Set a configuration value",
		Long:  "Set a configuration value by dotted path, e.g. --key reddit.default_limit --value 25.",
		Run:   runSetConfig,
	}

	cmd.Flags().String("key", "", "Configuration key to set (e.g. reddit.default_limit)")
	cmd.Flags().String("value", "", "Value to set")
	cmd.Flags().Bool("reset", false, "Reset configuration to defaults")

	RootCmd.AddCommand(cmd)
}

func runSetConfig(cmd *cobra.Command, args []string) {
	key, _ := cmd.Flags().GetString("key")
	value, _ := cmd.Flags().GetString("value")
	reset, _ := cmd.Flags().GetBool("reset")

	cfg := loadConfig()

	if reset {
		if err := cfg.Reset(); err != nil {
			logger.Error("failed to persist config", "error", err)
			return
		}
		fmt.Println("Configuration reset to defaults")
		return
	}

	if key == "" || value == "" {
		fmt.Println("Both --key and --value are required")
		return
	}

	coerced := coerceValue(value)
	if err := cfg.Set(key, coerced); err != nil {
		logger.Error("failed to persist config", "error", err)
		return
	}
	fmt.Printf("Set %s = %v\n", key, coerced)
}

// coerceValue turns an unambiguous string into a bool, int or float; anything
// else stays a string.
func coerceValue(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
