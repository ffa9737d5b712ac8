package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configPath string
	colorFlag  string
	cfg        Config
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "parsekit",
		Short: "Parse and analyze JavaScript/TypeScript files",
		Long: `parsekit drives the parser and semantic analyzer over one or more
source files and reports their diagnostics.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading %s: %w", configPath, err)
			}
			if colorFlag != "" {
				loaded.Color = colorFlag
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", ".parsekit.toml", "path to an optional project config file")
	root.PersistentFlags().StringVar(&colorFlag, "color", "", "override config color mode: auto, always, never")

	root.AddCommand(newCheckCommand())
	return root
}
