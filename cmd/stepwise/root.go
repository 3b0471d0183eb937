package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/stepwise/internal/config"
)

// cfg is loaded before any command runs; flags override it.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "stepwise",
	Short: "Stepwise runs multi-step forms",
	Long: `Stepwise turns a YAML form definition into a step-by-step wizard:
in the terminal, over an HTTP API or as tools for MCP clients.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if store, _ := cmd.Flags().GetString("store"); cmd.Flags().Changed("store") {
			loaded.Store = store
		}
		if dir, _ := cmd.Flags().GetString("session-dir"); cmd.Flags().Changed("session-dir") {
			loaded.SessionDir = dir
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable verbose debug logging")
	rootCmd.PersistentFlags().String("store", "", "Session store: memory, file or redis (default from STEPWISE_STORE)")
	rootCmd.PersistentFlags().String("session-dir", "", "Directory of the file store (default from STEPWISE_SESSION_DIR)")
}
