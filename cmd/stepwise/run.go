package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/aretw0/stepwise/internal/config"
)

var errFreshWithoutSession = errors.New("--fresh requires --session")

var runCmd = &cobra.Command{
	Use:   "run <form.yaml>",
	Short: "Fill in a form interactively",
	Long: `Starts the wizard in the terminal. With --session, progress is saved
after every answer and the next run resumes where it stopped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{FormPath: args[0], Config: cfg}
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Debug, _ = cmd.Flags().GetBool("debug")

		if opts.Fresh && opts.SessionID == "" {
			return errFreshWithoutSession
		}
		if opts.SessionID != "" && !cmd.Flags().Changed("store") && cfg.Store == config.StoreMemory {
			// A named session outlives the process only on disk.
			opts.Config.Store = config.StoreFile
		}
		return cli.RunSession(cmd.Context(), opts, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("session", "s", "", "Session ID to save and resume progress")
	runCmd.Flags().Bool("fresh", false, "Discard saved progress of --session before starting")
	runCmd.Flags().Bool("plain", false, "Use line prompts even on a terminal")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner and status messages")
	runCmd.Flags().StringP("output", "o", "", "Append submissions as JSON lines to this file")
}
