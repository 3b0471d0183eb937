package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/stepwise/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve <form.yaml>",
	Short: "Start the HTTP API",
	Long: `Serves the form as a JSON API with server-sent events, an OpenAPI
document and Prometheus metrics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := cli.ServeOptions{FormPath: args[0], Config: cfg}
		opts.Addr, _ = cmd.Flags().GetString("addr")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		return cli.Serve(ctx, opts, os.Stdout)
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp <form.yaml>",
	Short: "Start the MCP server",
	Long:  `Exposes the form as MCP tools on stdio, or over SSE with --sse.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := cli.MCPOptions{FormPath: args[0], Config: cfg}
		opts.SSEAddr, _ = cmd.Flags().GetString("sse")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		return cli.ServeMCP(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default from STEPWISE_ADDR)")
	serveCmd.Flags().StringP("output", "o", "", "Append submissions as JSON lines to this file")

	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("sse", "", "Serve the SSE transport on this address instead of stdio")
	mcpCmd.Flags().StringP("output", "o", "", "Append submissions as JSON lines to this file")
}
