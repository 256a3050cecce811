package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/colorlab/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP control server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "localhost:4000", "Listen address")
	serveCmd.Flags().String("static", "", "Directory of static files to serve")
	serveCmd.Flags().Int("frame-cache", server.DefaultFrameCacheSize, "Number of rendered frames to cache (0 disables)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	static, _ := cmd.Flags().GetString("static")
	cacheSize, _ := cmd.Flags().GetInt("frame-cache")

	opts := []server.Option{server.WithFrameCache(cacheSize)}
	if static != "" {
		opts = append(opts, server.WithStatic(static))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(opts...).ListenAndServe(ctx, addr)
}
