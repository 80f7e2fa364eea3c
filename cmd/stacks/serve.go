package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sagarc03/stacks"
	"github.com/sagarc03/stacks/config"
	"github.com/sagarc03/stacks/filesystem"
	stackshttp "github.com/sagarc03/stacks/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the stacks HTTP server.

The --prefix, --root, --listing and --charset flags configure the first
mount; further mounts are read from the config file.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (env: STACKS_SERVER_HOST)")
	serveCmd.Flags().Int("port", 5708, "HTTP server port (env: STACKS_SERVER_PORT)")
	serveCmd.Flags().String("prefix", "/", "URL prefix of the first mount")
	serveCmd.Flags().String("root", "./public", "directory served by the first mount")
	serveCmd.Flags().Bool("listing", false, "allow directory listings on the first mount")
	serveCmd.Flags().String("charset", "utf-8", "charset for text content of the first mount")

	rootCmd.AddCommand(serveCmd)
}

// buildMounts creates one resolver per configured mount. Roots must be
// existing directories.
func buildMounts(mounts []config.MountConfig) ([]stackshttp.Resolver, error) {
	store := filesystem.New()
	accounts := filesystem.NewAccounts()
	types := filesystem.NewMIMETable()

	resolvers := make([]stackshttp.Resolver, 0, len(mounts))
	for _, m := range mounts {
		info, err := os.Stat(m.Root)
		if err != nil {
			return nil, fmt.Errorf("mount %s: %w", m.Prefix, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("mount %s: %s is not a directory", m.Prefix, m.Root)
		}

		resolver, err := stacks.NewResolver(m.DirConfig(), store, accounts, types)
		if err != nil {
			return nil, fmt.Errorf("mount %s: %w", m.Prefix, err)
		}
		resolvers = append(resolvers, resolver)

		slog.Info("mounted directory", "prefix", m.Prefix, "root", m.Root, "listing", m.Listing)
	}

	return resolvers, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mounts, err := buildMounts(cfg.Mounts)
	if err != nil {
		return fmt.Errorf("build mounts: %w", err)
	}

	handler := stackshttp.NewHandler(&stackshttp.HandlerConfig{
		Mounts: mounts,
		CORS:   cfg.CORS,
	})

	addr := cfg.Server.Addr()

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "mounts", len(mounts))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
