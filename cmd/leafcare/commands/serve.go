package commands

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leafcare/internal/app"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if cmd.Flags().Changed("port") {
				cfg.Port = ":" + strconv.Itoa(port)
			}

			a, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("failed to initialize app", zap.Error(err))
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- a.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case <-quit:
			case err := <-errCh:
				if err != nil {
					logger.Error("server error", zap.Error(err))
					_ = a.Close()
					return err
				}
			}

			logger.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.Shutdown(ctx); err != nil {
				logger.Error("server forced to shutdown", zap.Error(err))
				return err
			}
			logger.Info("server exiting")
			return nil
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on; overrides PORT")
	return cmd
}
