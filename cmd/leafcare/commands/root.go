package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leafcare/internal/config"
	"leafcare/internal/logging"
)

const Version = "0.1.0"

type rootOptions struct {
	logLevel string
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "leafcare",
		Short: "Leafcare - crop disease recommendation engine",
		Long: `Leafcare turns leaf classifier output into actionable, prioritised
treatment recommendations grounded in a local knowledge base, optionally
enriched by a generative model.`,
		Version:      Version,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newRecommendCmd(opts))
	cmd.AddCommand(newKBCmd(opts))
	return cmd
}

// setup loads configuration and builds the process logger.
func (o *rootOptions) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if lvl := strings.TrimSpace(o.logLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
