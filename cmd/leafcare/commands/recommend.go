package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"leafcare/internal/app"
	"leafcare/internal/classification"
	"leafcare/internal/recommend"
	"leafcare/internal/util/jsonutil"
)

func newRecommendCmd(root *rootOptions) *cobra.Command {
	var (
		file     string
		severity float64
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Produce a recommendation for one classifier payload",
		Long: `Reads a classification payload (or a full request body) from --file or
stdin and prints the recommendation as JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			cfg, logger, err := root.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			a, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			req, perr := recommend.ParseRequest(raw)
			if perr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", perr)
			}
			if cmd.Flags().Changed("severity") {
				seg := &classification.Segmentation{}
				seg.Severity.Score = severity
				req.Segmentation = seg
			}
			req.RequestID = uuid.NewString()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			rec, err := a.Engine().Recommend(ctx, req)
			if err != nil {
				return err
			}
			out, err := jsonutil.MarshalNoEscapeIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "Path to the JSON payload, or - for stdin")
	cmd.Flags().Float64Var(&severity, "severity", 0, "Segmentation severity score (0-100)")
	return cmd
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return raw, nil
}
