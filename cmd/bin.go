package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	renderbin "github.com/tozahudud/binbot/internal/adapters/render/bin"
	"github.com/tozahudud/binbot/internal/domain"
)

func newBinCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bin",
		Short: "Inspect and update waste bins",
	}

	cmd.AddCommand(newBinShowCmd(app), newBinUploadCmd(app))

	return cmd
}

func newBinShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|url>",
		Short: "Show a bin as the backend reports it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config(cmd.Context())
			if err != nil {
				return err
			}
			gateway, err := app.newGateway(cfg)
			if err != nil {
				return err
			}

			id := resolveBinArg(args[0])
			snapshot, found, err := gateway.GetBinSnapshot(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("bin %s: %w", id, domain.ErrBinNotFound)
			}

			return writeOutput(cmd, app, snapshot, renderbin.Document{Bin: &snapshot})
		},
	}
}

func newBinUploadCmd(app *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "upload <id|url> <image>",
		Short: "Classify a photo and write it to a bin",
		Long:  "upload classifies the photo, then sends it with the verdict to the backend and prints the refreshed bin. Photos that show no waste container are rejected unless --force is given.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config(cmd.Context())
			if err != nil {
				return err
			}
			gateway, err := app.newGateway(cfg)
			if err != nil {
				return err
			}
			image, err := readImage(args[1])
			if err != nil {
				return err
			}

			id := resolveBinArg(args[0])
			classifier := app.newClassifier(cfg)

			var analyzed domain.AnalyzedBin
			var rejected *domain.Verdict
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Analysing and uploading image...", func(ctx context.Context) error {
				verdict := classifier.Classify(ctx, image)
				if !verdict.IsWasteContainer && !force {
					rejected = &verdict
					return nil
				}
				var err error
				analyzed, err = gateway.UpdateBinWithImage(ctx, id, image, verdict)
				return err
			})
			if err != nil {
				return err
			}
			if rejected != nil {
				if err := writeOutput(cmd, app, *rejected, renderbin.Document{Verdict: rejected}); err != nil {
					return err
				}
				return fmt.Errorf("bin %s not updated: no waste container detected", id)
			}

			return writeOutput(cmd, app, analyzed, renderbin.Document{Bin: &analyzed.Snapshot, Verdict: &analyzed.Verdict})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Upload even when no waste container is detected")

	return cmd
}

// resolveBinArg accepts the same forms as the bot: a QR link, a path or a bare id.
func resolveBinArg(raw string) domain.BinID {
	if id, ok := domain.ExtractBinID(raw); ok {
		return id
	}
	return domain.CanonicalBinIDOrRaw(strings.TrimSpace(raw))
}
