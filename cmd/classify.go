package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	renderbin "github.com/tozahudud/binbot/internal/adapters/render/bin"
	"github.com/tozahudud/binbot/internal/domain"
)

const maxImageBytes = 20 << 20

func newClassifyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <image>",
		Short: "Classify a waste-bin photo",
		Long:  "classify sends a photo to the vision model and prints its verdict. Without gemini.api_key the conservative fallback verdict is printed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config(cmd.Context())
			if err != nil {
				return err
			}

			image, err := readImage(args[0])
			if err != nil {
				return err
			}

			classifier := app.newClassifier(cfg)
			var verdict domain.Verdict
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Analysing image...", func(ctx context.Context) error {
				verdict = classifier.Classify(ctx, image)
				return nil
			})
			if err != nil {
				return err
			}

			return writeOutput(cmd, app, verdict, renderbin.Document{Verdict: &verdict})
		},
	}
}

func readImage(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("image %s is empty", path)
	}
	if info.Size() > maxImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", path, maxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}
