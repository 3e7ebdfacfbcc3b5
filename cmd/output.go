package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	renderbin "github.com/tozahudud/binbot/internal/adapters/render/bin"
)

// writeOutput prints value as indented JSON under --json and doc rendered for
// the terminal otherwise.
func writeOutput(cmd *cobra.Command, app *app, value any, doc renderbin.Document) error {
	if app.flags.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}

	rendered, err := renderbin.Render(doc)
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
