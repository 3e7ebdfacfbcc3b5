package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newSecretCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage secrets referenced as secret:<key> in config",
	}

	cmd.AddCommand(newSecretSetCmd(app), newSecretGetCmd(app), newSecretRemoveCmd(app))

	return cmd
}

func newSecretSetCmd(app *app) *cobra.Command {
	var value string
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Store a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromStdin {
				data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), 64<<10))
				if err != nil {
					return fmt.Errorf("read secret value: %w", err)
				}
				value = strings.TrimRight(string(data), "\r\n")
			}
			if value == "" {
				return errors.New("secret value is required (--value or --stdin)")
			}

			if err := app.secrets.Put(cmd.Context(), args[0], value); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored secret %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Secret value")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the secret value from stdin")
	cmd.MarkFlagsMutuallyExclusive("value", "stdin")

	return cmd
}

func newSecretGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := app.secrets.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newSecretRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <key>",
		Aliases: []string{"remove"},
		Short:   "Remove a secret",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.secrets.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed secret %s\n", args[0])
			return nil
		},
	}
}
