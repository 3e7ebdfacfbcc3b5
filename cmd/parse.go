package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	renderbin "github.com/tozahudud/binbot/internal/adapters/render/bin"
	"github.com/tozahudud/binbot/internal/application"
	"github.com/tozahudud/binbot/internal/domain"
)

const maxParseInputBytes = 64 << 10

var errNoSensorReading = errors.New("no sensor reading found in text")

func newParseCmd(app *app) *cobra.Command {
	var send bool

	cmd := &cobra.Command{
		Use:   "parse [text]",
		Short: "Parse a sensor message",
		Long:  "parse extracts a sensor reading from a device message, given as arguments or on stdin. With --send the reading is posted to the backend like the monitor bot does.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := parseInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			reading, ok := domain.ParseSensorText(text)
			if !ok {
				return errNoSensorReading
			}

			if send {
				if err := sendReading(cmd, app, reading); err != nil {
					return err
				}
			}

			return writeOutput(cmd, app, reading, renderbin.Document{Reading: &reading})
		},
	}

	cmd.Flags().BoolVar(&send, "send", false, "Post the parsed reading to the backend")

	return cmd
}

func parseInput(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(io.LimitReader(stdin, maxParseInputBytes))
	if err != nil {
		return "", fmt.Errorf("read sensor text: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("sensor text is required as arguments or on stdin")
	}
	return string(data), nil
}

func sendReading(cmd *cobra.Command, app *app, reading domain.SensorReading) error {
	ctx := cmd.Context()
	cfg, err := app.config(ctx)
	if err != nil {
		return err
	}
	gateway, err := app.newGateway(cfg)
	if err != nil {
		return err
	}
	publisher, closePublisher, err := app.newPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	relay := application.NewSensorRelayService(gateway, application.SensorRelayOptions{
		Publisher: publisher,
		Logger:    app.component("sensor_relay"),
	})
	return relay.Relay(ctx, reading)
}
