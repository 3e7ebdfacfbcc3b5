package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tozahudud/binbot/internal/application"
)

func newMonitorCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Run the IoT sensor relay bot",
		Long:  "monitor reads sensor messages posted to the monitor bot's chats and forwards each parsed reading to the backend, mirroring it to MQTT when mqtt.broker is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runMonitor(ctx, app)
		},
	}
}

func runMonitor(ctx context.Context, app *app) error {
	cfg, err := app.config(ctx)
	if err != nil {
		return err
	}
	if err := cfg.RequireMonitor(); err != nil {
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

	bot, err := app.newBot(cfg.Monitor.Token, cfg, "monitor_bot")
	if err != nil {
		return err
	}

	relay := application.NewSensorRelayService(gateway, application.SensorRelayOptions{
		MonitoredChatID: cfg.Monitor.ChatID,
		Publisher:       publisher,
		Logger:          app.component("sensor_relay"),
	})
	dispatcher := application.NewDispatcher(relay, application.DispatcherOptions{
		Logger: app.component("dispatcher"),
	})

	app.logger.Info("monitor_bot_started", "username", bot.Username(), "monitored_chat_id", cfg.Monitor.ChatID)
	if err := dispatcher.Run(ctx, bot); err != nil {
		return fmt.Errorf("run monitor bot: %w", err)
	}
	app.logger.Info("monitor_bot_stopped")
	return nil
}
