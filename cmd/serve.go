package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tozahudud/binbot/internal/application"
	"github.com/tozahudud/binbot/internal/ports"
)

const (
	minSweepInterval = time.Minute
	maxSweepInterval = time.Hour
)

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the waste-bin bot",
		Long:  "serve long-polls the waste-bin bot: users scan a bin QR code or type its id, then send a photo that is classified and written to the backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, app)
		},
	}
}

func runServe(ctx context.Context, app *app) error {
	cfg, err := app.config(ctx)
	if err != nil {
		return err
	}
	if err := cfg.RequireTelegram(); err != nil {
		return err
	}

	gateway, err := app.newGateway(cfg)
	if err != nil {
		return err
	}
	states, err := app.newStateStore(cfg)
	if err != nil {
		return err
	}
	bot, err := app.newBot(cfg.Telegram.Token, cfg, "waste_bot")
	if err != nil {
		return err
	}
	notifier, err := app.newNotifier(cfg, bot)
	if err != nil {
		return err
	}

	service := application.NewConversationService(
		gateway,
		app.newClassifier(cfg),
		bot,
		states,
		notifier,
		application.ConversationOptions{
			StateTTL: cfg.State.TTL,
			Clock:    ports.SystemClock{},
			Logger:   app.component("conversation"),
		},
	)
	dispatcher := application.NewDispatcher(service, application.DispatcherOptions{
		Logger: app.component("dispatcher"),
	})

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sweepStates(ctx, service, sweepInterval(cfg.State.TTL), app.component("state_sweeper"))
	}()

	app.logger.Info("waste_bot_started", "username", bot.Username())
	err = dispatcher.Run(ctx, bot)
	<-sweepDone
	if err != nil {
		return fmt.Errorf("run waste bot: %w", err)
	}
	app.logger.Info("waste_bot_stopped")
	return nil
}

type stateExpirer interface {
	ExpireStates(ctx context.Context) (int, error)
}

func sweepStates(ctx context.Context, expirer stateExpirer, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := expirer.ExpireStates(ctx)
			if err != nil {
				logger.Warn("state_sweep_failed", "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("state_sweep_completed", "removed", removed)
			}
		}
	}
}

// sweepInterval is a quarter of the TTL, kept between one minute and one hour.
func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < minSweepInterval {
		return minSweepInterval
	}
	if interval > maxSweepInterval {
		return maxSweepInterval
	}
	return interval
}
