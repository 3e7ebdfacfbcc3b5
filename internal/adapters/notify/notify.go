package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports"
)

// LogNotifier records full-bin alerts in the log only.
type LogNotifier struct {
	Logger *slog.Logger
}

var (
	_ ports.AdminNotifier = LogNotifier{}
	_ ports.AdminNotifier = (*ChatNotifier)(nil)
)

func (n LogNotifier) NotifyBinFull(_ context.Context, bin domain.AnalyzedBin) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("admin_bin_full",
		"bin_id", bin.Snapshot.ID.String(),
		"address", bin.Snapshot.Address,
		"fill_level", bin.Verdict.FillLevelPercent,
		"confidence", bin.Verdict.ConfidencePercent,
	)
	return nil
}

type textSender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// ChatNotifier posts full-bin alerts to an admin chat and logs them as well.
type ChatNotifier struct {
	sender textSender
	chatID int64
	log    LogNotifier
}

func NewChatNotifier(sender textSender, chatID int64, logger *slog.Logger) (*ChatNotifier, error) {
	if sender == nil {
		return nil, errors.New("admin notifier sender is required")
	}
	if chatID == 0 {
		return nil, errors.New("admin chat id is required")
	}

	return &ChatNotifier{sender: sender, chatID: chatID, log: LogNotifier{Logger: logger}}, nil
}

func (n *ChatNotifier) NotifyBinFull(ctx context.Context, bin domain.AnalyzedBin) error {
	_ = n.log.NotifyBinFull(ctx, bin)

	if err := n.sender.SendText(ctx, n.chatID, alertText(bin)); err != nil {
		return fmt.Errorf("send admin alert: %w", err)
	}
	return nil
}

func alertText(bin domain.AnalyzedBin) string {
	var b strings.Builder
	b.WriteString("🚨 <b>Konteyner to'la!</b>\n\n")
	fmt.Fprintf(&b, "🏷️ <b>ID:</b> %s\n", html.EscapeString(bin.Snapshot.ID.String()))
	if address := strings.TrimSpace(bin.Snapshot.Address); address != "" {
		fmt.Fprintf(&b, "📍 <b>Manzil:</b> %s\n", html.EscapeString(address))
	}
	if zone := strings.TrimSpace(bin.Snapshot.ZoneName); zone != "" {
		fmt.Fprintf(&b, "🏢 <b>Toza hudud:</b> %s\n", html.EscapeString(zone))
	}
	fmt.Fprintf(&b, "📊 <b>To'ldirish darajasi:</b> %d%%\n", bin.Verdict.FillLevelPercent)
	fmt.Fprintf(&b, "🔍 <b>AI ishonchlilik:</b> %d%%", bin.Verdict.ConfidencePercent)
	return b.String()
}
