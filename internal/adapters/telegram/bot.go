package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports"
)

const (
	maxPhotoBytes          = 20 << 20
	maxMessageUnits        = 4096
	defaultPollTimeout     = 30
	defaultDownloadTimeout = 30 * time.Second
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

var ErrTokenRequired = errors.New("telegram bot token is required")

type Options struct {
	Token           string
	APIEndpoint     string
	FileEndpoint    string
	HTTPClient      *http.Client
	PollTimeout     int
	DownloadTimeout time.Duration
	Logger          *slog.Logger
}

// Bot is the chat transport for both bots: it long-polls updates into
// domain.ChatEvent values and sends replies.
type Bot struct {
	api             *tgbotapi.BotAPI
	fileEndpoint    string
	httpClient      *http.Client
	pollTimeout     int
	downloadTimeout time.Duration
	logger          *slog.Logger
}

var (
	_ ports.EventSource = (*Bot)(nil)
	_ ports.Messenger   = (*Bot)(nil)
)

func New(opts Options) (*Bot, error) {
	if strings.TrimSpace(opts.Token) == "" {
		return nil, ErrTokenRequired
	}

	apiEndpoint := opts.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	fileEndpoint := opts.FileEndpoint
	if fileEndpoint == "" {
		fileEndpoint = tgbotapi.FileEndpoint
	}
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	api, err := tgbotapi.NewBotAPIWithClient(opts.Token, apiEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}

	pollTimeout := opts.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	downloadTimeout := opts.DownloadTimeout
	if downloadTimeout <= 0 {
		downloadTimeout = defaultDownloadTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		api:             api,
		fileEndpoint:    fileEndpoint,
		httpClient:      client,
		pollTimeout:     pollTimeout,
		downloadTimeout: downloadTimeout,
		logger:          logger,
	}, nil
}

func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Listen delivers events until ctx is cancelled. It returns nil on cancellation.
func (b *Bot) Listen(ctx context.Context, handle func(domain.ChatEvent)) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(cfg)
	b.logger.Info("telegram_polling_started", "username", b.Username())

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram_polling_stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			event, ok := toEvent(update)
			if !ok {
				continue
			}
			handle(event)
		}
	}
}

func (b *Bot) SendText(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Callers bound free-text fields; cutting markup here would break HTML parsing.
	if units := visibleUnits(text); units > maxMessageUnits {
		return fmt.Errorf("send telegram message: %d UTF-16 units exceeds limit %d", units, maxMessageUnits)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func (b *Bot) DownloadPhoto(ctx context.Context, fileID string) ([]byte, error) {
	if fileID == "" {
		return nil, errors.New("photo file id is required")
	}

	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("resolve telegram file: %w", err)
	}
	if file.FilePath == "" {
		return nil, errors.New("resolve telegram file: empty file path")
	}

	requestCtx, cancel := context.WithTimeout(ctx, b.downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, fmt.Sprintf(b.fileEndpoint, b.api.Token, file.FilePath), nil)
	if err != nil {
		return nil, fmt.Errorf("create photo download request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("download photo: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if len(data) > maxPhotoBytes {
		return nil, fmt.Errorf("photo exceeds %d bytes", maxPhotoBytes)
	}

	return data, nil
}

// visibleUnits is the length Telegram checks: UTF-16 code units of the text
// left after HTML tags and entities are parsed.
func visibleUnits(markup string) int {
	return len(utf16.Encode([]rune(html.UnescapeString(htmlTag.ReplaceAllString(markup, "")))))
}
