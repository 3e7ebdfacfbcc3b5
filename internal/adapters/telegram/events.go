package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tozahudud/binbot/internal/domain"
)

func toEvent(update tgbotapi.Update) (domain.ChatEvent, bool) {
	message := update.Message
	if message == nil {
		message = update.ChannelPost
	}
	if message == nil || message.Chat == nil {
		return domain.ChatEvent{}, false
	}

	event := domain.ChatEvent{
		ChatID: message.Chat.ID,
		Text:   strings.TrimSpace(message.Text),
	}
	if message.From != nil {
		event.UserID = message.From.ID
	}

	if message.IsCommand() {
		event.Command = strings.ToLower(message.Command())
		event.CommandArgs = strings.TrimSpace(message.CommandArguments())
	}

	if photo, ok := largestPhoto(message.Photo); ok {
		event.Photo = &photo
		if event.Text == "" {
			event.Text = strings.TrimSpace(message.Caption)
		}
	}

	if event.Text == "" && event.Photo == nil {
		return domain.ChatEvent{}, false
	}

	return event, true
}

func largestPhoto(sizes []tgbotapi.PhotoSize) (domain.PhotoRef, bool) {
	best := -1
	for i, size := range sizes {
		if best < 0 || size.Width*size.Height > sizes[best].Width*sizes[best].Height {
			best = i
		}
	}
	if best < 0 {
		return domain.PhotoRef{}, false
	}

	return domain.PhotoRef{
		FileID: sizes[best].FileID,
		Width:  sizes[best].Width,
		Height: sizes[best].Height,
	}, true
}
