package domain

import (
	"strconv"
	"time"
)

type ConversationStage string

const (
	StageIdle          ConversationStage = "idle"
	StageAwaitingPhoto ConversationStage = "awaiting_photo"
)

type ConversationKey struct {
	ChatID int64
	UserID int64
}

func (k ConversationKey) String() string {
	return strconv.FormatInt(k.ChatID, 10) + ":" + strconv.FormatInt(k.UserID, 10)
}

type ConversationState struct {
	Key         ConversationKey
	ActiveBinID BinID
	Stage       ConversationStage
	UpdatedAt   time.Time
}

func (s ConversationState) HasActiveBin() bool {
	return !s.ActiveBinID.IsZero()
}

func (s ConversationState) ExpiredAt(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 || s.UpdatedAt.IsZero() {
		return false
	}
	return now.Sub(s.UpdatedAt) > ttl
}

type SessionState string

const (
	SessionUnauthenticated SessionState = "unauthenticated"
	SessionAuthenticating  SessionState = "authenticating"
	SessionAuthenticated   SessionState = "authenticated"
)
