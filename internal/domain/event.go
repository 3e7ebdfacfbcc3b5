package domain

type PhotoRef struct {
	FileID string
	Width  int
	Height int
}

// ChatEvent is one inbound message from the chat platform. Photo, when set, is
// the highest-resolution variant the platform delivered.
type ChatEvent struct {
	ChatID      int64
	UserID      int64
	Text        string
	Command     string
	CommandArgs string
	Photo       *PhotoRef
}

func (e ChatEvent) Key() ConversationKey {
	return ConversationKey{ChatID: e.ChatID, UserID: e.UserID}
}

func (e ChatEvent) IsCommand() bool {
	return e.Command != ""
}
