package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports"
)

const DefaultStateTTL = 24 * time.Hour

type ConversationOptions struct {
	StateTTL time.Duration
	Clock    ports.Clock
	Logger   *slog.Logger
}

// ConversationService drives the waste bot: bin lookup by QR/id, then a photo
// that is classified and written back to the backend.
type ConversationService struct {
	bins       ports.BinGateway
	classifier ports.Classifier
	messenger  ports.Messenger
	states     ports.ConversationStore
	notifier   ports.AdminNotifier
	clock      ports.Clock
	ttl        time.Duration
	logger     *slog.Logger
}

func NewConversationService(
	bins ports.BinGateway,
	classifier ports.Classifier,
	messenger ports.Messenger,
	states ports.ConversationStore,
	notifier ports.AdminNotifier,
	opts ConversationOptions,
) *ConversationService {
	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	ttl := opts.StateTTL
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ConversationService{
		bins:       bins,
		classifier: classifier,
		messenger:  messenger,
		states:     states,
		notifier:   notifier,
		clock:      clock,
		ttl:        ttl,
		logger:     logger,
	}
}

// HandleEvent runs one conversation turn. Backend and classifier failures are
// answered in chat; the returned error covers state persistence and replies.
func (s *ConversationService) HandleEvent(ctx context.Context, event domain.ChatEvent) error {
	state, err := s.loadState(ctx, event.Key())
	if err != nil {
		return err
	}

	if event.Photo != nil {
		return s.handlePhoto(ctx, state, *event.Photo)
	}

	switch event.Command {
	case "":
		if id, ok := domain.ExtractBinID(event.Text); ok {
			return s.lookupBin(ctx, state, id)
		}
		return s.reply(ctx, state.Key, replyGuidance)
	case "start":
		if id, ok := commandBinID(event.CommandArgs); ok {
			return s.lookupBin(ctx, state, id)
		}
		return s.reply(ctx, state.Key, replyWelcome)
	case "scan":
		if id, ok := commandBinID(event.CommandArgs); ok {
			return s.lookupBin(ctx, state, id)
		}
		return s.reply(ctx, state.Key, replyScanInstructions)
	case "help":
		return s.reply(ctx, state.Key, replyHelp)
	default:
		return s.reply(ctx, state.Key, replyGuidance)
	}
}

// ExpireStates drops conversation state untouched for longer than the TTL.
func (s *ConversationService) ExpireStates(ctx context.Context) (int, error) {
	removed, err := s.states.DeleteExpired(ctx, s.clock.Now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("delete expired conversation state: %w", err)
	}
	if removed > 0 {
		s.logger.Debug("conversation_state_expired", "count", removed)
	}
	return removed, nil
}

func (s *ConversationService) lookupBin(ctx context.Context, state domain.ConversationState, id domain.BinID) error {
	snapshot, found, err := s.bins.GetBinSnapshot(ctx, id)
	if err != nil {
		s.logger.Warn("bin_lookup_failed", "bin_id", id.String(), "error", err)
		return s.reply(ctx, state.Key, failureReply(err))
	}
	if !found {
		s.logger.Info("bin_not_found", "bin_id", id.String(), "chat_id", state.Key.ChatID)
		return s.reply(ctx, state.Key, notFoundReply(id))
	}

	if snapshot.ID.IsZero() {
		snapshot.ID = id
	}
	state.ActiveBinID = snapshot.ID
	state.Stage = domain.StageAwaitingPhoto
	if err := s.saveState(ctx, state); err != nil {
		return err
	}

	return s.reply(ctx, state.Key, snapshotReply(snapshot))
}

func (s *ConversationService) handlePhoto(ctx context.Context, state domain.ConversationState, photo domain.PhotoRef) error {
	if !state.HasActiveBin() {
		return s.reply(ctx, state.Key, replyScanFirst)
	}
	binID := state.ActiveBinID

	image, err := s.messenger.DownloadPhoto(ctx, photo.FileID)
	if err != nil {
		s.logger.Warn("photo_download_failed", "bin_id", binID.String(), "error", err)
		return s.reply(ctx, state.Key, replyPhotoFailed)
	}

	if err := s.reply(ctx, state.Key, replyAnalysing); err != nil {
		return err
	}

	verdict := s.classifier.Classify(ctx, image)
	if !verdict.IsWasteContainer {
		s.logger.Info("photo_rejected", "bin_id", binID.String(), "notes", verdict.Notes)
		return s.reply(ctx, state.Key, replyNotWasteContainer)
	}

	analyzed, err := s.bins.UpdateBinWithImage(ctx, binID, image, verdict)
	if err != nil {
		s.logger.Warn("bin_update_failed", "bin_id", binID.String(), "error", err)
		if errors.Is(err, domain.ErrBinNotFound) {
			state.ActiveBinID = ""
			state.Stage = domain.StageIdle
			if saveErr := s.saveState(ctx, state); saveErr != nil {
				return saveErr
			}
			return s.reply(ctx, state.Key, notFoundReply(binID))
		}
		return s.reply(ctx, state.Key, failureReply(err))
	}

	state.Stage = domain.StageIdle
	if err := s.saveState(ctx, state); err != nil {
		return err
	}

	s.logger.Info("bin_updated",
		"bin_id", binID.String(),
		"is_full", analyzed.Verdict.IsFull,
		"fill_level", analyzed.Verdict.FillLevelPercent,
	)
	replyErr := s.reply(ctx, state.Key, analysisReply(analyzed))

	if analyzed.Verdict.IsFull && s.notifier != nil {
		if err := s.notifier.NotifyBinFull(ctx, analyzed); err != nil {
			s.logger.Warn("admin_notify_failed", "bin_id", binID.String(), "error", err)
		}
	}

	return replyErr
}

func (s *ConversationService) loadState(ctx context.Context, key domain.ConversationKey) (domain.ConversationState, error) {
	fresh := domain.ConversationState{Key: key, Stage: domain.StageIdle}

	state, err := s.states.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			return fresh, nil
		}
		return domain.ConversationState{}, fmt.Errorf("get conversation state: %w", err)
	}
	if state.ExpiredAt(s.clock.Now(), s.ttl) {
		return fresh, nil
	}
	state.Key = key
	if state.Stage == "" {
		state.Stage = domain.StageIdle
	}
	return state, nil
}

func (s *ConversationService) saveState(ctx context.Context, state domain.ConversationState) error {
	state.UpdatedAt = s.clock.Now()
	if err := s.states.Save(ctx, state); err != nil {
		return fmt.Errorf("save conversation state: %w", err)
	}
	return nil
}

func (s *ConversationService) reply(ctx context.Context, key domain.ConversationKey, text string) error {
	if err := s.messenger.SendText(ctx, key.ChatID, text); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

func commandBinID(args string) (domain.BinID, bool) {
	args = strings.TrimSpace(args)
	if args == "" {
		return "", false
	}
	if id, ok := domain.ExtractBinID(args); ok {
		return id, true
	}
	// Deep-link payloads may carry a bare backend id that is not UUID-shaped.
	fields := strings.Fields(args)
	return domain.CanonicalBinIDOrRaw(fields[0]), true
}

func failureReply(err error) string {
	if errors.Is(err, domain.ErrAuthentication) {
		return replyTryLater
	}
	return replyRetry
}
