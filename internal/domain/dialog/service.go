package dialog

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hr-assistant-api/internal/utils/platformerrors"
	"hr-assistant-api/internal/utils/stringutils"
)

const maxTitleLength = 80

// Prompts are the fixed texts every dialog is built from.
type Prompts struct {
	System   string
	Greeting string
	Subject  string
}

// ChatInput is one user turn.
type ChatInput struct {
	Question     string
	AnswerLength int
}

// Service runs chat turns against the completion API and persists the result.
type Service struct {
	repo            Repository
	completer       Completer
	prompts         Prompts
	maxAnswerLength int
	clock           Clock
	log             zerolog.Logger
}

// NewService wires the dialog service with its collaborators.
func NewService(repo Repository, completer Completer, prompts Prompts, maxAnswerLength int, log zerolog.Logger) *Service {
	return &Service{
		repo:            repo,
		completer:       completer,
		prompts:         prompts,
		maxAnswerLength: maxAnswerLength,
		clock:           time.Now,
		log:             log.With().Str("component", "dialog-service").Logger(),
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(clock Clock) *Service {
	s.clock = clock
	return s
}

// ValidateChatInput checks the question and the requested answer length.
func (s *Service) ValidateChatInput(ctx context.Context, input ChatInput) (ChatInput, error) {
	input.Question = strings.TrimSpace(input.Question)
	if input.Question == "" {
		return input, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "question is required", nil, "7c2e9f41-5a3b-4d8e-9f1a-6b0c2d4e8f13")
	}
	if input.AnswerLength <= 0 || input.AnswerLength > s.maxAnswerLength {
		return input, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "answer_length must be a positive integer not above the configured maximum", nil, "e91b3c5d-0f27-4a6b-8d4c-3e5f7a9b1c2d", map[string]any{
			"answer_length": input.AnswerLength,
			"max":           s.maxAnswerLength,
		})
	}
	return input, nil
}

// StartDialog derives a title, opens a new dialog, answers the first question and stores it.
// Nothing is stored unless both completions succeed.
func (s *Service) StartDialog(ctx context.Context, ownerID string, input ChatInput) (*Session, error) {
	input, err := s.ValidateChatInput(ctx, input)
	if err != nil {
		return nil, err
	}

	title, err := s.deriveTitle(ctx, input.Question)
	if err != nil {
		return nil, err
	}

	session, err := NewSession(title, ownerID, s.clock)
	if err != nil {
		return nil, err
	}
	if err := session.Seed(s.prompts.System, s.prompts.Greeting); err != nil {
		return nil, err
	}

	if err := s.answer(ctx, session, input); err != nil {
		return nil, err
	}

	id, err := s.repo.Insert(ctx, session.Record())
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "store dialog")
	}
	session.ID = id

	s.log.Info().
		Str("dialog_id", id).
		Str("user_id", ownerID).
		Int("messages", len(session.Chat)).
		Msg("dialog created")
	return session, nil
}

// ContinueDialog appends one question and its answer to an existing dialog.
func (s *Service) ContinueDialog(ctx context.Context, ownerID, dialogID string, input ChatInput) (*Session, error) {
	dialogID = strings.TrimSpace(dialogID)
	if dialogID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "dialog id is required", nil, "b6d8f0a2-4c1e-4b9d-a7f3-5e2c8d0b6a14")
	}
	input, err := s.ValidateChatInput(ctx, input)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.FindByID(ctx, dialogID, ownerID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load dialog")
	}
	session.SetClock(s.clock)

	if err := s.answer(ctx, session, input); err != nil {
		return nil, err
	}

	expected := session.Version
	if err := s.repo.UpdateChat(ctx, session.ID, ownerID, session.Chat, session.LastMsg, expected); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "update dialog")
	}
	session.Version = expected + 1

	return session, nil
}

// GetDialog returns one of the owner's dialogs.
func (s *Service) GetDialog(ctx context.Context, ownerID, dialogID string) (*Session, error) {
	dialogID = strings.TrimSpace(dialogID)
	if dialogID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "dialog_id is required", nil, "2a4c6e8f-1b3d-4f5a-9c7e-0d2f4a6c8e1b")
	}
	session, err := s.repo.FindByID(ctx, dialogID, ownerID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load dialog")
	}
	return session, nil
}

// ListDialogs returns the owner's dialog summaries, oldest first. The result is never nil.
func (s *Service) ListDialogs(ctx context.Context, ownerID string) ([]Summary, error) {
	summaries, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list dialogs")
	}
	if summaries == nil {
		summaries = []Summary{}
	}
	return summaries, nil
}

// DeleteDialogs removes the owner's dialogs among ids. Ids of other users' dialogs are ignored.
func (s *Service) DeleteDialogs(ctx context.Context, ownerID string, ids []string) (int64, error) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(cleaned, id) {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "no ids provided", nil, "c5e7a9b1-3d2f-4e6a-8b0c-1f3e5a7c9d2b")
	}

	deleted, err := s.repo.DeleteMany(ctx, cleaned, ownerID)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "delete dialogs")
	}
	s.log.Info().Str("user_id", ownerID).Int64("deleted", deleted).Int("requested", len(cleaned)).Msg("dialogs deleted")
	return deleted, nil
}

func (s *Service) deriveTitle(ctx context.Context, question string) (string, error) {
	raw, err := s.completer.Subject(ctx, s.prompts.Subject, question)
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "could not generate a title")
	}
	title := stringutils.GenerateTitle(raw, maxTitleLength)
	if title == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "could not generate a title", nil, "9f0e1d2c-3b4a-4958-8776-a5b4c3d2e1f0")
	}
	return title, nil
}

// answer appends the question, asks for a reply and appends it. On failure the
// session may hold the unanswered question, but it has not been stored.
func (s *Service) answer(ctx context.Context, session *Session, input ChatInput) error {
	if err := session.AppendMessage(RoleUser, input.Question); err != nil {
		return err
	}

	reply, err := s.completer.Complete(ctx, slices.Collect(session.CompletionInput()), input.AnswerLength)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "completion failed, no answer available")
	}

	return session.AppendMessage(RoleAssistant, reply)
}
