package joins

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaberDevHub/help-hive-server-side/internal/domain/events"
	"github.com/jaberDevHub/help-hive-server-side/internal/metrics"
)

// ValidationError reports a rejected join request.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Notifier sends the optional join confirmation. Implementations decide
// whether sending is enabled; a failure never affects the join itself.
type Notifier interface {
	SendJoinConfirmation(ctx context.Context, to string, event events.Event) error
}

type Service struct {
	repo     Repository
	events   events.Repository
	notifier Notifier
	logger   zerolog.Logger
}

func NewService(repo Repository, eventsRepo events.Repository, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		events:   eventsRepo,
		notifier: notifier,
		logger:   logger.With().Str("component", "joins").Logger(),
	}
}

// Join records the participant's commitment to the event, embedding a copy of
// the event document as it stands right now. The referenced event must exist;
// a repeat join surfaces as ErrAlreadyJoined straight from the storage
// layer's uniqueness guarantee, with no pre-read.
func (s *Service) Join(ctx context.Context, eventID, participantEmail string) error {
	participantEmail = strings.TrimSpace(participantEmail)
	if participantEmail == "" {
		return ValidationError{Field: "email", Message: "is required"}
	}
	if _, err := mail.ParseAddress(participantEmail); err != nil {
		return ValidationError{Field: "email", Message: "must be a valid email address"}
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	id, err := s.repo.Create(ctx, CreateParams{
		EventID:          event.ID,
		ParticipantEmail: participantEmail,
		Event:            *event,
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyJoined) {
			metrics.EventJoinConflictsTotal.Inc()
		}
		return err
	}

	metrics.EventJoinsTotal.Inc()
	s.logger.Info().
		Str("join_id", id).
		Str("event_id", event.ID).
		Str("participant", participantEmail).
		Msg("participant joined event")

	if s.notifier != nil {
		if err := s.notifier.SendJoinConfirmation(ctx, participantEmail, *event); err != nil {
			s.logger.Warn().Err(err).Str("event_id", event.ID).Msg("join confirmation email failed")
		}
	}
	return nil
}

// ListByParticipant returns the participant's join records, newest first,
// snapshots included.
func (s *Service) ListByParticipant(ctx context.Context, email string) ([]JoinRecord, error) {
	return s.repo.ListByParticipant(ctx, strings.TrimSpace(email))
}
