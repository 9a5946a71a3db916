package events

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jaberDevHub/help-hive-server-side/internal/metrics"
	"github.com/jaberDevHub/help-hive-server-side/internal/sanitize"
)

const maxSearchLength = 200

// Service owns event reads and writes. Inputs are sanitized before they are
// validated so markup stripped from a required field counts as missing.
type Service struct {
	repo      Repository
	logger    zerolog.Logger
	validator *validator.Validate
	now       func() time.Time
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		logger:    logger.With().Str("component", "events").Logger(),
		validator: validator.New(),
		now:       time.Now,
	}
}

// ListUpcoming returns events dated now or later, soonest first.
func (s *Service) ListUpcoming(ctx context.Context, filters Filters) ([]Event, error) {
	filters.NotBefore = s.now()
	return s.repo.ListUpcoming(ctx, filters)
}

// ListByCreator returns every event created by the given email, newest first.
func (s *Service) ListByCreator(ctx context.Context, email string) ([]Event, error) {
	return s.repo.ListByCreator(ctx, strings.TrimSpace(email))
}

func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

// cleanText strips markup and surrounding whitespace from a plain-text field.
func cleanText(s string) string {
	return strings.TrimSpace(sanitize.Text(s))
}

func (s *Service) Create(ctx context.Context, params CreateParams) (string, error) {
	params.Title = cleanText(params.Title)
	params.EventType = cleanText(params.EventType)
	params.Location = cleanText(params.Location)
	params.Thumbnail = cleanText(params.Thumbnail)
	params.Description = sanitize.HTML(params.Description)
	params.Email = strings.TrimSpace(params.Email)

	if err := s.validator.Struct(params); err != nil {
		return "", asValidationError(err)
	}

	id, err := s.repo.Create(ctx, params)
	if err != nil {
		return "", err
	}
	metrics.EventsCreatedTotal.Inc()
	s.logger.Info().Str("event_id", id).Str("creator", params.Email).Msg("event created")
	return id, nil
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) error {
	if params.Title != nil {
		clean := cleanText(*params.Title)
		params.Title = &clean
	}
	if params.EventType != nil {
		clean := cleanText(*params.EventType)
		params.EventType = &clean
	}
	if params.Location != nil {
		clean := cleanText(*params.Location)
		params.Location = &clean
	}
	if params.Thumbnail != nil {
		clean := cleanText(*params.Thumbnail)
		params.Thumbnail = &clean
	}
	if params.Description != nil {
		clean := sanitize.HTML(*params.Description)
		params.Description = &clean
	}
	if params.Title != nil && *params.Title == "" {
		return ValidationError{Field: "title", Message: "must not be empty"}
	}
	if params.EventDate != nil && params.EventDate.IsZero() {
		return ValidationError{Field: "eventDate", Message: "must be a valid date"}
	}

	if err := s.validator.Struct(params); err != nil {
		return asValidationError(err)
	}

	if err := s.repo.Update(ctx, id, params); err != nil {
		return err
	}
	metrics.EventsUpdatedTotal.Inc()
	s.logger.Info().Str("event_id", id).Msg("event updated")
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.EventsDeletedTotal.Inc()
	s.logger.Info().Str("event_id", id).Msg("event deleted")
	return nil
}

// ParseFilters reads the supported listing query parameters. The eventType
// value "All" matches the category picker's catch-all entry and clears the
// filter instead of matching a literal category.
func ParseFilters(values url.Values) (Filters, error) {
	filters := Filters{}

	eventType := strings.TrimSpace(values.Get("eventType"))
	if eventType != "" && eventType != "All" {
		filters.Type = eventType
	}

	search := strings.TrimSpace(values.Get("search"))
	if len(search) > maxSearchLength {
		return Filters{}, FilterError{Field: "search", Message: "must be at most 200 characters"}
	}
	filters.Search = search

	return filters, nil
}
