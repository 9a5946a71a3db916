package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/mail"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/jaberDevHub/help-hive-server-side/internal/config"
	"github.com/jaberDevHub/help-hive-server-side/internal/domain/events"
)

// Service sends transactional mail through Resend. When disabled it logs
// and drops every message, which is what development and tests want.
type Service struct {
	config       config.EmailConfig
	resendClient *resend.Client
	template     *template.Template
	logger       zerolog.Logger
}

// confirmationData feeds the join confirmation template.
type confirmationData struct {
	EventTitle  string
	EventDate   string
	Location    string
	EventType   string
	CurrentYear int
}

// NewService creates the email service. The sender address is only
// validated when sending is enabled, so a zero config always works.
func NewService(cfg config.EmailConfig, logger zerolog.Logger) (*Service, error) {
	if cfg.Enabled {
		if err := validateEmailAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender email in config: %w", err)
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("email sending enabled but no Resend API key configured")
		}
	}

	tmpl, err := template.New("join_confirmation").Parse(joinConfirmationHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse join confirmation template: %w", err)
	}

	svc := &Service{
		config:   cfg,
		template: tmpl,
		logger:   logger.With().Str("component", "email").Logger(),
	}
	if cfg.Enabled {
		svc.resendClient = resend.NewClient(cfg.APIKey)
	}
	return svc, nil
}

// SendJoinConfirmation mails a volunteer the details of the event they
// just signed up for. Callers treat failures as non-fatal; the join has
// already been recorded by the time this runs.
func (s *Service) SendJoinConfirmation(ctx context.Context, to string, event events.Event) error {
	if err := validateEmailAddress(to); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}

	if !s.config.Enabled {
		s.logger.Debug().
			Str("to", to).
			Str("event_id", event.ID).
			Msg("email service disabled, skipping join confirmation")
		return nil
	}

	data := confirmationData{
		EventTitle:  event.Title,
		EventDate:   event.EventDate.Format("Monday, January 2, 2006 at 3:04 PM MST"),
		Location:    event.Location,
		EventType:   event.EventType,
		CurrentYear: time.Now().Year(),
	}

	htmlBody, err := s.renderConfirmation(data)
	if err != nil {
		return fmt.Errorf("failed to render join confirmation: %w", err)
	}

	subject := fmt.Sprintf("You're signed up for %s", event.Title)
	if err := s.sendViaResend(ctx, to, subject, htmlBody); err != nil {
		return fmt.Errorf("failed to send join confirmation: %w", err)
	}

	s.logger.Info().
		Str("to", to).
		Str("event_id", event.ID).
		Msg("join confirmation sent")
	return nil
}

// validateEmailAddress checks format and rejects header injection attempts.
func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}

	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}

	return nil
}

func (s *Service) renderConfirmation(data confirmationData) (string, error) {
	var buf bytes.Buffer
	if err := s.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// joinConfirmationHTML is embedded as a constant rather than loaded from
// disk so the binary stays self-contained.
const joinConfirmationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: sans-serif; color: #1f2328; background: #fffdf7; margin: 0; padding: 24px; }
    .card { max-width: 560px; margin: 0 auto; background: #ffffff; border: 1px solid #e8e2d4; border-radius: 8px; padding: 28px; }
    h1 { font-size: 20px; margin-top: 0; }
    .detail { margin: 6px 0; }
    .label { color: #656d76; }
    .footer { margin-top: 24px; font-size: 12px; color: #656d76; }
  </style>
</head>
<body>
  <div class="card">
    <h1>You're signed up!</h1>
    <p>Thanks for volunteering. Here are the details:</p>
    <p class="detail"><span class="label">Event:</span> {{.EventTitle}}</p>
    <p class="detail"><span class="label">When:</span> {{.EventDate}}</p>
    {{if .Location}}<p class="detail"><span class="label">Where:</span> {{.Location}}</p>{{end}}
    {{if .EventType}}<p class="detail"><span class="label">Type:</span> {{.EventType}}</p>{{end}}
    <p>See you there!</p>
    <p class="footer">HelpHive &copy; {{.CurrentYear}}</p>
  </div>
</body>
</html>`
