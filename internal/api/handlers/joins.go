package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jaberDevHub/help-hive-server-side/internal/api/middleware"
	"github.com/jaberDevHub/help-hive-server-side/internal/api/respond"
	"github.com/jaberDevHub/help-hive-server-side/internal/domain/events"
	"github.com/jaberDevHub/help-hive-server-side/internal/domain/joins"
)

// JoinsHandler serves event participation. The participant email still
// travels in the request body for compatibility with the browser client,
// but it must agree with the session identity before anything is written.
type JoinsHandler struct {
	Service *joins.Service
	Env     string
}

func NewJoinsHandler(service *joins.Service, env string) *JoinsHandler {
	return &JoinsHandler{Service: service, Env: env}
}

type joinRequest struct {
	Email string `json:"email"`
}

type joinRecordResponse struct {
	ID               string        `json:"_id"`
	EventID          string        `json:"eventId"`
	ParticipantEmail string        `json:"participantEmail"`
	JoinedAt         time.Time     `json:"joinedAt"`
	Event            eventResponse `json:"event"`
}

func toJoinRecordResponses(records []joins.JoinRecord) []joinRecordResponse {
	out := make([]joinRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, joinRecordResponse{
			ID:               record.ID,
			EventID:          record.EventID,
			ParticipantEmail: record.ParticipantEmail,
			JoinedAt:         record.JoinedAt,
			Event:            toEventResponse(record.Event),
		})
	}
	return out
}

// Join serves POST /api/events/{id}/join.
func (h *JoinsHandler) Join(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		respond.Error(w, r, http.StatusInternalServerError, "internal server error", nil, h.env())
		return
	}

	claims := middleware.SessionClaims(r)
	if claims == nil || claims.Email == "" {
		respond.Error(w, r, http.StatusUnauthorized, "unauthorized access", nil, h.Env)
		return
	}

	var input joinRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err, h.Env)
		return
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		respond.Error(w, r, http.StatusBadRequest, "email is required", nil, h.Env)
		return
	}
	// Joining on someone else's behalf is not a thing.
	if !strings.EqualFold(email, claims.Email) {
		respond.Error(w, r, http.StatusUnauthorized, "unauthorized access", nil, h.Env)
		return
	}

	eventID := strings.TrimSpace(r.PathValue("id"))
	if err := h.Service.Join(r.Context(), eventID, email); err != nil {
		var verr joins.ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(w, r, http.StatusBadRequest, verr.Error(), err, h.Env)
		case errors.Is(err, events.ErrNotFound):
			respond.Error(w, r, http.StatusNotFound, "event not found", err, h.Env)
		case errors.Is(err, joins.ErrAlreadyJoined):
			respond.Error(w, r, http.StatusBadRequest, "already joined this event", err, h.Env)
		default:
			respond.Error(w, r, http.StatusInternalServerError, "failed to join event", err, h.Env)
		}
		return
	}

	respond.JSON(w, http.StatusCreated, messageResponse{Message: "joined event successfully"})
}

// ListJoined serves GET /api/events/user/{email}/joined: the participant's
// join records with their embedded event snapshots, newest join first.
func (h *JoinsHandler) ListJoined(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		respond.Error(w, r, http.StatusInternalServerError, "internal server error", nil, h.env())
		return
	}

	email := r.PathValue("email")
	records, err := h.Service.ListByParticipant(r.Context(), email)
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "failed to load joined events", err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, toJoinRecordResponses(records))
}

func (h *JoinsHandler) env() string {
	if h == nil {
		return ""
	}
	return h.Env
}
