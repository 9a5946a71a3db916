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
)

// EventsHandler serves the event CRUD surface. Creator identity for writes
// comes from the session claims the auth middleware validated, never from
// the request body.
type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

// eventResponse is the wire shape of a stored event. The id keeps the
// database's "_id" spelling because the browser client reads it that way.
type eventResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	EventType   string    `json:"eventType,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Location    string    `json:"location,omitempty"`
	EventDate   time.Time `json:"eventDate"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toEventResponse(event events.Event) eventResponse {
	return eventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		EventType:   event.EventType,
		Thumbnail:   event.Thumbnail,
		Location:    event.Location,
		EventDate:   event.EventDate,
		Email:       event.Email,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

func toEventResponses(items []events.Event) []eventResponse {
	out := make([]eventResponse, 0, len(items))
	for _, event := range items {
		out = append(out, toEventResponse(event))
	}
	return out
}

type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventType   string    `json:"eventType"`
	Thumbnail   string    `json:"thumbnail"`
	Location    string    `json:"location"`
	EventDate   time.Time `json:"eventDate"`
}

type updateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	EventType   *string    `json:"eventType"`
	Thumbnail   *string    `json:"thumbnail"`
	Location    *string    `json:"location"`
	EventDate   *time.Time `json:"eventDate"`
}

type createdResponse struct {
	Message string `json:"message"`
	EventID string `json:"eventId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// List serves GET /api/events: upcoming events only, soonest first,
// optionally narrowed by eventType and title search.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		respond.Error(w, r, http.StatusInternalServerError, "internal server error", nil, h.env())
		return
	}

	filters, err := events.ParseFilters(r.URL.Query())
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error(), err, h.Env)
		return
	}

	items, err := h.Service.ListUpcoming(r.Context(), filters)
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "failed to load events", err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, toEventResponses(items))
}

// Get serves GET /api/events/{id}. A malformed id is indistinguishable from
// an absent one on the wire; both come back 404.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		respond.Error(w, r, http.StatusInternalServerError, "internal server error", nil, h.env())
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	event, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "event not found", err, h.Env)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "failed to load event", err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, toEventResponse(*event))
}

// Create serves POST /api/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		respond.Error(w, r, http.StatusInternalServerError, "internal server error", nil, h.env())
		return
	}

	claims := middleware.SessionClaims(r)
	if claims == nil || claims.Email == "" {
		respond.Error(w, r, http.StatusUnauthorized, "unauthorized access", nil, h.Env)
		return
	}

	var input createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err, h.Env)
		return
	}

	id, err := h.Service.Create(r.Context(), events.CreateParams{
		Title:       input.Title,
		Description: input.Description,
		EventType:   input.EventType,
		Thumbnail:   input.Thumbnail,
		Location:    input.Location,
		EventDate:   input.EventDate,
		Email:       claims.Email,
	})
	if err != nil {
		var verr events.ValidationError
		if errors.As(err, &verr) {
			respond.Error(w, r, http.StatusBadRequest, verr.Error(), err, h.Env)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "failed to create event", err, h.Env)
		return
	}

	respond.JSON(w, http.StatusCreated, createdResponse{
		Message: "event created successfully",
		EventID: id,
	})
}

// Update serves PATCH /api/events/{id}. Absent fields stay untouched.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		respond.Error(w, r, http.StatusInternalServerError, "internal server error", nil, h.env())
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))

	var input updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err, h.Env)
		return
	}

	err := h.Service.Update(r.Context(), id, events.UpdateParams{
		Title:       input.Title,
		Description: input.Description,
		EventType:   input.EventType,
		Thumbnail:   input.Thumbnail,
		Location:    input.Location,
		EventDate:   input.EventDate,
	})
	if err != nil {
		var verr events.ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(w, r, http.StatusBadRequest, verr.Error(), err, h.Env)
		case errors.Is(err, events.ErrNotFound):
			respond.Error(w, r, http.StatusNotFound, "event not found", err, h.Env)
		default:
			respond.Error(w, r, http.StatusInternalServerError, "failed to update event", err, h.Env)
		}
		return
	}

	respond.JSON(w, http.StatusOK, messageResponse{Message: "event updated successfully"})
}

// Delete serves DELETE /api/events/{id}. Join records that embedded this
// event keep their snapshot.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		respond.Error(w, r, http.StatusInternalServerError, "internal server error", nil, h.env())
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, events.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "event not found", err, h.Env)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "failed to delete event", err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, messageResponse{Message: "event deleted successfully"})
}

// ListByCreator serves GET /api/events/user/{email}: everything the given
// creator posted, newest first, past events included.
func (h *EventsHandler) ListByCreator(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		respond.Error(w, r, http.StatusInternalServerError, "internal server error", nil, h.env())
		return
	}

	email := r.PathValue("email")
	items, err := h.Service.ListByCreator(r.Context(), email)
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "failed to load events", err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, toEventResponses(items))
}

// env survives a nil receiver so the guard clauses above can still answer.
func (h *EventsHandler) env() string {
	if h == nil {
		return ""
	}
	return h.Env
}
