package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// imageField is the multipart file part holding the event image.
const imageField = "image"

// detailCacheControl lets clients and CDNs cache a single event for an hour.
const detailCacheControl = "public, max-age=3600"

// CreateEventRequest is the parsed multipart body for POST /events.
type CreateEventRequest struct {
	Fields map[string]string
	Image  []byte
}

// Validate implements Validator. slug is the only required attribute; the image is checked by the service.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Fields[domain.FieldSlug]) == "" {
		errs = append(errs, "slug is required")
	}
	return errs
}

// EventResponse is the success envelope for single-event endpoints.
type EventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// EventListResponse is the success envelope for GET /events.
type EventListResponse struct {
	Message string          `json:"message"`
	Events  []*domain.Event `json:"events"`
}

type EventController struct {
	Logger         *slog.Logger
	Service        domain.EventService
	MaxUploadBytes int64
}

func NewEventController(logger *slog.Logger, svc domain.EventService, maxUploadBytes int64) *EventController {
	return &EventController{
		Logger:         logger,
		Service:        svc,
		MaxUploadBytes: maxUploadBytes,
	}
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Description Returns a single event. The slug is trimmed and lower-cased before lookup.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.APIResponse "invalid slug"
// @Failure 404 {object} helpers.APIResponse "event not found"
// @Failure 500 {object} helpers.APIResponse "database connection error or internal error"
// @Router /events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid slug parameter", "Slug is required and must be a non-empty string")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, "Event not found", strings.TrimPrefix(err.Error(), domain.ErrNotFound.Error()+": "))
		case errors.Is(err, domain.ErrStoreUnavailable):
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Database connection error", "Failed to connect to database")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch event", err.Error())
		}
		return
	}
	w.Header().Set("Cache-Control", detailCacheControl)
	helpers.WriteJSON(w, http.StatusOK, helpers.APIResponse{Message: "Event fetched successfully", Event: event})
}

// ListEvents godoc
// @Summary List events
// @Description Returns all events, newest first. An empty list is not an error.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListResponse
// @Failure 500 {object} helpers.APIResponse "internal error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListAll(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Event fetching failed", err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.APIResponse{Message: "Events fetched successfully", Events: events})
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Multipart form: any scalar fields plus an image file part. The image is uploaded first and its URL stored in the image field; id, image and timestamps are server-generated.
// @Tags events
// @Accept mpfd
// @Produce json
// @Param slug formData string true "Event slug (normalized to lower case)"
// @Param image formData file true "Event image"
// @Success 201 {object} controllers.EventResponse
// @Failure 400 {object} helpers.APIResponse "malformed body, missing or blank slug, missing image"
// @Failure 409 {object} helpers.APIResponse "slug already exists"
// @Failure 413 {object} helpers.APIResponse "body too large"
// @Failure 500 {object} helpers.APIResponse "upload or persistence failure"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	form, ok := helpers.ParseMultipart(w, r, c.MaxUploadBytes, imageField)
	if !ok {
		return
	}
	req := CreateEventRequest{Fields: form.Fields, Image: form.File}
	if !helpers.Validate(w, req) {
		return
	}

	event, err := c.Service.Create(r.Context(), req.Fields, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateSlug):
			helpers.WriteJSONError(w, http.StatusConflict, "Event creation failed", err.Error())
		case errors.Is(err, domain.ErrPersistenceFailed) && errors.Is(err, domain.ErrInvalidArgument):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Event creation failed", err.Error())
		case errors.Is(err, domain.ErrInvalidArgument):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Image file is required", err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Event creation failed", err.Error())
		}
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, helpers.APIResponse{Message: "Event created successfully", Event: event})
}

// HealthCheck reports that the process is serving requests.
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, helpers.APIResponse{Message: "ok"})
}
