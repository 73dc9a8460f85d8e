package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Reserved attribute keys. They are owned by the Event itself and never taken from caller input.
const (
	FieldID        = "id"
	FieldSlug      = "slug"
	FieldImage     = "image"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Event represents one listed event.
// Attributes holds the free-form descriptive fields (title, description, date, ...) supplied at creation.
// swagger:model Event
type Event struct {
	ID         string            `json:"id"`
	Slug       string            `json:"slug"`
	Image      string            `json:"image"`
	Attributes map[string]string `json:"-"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewEvent returns a new Event with a normalized slug. ID is typically set by the repository on create.
func NewEvent(slug, image string, attributes map[string]string, createdAt, updatedAt time.Time) *Event {
	if attributes == nil {
		attributes = map[string]string{}
	}
	return &Event{
		Slug:       NormalizeSlug(slug),
		Image:      image,
		Attributes: attributes,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// NormalizeSlug trims surrounding whitespace and lower-cases s.
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsReservedField reports whether key is owned by Event and must not come from caller attributes.
func IsReservedField(key string) bool {
	switch key {
	case FieldID, FieldSlug, FieldImage, FieldCreatedAt, FieldUpdatedAt:
		return true
	}
	return false
}

// MarshalJSON flattens Attributes into the event object. Fixed fields win on key collision.
func (e Event) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Attributes)+5)
	for k, v := range e.Attributes {
		out[k] = v
	}
	out[FieldID] = e.ID
	out[FieldSlug] = e.Slug
	out[FieldImage] = e.Image
	out[FieldCreatedAt] = e.CreatedAt
	out[FieldUpdatedAt] = e.UpdatedAt
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON: unknown keys become Attributes.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Event{Attributes: map[string]string{}}
	for k, v := range raw {
		var err error
		switch k {
		case FieldID:
			err = json.Unmarshal(v, &e.ID)
		case FieldSlug:
			err = json.Unmarshal(v, &e.Slug)
		case FieldImage:
			err = json.Unmarshal(v, &e.Image)
		case FieldCreatedAt:
			err = json.Unmarshal(v, &e.CreatedAt)
		case FieldUpdatedAt:
			err = json.Unmarshal(v, &e.UpdatedAt)
		default:
			var s string
			if json.Unmarshal(v, &s) == nil {
				e.Attributes[k] = s
			} else {
				e.Attributes[k] = string(v)
			}
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", k, err)
		}
	}
	return nil
}

// UploadOptions configures a single image upload.
type UploadOptions struct {
	// Folder is the destination prefix inside the image store.
	Folder string
}

// ImageStore hosts uploaded image bytes and returns a publicly accessible URL.
// Implementations make a single attempt; failures are returned as errors.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, opts UploadOptions) (url string, err error)
}

// EventRepository defines the interface for event storage.
// GetBySlug expects an already normalized slug and returns ErrNotFound when nothing matches.
// ListAll returns events newest first.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
}

// EventService defines the business logic for events.
type EventService interface {
	GetBySlug(ctx context.Context, rawSlug string) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	Create(ctx context.Context, fields map[string]string, image []byte) (*Event, error)
}
