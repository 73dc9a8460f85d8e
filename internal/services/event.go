package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"devevent/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	imageStore     domain.ImageStore
	imageFolder    string
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository,
	imageStore domain.ImageStore,
	imageFolder string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		imageStore:     imageStore,
		imageFolder:    imageFolder,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) GetBySlug(ctx context.Context, rawSlug string) (*domain.Event, error) {
	if strings.TrimSpace(rawSlug) == "" {
		return nil, fmt.Errorf("%w: slug is required and must be a non-empty string", domain.ErrInvalidArgument)
	}
	slug := domain.NormalizeSlug(rawSlug)

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("%w: No event found with slug: %s", domain.ErrNotFound, slug)
		case errors.Is(err, domain.ErrStoreUnavailable):
			return nil, err
		}
		return nil, fmt.Errorf("%w: get event %q: %w", domain.ErrInternal, slug, err)
	}
	return event, nil
}

func (s *eventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list events: %w", domain.ErrInternal, err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// Create uploads the image, then persists the event with the returned URL.
// The work is detached from the caller's cancellation and bounded only by the service timeout.
// A persistence failure leaves the uploaded image in place.
func (s *eventService) Create(ctx context.Context, fields map[string]string, image []byte) (*domain.Event, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is required", domain.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.contextTimeout)
	defer cancel()

	url, err := s.imageStore.Upload(ctx, image, domain.UploadOptions{Folder: s.imageFolder})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	attrs := make(map[string]string, len(fields))
	for k, v := range fields {
		if domain.IsReservedField(k) {
			continue
		}
		attrs[k] = v
	}
	now := s.now()
	event := domain.NewEvent(fields[domain.FieldSlug], url, attrs, now, now)

	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event not persisted, uploaded image left orphaned", "image", url, "slug", event.Slug, "err", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
	}
	return event, nil
}
