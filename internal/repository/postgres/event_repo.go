package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"

	"devevent/internal/database"
	"devevent/internal/domain"
)

// Postgres error codes used for classification.
const (
	pqUniqueViolation       = "23505"
	pqCheckViolation        = "23514"
	pqConnectionException   = "08"
	pqInsufficientResources = "53"
)

// eventRow is the storage shape of an event; attributes live in a JSONB column.
type eventRow struct {
	ID         string    `db:"id"`
	Slug       string    `db:"slug"`
	Image      string    `db:"image"`
	Attributes []byte    `db:"attributes"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r eventRow) toDomain() (*domain.Event, error) {
	attrs := map[string]string{}
	if len(r.Attributes) > 0 {
		if err := json.Unmarshal(r.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("decode attributes of event %s: %w", r.ID, err)
		}
	}
	return &domain.Event{
		ID:         r.ID,
		Slug:       r.Slug,
		Image:      r.Image,
		Attributes: attrs,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

type eventRepository struct {
	db database.Provider
}

func NewEventRepository(db database.Provider) domain.EventRepository {
	return &eventRepository{
		db: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	db, err := r.db.DB(ctx)
	if err != nil {
		return err
	}
	attrs := e.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}
	query := `
		INSERT INTO events (slug, image, attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := db.QueryRowxContext(ctx, query, e.Slug, e.Image, raw, e.CreatedAt, e.UpdatedAt).Scan(&e.ID); err != nil {
		return classify(err)
	}
	return nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, slug, image, attributes, created_at, updated_at
		FROM events
		WHERE slug = $1
	`
	var row eventRow
	if err := db.GetContext(ctx, &row, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classify(err)
	}
	return row.toDomain()
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, slug, image, attributes, created_at, updated_at
		FROM events
		ORDER BY created_at DESC
	`
	var rows []eventRow
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, classify(err)
	}
	events := make([]*domain.Event, 0, len(rows))
	for _, row := range rows {
		e, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// classify maps driver errors onto domain sentinels; anything unrecognised is returned as is.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pqUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrDuplicateSlug, pqErr.Message)
		case pqErr.Code == pqCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, pqErr.Message)
		case pqErr.Code.Class() == pqConnectionException, pqErr.Code.Class() == pqInsufficientResources:
			return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return err
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return err
}
