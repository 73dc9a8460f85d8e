package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"devevent/internal/database"
	"devevent/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventColumns = []string{"id", "slug", "image", "attributes", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (domain.EventRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEventRepository(database.NewStatic(sqlx.NewDb(db, "postgres"))), mock
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			event: &domain.Event{
				Slug:       "go-meetup",
				Image:      "https://img/DevEvent/a.png",
				Attributes: map[string]string{"title": "Go Meetup"},
				CreatedAt:  created,
				UpdatedAt:  created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(slug, image, attributes, created_at, updated_at\)`).
					WithArgs("go-meetup", "https://img/DevEvent/a.png", []byte(`{"title":"Go Meetup"}`), created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name:  "nil attributes stored as empty object",
			event: &domain.Event{Slug: "x", Image: "u", CreatedAt: created, UpdatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("x", "u", []byte(`{}`), created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-2"))
			},
			wantID: "ev-uuid-2",
		},
		{
			name:  "duplicate slug",
			event: &domain.Event{Slug: "go-meetup", Image: "u", CreatedAt: created, UpdatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505", Message: `duplicate key value violates unique constraint "events_slug_key"`})
			},
			wantErr: domain.ErrDuplicateSlug,
		},
		{
			name:  "blank slug rejected by check constraint",
			event: &domain.Event{Slug: "", Image: "u", CreatedAt: created, UpdatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23514", Message: `new row for relation "events" violates check constraint "events_slug_not_blank"`})
			},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:  "connection lost",
			event: &domain.Event{Slug: "x", Image: "u", CreatedAt: created, UpdatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.mock(mock)

			err := repo.Create(ctx, tt.event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		slug    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			slug: "go-meetup",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, slug, image, attributes, created_at, updated_at\s+FROM events\s+WHERE slug = \$1`).
					WithArgs("go-meetup").
					WillReturnRows(sqlmock.NewRows(eventColumns).
						AddRow("ev-1", "go-meetup", "https://img/a.png", []byte(`{"title":"Go Meetup","venue":"Hall A"}`), created, created))
			},
			want: &domain.Event{
				ID:         "ev-1",
				Slug:       "go-meetup",
				Image:      "https://img/a.png",
				Attributes: map[string]string{"title": "Go Meetup", "venue": "Hall A"},
				CreatedAt:  created,
				UpdatedAt:  created,
			},
		},
		{
			name: "not found",
			slug: "missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, slug, image`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "server shutting down",
			slug: "go-meetup",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, slug, image`).
					WithArgs("go-meetup").
					WillReturnError(&pq.Error{Code: "08006", Message: "connection failure"})
			},
			wantErr: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.mock(mock)

			got, err := repo.GetBySlug(ctx, tt.slug)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_ListAll(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	t.Run("ordered newest first", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT id, slug, image, attributes, created_at, updated_at\s+FROM events\s+ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow("ev-2", "b", "u2", []byte(`{}`), t2, t2).
				AddRow("ev-1", "a", "u1", []byte(`{"title":"A"}`), t1, t1))

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ev-2", got[0].ID)
		assert.Equal(t, "ev-1", got[1].ID)
		assert.Equal(t, "A", got[1].Attributes["title"])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table returns empty slice", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT id, slug, image`).
			WillReturnRows(sqlmock.NewRows(eventColumns))

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("query error passes through", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT id, slug, image`).
			WillReturnError(errors.New("syntax error"))

		_, err := repo.ListAll(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestEventRepository_ProviderFailure(t *testing.T) {
	repo := NewEventRepository(database.NewConnector(database.Config{}))

	_, err := repo.GetBySlug(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = repo.ListAll(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	err = repo.Create(context.Background(), &domain.Event{Slug: "x"})
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
