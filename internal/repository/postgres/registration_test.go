package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/repository"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestRegistrationRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepository(db)
	ctx := context.Background()

	reg := domain.NewRegistration(2)
	reg.VenueName = "Blue Note Hall"

	mock.ExpectQuery("INSERT INTO registrations").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := repo.Create(ctx, reg)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), reg.ID)
	assert.Equal(t, int32(1), reg.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("bumps the version on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepository(db)

		reg := domain.NewRegistration(2)
		reg.ID = 1
		reg.Version = 3

		mock.ExpectExec("UPDATE registrations").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, reg)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), reg.Version)
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepository(db)

		reg := domain.NewRegistration(2)
		reg.ID = 1
		reg.Version = 3

		mock.ExpectExec("UPDATE registrations").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, reg)
		assert.True(t, domain.IsKind(err, domain.KindConflict))
		assert.Equal(t, int32(3), reg.Version)
	})
}

func TestRegistrationRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepository(db)
	ctx := context.Background()

	t.Run("round-trips sections JSON", func(t *testing.T) {
		reg := domain.NewRegistration(2)
		if err := reg.SetSection(domain.SectionPhone, domain.PendingSection()); err != nil {
			t.Fatal(err)
		}
		sections, err := json.Marshal(reg.Sections)
		if err != nil {
			t.Fatal(err)
		}

		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"id", "owner_id", "venue_name", "phone", "location", "profile_image",
			"venue_images", "citizenship_front", "citizenship_back", "business_registration",
			"pan_card", "sections", "registration_status", "submitted_at", "approved_at",
			"rejected_at", "venue_id", "version", "created_on", "updated_on",
		}).AddRow(
			1, 2, "Blue Note Hall", "555-0100", []byte(`{"address":"1 Main St","city":"Kathmandu","province":"Bagmati"}`), nil,
			nil, nil, nil, nil,
			nil, sections, "DRAFT", nil, nil,
			nil, nil, 1, now, now,
		)
		mock.ExpectQuery("SELECT .+ FROM registrations WHERE id").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		got, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Blue Note Hall", got.VenueName)
		assert.Equal(t, "Kathmandu", got.Location.City)
		assert.Equal(t, domain.StatusDraft, got.Status)

		st, err := got.Section(domain.SectionPhone)
		assert.NoError(t, err)
		assert.Equal(t, domain.SectionPending, st.Status)
	})

	t.Run("missing row is not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM registrations WHERE id").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestRegistrationRepository_List_StatusFilterKeepsDraftsOut(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepository(db)
	ctx := context.Background()

	// Filtering by status narrows the queue; it never re-admits drafts.
	guard := `registration_status <> 'DRAFT' AND r\.registration_status = \$1`
	mock.ExpectQuery(`SELECT count\(\*\) FROM registrations r JOIN users u .+` + guard).
		WithArgs(string(domain.StatusPending)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM registrations r JOIN users u .+` + guard).
		WithArgs(string(domain.StatusPending), int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	regs, total, err := repo.List(ctx, repository.RegistrationFilter{Status: domain.StatusPending})
	assert.NoError(t, err)
	assert.Empty(t, regs)
	assert.Equal(t, int32(0), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
