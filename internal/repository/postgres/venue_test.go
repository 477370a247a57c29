package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"venuebook-backend/internal/domain"
)

func TestVenueRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)
	ctx := context.Background()

	t.Run("insert returns the new id", func(t *testing.T) {
		v := &domain.Venue{
			RegistrationID: 1,
			OwnerID:        2,
			Name:           "Blue Note Hall",
			Phone:          "555-0100",
			Location:       domain.Location{Address: "1 Main St", City: "Kathmandu", Province: "Bagmati"},
			Visible:        true,
		}
		mock.ExpectQuery("INSERT INTO venues").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(40))

		err := repo.Upsert(ctx, v)
		assert.NoError(t, err)
		assert.Equal(t, int32(40), v.ID)
	})

	t.Run("conflict path returns the existing id", func(t *testing.T) {
		v := &domain.Venue{RegistrationID: 1, OwnerID: 2, Name: "Renamed Hall", Visible: true}
		mock.ExpectQuery("INSERT INTO venues").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(40))

		err := repo.Upsert(ctx, v)
		assert.NoError(t, err)
		assert.Equal(t, int32(40), v.ID)
	})
}

func TestVenueRepository_SetVisibility(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)
	ctx := context.Background()

	t.Run("hides an existing venue", func(t *testing.T) {
		mock.ExpectExec("UPDATE venues SET visible").
			WithArgs(false, sqlmock.AnyArg(), int32(40)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetVisibility(ctx, 40, false))
	})

	t.Run("unknown venue is not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE venues SET visible").
			WithArgs(false, sqlmock.AnyArg(), int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetVisibility(ctx, 99, false)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}
