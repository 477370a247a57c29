package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"venuebook-backend/internal/domain"
)

func TestNotificationRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	n := &domain.Notification{
		UserID:  2,
		Type:    domain.NotifSectionRejected,
		Title:   "Section rejected",
		Message: "Your phone section has been rejected: unreachable",
		Data:    map[string]string{"registration_id": "1", "section": "phone"},
	}
	mock.ExpectQuery("INSERT INTO notifications").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err := repo.Create(ctx, n)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), n.ID)
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("only the owner's rows match", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read").
			WithArgs(int32(7), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkAsRead(ctx, 7, 2))
	})

	t.Run("someone else's notification is not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read").
			WithArgs(int32(7), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkAsRead(ctx, 7, 3)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestNotificationRepository_DeleteReadBefore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	cutoff := time.Now().AddDate(0, 0, -90)
	mock.ExpectExec("DELETE FROM notifications").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	deleted, err := repo.DeleteReadBefore(ctx, cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
}
