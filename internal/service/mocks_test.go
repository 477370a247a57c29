package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockRegistrationRepo
type MockRegistrationRepo struct {
	mock.Mock
}

func (m *MockRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}
func (m *MockRegistrationRepo) GetByID(ctx context.Context, id int32) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}
func (m *MockRegistrationRepo) GetByOwner(ctx context.Context, ownerID int32) (*domain.Registration, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}
func (m *MockRegistrationRepo) Update(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}
func (m *MockRegistrationRepo) List(ctx context.Context, filter repository.RegistrationFilter) ([]domain.Registration, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Registration), args.Get(1).(int32), args.Error(2)
}
func (m *MockRegistrationRepo) CountByStatus(ctx context.Context) (map[domain.RegistrationStatus]int32, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.RegistrationStatus]int32), args.Error(1)
}

// MockVenueRepo
type MockVenueRepo struct {
	mock.Mock
}

func (m *MockVenueRepo) Upsert(ctx context.Context, v *domain.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVenueRepo) GetByID(ctx context.Context, id int32) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}
func (m *MockVenueRepo) ListVisible(ctx context.Context, page, pageSize int32) ([]domain.Venue, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Venue), args.Get(1).(int32), args.Error(2)
}
func (m *MockVenueRepo) SetVisibility(ctx context.Context, venueID int32, visible bool) error {
	args := m.Called(ctx, venueID, visible)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) UnreadCount(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishApproved(ctx context.Context, reg *domain.Registration) (int32, error) {
	args := m.Called(ctx, reg)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockPublisher) Unpublish(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

// MockDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) NotifyUser(ctx context.Context, userID int32, typ domain.NotificationType, title, message string, data map[string]string) {
	m.Called(ctx, userID, typ, title, message, data)
}
func (m *MockDispatcher) NotifyAdmins(ctx context.Context, typ domain.NotificationType, title, message string, data map[string]string) {
	m.Called(ctx, typ, title, message, data)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRegistrationApproved(ctx context.Context, email, name, venueName string) error {
	args := m.Called(ctx, email, name, venueName)
	return args.Error(0)
}
func (m *MockEmailService) SendRegistrationRejected(ctx context.Context, email, name, reason string) error {
	args := m.Called(ctx, email, name, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingReviewReminder(ctx context.Context, email, name string, pendingCount int32) error {
	args := m.Called(ctx, email, name, pendingCount)
	return args.Error(0)
}

// MockPushSender
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	args := m.Called(ctx, deviceToken, title, body, data)
	return args.Error(0)
}
