package appointment

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
	"github.com/jwalitptl/quickmed-api/pkg/metrics"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Book(ctx context.Context, apt *model.Appointment) error {
	args := m.Called(ctx, apt)
	if args.Error(0) == nil {
		apt.ID = 77
		apt.Status = model.AppointmentStatusScheduled
	}
	return args.Error(0)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*model.Appointment), args.Error(1)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id, userID int64, status model.AppointmentStatus) (*model.Appointment, error) {
	args := m.Called(ctx, id, userID, status)
	if a, ok := args.Get(0).(*model.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

func TestBook(t *testing.T) {
	repo := new(mockRepo)
	m := metrics.New("test")
	svc := NewService(repo, m)
	ctx := context.Background()

	repo.On("Book", ctx, mock.MatchedBy(func(a *model.Appointment) bool {
		return a.UserID == 5 && a.Time == "09:00" && a.Date == "2024-01-02"
	})).Return(nil).Once()

	apt, err := svc.Book(ctx, &model.BookingRequest{
		ClinicID: 1, ServiceID: 1, Date: "2024-01-02", Time: "9:00", UserID: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), apt.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bookings.WithLabelValues(metrics.OutcomeBooked)))
	repo.AssertExpectations(t)
}

func TestBook_Unavailable(t *testing.T) {
	repo := new(mockRepo)
	m := metrics.New("test")
	svc := NewService(repo, m)
	ctx := context.Background()

	repo.On("Book", ctx, mock.Anything).Return(repository.ErrSlotUnavailable)

	_, err := svc.Book(ctx, &model.BookingRequest{
		ClinicID: 1, ServiceID: 1, Date: "2024-01-02", Time: "09:00", UserID: 5,
	})
	assert.ErrorIs(t, err, apperrors.ErrSlotNotAvailable)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, "Slot is not available", appErr.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bookings.WithLabelValues(metrics.OutcomeUnavailable)))
}

func TestBook_RejectsBadInputBeforeStore(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)

	tests := []struct {
		name string
		req  model.BookingRequest
	}{
		{"bad date", model.BookingRequest{ClinicID: 1, ServiceID: 1, Date: "2024-13-40", Time: "09:00"}},
		{"bad time", model.BookingRequest{ClinicID: 1, ServiceID: 1, Date: "2024-01-02", Time: "24:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(context.Background(), &tt.req)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
		})
	}
	repo.AssertNotCalled(t, "Book", mock.Anything, mock.Anything)
}

func TestBook_StoreFailure(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)
	repo.On("Book", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.Book(context.Background(), &model.BookingRequest{
		ClinicID: 1, ServiceID: 1, Date: "2024-01-02", Time: "09:00",
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.StatusCode())
}

func TestUpdateStatus(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)
	ctx := context.Background()

	repo.On("UpdateStatus", ctx, int64(3), int64(5), model.AppointmentStatusCancelled).
		Return(&model.Appointment{ID: 3, Status: model.AppointmentStatusCancelled}, nil)
	repo.On("UpdateStatus", ctx, int64(3), int64(6), model.AppointmentStatusCancelled).
		Return(nil, repository.ErrNotFound)
	repo.On("UpdateStatus", ctx, int64(4), int64(5), model.AppointmentStatusScheduled).
		Return(nil, repository.ErrSlotUnavailable)

	apt, err := svc.UpdateStatus(ctx, 3, 5, model.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, apt.Status)

	_, err = svc.UpdateStatus(ctx, 3, 6, model.AppointmentStatusCancelled)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode())

	_, err = svc.UpdateStatus(ctx, 4, 5, model.AppointmentStatusScheduled)
	assert.ErrorIs(t, err, apperrors.ErrSlotNotAvailable)

	_, err = svc.UpdateStatus(ctx, 3, 5, "postponed")
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestDelete(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)
	ctx := context.Background()

	repo.On("Delete", ctx, int64(3), int64(5)).Return(nil)
	repo.On("Delete", ctx, int64(3), int64(6)).Return(repository.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, 3, 5))

	appErr, ok := apperrors.As(svc.Delete(ctx, 3, 6))
	require.True(t, ok)
	assert.Equal(t, "Appointment not found", appErr.Message)
}

func TestListForUser(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)
	ctx := context.Background()

	want := []*model.Appointment{{ID: 2, UserID: 5}, {ID: 1, UserID: 5}}
	repo.On("ListByUser", ctx, int64(5)).Return(want, nil)

	got, err := svc.ListForUser(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
