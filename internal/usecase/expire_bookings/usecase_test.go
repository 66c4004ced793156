package expire_bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MCD-BookingService/internal/domain"
)

type fakeBookingRepo struct {
	expired   []*domain.Booking
	listErr   error
	cancelErr error

	cancelled []int64
	reasons   []*string
}

func (f *fakeBookingRepo) ListExpiredPayment(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.expired, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus *domain.PaymentStatus, reason *string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	f.reasons = append(f.reasons, reason)
	return nil
}

type fakeScheduleRepo struct {
	releaseCalls []int64
}

func (f *fakeScheduleRepo) Release(ctx context.Context, reservationID int64) error {
	f.releaseCalls = append(f.releaseCalls, reservationID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	published []string
}

func (f *fakePublisher) Publish(routingKey string, payload any) error {
	f.published = append(f.published, routingKey)
	return nil
}

type fakeMetrics struct {
	transitions []string
}

func (f *fakeMetrics) IncBookingTransition(from, to string) {
	f.transitions = append(f.transitions, from+"->"+to)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func expiredBooking(id, reservationID int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		Reference:     "MCD-7K3Q9Z",
		CustomerID:    7,
		ReservationID: reservationID,
		Status:        status,
	}
}

func newUseCaseWithFakes(repo *fakeBookingRepo) (*UseCase, *fakeScheduleRepo, *fakePublisher, *fakeMetrics) {
	schedule := &fakeScheduleRepo{}
	publisher := &fakePublisher{}
	m := &fakeMetrics{}
	uc := NewUseCase(repo, schedule, fakeTxManager{}, publisher, m, nopLogger{})
	return uc, schedule, publisher, m
}

func TestExecute_CancelsAndReleasesEachExpiredBooking(t *testing.T) {
	repo := &fakeBookingRepo{expired: []*domain.Booking{
		expiredBooking(1, 101, domain.StatusPending),
		expiredBooking(2, 102, domain.StatusPaymentFailed),
	}}
	uc, schedule, publisher, m := newUseCaseWithFakes(repo)

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, []int64{1, 2}, repo.cancelled)
	assert.Equal(t, []int64{101, 102}, schedule.releaseCalls)

	// Причина отмены фиксируется на каждом бронировании
	for _, reason := range repo.reasons {
		require.NotNil(t, reason)
		assert.Equal(t, "payment deadline expired", *reason)
	}

	assert.Equal(t, []string{"pending->cancelled", "payment_failed->cancelled"}, m.transitions)
	assert.Equal(t, []string{"booking.expired", "booking.expired"}, publisher.published)
}

func TestExecute_NothingExpired(t *testing.T) {
	uc, schedule, publisher, m := newUseCaseWithFakes(&fakeBookingRepo{})

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	assert.Empty(t, schedule.releaseCalls)
	assert.Empty(t, publisher.published)
	assert.Empty(t, m.transitions)
}

func TestExecute_CancelFailureAbortsSweep(t *testing.T) {
	repo := &fakeBookingRepo{
		expired:   []*domain.Booking{expiredBooking(1, 101, domain.StatusPending)},
		cancelErr: errors.New("deadlock detected"),
	}
	uc, _, publisher, m := newUseCaseWithFakes(repo)

	count, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, count)

	// События и метрики не публикуются при откате транзакции
	assert.Empty(t, publisher.published)
	assert.Empty(t, m.transitions)
}

func TestExecute_ListFailure(t *testing.T) {
	repo := &fakeBookingRepo{listErr: errors.New("connection refused")}
	uc, _, _, _ := newUseCaseWithFakes(repo)

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
