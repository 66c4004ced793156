package create_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/reschedule"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	booking      *domain.Booking
	pendingCalls []bool
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) SetPendingReschedule(ctx context.Context, id int64, pending bool) error {
	f.pendingCalls = append(f.pendingCalls, pending)
	f.booking.HasPendingReschedule = pending
	return nil
}

type fakeRescheduleRepo struct {
	createErr   error
	createCalls int
}

func (f *fakeRescheduleRepo) Create(ctx context.Context, request *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *request
	created.ID = 11
	created.Status = domain.RescheduleStatusPending
	created.CreatedAt = time.Now()
	return &created, nil
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

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         42,
		Reference:  "MCD-7K3Q9Z",
		CustomerID: 7,
		Status:     status,
	}
}

func testRequest() *Request {
	start, _ := types.NewTimeStringFromString("14:00")
	return &Request{
		BookingID:  42,
		CustomerID: 7,
		Date:       time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		StartTime:  start,
		Reason:     "meeting moved to this slot",
	}
}

type testEnv struct {
	uc          *UseCase
	bookings    *fakeBookingRepo
	reschedules *fakeRescheduleRepo
	publisher   *fakePublisher
}

func newTestEnv(b *domain.Booking) *testEnv {
	env := &testEnv{
		bookings:    &fakeBookingRepo{booking: b},
		reschedules: &fakeRescheduleRepo{},
		publisher:   &fakePublisher{},
	}
	env.uc = NewUseCase(env.bookings, env.reschedules, fakeTxManager{}, env.publisher, nopLogger{})
	env.uc.timeProvider = fixedTimeProvider{now: testNow}
	return env
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv(testBooking(domain.StatusConfirmed))

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, int64(42), resp.BookingID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, []bool{true}, env.bookings.pendingCalls)
	assert.Equal(t, []string{"reschedule.requested"}, env.publisher.published)
}

func TestExecute_BookingNotFound(t *testing.T) {
	env := newTestEnv(nil)

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	env := newTestEnv(testBooking(domain.StatusConfirmed))
	req := testRequest()
	req.CustomerID = 8

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, env.reschedules.createCalls)
}

func TestExecute_TerminalStatusesNotReschedulable(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
		domain.StatusDeclined,
	} {
		t.Run(string(status), func(t *testing.T) {
			env := newTestEnv(testBooking(status))

			_, err := env.uc.Execute(context.Background(), testRequest())
			assert.ErrorIs(t, err, ErrBookingNotReschedulable)
		})
	}
}

func TestExecute_PendingAlreadyExists(t *testing.T) {
	booking := testBooking(domain.StatusConfirmed)
	booking.HasPendingReschedule = true
	env := newTestEnv(booking)

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrPendingExists)
	assert.Equal(t, 0, env.reschedules.createCalls)
}

func TestExecute_PendingRaceMapsRepositoryError(t *testing.T) {
	// Конкурентная вставка: предварительная проверка прошла, но частичный
	// уникальный индекс отклонил второй pending запрос
	env := newTestEnv(testBooking(domain.StatusConfirmed))
	env.reschedules.createErr = rescheduleRepo.ErrPendingExists

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrPendingExists)
	assert.Empty(t, env.bookings.pendingCalls)
}

func TestExecute_RequestedDateInPast(t *testing.T) {
	env := newTestEnv(testBooking(domain.StatusConfirmed))
	req := testRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"без причины", func(req *Request) { req.Reason = "" }},
		{"невыровненное время", func(req *Request) {
			req.StartTime, _ = types.NewTimeStringFromString("14:10")
		}},
		{"нулевая дата", func(req *Request) { req.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(testBooking(domain.StatusConfirmed))
			req := testRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
