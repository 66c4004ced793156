package list_reschedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

type fakeRescheduleRepo struct {
	requests []*domain.RescheduleRequest
}

func (f *fakeRescheduleRepo) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.RescheduleRequest, error) {
	return f.requests, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestExecute_History(t *testing.T) {
	start, _ := types.NewTimeStringFromString("14:00")
	requests := []*domain.RescheduleRequest{
		{ID: 12, BookingID: 42, RequestedTime: start, Status: domain.RescheduleStatusPending},
		{ID: 11, BookingID: 42, RequestedTime: start, Status: domain.RescheduleStatusRejected,
			RequestedDate: time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)},
	}
	uc := NewUseCase(
		&fakeBookingRepo{booking: &domain.Booking{ID: 42, CustomerID: 7}},
		&fakeRescheduleRepo{requests: requests},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.BookingID)
	require.Len(t, resp.Requests, 2)
	assert.Equal(t, "pending", resp.Requests[0].Status)
	assert.Equal(t, "rejected", resp.Requests[1].Status)
}

func TestExecute_AccessControl(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{booking: &domain.Booking{ID: 42, CustomerID: 7}},
		&fakeRescheduleRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Оператор видит историю любого бронирования
	_, err = uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 999, IsAdmin: true})
	assert.NoError(t, err)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeRescheduleRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 7})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
