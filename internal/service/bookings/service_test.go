package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/MCD-BookingService/internal/service/bookings/models"
	"github.com/m04kA/MCD-BookingService/pkg/ptr"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// --- fakes ---

type fakeBookingRepo struct {
	booking *domain.Booking

	cancelCalls        int
	updateStatusCalls  int
	lastStatus         domain.BookingStatus
	lastPaymentStatus  *domain.PaymentStatus
	lastReason         *string
	setPaymentStatuses []domain.PaymentStatus
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	if f.booking == nil || f.booking.Reference != reference {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if f.booking != nil && f.booking.CustomerID == customerID {
		return []*domain.Booking{f.booking}, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.booking != nil {
		return []*domain.Booking{f.booking}, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus *domain.PaymentStatus) error {
	f.updateStatusCalls++
	f.lastStatus = status
	f.lastPaymentStatus = paymentStatus
	f.booking.Status = status
	if paymentStatus != nil {
		f.booking.PaymentStatus = *paymentStatus
	}
	return nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus *domain.PaymentStatus, reason *string) error {
	f.cancelCalls++
	f.lastStatus = status
	f.lastPaymentStatus = paymentStatus
	f.lastReason = reason
	f.booking.Status = status
	if paymentStatus != nil {
		f.booking.PaymentStatus = *paymentStatus
	}
	return nil
}

func (f *fakeBookingRepo) SetPaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error {
	f.setPaymentStatuses = append(f.setPaymentStatuses, paymentStatus)
	f.booking.PaymentStatus = paymentStatus
	return nil
}

func (f *fakeBookingRepo) SetAdminNotes(ctx context.Context, id int64, notes *string) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.booking.AdminNotes = notes
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

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
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

// --- fixtures ---

func testBooking(status domain.BookingStatus, payment domain.PaymentStatus) *domain.Booking {
	start, _ := types.NewTimeStringFromString("10:00")
	return &domain.Booking{
		ID:              42,
		Reference:       "MCD-7K3Q9Z",
		CustomerID:      7,
		CustomerName:    "Alice Smith",
		VehicleMake:     "Audi",
		VehicleModel:    "A4",
		VehicleSize:     domain.SizeM,
		AddressLine:     "1 High Street",
		Postcode:        "SW1A 1AA",
		Services:        domain.ServiceLines{{Name: "Full valet", BasePrice: 60, Quantity: 1, DurationMinutes: 120}},
		DurationMinutes: 120,
		ScheduledDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		ReservationID:   501,
		Status:          status,
		PaymentStatus:   payment,
		TotalPrice:      66,
	}
}

func newTestService(b *domain.Booking) (*Service, *fakeBookingRepo, *fakeScheduleRepo, *fakePublisher, *fakeMetrics) {
	repo := &fakeBookingRepo{booking: b}
	schedule := &fakeScheduleRepo{}
	publisher := &fakePublisher{}
	m := &fakeMetrics{}
	svc := NewService(repo, schedule, fakeTxManager{}, publisher, m, nopLogger{})
	return svc, repo, schedule, publisher, m
}

// --- tests ---

func TestGetByID_AccessControl(t *testing.T) {
	svc, _, _, _, _ := newTestService(testBooking(domain.StatusPending, domain.PaymentPending))

	// Владелец видит своё бронирование
	resp, err := svc.GetByID(context.Background(), 42, 7, false)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)

	// Чужой клиент — отказ
	_, err = svc.GetByID(context.Background(), 42, 8, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Оператор видит любое
	_, err = svc.GetByID(context.Background(), 42, 999, true)
	assert.NoError(t, err)

	// Несуществующее бронирование
	_, err = svc.GetByID(context.Background(), 77, 7, false)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTransition_ConfirmSetsPaymentPaid(t *testing.T) {
	svc, repo, schedule, publisher, m := newTestService(testBooking(domain.StatusPending, domain.PaymentAwaiting))

	resp, err := svc.Transition(context.Background(), 42, &models.TransitionRequest{AdminID: 1, Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, 1, repo.updateStatusCalls)
	assert.Empty(t, schedule.releaseCalls, "confirmation must not release the slot")
	assert.Equal(t, []string{"booking.confirmed"}, publisher.published)
	assert.Equal(t, []string{"pending->confirmed"}, m.transitions)
}

func TestTransition_UnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newTestService(testBooking(domain.StatusPending, domain.PaymentPending))

	_, err := svc.Transition(context.Background(), 42, &models.TransitionRequest{AdminID: 1, Status: "teleported"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransition_IllegalPair(t *testing.T) {
	svc, _, schedule, publisher, _ := newTestService(testBooking(domain.StatusCompleted, domain.PaymentPaid))

	_, err := svc.Transition(context.Background(), 42, &models.TransitionRequest{AdminID: 1, Status: "in_progress"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, schedule.releaseCalls)
	assert.Empty(t, publisher.published)
}

func TestTransition_CancelFromConfirmedRequiresReason(t *testing.T) {
	svc, _, _, _, _ := newTestService(testBooking(domain.StatusConfirmed, domain.PaymentPaid))

	_, err := svc.Transition(context.Background(), 42, &models.TransitionRequest{AdminID: 1, Status: "cancelled"})
	assert.ErrorIs(t, err, ErrReasonRequired)

	_, err = svc.Transition(context.Background(), 42, &models.TransitionRequest{
		AdminID: 1, Status: "cancelled", Reason: ptr.Ptr(""),
	})
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestTransition_CancelPaidBookingRefunds(t *testing.T) {
	svc, repo, schedule, publisher, _ := newTestService(testBooking(domain.StatusConfirmed, domain.PaymentPaid))

	resp, err := svc.Transition(context.Background(), 42, &models.TransitionRequest{
		AdminID: 1, Status: "cancelled", Reason: ptr.Ptr("customer asked to cancel"),
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "refunded", resp.PaymentStatus)
	assert.Equal(t, 1, repo.cancelCalls)
	assert.Equal(t, []int64{501}, schedule.releaseCalls)
	assert.Equal(t, []string{"booking.cancelled"}, publisher.published)
}

func TestTransition_NoShowReleasesSlot(t *testing.T) {
	svc, _, schedule, publisher, _ := newTestService(testBooking(domain.StatusInProgress, domain.PaymentPaid))

	resp, err := svc.Transition(context.Background(), 42, &models.TransitionRequest{AdminID: 1, Status: "no_show"})
	require.NoError(t, err)

	assert.Equal(t, "no_show", resp.Status)
	assert.Equal(t, "refunded", resp.PaymentStatus)
	assert.Equal(t, []int64{501}, schedule.releaseCalls)
	assert.Equal(t, []string{"booking.no_show"}, publisher.published)
}

func TestTransition_CompleteKeepsSlotOccupied(t *testing.T) {
	svc, _, schedule, publisher, _ := newTestService(testBooking(domain.StatusInProgress, domain.PaymentPaid))

	resp, err := svc.Transition(context.Background(), 42, &models.TransitionRequest{AdminID: 1, Status: "completed"})
	require.NoError(t, err)

	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "paid", resp.PaymentStatus, "completion must not touch payment status")
	assert.Empty(t, schedule.releaseCalls, "completed bookings keep historical slot occupancy")
	assert.Equal(t, []string{"booking.completed"}, publisher.published)
}

func TestTransition_InProgressEmitsStartedEvent(t *testing.T) {
	svc, _, _, publisher, _ := newTestService(testBooking(domain.StatusConfirmed, domain.PaymentPaid))

	_, err := svc.Transition(context.Background(), 42, &models.TransitionRequest{AdminID: 1, Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, []string{"booking.started"}, publisher.published)
}

func TestCancel_OwnerOnly(t *testing.T) {
	svc, _, _, _, _ := newTestService(testBooking(domain.StatusPending, domain.PaymentPending))

	_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{CustomerID: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_PendingWithoutReason(t *testing.T) {
	svc, repo, schedule, _, _ := newTestService(testBooking(domain.StatusPending, domain.PaymentPending))

	resp, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{CustomerID: 7})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus, "unpaid cancellation must not refund")
	assert.Equal(t, 1, repo.cancelCalls)
	assert.Equal(t, []int64{501}, schedule.releaseCalls)
}

func TestCancel_RepeatedCancellationIsNoop(t *testing.T) {
	svc, repo, schedule, publisher, m := newTestService(testBooking(domain.StatusPending, domain.PaymentPending))

	_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{CustomerID: 7})
	require.NoError(t, err)

	resp, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{CustomerID: 7})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, 1, repo.cancelCalls, "second cancel must not hit the repository")
	assert.Len(t, schedule.releaseCalls, 1, "slot is released exactly once")
	assert.Len(t, publisher.published, 1)
	assert.Len(t, m.transitions, 1)
}

func TestMarkAsPaid_FromPendingAndPaymentFailed(t *testing.T) {
	svc, _, _, _, _ := newTestService(testBooking(domain.StatusPending, domain.PaymentAwaiting))

	resp, err := svc.MarkAsPaid(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "paid", resp.PaymentStatus)

	// Повторная попытка оплаты после отклоненного платежа
	svc2, _, _, _, _ := newTestService(testBooking(domain.StatusPaymentFailed, domain.PaymentFailed))
	resp, err = svc2.MarkAsPaid(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "paid", resp.PaymentStatus)
}

func TestMarkAsPaid_ConfirmedBookingRejected(t *testing.T) {
	svc, _, _, _, _ := newTestService(testBooking(domain.StatusConfirmed, domain.PaymentPaid))

	_, err := svc.MarkAsPaid(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRequestPayment(t *testing.T) {
	svc, repo, _, _, _ := newTestService(testBooking(domain.StatusPending, domain.PaymentPending))

	resp, err := svc.RequestPayment(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "awaiting_payment", resp.PaymentStatus)
	assert.Equal(t, []domain.PaymentStatus{domain.PaymentAwaiting}, repo.setPaymentStatuses)

	// Подтвержденное бронирование уже оплачено
	svc2, _, _, _, _ := newTestService(testBooking(domain.StatusConfirmed, domain.PaymentPaid))
	_, err = svc2.RequestPayment(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInvalidPaymentState)
}

func TestListBookings_InvalidStatusFilter(t *testing.T) {
	svc, _, _, _, _ := newTestService(testBooking(domain.StatusPending, domain.PaymentPending))

	_, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("warp")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
