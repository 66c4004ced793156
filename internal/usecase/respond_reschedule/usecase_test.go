package respond_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/reschedule"
	scheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/MCD-BookingService/pkg/ptr"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking

	rebindCalls       int
	lastReservationID int64
	pendingCalls      []bool
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) RebindSlot(ctx context.Context, id int64, date time.Time, start types.TimeString, reservationID int64) error {
	f.rebindCalls++
	f.lastReservationID = reservationID
	f.booking.ScheduledDate = date
	f.booking.StartTime = start
	f.booking.ReservationID = reservationID
	return nil
}

func (f *fakeBookingRepo) SetPendingReschedule(ctx context.Context, id int64, pending bool) error {
	f.pendingCalls = append(f.pendingCalls, pending)
	f.booking.HasPendingReschedule = pending
	return nil
}

type fakeRescheduleRepo struct {
	request     *domain.RescheduleRequest
	respondedAt time.Time

	resolved     []domain.RescheduleStatus
	lastResponse *string
}

func (f *fakeRescheduleRepo) GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error) {
	if f.request == nil || f.request.ID != id {
		return nil, rescheduleRepo.ErrRequestNotFound
	}
	copied := *f.request
	return &copied, nil
}

func (f *fakeRescheduleRepo) Resolve(ctx context.Context, id int64, status domain.RescheduleStatus, adminResponse *string) (time.Time, error) {
	f.resolved = append(f.resolved, status)
	f.lastResponse = adminResponse
	f.request.Status = status
	return f.respondedAt, nil
}

type fakeScheduleRepo struct {
	reserveErr   error
	reserveCalls int
	lastUnits    int
	releaseCalls []int64
}

func (f *fakeScheduleRepo) ReserveWindow(ctx context.Context, date time.Time, start types.TimeString, units int) (*domain.SlotReservation, error) {
	f.reserveCalls++
	f.lastUnits = units
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	return &domain.SlotReservation{ID: 777, SlotDate: date, StartTime: start, Units: units}, nil
}

func (f *fakeScheduleRepo) Release(ctx context.Context, reservationID int64) error {
	f.releaseCalls = append(f.releaseCalls, reservationID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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
	decisions    []string
	reservations []string
}

func (f *fakeMetrics) IncRescheduleDecision(decision string) { f.decisions = append(f.decisions, decision) }
func (f *fakeMetrics) IncSlotReservation(result string)      { f.reservations = append(f.reservations, result) }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func pendingRequest() *domain.RescheduleRequest {
	start, _ := types.NewTimeStringFromString("14:00")
	return &domain.RescheduleRequest{
		ID:            11,
		BookingID:     42,
		RequestedDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		RequestedTime: start,
		Reason:        "meeting moved",
		Status:        domain.RescheduleStatusPending,
	}
}

func testBooking() *domain.Booking {
	start, _ := types.NewTimeStringFromString("10:00")
	return &domain.Booking{
		ID:                   42,
		Reference:            "MCD-7K3Q9Z",
		CustomerID:           7,
		DurationMinutes:      90,
		ScheduledDate:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:            start,
		ReservationID:        501,
		Status:               domain.StatusConfirmed,
		HasPendingReschedule: true,
	}
}

type testEnv struct {
	uc          *UseCase
	bookings    *fakeBookingRepo
	reschedules *fakeRescheduleRepo
	schedule    *fakeScheduleRepo
	publisher   *fakePublisher
	metrics     *fakeMetrics
}

func newTestEnv(request *domain.RescheduleRequest, booking *domain.Booking) *testEnv {
	env := &testEnv{
		bookings: &fakeBookingRepo{booking: booking},
		reschedules: &fakeRescheduleRepo{
			request:     request,
			respondedAt: time.Date(2026, 3, 12, 11, 30, 0, 0, time.UTC),
		},
		schedule:  &fakeScheduleRepo{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	env.uc = NewUseCase(env.bookings, env.reschedules, env.schedule, fakeTxManager{}, env.publisher, env.metrics, nopLogger{})
	return env
}

func TestExecute_ApproveRebindsBooking(t *testing.T) {
	env := newTestEnv(pendingRequest(), testBooking())

	resp, err := env.uc.Execute(context.Background(), &Request{
		RequestID: 11, AdminID: 1, Decision: DecisionApproved, AdminResponse: ptr.Ptr("see you then"),
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)

	// Момент решения берётся из записанной строки, а не из часов процесса
	require.NotNil(t, resp.RespondedAt)
	assert.Equal(t, env.reschedules.respondedAt, *resp.RespondedAt)

	// 90 минут занимают 3 слота; новое окно резервируется до освобождения старого
	assert.Equal(t, 3, env.schedule.lastUnits)
	assert.Equal(t, []int64{501}, env.schedule.releaseCalls)
	assert.Equal(t, 1, env.bookings.rebindCalls)
	assert.Equal(t, int64(777), env.bookings.lastReservationID)

	assert.Equal(t, []domain.RescheduleStatus{domain.RescheduleStatusApproved}, env.reschedules.resolved)
	assert.Equal(t, []bool{false}, env.bookings.pendingCalls)
	assert.Equal(t, []string{"approved"}, env.metrics.decisions)
	assert.Equal(t, []string{"reschedule.approved"}, env.publisher.published)
}

func TestExecute_ApproveSlotFullKeepsRequestPending(t *testing.T) {
	env := newTestEnv(pendingRequest(), testBooking())
	env.schedule.reserveErr = scheduleRepo.ErrSlotFull

	_, err := env.uc.Execute(context.Background(), &Request{
		RequestID: 11, AdminID: 1, Decision: DecisionApproved,
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Текущий слот бронирования не тронут, запрос остается pending
	assert.Empty(t, env.schedule.releaseCalls)
	assert.Equal(t, 0, env.bookings.rebindCalls)
	assert.Empty(t, env.reschedules.resolved)
	assert.Equal(t, []string{"conflict"}, env.metrics.reservations)
	assert.Empty(t, env.publisher.published)
}

func TestExecute_ApproveOutsideWorkingHours(t *testing.T) {
	env := newTestEnv(pendingRequest(), testBooking())
	env.schedule.reserveErr = scheduleRepo.ErrSlotNotFound

	_, err := env.uc.Execute(context.Background(), &Request{
		RequestID: 11, AdminID: 1, Decision: DecisionApproved,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_RejectLeavesSlotBound(t *testing.T) {
	env := newTestEnv(pendingRequest(), testBooking())

	resp, err := env.uc.Execute(context.Background(), &Request{
		RequestID: 11, AdminID: 1, Decision: DecisionRejected, AdminResponse: ptr.Ptr("day fully booked"),
	})
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, 0, env.schedule.reserveCalls)
	assert.Empty(t, env.schedule.releaseCalls)
	assert.Equal(t, 0, env.bookings.rebindCalls)

	assert.Equal(t, []domain.RescheduleStatus{domain.RescheduleStatusRejected}, env.reschedules.resolved)
	assert.Equal(t, []bool{false}, env.bookings.pendingCalls)
	assert.Equal(t, []string{"rejected"}, env.metrics.decisions)
	assert.Equal(t, []string{"reschedule.rejected"}, env.publisher.published)
}

func TestExecute_ApproveOnInactiveBookingRejected(t *testing.T) {
	// Бронирование отменили, пока запрос ждал решения: одобрение не должно
	// зарезервировать новое окно для уже неактивной работы
	for _, status := range []domain.BookingStatus{
		domain.StatusCancelled,
		domain.StatusNoShow,
		domain.StatusDeclined,
		domain.StatusCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			booking := testBooking()
			booking.Status = status
			env := newTestEnv(pendingRequest(), booking)

			_, err := env.uc.Execute(context.Background(), &Request{
				RequestID: 11, AdminID: 1, Decision: DecisionApproved,
			})
			assert.ErrorIs(t, err, ErrBookingNotActive)

			assert.Equal(t, 0, env.schedule.reserveCalls)
			assert.Empty(t, env.schedule.releaseCalls)
			assert.Equal(t, 0, env.bookings.rebindCalls)
			assert.Empty(t, env.reschedules.resolved)
			assert.Empty(t, env.publisher.published)
		})
	}
}

func TestExecute_RejectOnInactiveBookingResolvesRequest(t *testing.T) {
	// Отклонение висящего запроса по отменённому бронированию — уборка:
	// запрос закрывается, флаг снимается, слоты не трогаются
	booking := testBooking()
	booking.Status = domain.StatusCancelled
	env := newTestEnv(pendingRequest(), booking)

	resp, err := env.uc.Execute(context.Background(), &Request{
		RequestID: 11, AdminID: 1, Decision: DecisionRejected,
	})
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, 0, env.schedule.reserveCalls)
	assert.Empty(t, env.schedule.releaseCalls)
	assert.Equal(t, []bool{false}, env.bookings.pendingCalls)
}

func TestExecute_AlreadyResolved(t *testing.T) {
	request := pendingRequest()
	request.Status = domain.RescheduleStatusRejected
	env := newTestEnv(request, testBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		RequestID: 11, AdminID: 1, Decision: DecisionApproved,
	})
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	assert.Empty(t, env.reschedules.resolved)
}

func TestExecute_RequestNotFound(t *testing.T) {
	env := newTestEnv(nil, testBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		RequestID: 11, AdminID: 1, Decision: DecisionApproved,
	})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_InvalidDecision(t *testing.T) {
	env := newTestEnv(pendingRequest(), testBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		RequestID: 11, AdminID: 1, Decision: "maybe",
	})
	assert.ErrorIs(t, err, ErrInvalidDecision)
}
