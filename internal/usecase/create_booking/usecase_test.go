package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/MCD-BookingService/internal/integrations/geoservice"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// --- fakes ---

type fakeBookingRepo struct {
	createErrs  []error // ошибки для первых вызовов Create, по порядку
	createCalls int
	references  []string
	lastBooking *domain.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.createCalls++
	f.references = append(f.references, booking.Reference)
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	created := *booking
	created.ID = 42
	created.CreatedAt = time.Now()
	f.lastBooking = &created
	return &created, nil
}

type fakeScheduleRepo struct {
	reserveErr   error
	reserveCalls int
	lastUnits    int
}

func (f *fakeScheduleRepo) ReserveWindow(ctx context.Context, date time.Time, start types.TimeString, units int) (*domain.SlotReservation, error) {
	f.reserveCalls++
	f.lastUnits = units
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	return &domain.SlotReservation{ID: 501, SlotDate: date, StartTime: start, Units: units}, nil
}

type fakeGeoClient struct {
	miles float64
	err   error
}

func (f *fakeGeoClient) GetDistanceWithGracefulDegradation(ctx context.Context, postcode string) (*geoservice.Distance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &geoservice.Distance{Postcode: postcode, Miles: f.miles}, nil
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
	created      int
	reservations []string
}

func (f *fakeMetrics) IncBookingCreated()               { f.created++ }
func (f *fakeMetrics) IncSlotReservation(result string) { f.reservations = append(f.reservations, result) }

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- fixtures ---

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testSettings() Settings {
	return Settings{
		Tariff: domain.TravelTariff{
			FreeRadiusMiles: 5,
			PerMileRate:     1.5,
			MinSurcharge:    0,
			MaxSurcharge:    25,
		},
		PaymentDeadlineMinutes: 120,
	}
}

func testRequest() *Request {
	start, _ := types.NewTimeStringFromString("10:00")
	return &Request{
		CustomerID:   7,
		CustomerName: "Alice Smith",
		VehicleMake:  "Audi",
		VehicleModel: "A4",
		VehicleSize:  "M",
		AddressLine:  "1 High Street",
		Postcode:     "SW1A 1AA",
		Services: []ServiceLineInput{
			{Name: "Full valet", BasePrice: 60, Quantity: 1, DurationMinutes: 120},
		},
		Date:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime: start,
	}
}

type testEnv struct {
	uc        *UseCase
	bookings  *fakeBookingRepo
	schedule  *fakeScheduleRepo
	geo       *fakeGeoClient
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newTestEnv() *testEnv {
	env := &testEnv{
		bookings:  &fakeBookingRepo{},
		schedule:  &fakeScheduleRepo{},
		geo:       &fakeGeoClient{miles: 3},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	env.uc = NewUseCase(env.bookings, env.schedule, env.geo, fakeTxManager{}, env.publisher, env.metrics, testSettings(), nopLogger{})
	env.uc.timeProvider = fixedTimeProvider{now: testNow}
	return env
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Equal(t, testNow.Add(120*time.Minute), resp.PaymentDeadline)

	// 120 минут занимают 4 слота по 30 минут
	assert.Equal(t, 4, env.schedule.lastUnits)
	assert.Equal(t, int64(501), env.bookings.lastBooking.ReservationID)

	// В радиусе бесплатного выезда надбавки нет
	assert.Equal(t, 0.0, resp.TravelSurcharge)
	assert.InDelta(t, 60*1.15, resp.TotalPrice, 0.001)

	assert.Equal(t, 1, env.metrics.created)
	assert.Equal(t, []string{"reserved"}, env.metrics.reservations)
	assert.Equal(t, []string{"booking.created"}, env.publisher.published)
}

func TestExecute_TravelSurchargeBeyondFreeRadius(t *testing.T) {
	env := newTestEnv()
	env.geo.miles = 13 // 8 миль сверх бесплатного радиуса

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.InDelta(t, 12.0, resp.TravelSurcharge, 0.001)
	assert.InDelta(t, 60*1.15+12.0, resp.TotalPrice, 0.001)
}

func TestExecute_SlotFull(t *testing.T) {
	env := newTestEnv()
	env.schedule.reserveErr = scheduleRepo.ErrSlotFull

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 0, env.bookings.createCalls)
	assert.Equal(t, []string{"conflict"}, env.metrics.reservations)
	assert.Empty(t, env.publisher.published)
}

func TestExecute_UnconfiguredWindow(t *testing.T) {
	env := newTestEnv()
	env.schedule.reserveErr = scheduleRepo.ErrSlotNotFound

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PostcodeNotFound(t *testing.T) {
	env := newTestEnv()
	env.geo.err = geoservice.ErrPostcodeNotFound

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrPostcodeNotFound)
}

func TestExecute_GeoServiceDegraded(t *testing.T) {
	env := newTestEnv()
	env.geo.err = geoservice.ErrServiceDegraded

	// При недоступности геосервиса бронирование создается без надбавки
	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.TravelSurcharge)
}

func TestExecute_ReferenceCollisionRetry(t *testing.T) {
	env := newTestEnv()
	env.bookings.createErrs = []error{bookingRepo.ErrDuplicateReference, bookingRepo.ErrDuplicateReference}

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// Коллизия обрывает транзакцию, поэтому повтор перезапускает её целиком:
	// каждая попытка резервирует окно заново
	assert.Equal(t, 3, env.bookings.createCalls)
	assert.Equal(t, 3, env.schedule.reserveCalls)
	assert.NotEqual(t, env.bookings.references[0], resp.Reference)
}

func TestExecute_ReferenceCollisionsExhausted(t *testing.T) {
	env := newTestEnv()
	for i := 0; i < maxReferenceAttempts; i++ {
		env.bookings.createErrs = append(env.bookings.createErrs, bookingRepo.ErrDuplicateReference)
	}

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, maxReferenceAttempts, env.bookings.createCalls)
	assert.Equal(t, maxReferenceAttempts, env.schedule.reserveCalls)
}

func TestExecute_DateInPast(t *testing.T) {
	env := newTestEnv()
	req := testRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	env := newTestEnv()
	req := testRequest()
	req.Date = testNow
	req.StartTime, _ = types.NewTimeStringFromString("08:30") // раньше текущих 09:00

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_StartTimeNotAligned(t *testing.T) {
	env := newTestEnv()
	req := testRequest()
	req.StartTime, _ = types.NewTimeStringFromString("10:15")

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"пустое имя клиента", func(req *Request) { req.CustomerName = "" }},
		{"неизвестный класс размера", func(req *Request) { req.VehicleSize = "XXL" }},
		{"пустой индекс", func(req *Request) { req.Postcode = "" }},
		{"без услуг", func(req *Request) { req.Services = nil }},
		{"нулевое количество", func(req *Request) { req.Services[0].Quantity = 0 }},
		{"отрицательная цена", func(req *Request) { req.Services[0].BasePrice = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			req := testRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
