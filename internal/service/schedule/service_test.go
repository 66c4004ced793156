package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/service/schedule/models"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

type fakeScheduleRepo struct {
	units     []*domain.TimeSlot
	maxBooked int

	upserted *domain.DaySchedule
}

func (f *fakeScheduleRepo) GetUnitsForDate(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error) {
	return f.units, nil
}

func (f *fakeScheduleRepo) MaxBookedForDate(ctx context.Context, date time.Time) (int, error) {
	return f.maxBooked, nil
}

func (f *fakeScheduleRepo) UpsertDay(ctx context.Context, day domain.DaySchedule) error {
	f.upserted = &day
	// Имитируем нарезку дня на слоты, которую делает хранилище
	f.units = buildUnits(day)
	return nil
}

func buildUnits(day domain.DaySchedule) []*domain.TimeSlot {
	units := make([]*domain.TimeSlot, 0)
	start := day.OpenTime
	for start.IsBefore(day.CloseTime) {
		end, _ := start.AddMinutes(domain.SlotUnitMinutes)
		units = append(units, &domain.TimeSlot{
			SlotDate:  day.Date,
			StartTime: start,
			EndTime:   end,
			Capacity:  day.Capacity,
		})
		start = end
	}
	return units
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

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService() (*Service, *fakeScheduleRepo) {
	repo := &fakeScheduleRepo{}
	return NewService(repo, fakeTxManager{}, nopLogger{}), repo
}

func TestUpsertDay_Success(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.UpsertDay(context.Background(), &models.UpsertDayRequest{
		AdminID:   1,
		Date:      "2026-03-15",
		OpenTime:  "09:00",
		CloseTime: "12:00",
		Capacity:  2,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.upserted)
	assert.Equal(t, 2, repo.upserted.Capacity)

	assert.Equal(t, "2026-03-15", resp.Date)
	assert.Equal(t, "09:00", resp.OpenTime)
	assert.Equal(t, "12:00", resp.CloseTime)
	assert.Len(t, resp.Units, 6)
}

func TestUpsertDay_CapacityBelowBooked(t *testing.T) {
	svc, repo := newTestService()
	repo.maxBooked = 3

	_, err := svc.UpsertDay(context.Background(), &models.UpsertDayRequest{
		AdminID:   1,
		Date:      "2026-03-15",
		OpenTime:  "09:00",
		CloseTime: "18:00",
		Capacity:  2,
	})
	assert.ErrorIs(t, err, ErrCapacityBelowBooked)
	assert.Nil(t, repo.upserted)
}

func TestUpsertDay_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpsertDayRequest
	}{
		{"кривая дата", models.UpsertDayRequest{Date: "15.03.2026", OpenTime: "09:00", CloseTime: "18:00", Capacity: 2}},
		{"кривое время открытия", models.UpsertDayRequest{Date: "2026-03-15", OpenTime: "9am", CloseTime: "18:00", Capacity: 2}},
		{"открытие после закрытия", models.UpsertDayRequest{Date: "2026-03-15", OpenTime: "18:00", CloseTime: "09:00", Capacity: 2}},
		{"день короче одного слота", models.UpsertDayRequest{Date: "2026-03-15", OpenTime: "09:00", CloseTime: "09:15", Capacity: 2}},
		{"нулевая вместимость", models.UpsertDayRequest{Date: "2026-03-15", OpenTime: "09:00", CloseTime: "18:00", Capacity: 0}},
		{"вместимость сверх лимита", models.UpsertDayRequest{Date: "2026-03-15", OpenTime: "09:00", CloseTime: "18:00", Capacity: domain.MaxSlotCapacity + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()

			_, err := svc.UpsertDay(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetDay(t *testing.T) {
	svc, repo := newTestService()

	openTime, _ := types.NewTimeStringFromString("09:00")
	closeTime, _ := types.NewTimeStringFromString("10:30")
	repo.units = buildUnits(domain.DaySchedule{
		Date:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		OpenTime: openTime, CloseTime: closeTime, Capacity: 2,
	})
	repo.units[1].BookedCount = 2

	resp, err := svc.GetDay(context.Background(), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "09:00", resp.OpenTime)
	assert.Equal(t, "10:30", resp.CloseTime)
	require.Len(t, resp.Units, 3)
	assert.Equal(t, 2, resp.Units[1].BookedCount)
}

func TestGetDay_NotConfigured(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetDay(context.Background(), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrDayNotFound)
}
