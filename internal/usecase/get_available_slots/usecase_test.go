package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

type fakeScheduleRepo struct {
	units []*domain.TimeSlot
	err   error
}

func (f *fakeScheduleRepo) GetUnitsForDate(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.units, nil
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

// unit собирает получасовой слот с заданной заполненностью
func unit(start, end string, capacity, booked int) *domain.TimeSlot {
	s, _ := types.NewTimeStringFromString(start)
	e, _ := types.NewTimeStringFromString(end)
	return &domain.TimeSlot{StartTime: s, EndTime: e, Capacity: capacity, BookedCount: booked}
}

func newUseCase(units []*domain.TimeSlot) *UseCase {
	uc := NewUseCase(&fakeScheduleRepo{units: units}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_WindowAvailabilityIsMinOverUnits(t *testing.T) {
	uc := newUseCase([]*domain.TimeSlot{
		unit("09:00", "09:30", 2, 0),
		unit("09:30", "10:00", 2, 1),
		unit("10:00", "10:30", 2, 2),
	})

	// Часовое окно занимает два последовательных слота
	resp, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	// 09:00-10:00: min(2, 1) = 1 свободное место
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, 1, resp.Slots[0].AvailableSpots)
	assert.Equal(t, 2, resp.Slots[0].TotalSpots)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)

	// 09:30-10:30: min(1, 0) = 0 — окно возвращается с нулем мест
	assert.Equal(t, "09:30", resp.Slots[1].StartTime.String())
	assert.Equal(t, 0, resp.Slots[1].AvailableSpots)
}

func TestExecute_GapBreaksWindow(t *testing.T) {
	// Обеденный перерыв: после 12:00 расписание продолжается с 13:00
	uc := newUseCase([]*domain.TimeSlot{
		unit("11:00", "11:30", 3, 0),
		unit("11:30", "12:00", 3, 0),
		unit("13:00", "13:30", 3, 0),
	})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	// Единственное часовое окно без разрыва — 11:00-12:00
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "11:00", resp.Slots[0].StartTime.String())
}

func TestExecute_DurationRoundsUpToUnits(t *testing.T) {
	uc := newUseCase([]*domain.TimeSlot{
		unit("09:00", "09:30", 1, 0),
		unit("09:30", "10:00", 1, 0),
	})

	// 45 минут округляются до двух получасовых слотов
	resp, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
}

func TestExecute_WindowLongerThanDay(t *testing.T) {
	uc := newUseCase([]*domain.TimeSlot{
		unit("09:00", "09:30", 1, 0),
	})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 120,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayFiltersStartedWindows(t *testing.T) {
	uc := newUseCase([]*domain.TimeSlot{
		unit("08:00", "08:30", 1, 0),
		unit("08:30", "09:00", 1, 0),
		unit("09:00", "09:30", 1, 0),
		unit("09:30", "10:00", 1, 0),
	})

	// Сейчас 09:00 — окна, начавшиеся раньше, не возвращаются
	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testNow,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "09:30", resp.Slots[1].StartTime.String())
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	uc := newUseCase([]*domain.TimeSlot{
		unit("09:00", "09:30", 1, 0),
	})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testNow.AddDate(0, 0, -1),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnconfiguredDayReturnsEmpty(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Date:            time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: domain.MaxDurationMinutes + 30,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
