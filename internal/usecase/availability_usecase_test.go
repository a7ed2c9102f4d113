package usecase

import (
	"testing"
	"time"

	"careslot/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func weekdaySchedule(day int, times ...string) entity.WeeklySchedule {
	slots := make(entity.TimeSlotList, len(times))
	for i, tm := range times {
		slots[i] = entity.TimeSlot{StartTime: tm}
	}
	return entity.WeeklySchedule{DayOfWeek: day, IsAvailable: true, TimeSlots: slots}
}

func TestBuildAvailableDates(t *testing.T) {
	// 2026-08-03 is a Monday
	monday := weekdaySchedule(1, "09:00", "09:30", "10:00")
	wednesday := weekdaySchedule(3, "14:00")

	t.Run("emits only working days within the range", func(t *testing.T) {
		dates, workingDays := buildAvailableDates(
			mustDate(t, "2026-08-03"), mustDate(t, "2026-08-16"),
			[]entity.WeeklySchedule{monday, wednesday},
		)

		assert.Equal(t, []int{1, 3}, workingDays)
		require.Len(t, dates, 4)
		assert.Equal(t, "2026-08-03", dates[0].Date)
		assert.Equal(t, "2026-08-05", dates[1].Date)
		assert.Equal(t, "2026-08-10", dates[2].Date)
		assert.Equal(t, "2026-08-12", dates[3].Date)
		assert.Equal(t, 1, dates[0].DayOfWeek)
		assert.Equal(t, 3, dates[1].DayOfWeek)
		assert.Equal(t, 3, dates[0].SlotCount)
		assert.Equal(t, 1, dates[1].SlotCount)
	})

	t.Run("range bounds are inclusive", func(t *testing.T) {
		dates, _ := buildAvailableDates(
			mustDate(t, "2026-08-03"), mustDate(t, "2026-08-03"),
			[]entity.WeeklySchedule{monday},
		)
		require.Len(t, dates, 1)
		assert.Equal(t, "2026-08-03", dates[0].Date)
	})

	t.Run("inverted range yields no dates", func(t *testing.T) {
		dates, workingDays := buildAvailableDates(
			mustDate(t, "2026-08-16"), mustDate(t, "2026-08-03"),
			[]entity.WeeklySchedule{monday, wednesday},
		)
		assert.Empty(t, dates)
		assert.Equal(t, []int{1, 3}, workingDays)
	})

	t.Run("multiple entries on a day report the larger slot count", func(t *testing.T) {
		small := weekdaySchedule(1, "09:00")
		dates, _ := buildAvailableDates(
			mustDate(t, "2026-08-03"), mustDate(t, "2026-08-03"),
			[]entity.WeeklySchedule{small, monday},
		)
		require.Len(t, dates, 1)
		assert.Equal(t, 3, dates[0].SlotCount)
	})

	t.Run("a day whose slots are all closed still counts as working", func(t *testing.T) {
		closedMonday := entity.WeeklySchedule{
			DayOfWeek:   1,
			IsAvailable: true,
			TimeSlots: entity.TimeSlotList{
				{StartTime: "09:00", Available: boolPtr(false)},
			},
		}

		dates, workingDays := buildAvailableDates(
			mustDate(t, "2026-08-03"), mustDate(t, "2026-08-03"),
			[]entity.WeeklySchedule{closedMonday},
		)

		assert.Equal(t, []int{1}, workingDays)
		require.Len(t, dates, 1)
		assert.Equal(t, "2026-08-03", dates[0].Date)
		assert.Equal(t, 0, dates[0].SlotCount)
	})

	t.Run("a day with an empty slot list still counts as working", func(t *testing.T) {
		bareMonday := entity.WeeklySchedule{DayOfWeek: 1, IsAvailable: true, TimeSlots: entity.TimeSlotList{}}

		dates, workingDays := buildAvailableDates(
			mustDate(t, "2026-08-03"), mustDate(t, "2026-08-03"),
			[]entity.WeeklySchedule{bareMonday},
		)

		assert.Equal(t, []int{1}, workingDays)
		require.Len(t, dates, 1)
		assert.Equal(t, 0, dates[0].SlotCount)
	})
}

func TestBookedTimeSet(t *testing.T) {
	appointments := []entity.Appointment{
		{AppointmentTime: "09:00:00"},
		{AppointmentTime: "9:30"},
		{AppointmentTime: "garbage"},
	}

	booked := bookedTimeSet(appointments)

	// Seconds-precision storage must block minute-precision candidates
	assert.True(t, booked["09:00"])
	assert.True(t, booked["09:30"])
	assert.Len(t, booked, 2)
}

func TestBuildSlotViews(t *testing.T) {
	candidates := []string{"09:00", "09:30", "10:00"}
	booked := map[string]bool{"09:30": true}

	open, views := buildSlotViews(candidates, booked)

	assert.Equal(t, []string{"09:00", "10:00"}, open)
	require.Len(t, views, 3)
	assert.False(t, views[0].IsBooked)
	assert.True(t, views[1].IsBooked)
	assert.False(t, views[2].IsBooked)
}

func TestBuildSlotViewsAllBooked(t *testing.T) {
	open, views := buildSlotViews([]string{"09:00"}, map[string]bool{"09:00": true})

	assert.NotNil(t, open)
	assert.Empty(t, open)
	require.Len(t, views, 1)
	assert.True(t, views[0].IsBooked)
}

func TestResolveDateRange(t *testing.T) {
	t.Run("explicit bounds", func(t *testing.T) {
		start, end, err := resolveDateRange("2026-08-03", "2026-08-10")
		require.NoError(t, err)
		assert.Equal(t, mustDate(t, "2026-08-03"), start)
		assert.Equal(t, mustDate(t, "2026-08-10"), end)
	})

	t.Run("start defaults to the local calendar date", func(t *testing.T) {
		start, _, err := resolveDateRange("", "")
		require.NoError(t, err)

		year, month, day := time.Now().Date()
		assert.Equal(t, time.Date(year, month, day, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("end defaults to start plus window", func(t *testing.T) {
		start, end, err := resolveDateRange("2026-08-03", "")
		require.NoError(t, err)
		assert.Equal(t, mustDate(t, "2026-09-02"), end)
		assert.Equal(t, mustDate(t, "2026-08-03"), start)
	})

	t.Run("invalid start", func(t *testing.T) {
		_, _, err := resolveDateRange("03-08-2026", "")
		assert.Error(t, err)
	})

	t.Run("invalid end", func(t *testing.T) {
		_, _, err := resolveDateRange("2026-08-03", "next week")
		assert.Error(t, err)
	})
}
