package usecase

import (
	"testing"

	"careslot/internal/delivery/dto"
	"careslot/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeSlots(t *testing.T) {
	t.Run("normalizes times and keeps flags", func(t *testing.T) {
		slots, err := buildTimeSlots([]dto.TimeSlotRequest{
			{StartTime: "9:00"},
			{StartTime: "09:30:00", Available: boolPtr(false)},
		})
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, "09:00", slots[0].StartTime)
		assert.Nil(t, slots[0].Available)
		assert.Equal(t, "09:30", slots[1].StartTime)
		require.NotNil(t, slots[1].Available)
		assert.False(t, *slots[1].Available)
	})

	t.Run("drops malformed times", func(t *testing.T) {
		slots, err := buildTimeSlots([]dto.TimeSlotRequest{
			{StartTime: "25:00"},
			{StartTime: "10:00"},
		})
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, "10:00", slots[0].StartTime)
	})

	t.Run("rejects a set with no usable times", func(t *testing.T) {
		_, err := buildTimeSlots([]dto.TimeSlotRequest{
			{StartTime: "25:00"},
			{StartTime: "garbage"},
		})
		assert.ErrorIs(t, err, ErrNoValidSlots)
	})
}

func TestBuildTimeSlotsRoundTrip(t *testing.T) {
	slots, err := buildTimeSlots([]dto.TimeSlotRequest{
		{StartTime: "08:00"},
		{StartTime: "08:30"},
	})
	require.NoError(t, err)

	schedule := entity.WeeklySchedule{IsAvailable: true, TimeSlots: slots}
	assert.Equal(t, []string{"08:00", "08:30"}, schedule.OpenSlotTimes())
}
