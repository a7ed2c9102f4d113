package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestTimeSlotListScan(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected TimeSlotList
		wantErr  bool
	}{
		{
			name:  "structured array of objects",
			input: []byte(`[{"start_time":"09:00"},{"start_time":"09:30","is_available":false}]`),
			expected: TimeSlotList{
				{StartTime: "09:00"},
				{StartTime: "09:30", Available: boolPtr(false)},
			},
		},
		{
			name:  "array of plain time strings",
			input: []byte(`["09:00","10:00"]`),
			expected: TimeSlotList{
				{StartTime: "09:00"},
				{StartTime: "10:00"},
			},
		},
		{
			name:  "double-encoded array",
			input: []byte(`"[{\"start_time\":\"08:00\"},{\"start_time\":\"08:30\"}]"`),
			expected: TimeSlotList{
				{StartTime: "08:00"},
				{StartTime: "08:30"},
			},
		},
		{
			name:  "alternate object keys",
			input: []byte(`[{"time":"09:00"},{"startTime":"10:00"},{"slot_time":"11:00"}]`),
			expected: TimeSlotList{
				{StartTime: "09:00"},
				{StartTime: "10:00"},
				{StartTime: "11:00"},
			},
		},
		{
			name:  "start_time wins over other keys",
			input: []byte(`[{"start_time":"09:00","time":"17:00"}]`),
			expected: TimeSlotList{
				{StartTime: "09:00"},
			},
		},
		{
			name:  "available flag under alternate key",
			input: []byte(`[{"time":"09:00","available":true}]`),
			expected: TimeSlotList{
				{StartTime: "09:00", Available: boolPtr(true)},
			},
		},
		{
			name:  "objects without a recognizable time are dropped",
			input: []byte(`[{"start_time":"09:00"},{"label":"lunch"}]`),
			expected: TimeSlotList{
				{StartTime: "09:00"},
			},
		},
		{
			name:  "string input from the driver",
			input: `["14:00"]`,
			expected: TimeSlotList{
				{StartTime: "14:00"},
			},
		},
		{
			name:     "null column",
			input:    nil,
			expected: nil,
		},
		{
			name:    "scalar json is rejected",
			input:   []byte(`42`),
			wantErr: true,
		},
		{
			name:    "invalid json is rejected",
			input:   []byte(`{not json`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list TimeSlotList
			err := list.Scan(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, list)
		})
	}
}

func TestTimeSlotListValue(t *testing.T) {
	t.Run("empty list stores NULL", func(t *testing.T) {
		var list TimeSlotList
		value, err := list.Value()
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("writes canonical array form", func(t *testing.T) {
		list := TimeSlotList{
			{StartTime: "09:00"},
			{StartTime: "09:30", Available: boolPtr(false)},
		}
		value, err := list.Value()
		require.NoError(t, err)
		assert.JSONEq(t, `[{"start_time":"09:00"},{"start_time":"09:30","is_available":false}]`, string(value.([]byte)))
	})
}

func TestTimeSlotIsAvailable(t *testing.T) {
	assert.True(t, TimeSlot{StartTime: "09:00"}.IsAvailable())
	assert.True(t, TimeSlot{StartTime: "09:00", Available: boolPtr(true)}.IsAvailable())
	assert.False(t, TimeSlot{StartTime: "09:00", Available: boolPtr(false)}.IsAvailable())
}

func TestNormalizeClockTime(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"09:00", "09:00"},
		{"9:00", "09:00"},
		{"09:00:00", "09:00"},
		{"23:59", "23:59"},
		{"0:05", "00:05"},
		{" 09:00 ", "09:00"},
		{"24:00", ""},
		{"09:60", ""},
		{"-1:00", ""},
		{"0900", ""},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeClockTime(tt.input))
		})
	}
}

func TestWeeklyScheduleOpenSlotTimes(t *testing.T) {
	schedule := WeeklySchedule{
		TimeSlots: TimeSlotList{
			{StartTime: "9:00"},
			{StartTime: "09:30", Available: boolPtr(false)},
			{StartTime: "10:00:00"},
			{StartTime: "not-a-time"},
		},
	}

	assert.Equal(t, []string{"09:00", "10:00"}, schedule.OpenSlotTimes())
}
