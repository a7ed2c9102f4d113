package usecase

import (
	"testing"

	"careslot/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCentersConflict(t *testing.T) {
	centerA := uuid.New()
	centerB := uuid.New()

	tests := []struct {
		name     string
		a        *uuid.UUID
		b        *uuid.UUID
		conflict bool
	}{
		{"both nil", nil, nil, true},
		{"existing has center, request has none", &centerA, nil, true},
		{"existing has none, request has center", nil, &centerB, true},
		{"same center", &centerA, &centerA, true},
		{"distinct centers coexist", &centerA, &centerB, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, centersConflict(tt.a, tt.b))
		})
	}
}

func TestSlotOffered(t *testing.T) {
	entry := &entity.WeeklySchedule{
		IsAvailable: true,
		TimeSlots: entity.TimeSlotList{
			{StartTime: "9:00"},
			{StartTime: "09:30", Available: boolPtr(false)},
			{StartTime: "10:00"},
		},
	}

	assert.True(t, slotOffered(entry, "09:00"))
	assert.True(t, slotOffered(entry, "10:00"))
	// Unavailable template slots are not offered
	assert.False(t, slotOffered(entry, "09:30"))
	assert.False(t, slotOffered(entry, "11:00"))
}

func boolPtr(b bool) *bool { return &b }
