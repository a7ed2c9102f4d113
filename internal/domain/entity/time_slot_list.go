package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TimeSlot is a single start-time candidate from a day's template.
// Available is nil unless the slot carries an explicit availability flag.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	Available *bool  `json:"is_available,omitempty"`
}

// IsAvailable reports whether the slot may be offered.
// A missing flag means available.
func (s TimeSlot) IsAvailable() bool {
	return s.Available == nil || *s.Available
}

// TimeSlotList is the jsonb time_slots column of a weekly schedule entry.
//
// Historic rows store the column in two shapes: a structured JSON array,
// or that same array serialized again into a JSON string. Array elements
// are either plain time strings or objects keyed by one of
// start_time/time/startTime/slot_time. All of that is untangled here,
// once, so the rest of the code only ever sees []TimeSlot.
type TimeSlotList []TimeSlot

// Value implements driver.Valuer; always writes the canonical array form.
func (l TimeSlotList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *TimeSlotList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal time_slots value:", value))
	}

	slots, err := parseTimeSlots(bytes)
	if err != nil {
		return err
	}
	*l = slots
	return nil
}

func parseTimeSlots(data []byte) (TimeSlotList, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	// Double-encoded rows: the jsonb value is a string holding the array.
	if s, ok := raw.(string); ok {
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			return nil, err
		}
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New("time_slots is neither an array nor an encoded array")
	}

	slots := make(TimeSlotList, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			slots = append(slots, TimeSlot{StartTime: v})
		case map[string]interface{}:
			slot := TimeSlot{StartTime: slotStartTime(v)}
			if flag, ok := slotAvailability(v); ok {
				slot.Available = &flag
			}
			if slot.StartTime != "" {
				slots = append(slots, slot)
			}
		}
	}
	return slots, nil
}

// slotStartTime resolves the start time of a slot object.
// Key precedence: start_time, time, startTime, slot_time.
func slotStartTime(obj map[string]interface{}) string {
	for _, key := range []string{"start_time", "time", "startTime", "slot_time"} {
		if v, ok := obj[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func slotAvailability(obj map[string]interface{}) (bool, bool) {
	for _, key := range []string{"is_available", "available"} {
		if v, ok := obj[key].(bool); ok {
			return v, true
		}
	}
	return false, false
}

// NormalizeClockTime canonicalizes a wall-clock time string to zero-padded
// HH:MM, dropping any seconds ("9:00" and "09:00:00" both become "09:00").
// Returns "" when the input is not a valid time of day.
func NormalizeClockTime(s string) string {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return ""
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ""
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
