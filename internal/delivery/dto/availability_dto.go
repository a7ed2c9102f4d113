package dto

import "github.com/shopspring/decimal"

// AvailableDate is a calendar date on which the doctor's weekly template
// marks at least one working entry. Derived, never persisted.
type AvailableDate struct {
	Date      string `json:"date"` // YYYY-MM-DD
	DayOfWeek int    `json:"day_of_week"`
	SlotCount int    `json:"slot_count"`
}

type AvailableDatesResponse struct {
	AvailableDates []AvailableDate `json:"availableDates"`
	WorkingDays    []int           `json:"workingDays"`
	Total          int             `json:"total"`
	Message        string          `json:"message,omitempty"`
}

// SlotView covers every candidate slot of the day, booked or not, for
// UIs that grey out taken slots.
type SlotView struct {
	Time     string `json:"time"` // HH:MM
	IsBooked bool   `json:"is_booked"`
}

type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	Slots           []string        `json:"slots"` // open times only
	AvailableSlots  []SlotView      `json:"available_slots"`
	ConsultationFee decimal.Decimal `json:"consultationFee"`
	Message         string          `json:"message,omitempty"`
}
