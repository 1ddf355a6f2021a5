package dto

import (
	"github.com/spec-kit/planning-service/internal/domain"
	"github.com/spec-kit/planning-service/internal/planning"
)

// TimeRangeResponse is an open window in fractional hours, end exclusive.
type TimeRangeResponse struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// DayAvailabilityResponse is one technician's day as the calendar renders it.
// Hours maps each visible grid hour to whether a ticket may be dropped there.
type DayAvailabilityResponse struct {
	Date                string                      `json:"date"`
	TechnicianID        *int64                      `json:"technician_id"`
	Status              planning.AvailabilityStatus `json:"status"`
	Hours               map[int]bool                `json:"hours"`
	OpenSlots           []TimeRangeResponse         `json:"open_slots"`
	UnavailabilityTypes []domain.ScheduleType       `json:"unavailability_types"`
}

// RangeAvailabilityResponse carries month-view badge data: a status per date
// plus the subset of dates with at least one open window.
type RangeAvailabilityResponse struct {
	Statuses       map[string]planning.AvailabilityStatus `json:"statuses"`
	AvailableDates []string                               `json:"available_dates"`
}

// ConflictCheckRequest is a candidate placement to probe without mutating.
type ConflictCheckRequest struct {
	TicketID     int64  `json:"ticket_id"`
	Date         string `json:"date"`
	Hour         int    `json:"hour"`
	Minutes      int    `json:"minutes"`
	TechnicianID int64  `json:"technician_id"`
}

// ConflictCheckResponse reports the probe outcome; message is ready for
// display and empty when has_conflict is false.
type ConflictCheckResponse struct {
	HasConflict bool   `json:"has_conflict"`
	Message     string `json:"message"`
}
