package planning

import (
	"strconv"
	"strings"

	"github.com/spec-kit/planning-service/internal/domain"
)

// AvailabilityStatus summarizes a technician's day for calendar badges.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusPartial     AvailabilityStatus = "partial"
	StatusUnavailable AvailabilityStatus = "unavailable"
	// StatusUnknown means no schedule rows exist for the date at all, which
	// is distinct from being explicitly blocked.
	StatusUnknown AvailabilityStatus = "unknown"
)

// TimeRange is a schedule window expressed in fractional hours, half-open:
// [Start, End).
type TimeRange struct {
	Start float64
	End   float64
}

// clockToHours parses "HH:MM" or "HH:MM:SS" into fractional hours. Malformed
// values count as midnight; schedule rows are validated on write so this only
// guards against legacy data.
func clockToHours(clock string) float64 {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return float64(hour)
	}
	return float64(hour) + float64(minute)/60
}

// forDate filters schedule rows down to one date, and to one technician when
// technicianID is non-nil. A nil filter means "union across all technicians".
func forDate(date string, schedules []domain.Schedule, technicianID *int64) []domain.Schedule {
	var matched []domain.Schedule
	for _, s := range schedules {
		if s.Date != date {
			continue
		}
		if technicianID != nil && s.TechnicianID != *technicianID {
			continue
		}
		matched = append(matched, s)
	}
	return matched
}

// DateAvailabilityStatus classifies a date: no rows at all is unknown, only
// available rows is available, only blocking rows is unavailable, a mix of
// both is partial.
func DateAvailabilityStatus(date string, schedules []domain.Schedule, technicianID *int64) AvailabilityStatus {
	rows := forDate(date, schedules, technicianID)
	if len(rows) == 0 {
		return StatusUnknown
	}
	hasAvailable := false
	hasBlocking := false
	for _, s := range rows {
		if s.Type.Blocking() {
			hasBlocking = true
		} else {
			hasAvailable = true
		}
	}
	switch {
	case hasAvailable && hasBlocking:
		return StatusPartial
	case hasAvailable:
		return StatusAvailable
	default:
		return StatusUnavailable
	}
}

// IsHourAvailable reports whether the top of the given hour is open: it must
// fall inside at least one available window and outside every blocking
// window. Blocking rows take precedence, which is how a lunch break carved
// out of an 08:00-17:00 available block works. Intervals are half-open, so
// the hour equal to a window's end is outside it.
func IsHourAvailable(hour int, date string, schedules []domain.Schedule, technicianID *int64) bool {
	at := float64(hour)
	covered := false
	for _, s := range forDate(date, schedules, technicianID) {
		start := clockToHours(s.StartTime)
		end := clockToHours(s.EndTime)
		if at < start || at >= end {
			continue
		}
		if s.Type.Blocking() {
			return false
		}
		covered = true
	}
	return covered
}

// AvailableSlots returns every available window on the date as fractional-hour
// ranges, in row order. Overlapping rows are not merged; the caller renders
// them as-is.
func AvailableSlots(date string, schedules []domain.Schedule, technicianID *int64) []TimeRange {
	var slots []TimeRange
	for _, s := range forDate(date, schedules, technicianID) {
		if s.Type.Blocking() {
			continue
		}
		slots = append(slots, TimeRange{
			Start: clockToHours(s.StartTime),
			End:   clockToHours(s.EndTime),
		})
	}
	return slots
}

// HasAvailability reports whether any schedule row exists for the date,
// regardless of type. Used to distinguish "no data" days.
func HasAvailability(date string, schedules []domain.Schedule, technicianID *int64) bool {
	return len(forDate(date, schedules, technicianID)) > 0
}

// AvailableDates collects the dates within [startDate, endDate] that carry at
// least one available window. YYYY-MM-DD sorts lexicographically, so plain
// string comparison bounds the range.
func AvailableDates(schedules []domain.Schedule, startDate, endDate string, technicianID *int64) map[string]struct{} {
	dates := make(map[string]struct{})
	for _, s := range schedules {
		if s.Type.Blocking() {
			continue
		}
		if s.Date < startDate || s.Date > endDate {
			continue
		}
		if technicianID != nil && s.TechnicianID != *technicianID {
			continue
		}
		dates[s.Date] = struct{}{}
	}
	return dates
}

// UnavailabilityTypes lists the distinct blocking schedule types present on a
// date, in first-seen order. The UI renders one badge per type.
func UnavailabilityTypes(date string, schedules []domain.Schedule, technicianID *int64) []domain.ScheduleType {
	seen := make(map[domain.ScheduleType]struct{})
	var types []domain.ScheduleType
	for _, s := range forDate(date, schedules, technicianID) {
		if !s.Type.Blocking() {
			continue
		}
		if _, ok := seen[s.Type]; ok {
			continue
		}
		seen[s.Type] = struct{}{}
		types = append(types, s.Type)
	}
	return types
}
