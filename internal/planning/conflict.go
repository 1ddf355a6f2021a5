package planning

import (
	"fmt"

	"github.com/spec-kit/planning-service/internal/domain"
)

// ConflictResult reports whether a candidate placement collides with another
// ticket. Message is ready for direct display and empty when HasConflict is
// false.
type ConflictResult struct {
	HasConflict bool
	Message     string
}

// CheckConflict decides whether dropping ticket at (date, hour, minutes) for
// technicianID overlaps any other ticket already occupying that technician's
// calendar.
//
// Windows are compared at minute resolution: tickets snap to quarter-hours
// and can be as short as 15 minutes, so hour-granularity comparison would
// miss same-hour collisions. When the moved ticket carries several
// technicians the check fans out to each of them; one busy technician blocks
// the whole move.
func CheckConflict(ticket domain.Ticket, all []domain.Ticket, date string, hour, minutes int, technicianID int64) ConflictResult {
	start := hour*60 + minutes
	end := start + durationOrDefault(ticket.EstimatedDuration)

	if len(ticket.Technicians) > 1 {
		for _, at := range ticket.Technicians {
			if r := conflictFor(ticket.ID, all, date, start, end, at.ID, at.Name); r.HasConflict {
				return r
			}
		}
		return ConflictResult{}
	}
	return conflictFor(ticket.ID, all, date, start, end, technicianID, "")
}

// conflictFor scans every other ticket of one technician on the date for a
// window overlap with [start, end) in minutes since midnight.
func conflictFor(ticketID int64, all []domain.Ticket, date string, start, end int, technicianID int64, technicianName string) ConflictResult {
	for i := range all {
		other := &all[i]
		if other.ID == ticketID {
			continue
		}
		if other.Date == nil || *other.Date != date {
			continue
		}
		if !other.HasTechnician(technicianID) {
			continue
		}
		// All-day tickets have no window to overlap with.
		if other.Hour == nil || *other.Hour == domain.AllDayHour {
			continue
		}
		otherStart := *other.Hour*60 + other.Minutes
		otherEnd := otherStart + durationOrDefault(other.EstimatedDuration)
		if start < otherEnd && otherStart < end {
			msg := fmt.Sprintf("Conflit avec le ticket « %s » (%s - %s)",
				other.Title, minutesToClock(otherStart), minutesToClock(otherEnd))
			if technicianName != "" {
				msg += " pour " + technicianName
			}
			return ConflictResult{HasConflict: true, Message: msg}
		}
	}
	return ConflictResult{}
}

func durationOrDefault(minutes int) int {
	if minutes <= 0 {
		return DefaultDurationMinutes
	}
	return minutes
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
