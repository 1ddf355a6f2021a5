package planning

import (
	"fmt"
	"math"
)

// The visible scheduling grid runs 07:00 inclusive to 19:00 exclusive in
// quarter-hour steps, which gives 48 slots per day.
const (
	GridStartHour = 7
	GridEndHour   = 19
	SlotMinutes   = 15
	SlotsPerHour  = 60 / SlotMinutes
	SlotCount     = (GridEndHour - GridStartHour) * SlotsPerHour

	// DefaultDurationMinutes is used whenever a ticket has no usable
	// estimated duration.
	DefaultDurationMinutes = 30
	DefaultDurationSlots   = DefaultDurationMinutes / SlotMinutes

	MinDurationMinutes = 15
	MaxDurationMinutes = 480
)

// SlotIndex maps a wall-clock time to its grid slot, 0-47. Returns -1 for any
// hour outside [07,18] or minutes that are not a quarter-hour boundary.
func SlotIndex(hour, minutes int) int {
	if hour < GridStartHour || hour >= GridEndHour {
		return -1
	}
	if minutes < 0 || minutes >= 60 || minutes%SlotMinutes != 0 {
		return -1
	}
	return (hour-GridStartHour)*SlotsPerHour + minutes/SlotMinutes
}

// SlotToTime is the inverse of SlotIndex. Out-of-range indexes fall back to
// the start of the grid (07:00).
func SlotToTime(index int) (hour, minutes int) {
	if index < 0 || index >= SlotCount {
		return GridStartHour, 0
	}
	return GridStartHour + index/SlotsPerHour, (index % SlotsPerHour) * SlotMinutes
}

// SnapToQuarterHour rounds an arbitrary minute offset to the nearest
// quarter-hour boundary, half rounding up.
func SnapToQuarterHour(minutesOffset int) int {
	return int(math.Round(float64(minutesOffset)/SlotMinutes)) * SlotMinutes
}

// DurationToSlots converts an estimated duration to a slot count. Invalid
// input (zero, out of range, not a multiple of 15) yields the default of two
// slots rather than an error.
func DurationToSlots(duration int) int {
	if duration < MinDurationMinutes || duration > MaxDurationMinutes || duration%SlotMinutes != 0 {
		return DefaultDurationSlots
	}
	return duration / SlotMinutes
}

// FormatDuration renders a duration for display: "45 min", "2 heures",
// "1h 30min". Zero or negative input falls back to the 30-minute default.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		minutes = DefaultDurationMinutes
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		if hours == 1 {
			return "1 heure"
		}
		return fmt.Sprintf("%d heures", hours)
	}
	return fmt.Sprintf("%dh %dmin", hours, rest)
}
