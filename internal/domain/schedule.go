package domain

import "time"

// ScheduleType enumerates the kinds of schedule windows a technician can declare.
type ScheduleType string

const (
	ScheduleTypeAvailable   ScheduleType = "available"
	ScheduleTypeUnavailable ScheduleType = "unavailable"
	ScheduleTypeVacation    ScheduleType = "vacation"
	ScheduleTypeSickLeave   ScheduleType = "sick_leave"
	ScheduleTypeBreak       ScheduleType = "break"
)

// Blocking reports whether this window type removes availability. Every type
// other than "available" carves time out of the technician's day.
func (t ScheduleType) Blocking() bool {
	return t != ScheduleTypeAvailable
}

// Schedule is one availability or unavailability window for a technician on a
// given date. Several rows may exist for the same technician and date; an
// available block with an unavailable lunch carved out is two rows.
type Schedule struct {
	ID           int64
	TechnicianID int64
	Date         string // YYYY-MM-DD
	StartTime    string // HH:MM or HH:MM:SS
	EndTime      string // HH:MM or HH:MM:SS, strictly after StartTime
	Type         ScheduleType
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
