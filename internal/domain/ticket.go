package domain

import "time"

// AllDayHour is the sentinel hour meaning the ticket occupies the whole day
// rather than a specific slot.
const AllDayHour = -1

// MaxTechniciansPerTicket caps how many technicians a ticket can carry.
const MaxTechniciansPerTicket = 5

// AssignedTechnician is one entry of a ticket's technician list. Exactly one
// entry carries IsPrimary when the list is non-empty.
type AssignedTechnician struct {
	ID        int64
	Name      string
	Color     string
	IsPrimary bool
}

// Ticket is a unit of work placed on the calendar or kept in the backlog.
//
// The technician assignment exists in two representations: the legacy single
// fields (TechnicianID/TechnicianName/TechnicianColor) and the Technicians
// list. Canonical tickets keep the legacy fields mirroring the primary entry
// of the list; planning.Normalize is the only place that reconciles the two.
type Ticket struct {
	ID                int64
	Title             string
	Color             string
	Date              *string // YYYY-MM-DD; nil = unplanned/backlog
	Hour              *int    // 0-23, or AllDayHour; nil when unplanned
	Minutes           int     // quarter-hour offset within the hour: 0/15/30/45
	Description       *string
	EstimatedDuration int // minutes, multiple of 15, 15-480; 0 = unset

	TechnicianID    *int64
	TechnicianName  string
	TechnicianColor string
	Technicians     []AssignedTechnician

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Planned reports whether the ticket sits on the calendar. Unplanned tickets
// live in the backlog and are the only ones whose technician list may shrink.
func (t *Ticket) Planned() bool {
	return t.Date != nil
}

// Primary returns the primary assigned technician, falling back to the first
// entry when no IsPrimary flag is set. ok is false for an empty list.
func (t *Ticket) Primary() (AssignedTechnician, bool) {
	if len(t.Technicians) == 0 {
		return AssignedTechnician{}, false
	}
	for _, at := range t.Technicians {
		if at.IsPrimary {
			return at, true
		}
	}
	return t.Technicians[0], true
}

// HasTechnician reports whether the given technician appears in the ticket's
// list or in the legacy single field.
func (t *Ticket) HasTechnician(technicianID int64) bool {
	if t.TechnicianID != nil && *t.TechnicianID == technicianID {
		return true
	}
	for _, at := range t.Technicians {
		if at.ID == technicianID {
			return true
		}
	}
	return false
}
