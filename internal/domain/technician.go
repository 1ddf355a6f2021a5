package domain

import "time"

// UnassignedName is the sentinel technician representing absence of assignment.
// It is excluded from active-technician listings used for scheduling.
const UnassignedName = "Non assigné"

// UnassignedColor is the display color used when a ticket has no technician.
const UnassignedColor = "#6B7280"

// Technician models a field technician that tickets are scheduled against.
type Technician struct {
	ID        int64
	Name      string
	Color     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsUnassignedSentinel reports whether this row is the "Non assigné" placeholder.
func (t *Technician) IsUnassignedSentinel() bool {
	return t.Name == UnassignedName
}
