package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/planning-service/internal/domain"
)

func plannedTicket(id int64, title, date string, hour, minutes, duration int, technicianIDs ...int64) domain.Ticket {
	d := date
	h := hour
	ticket := domain.Ticket{
		ID:                id,
		Title:             title,
		Date:              &d,
		Hour:              &h,
		Minutes:           minutes,
		EstimatedDuration: duration,
	}
	for i, techID := range technicianIDs {
		ticket.Technicians = append(ticket.Technicians, domain.AssignedTechnician{
			ID:        techID,
			Name:      "Tech",
			Color:     "#000000",
			IsPrimary: i == 0,
		})
	}
	if len(technicianIDs) > 0 {
		ticket.TechnicianID = &technicianIDs[0]
	}
	return ticket
}

func TestCheckConflictSameSlot(t *testing.T) {
	date := "2024-01-15"
	existing := plannedTicket(1, "Chaudière", date, 9, 0, 60, 1)
	moved := plannedTicket(2, "Clim", date, 9, 0, 30, 1)

	result := CheckConflict(moved, []domain.Ticket{existing, moved}, date, 9, 0, 1)

	require.True(t, result.HasConflict)
	assert.Contains(t, result.Message, "Chaudière")
	assert.Contains(t, result.Message, "09:00")
}

func TestCheckConflictSymmetry(t *testing.T) {
	date := "2024-01-15"
	a := plannedTicket(1, "A", date, 9, 0, 60, 1)
	b := plannedTicket(2, "B", date, 9, 30, 60, 1)
	all := []domain.Ticket{a, b}

	assert.True(t, CheckConflict(a, all, date, 9, 0, 1).HasConflict)
	assert.True(t, CheckConflict(b, all, date, 9, 30, 1).HasConflict)
}

func TestCheckConflictMinuteResolution(t *testing.T) {
	date := "2024-01-15"
	existing := plannedTicket(1, "Court", date, 9, 0, 15, 1)
	all := []domain.Ticket{existing}

	// 09:10-09:25 overlaps 09:00-09:15 even though both start in hour 9.
	moved := plannedTicket(2, "Autre", date, 9, 0, 15, 1)
	// Quarter snapping keeps minutes in {0,15,30,45}; 09:15 is adjacent, not
	// overlapping, because windows are half-open.
	assert.False(t, CheckConflict(moved, all, date, 9, 15, 1).HasConflict)
	assert.True(t, CheckConflict(moved, all, date, 9, 0, 1).HasConflict)
}

func TestCheckConflictDefaultDuration(t *testing.T) {
	date := "2024-01-15"
	// No estimated duration: both windows default to 30 minutes.
	existing := plannedTicket(1, "Sans durée", date, 10, 0, 0, 1)
	moved := plannedTicket(2, "Déplacé", date, 10, 0, 0, 1)

	assert.True(t, CheckConflict(moved, []domain.Ticket{existing}, date, 10, 15, 1).HasConflict)
	assert.False(t, CheckConflict(moved, []domain.Ticket{existing}, date, 10, 30, 1).HasConflict)
}

func TestCheckConflictScopes(t *testing.T) {
	date := "2024-01-15"
	existing := plannedTicket(1, "Occupé", date, 9, 0, 60, 1)
	all := []domain.Ticket{existing}
	moved := plannedTicket(2, "Déplacé", date, 9, 0, 30, 2)

	t.Run("other technician does not conflict", func(t *testing.T) {
		assert.False(t, CheckConflict(moved, all, date, 9, 0, 2).HasConflict)
	})

	t.Run("other date does not conflict", func(t *testing.T) {
		single := plannedTicket(3, "Déplacé", "2024-01-16", 9, 0, 30, 1)
		assert.False(t, CheckConflict(single, all, "2024-01-16", 9, 0, 1).HasConflict)
	})

	t.Run("ticket never conflicts with itself", func(t *testing.T) {
		assert.False(t, CheckConflict(existing, all, date, 9, 0, 1).HasConflict)
	})
}

func TestCheckConflictIgnoresAllDayTickets(t *testing.T) {
	date := "2024-01-15"
	allDay := plannedTicket(1, "Journée", date, domain.AllDayHour, 0, 480, 1)
	moved := plannedTicket(2, "Déplacé", date, 9, 0, 30, 1)

	assert.False(t, CheckConflict(moved, []domain.Ticket{allDay}, date, 9, 0, 1).HasConflict)
}

func TestCheckConflictMultiTechnician(t *testing.T) {
	date := "2024-01-15"
	// Technician 2 is busy elsewhere; moving a two-technician ticket must
	// check each assignee, so the busy one blocks the whole move.
	busy := plannedTicket(1, "Autre chantier", date, 9, 0, 60, 2)
	moved := plannedTicket(2, "Duo", date, 14, 0, 60, 1, 2)

	result := CheckConflict(moved, []domain.Ticket{busy, moved}, date, 9, 0, 1)

	require.True(t, result.HasConflict)
	assert.Contains(t, result.Message, "Autre chantier")
	assert.Contains(t, result.Message, "pour")

	// A free window for every assignee passes.
	assert.False(t, CheckConflict(moved, []domain.Ticket{busy, moved}, date, 10, 0, 1).HasConflict)
}
