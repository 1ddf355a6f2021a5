package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/planning-service/internal/domain"
	"github.com/spec-kit/planning-service/internal/planning"
)

func newTestPlanningService() (*PlanningService, *fakeTicketRepo, *fakeScheduleRepo) {
	ticketRepo := newFakeTicketRepo()
	scheduleRepo := &fakeScheduleRepo{}
	return NewPlanningService(ticketRepo, scheduleRepo), ticketRepo, scheduleRepo
}

func TestDayAvailability(t *testing.T) {
	svc, _, scheduleRepo := newTestPlanningService()
	ctx := context.Background()
	techID := int64(1)

	scheduleRepo.schedules = []domain.Schedule{
		{ID: 1, TechnicianID: 1, Date: "2024-01-15", StartTime: "08:00", EndTime: "17:00", Type: domain.ScheduleTypeAvailable},
		{ID: 2, TechnicianID: 1, Date: "2024-01-15", StartTime: "12:00", EndTime: "13:00", Type: domain.ScheduleTypeBreak},
	}

	day, err := svc.DayAvailability(ctx, "2024-01-15", &techID)
	require.NoError(t, err)

	assert.Equal(t, planning.StatusPartial, day.Status)
	assert.True(t, day.Hours[9])
	assert.False(t, day.Hours[12])
	// Grid ends at 19:00; 17 and 18 are past the available window.
	assert.False(t, day.Hours[17])
	assert.Equal(t, []planning.TimeRange{{Start: 8, End: 17}}, day.OpenSlots)
	assert.Equal(t, []domain.ScheduleType{domain.ScheduleTypeBreak}, day.UnavailabilityTypes)
}

func TestDayAvailabilityUnknown(t *testing.T) {
	svc, _, _ := newTestPlanningService()
	techID := int64(1)

	day, err := svc.DayAvailability(context.Background(), "2024-01-15", &techID)
	require.NoError(t, err)
	assert.Equal(t, planning.StatusUnknown, day.Status)
	assert.Empty(t, day.OpenSlots)
}

func TestRangeAvailability(t *testing.T) {
	svc, _, scheduleRepo := newTestPlanningService()
	techID := int64(1)

	scheduleRepo.schedules = []domain.Schedule{
		{ID: 1, TechnicianID: 1, Date: "2024-01-15", StartTime: "08:00", EndTime: "17:00", Type: domain.ScheduleTypeAvailable},
		{ID: 2, TechnicianID: 1, Date: "2024-01-16", StartTime: "08:00", EndTime: "17:00", Type: domain.ScheduleTypeVacation},
	}

	statuses, err := svc.RangeAvailability(context.Background(), "2024-01-15", "2024-01-17", &techID)
	require.NoError(t, err)

	assert.Equal(t, planning.StatusAvailable, statuses["2024-01-15"])
	assert.Equal(t, planning.StatusUnavailable, statuses["2024-01-16"])
	assert.Equal(t, planning.StatusUnknown, statuses["2024-01-17"])
	assert.Len(t, statuses, 3)
}

func TestConflictPreCheck(t *testing.T) {
	svc, ticketRepo, _ := newTestPlanningService()
	ctx := context.Background()

	date := "2024-01-15"
	hour := 9
	existing := domain.Ticket{
		Title: "Occupé", Color: "#FF5733", Date: &date, Hour: &hour,
		EstimatedDuration: 60,
		Technicians: []domain.AssignedTechnician{
			{ID: 1, Name: "Alice", Color: "#111111", IsPrimary: true},
		},
	}
	require.NoError(t, ticketRepo.Create(ctx, &existing))

	candidate := domain.Ticket{Title: "Candidat", Color: "#FF5733", EstimatedDuration: 30}
	require.NoError(t, ticketRepo.Create(ctx, &candidate))

	result, err := svc.ConflictPreCheck(ctx, candidate.ID, date, 9, 30, 1)
	require.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.Contains(t, result.Message, "Occupé")

	clear, err := svc.ConflictPreCheck(ctx, candidate.ID, date, 11, 0, 1)
	require.NoError(t, err)
	assert.False(t, clear.HasConflict)
}
