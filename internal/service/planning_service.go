package service

import (
	"context"
	"time"

	"github.com/spec-kit/planning-service/internal/domain"
	"github.com/spec-kit/planning-service/internal/planning"
	"github.com/spec-kit/planning-service/internal/repository"
	apperrors "github.com/spec-kit/planning-service/pkg/util"
)

// PlanningService serves the calendar's read queries: availability badges,
// open slots and conflict pre-checks. It fetches a snapshot from the store
// and hands it to the pure planning functions, so every call works on fresh
// data and nothing is memoized between calls.
type PlanningService struct {
	tickets   repository.TicketRepository
	schedules repository.ScheduleRepository
}

// NewPlanningService constructs the service.
func NewPlanningService(ticketRepo repository.TicketRepository, scheduleRepo repository.ScheduleRepository) *PlanningService {
	return &PlanningService{tickets: ticketRepo, schedules: scheduleRepo}
}

// DayAvailability is one technician's day as the calendar renders it.
type DayAvailability struct {
	Date                string
	TechnicianID        *int64
	Status              planning.AvailabilityStatus
	Hours               map[int]bool
	OpenSlots           []planning.TimeRange
	UnavailabilityTypes []domain.ScheduleType
}

// DayAvailability computes the availability view for one date, optionally
// filtered to one technician. Hours covers the visible grid (07-18).
func (s *PlanningService) DayAvailability(ctx context.Context, date string, technicianID *int64) (*DayAvailability, error) {
	if v := planning.ValidateDate(date); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	windows, err := s.schedules.ListWithFilter(ctx, repository.ScheduleFilter{
		TechnicianID: technicianID,
		Date:         &date,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	hours := make(map[int]bool, planning.GridEndHour-planning.GridStartHour)
	for hour := planning.GridStartHour; hour < planning.GridEndHour; hour++ {
		hours[hour] = planning.IsHourAvailable(hour, date, windows, technicianID)
	}

	return &DayAvailability{
		Date:                date,
		TechnicianID:        technicianID,
		Status:              planning.DateAvailabilityStatus(date, windows, technicianID),
		Hours:               hours,
		OpenSlots:           planning.AvailableSlots(date, windows, technicianID),
		UnavailabilityTypes: planning.UnavailabilityTypes(date, windows, technicianID),
	}, nil
}

// RangeAvailability computes the per-date status for the inclusive range, for
// month-view badges.
func (s *PlanningService) RangeAvailability(ctx context.Context, dateFrom, dateTo string, technicianID *int64) (map[string]planning.AvailabilityStatus, error) {
	if v := planning.ValidateDate(dateFrom); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	if v := planning.ValidateDate(dateTo); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	windows, err := s.schedules.ListWithFilter(ctx, repository.ScheduleFilter{
		TechnicianID: technicianID,
		DateFrom:     &dateFrom,
		DateTo:       &dateTo,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	statuses := make(map[string]planning.AvailabilityStatus)
	for _, date := range datesBetween(dateFrom, dateTo) {
		statuses[date] = planning.DateAvailabilityStatus(date, windows, technicianID)
	}
	return statuses, nil
}

// AvailableDates lists the dates in the range that have at least one
// available window.
func (s *PlanningService) AvailableDates(ctx context.Context, dateFrom, dateTo string, technicianID *int64) (map[string]struct{}, error) {
	windows, err := s.schedules.ListWithFilter(ctx, repository.ScheduleFilter{
		TechnicianID: technicianID,
		DateFrom:     &dateFrom,
		DateTo:       &dateTo,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return planning.AvailableDates(windows, dateFrom, dateTo, technicianID), nil
}

// ConflictPreCheck runs the conflict detector for a candidate placement
// without mutating anything; drag-drop handlers call it on hover.
func (s *PlanningService) ConflictPreCheck(ctx context.Context, ticketID int64, date string, hour, minutes int, technicianID int64) (planning.ConflictResult, error) {
	if v := planning.ValidateDate(date); !v.Valid {
		return planning.ConflictResult{}, apperrors.NewRuleViolation(v.Reason, nil)
	}
	raw, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return planning.ConflictResult{}, apperrors.MapError(err)
	}
	ticket := planning.Normalize(*raw)

	raws, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{Date: &date})
	if err != nil {
		return planning.ConflictResult{}, apperrors.MapError(err)
	}
	dayTickets := make([]domain.Ticket, 0, len(raws))
	for _, r := range raws {
		dayTickets = append(dayTickets, planning.Normalize(r))
	}

	return planning.CheckConflict(ticket, dayTickets, date, hour, minutes, technicianID), nil
}

// datesBetween expands an inclusive YYYY-MM-DD range into individual dates.
// Bounds are validated by the caller; a reversed range yields nothing.
func datesBetween(dateFrom, dateTo string) []string {
	start, err := time.Parse("2006-01-02", dateFrom)
	if err != nil {
		return nil
	}
	end, err := time.Parse("2006-01-02", dateTo)
	if err != nil {
		return nil
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}
