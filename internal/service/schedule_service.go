package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/planning-service/internal/domain"
	"github.com/spec-kit/planning-service/internal/events"
	"github.com/spec-kit/planning-service/internal/planning"
	"github.com/spec-kit/planning-service/internal/repository"
	apperrors "github.com/spec-kit/planning-service/pkg/util"
)

// ScheduleService manages technician availability windows.
type ScheduleService struct {
	schedules   repository.ScheduleRepository
	technicians repository.TechnicianRepository
	dispatcher  events.Dispatcher
}

// NewScheduleService creates the service.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, technicianRepo repository.TechnicianRepository, dispatcher events.Dispatcher) *ScheduleService {
	return &ScheduleService{
		schedules:   scheduleRepo,
		technicians: technicianRepo,
		dispatcher:  dispatcher,
	}
}

// ScheduleInput describes create/update payloads for one window.
type ScheduleInput struct {
	TechnicianID int64
	Date         string
	StartTime    string
	EndTime      string
	Type         domain.ScheduleType
	Notes        *string
}

// CreateSchedule validates and persists a new window.
func (s *ScheduleService) CreateSchedule(ctx context.Context, input ScheduleInput) (*domain.Schedule, error) {
	if v := planning.ValidateScheduleWindow(input.Date, input.StartTime, input.EndTime, input.Type); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	if _, err := s.technicians.GetByID(ctx, input.TechnicianID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": input.TechnicianID})
		}
		return nil, apperrors.MapError(err)
	}

	schedule := &domain.Schedule{
		TechnicianID: input.TechnicianID,
		Date:         input.Date,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Type:         input.Type,
		Notes:        input.Notes,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishChange(ctx, schedule)
	return schedule, nil
}

// UpdateSchedule validates and applies changes to an existing window.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, id int64, input ScheduleInput) (*domain.Schedule, error) {
	if v := planning.ValidateScheduleWindow(input.Date, input.StartTime, input.EndTime, input.Type); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("schedule", map[string]any{"schedule_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	schedule.TechnicianID = input.TechnicianID
	schedule.Date = input.Date
	schedule.StartTime = input.StartTime
	schedule.EndTime = input.EndTime
	schedule.Type = input.Type
	schedule.Notes = input.Notes
	if err := s.schedules.Update(ctx, schedule); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishChange(ctx, schedule)
	return schedule, nil
}

// DeleteSchedule removes a window.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, id int64) error {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("schedule", map[string]any{"schedule_id": id})
		}
		return apperrors.MapError(err)
	}
	if err := s.schedules.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publishChange(ctx, schedule)
	return nil
}

// ListSchedules returns windows matching the filter.
func (s *ScheduleService) ListSchedules(ctx context.Context, filter repository.ScheduleFilter) ([]domain.Schedule, error) {
	list, err := s.schedules.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

func (s *ScheduleService) publishChange(ctx context.Context, schedule *domain.Schedule) {
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventScheduleChanged,
		Entity:   "schedule",
		EntityID: schedule.ID,
		Payload: events.ScheduleChangedPayload{
			TechnicianID: schedule.TechnicianID,
			Date:         schedule.Date,
			Type:         schedule.Type,
		},
	})
}

// publishEvent fills in event identity and timestamp before dispatch. Event
// delivery is best-effort; a failed handler never fails the mutation.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = dispatcher.Publish(ctx, event)
}
