package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/planning-service/internal/domain"
	"github.com/spec-kit/planning-service/internal/events"
	"github.com/spec-kit/planning-service/internal/planning"
	"github.com/spec-kit/planning-service/internal/repository"
	apperrors "github.com/spec-kit/planning-service/pkg/util"
)

// TicketService coordinates ticket workflows: creation, calendar placement,
// technician assignment. Every mutation is gated by the planning rule engine
// before it touches the store, and rule rejections surface as 422 errors
// carrying the rule engine's display message.
type TicketService struct {
	tickets     repository.TicketRepository
	technicians repository.TechnicianRepository
	schedules   repository.ScheduleRepository
	dispatcher  events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	TechnicianRepo repository.TechnicianRepository
	ScheduleRepo   repository.ScheduleRepository
	Dispatcher     events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		technicians: deps.TechnicianRepo,
		schedules:   deps.ScheduleRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload. Tickets start in the
// backlog (unplanned) with zero or one technician.
type TicketCreateInput struct {
	Title             string
	Color             string
	Description       *string
	EstimatedDuration int
	TechnicianID      *int64
}

// TicketUpdateInput describes a partial detail update.
type TicketUpdateInput struct {
	Title             *string
	Color             *string
	Description       *string
	EstimatedDuration *int
}

// PlacementInput describes a calendar drop target.
type PlacementInput struct {
	Date         string
	Hour         int
	Minutes      int
	TechnicianID *int64
}

// CreateTicket validates and persists a new unplanned ticket.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if v := planning.ValidateTicketCreation(input.Title, input.Color); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	if input.Description != nil {
		if v := planning.ValidateDescription(*input.Description, planning.MaxDescriptionLengthCreate); !v.Valid {
			return nil, apperrors.NewRuleViolation(v.Reason, nil)
		}
	}
	duration := input.EstimatedDuration
	if duration == 0 {
		duration = planning.DefaultDurationMinutes
	}
	if v := planning.ValidateDuration(duration); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}

	ticket := domain.Ticket{
		Title:             input.Title,
		Color:             input.Color,
		Description:       input.Description,
		EstimatedDuration: duration,
	}
	if input.TechnicianID != nil {
		technician, err := s.requireActiveTechnician(ctx, *input.TechnicianID)
		if err != nil {
			return nil, err
		}
		ticket.Technicians = []domain.AssignedTechnician{{
			ID:        technician.ID,
			Name:      technician.Name,
			Color:     technician.Color,
			IsPrimary: true,
		}}
	}
	ticket = planning.NormalizeTicket(ticket)

	if err := s.tickets.Create(ctx, &ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishTicketEvent(ctx, events.EventTicketCreated, ticket.ID, nil)
	return &ticket, nil
}

// UpdateTicketDetails applies a partial update to title, color, description
// or duration. The description editor allows the long limit.
func (s *TicketService) UpdateTicketDetails(ctx context.Context, id int64, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.getNormalized(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil || input.Color != nil {
		title := ticket.Title
		color := ticket.Color
		if input.Title != nil {
			title = *input.Title
		}
		if input.Color != nil {
			color = *input.Color
		}
		if v := planning.ValidateTicketCreation(title, color); !v.Valid {
			return nil, apperrors.NewRuleViolation(v.Reason, nil)
		}
		ticket.Title = title
		ticket.Color = color
	}
	if input.Description != nil {
		if v := planning.ValidateDescription(*input.Description, planning.MaxDescriptionLengthUpdate); !v.Valid {
			return nil, apperrors.NewRuleViolation(v.Reason, nil)
		}
		ticket.Description = input.Description
	}
	if input.EstimatedDuration != nil {
		if v := planning.ValidateDuration(*input.EstimatedDuration); !v.Valid {
			return nil, apperrors.NewRuleViolation(v.Reason, nil)
		}
		ticket.EstimatedDuration = *input.EstimatedDuration
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishTicketEvent(ctx, events.EventTicketUpdated, ticket.ID, nil)
	return ticket, nil
}

// ScheduleTicket places a ticket on the calendar at (date, hour, minutes).
// Dropping an unassigned ticket onto a technician's row assigns that
// technician; a ticket that already has technicians keeps them. The placement
// is rejected when it collides with another commitment of any involved
// technician, or when the target hour is explicitly blocked by the
// technician's schedule.
func (s *TicketService) ScheduleTicket(ctx context.Context, id int64, placement PlacementInput) (*domain.Ticket, error) {
	if v := planning.ValidateDate(placement.Date); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	if v := planning.ValidateHour(placement.Hour); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	if v := planning.ValidateMinutes(placement.Minutes); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}

	ticket, err := s.getNormalized(ctx, id)
	if err != nil {
		return nil, err
	}

	// Resolve which technician the drop targets. Unassigned tickets adopt
	// the drop row's technician as their primary.
	targetID, err := s.resolvePlacementTechnician(ctx, ticket, placement.TechnicianID)
	if err != nil {
		return nil, err
	}

	dayTickets, err := s.ticketsOn(ctx, placement.Date)
	if err != nil {
		return nil, err
	}
	if placement.Hour != domain.AllDayHour {
		conflict := planning.CheckConflict(*ticket, dayTickets, placement.Date, placement.Hour, placement.Minutes, targetID)
		if conflict.HasConflict {
			return nil, apperrors.NewSchedulingConflict(conflict.Message, map[string]any{"ticket_id": id})
		}
		if err := s.checkHourOpen(ctx, placement.Date, placement.Hour, targetID); err != nil {
			return nil, err
		}
	}

	date := placement.Date
	hour := placement.Hour
	ticket.Date = &date
	ticket.Hour = &hour
	ticket.Minutes = placement.Minutes
	normalized := planning.NormalizeTicket(*ticket)
	ticket = &normalized

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.tickets.ReplaceTechnicians(ctx, ticket.ID, ticket.Technicians); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishTicketEvent(ctx, events.EventTicketScheduled, ticket.ID, events.TicketScheduledPayload{
		Date:    placement.Date,
		Hour:    placement.Hour,
		Minutes: placement.Minutes,
	})
	return ticket, nil
}

// UnscheduleTicket sends a ticket back to the backlog. This is also the
// required first step before its technician list can shrink.
func (s *TicketService) UnscheduleTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.getNormalized(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket.Date = nil
	ticket.Hour = nil
	ticket.Minutes = 0
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishTicketEvent(ctx, events.EventTicketUnscheduled, ticket.ID, nil)
	return ticket, nil
}

// AddTechnician appends a technician to a planned ticket, up to the cap.
func (s *TicketService) AddTechnician(ctx context.Context, ticketID, technicianID int64) (*domain.Ticket, error) {
	ticket, err := s.getNormalized(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if v := planning.CanAddTechnician(*ticket, technicianID); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, map[string]any{"technician_id": technicianID})
	}
	technician, err := s.requireActiveTechnician(ctx, technicianID)
	if err != nil {
		return nil, err
	}

	ticket.Technicians = append(ticket.Technicians, domain.AssignedTechnician{
		ID:    technician.ID,
		Name:  technician.Name,
		Color: technician.Color,
	})
	return s.saveAssignees(ctx, ticket)
}

// RemoveTechnician removes a technician from an unplanned ticket. When the
// primary leaves, the first remaining entry becomes primary.
func (s *TicketService) RemoveTechnician(ctx context.Context, ticketID, technicianID int64) (*domain.Ticket, error) {
	ticket, err := s.getNormalized(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if v := planning.CanRemoveTechnician(*ticket, technicianID); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, map[string]any{"technician_id": technicianID})
	}

	kept := ticket.Technicians[:0:0]
	removedPrimary := false
	for _, at := range ticket.Technicians {
		if at.ID == technicianID {
			removedPrimary = at.IsPrimary
			continue
		}
		kept = append(kept, at)
	}
	if removedPrimary && len(kept) > 0 {
		kept[0].IsPrimary = true
	}
	ticket.Technicians = kept
	return s.saveAssignees(ctx, ticket)
}

// DeleteTicket removes a ticket permanently.
func (s *TicketService) DeleteTicket(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return apperrors.MapError(err)
	}
	s.publishTicketEvent(ctx, events.EventTicketDeleted, id, nil)
	return nil
}

// GetTicket returns one canonical ticket.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.getNormalized(ctx, id)
}

// ListBacklog returns unplanned tickets.
func (s *TicketService) ListBacklog(ctx context.Context) ([]domain.Ticket, error) {
	unplanned := false
	return s.list(ctx, repository.TicketFilter{Planned: &unplanned})
}

// ListCalendar returns planned tickets in the inclusive date range,
// optionally filtered to one technician.
func (s *TicketService) ListCalendar(ctx context.Context, dateFrom, dateTo string, technicianID *int64) ([]domain.Ticket, error) {
	if v := planning.ValidateDate(dateFrom); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	if v := planning.ValidateDate(dateTo); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	planned := true
	return s.list(ctx, repository.TicketFilter{
		Planned:      &planned,
		DateFrom:     &dateFrom,
		DateTo:       &dateTo,
		TechnicianID: technicianID,
	})
}

func (s *TicketService) list(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	raws, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	tickets := make([]domain.Ticket, 0, len(raws))
	for _, raw := range raws {
		tickets = append(tickets, planning.Normalize(raw))
	}
	return tickets, nil
}

func (s *TicketService) getNormalized(ctx context.Context, id int64) (*domain.Ticket, error) {
	raw, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	ticket := planning.Normalize(*raw)
	return &ticket, nil
}

func (s *TicketService) ticketsOn(ctx context.Context, date string) ([]domain.Ticket, error) {
	return s.list(ctx, repository.TicketFilter{Date: &date})
}

func (s *TicketService) resolvePlacementTechnician(ctx context.Context, ticket *domain.Ticket, dropTechnicianID *int64) (int64, error) {
	if len(ticket.Technicians) > 0 {
		primary, _ := ticket.Primary()
		return primary.ID, nil
	}
	if dropTechnicianID == nil {
		return 0, apperrors.NewRuleViolation("Un technicien est requis pour planifier ce ticket", nil)
	}
	technician, err := s.requireActiveTechnician(ctx, *dropTechnicianID)
	if err != nil {
		return 0, err
	}
	ticket.Technicians = []domain.AssignedTechnician{{
		ID:        technician.ID,
		Name:      technician.Name,
		Color:     technician.Color,
		IsPrimary: true,
	}}
	return technician.ID, nil
}

// checkHourOpen blocks placement on an hour the technician's schedule marks
// as unavailable. A date with no schedule rows at all is unknown, not
// blocked, and passes.
func (s *TicketService) checkHourOpen(ctx context.Context, date string, hour int, technicianID int64) error {
	windows, err := s.schedules.ListWithFilter(ctx, repository.ScheduleFilter{
		TechnicianID: &technicianID,
		Date:         &date,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	if !planning.HasAvailability(date, windows, &technicianID) {
		return nil
	}
	if !planning.IsHourAvailable(hour, date, windows, &technicianID) {
		return apperrors.NewSchedulingConflict("Le technicien n'est pas disponible sur ce créneau", map[string]any{
			"technician_id": technicianID,
			"date":          date,
			"hour":          hour,
		})
	}
	return nil
}

func (s *TicketService) saveAssignees(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	normalized := planning.NormalizeTicket(*ticket)
	if err := s.tickets.Update(ctx, &normalized); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.tickets.ReplaceTechnicians(ctx, normalized.ID, normalized.Technicians); err != nil {
		return nil, apperrors.MapError(err)
	}

	ids := make([]int64, 0, len(normalized.Technicians))
	for _, at := range normalized.Technicians {
		ids = append(ids, at.ID)
	}
	s.publishTicketEvent(ctx, events.EventTicketAssigneesChanged, normalized.ID, events.TicketAssigneesChangedPayload{
		TechnicianIDs: ids,
		PrimaryID:     normalized.TechnicianID,
	})
	return &normalized, nil
}

func (s *TicketService) requireActiveTechnician(ctx context.Context, id int64) (*domain.Technician, error) {
	technician, err := s.technicians.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if !technician.Active {
		return nil, apperrors.NewConflict("technicien inactif", map[string]any{"technician_id": id})
	}
	return technician, nil
}

func (s *TicketService) publishTicketEvent(ctx context.Context, eventType events.EventType, ticketID int64, payload any) {
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     eventType,
		Entity:   "ticket",
		EntityID: ticketID,
		Payload:  payload,
	})
}
