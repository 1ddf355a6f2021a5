package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/planning-service/internal/api/dto"
	"github.com/spec-kit/planning-service/internal/domain"
	"github.com/spec-kit/planning-service/internal/planning"
	"github.com/spec-kit/planning-service/internal/service"
	apperrors "github.com/spec-kit/planning-service/pkg/util"
)

// TicketsHandler manages ticket lifecycle endpoints: backlog CRUD, calendar
// placement and technician assignment.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		Title:             req.Title,
		Color:             req.Color,
		Description:       req.Description,
		EstimatedDuration: req.EstimatedDuration,
		TechnicianID:      req.TechnicianID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListBacklog GET /tickets/backlog. Unplanned tickets waiting to be dropped
// on the calendar.
func (h *TicketsHandler) ListBacklog(c *fiber.Ctx) error {
	tickets, err := h.service.ListBacklog(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// ListCalendar GET /tickets/calendar?date_from&date_to&technician_id. Planned
// tickets in the inclusive range.
func (h *TicketsHandler) ListCalendar(c *fiber.Ctx) error {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	if dateFrom == "" || dateTo == "" {
		return apperrors.NewValidationError("date_from and date_to required", nil)
	}
	technicianID, err := parseOptionalID(c.Query("technician_id"))
	if err != nil {
		return err
	}
	tickets, err := h.service.ListCalendar(c.UserContext(), dateFrom, dateTo, technicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicket PATCH /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateTicketDetails(c.UserContext(), id, service.TicketUpdateInput{
		Title:             req.Title,
		Color:             req.Color,
		Description:       req.Description,
		EstimatedDuration: req.EstimatedDuration,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteTicket(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ScheduleTicket POST /tickets/:id/schedule. Places the ticket on the
// calendar; conflicts and blocked hours reject the drop.
func (h *TicketsHandler) ScheduleTicket(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ScheduleTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.ScheduleTicket(c.UserContext(), id, service.PlacementInput{
		Date:         req.Date,
		Hour:         req.Hour,
		Minutes:      req.Minutes,
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UnscheduleTicket POST /tickets/:id/unschedule. Sends the ticket back to the
// backlog.
func (h *TicketsHandler) UnscheduleTicket(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.UnscheduleTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AddTechnician POST /tickets/:id/technicians.
func (h *TicketsHandler) AddTechnician(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AssignTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TechnicianID <= 0 {
		return apperrors.NewValidationError("technician_id required", nil)
	}
	ticket, err := h.service.AddTechnician(c.UserContext(), id, req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// RemoveTechnician DELETE /tickets/:id/technicians/:technicianId.
func (h *TicketsHandler) RemoveTechnician(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	technicianID, err := parseID(c, "technicianId")
	if err != nil {
		return err
	}
	ticket, err := h.service.RemoveTechnician(c.UserContext(), id, technicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	technicians := make([]dto.AssignedTechnicianResponse, 0, len(ticket.Technicians))
	for _, at := range ticket.Technicians {
		technicians = append(technicians, dto.AssignedTechnicianResponse{
			ID:        at.ID,
			Name:      at.Name,
			Color:     at.Color,
			IsPrimary: at.IsPrimary,
		})
	}
	return dto.TicketResponse{
		ID:                ticket.ID,
		Title:             ticket.Title,
		Color:             ticket.Color,
		Date:              ticket.Date,
		Hour:              ticket.Hour,
		Minutes:           ticket.Minutes,
		Description:       ticket.Description,
		EstimatedDuration: ticket.EstimatedDuration,
		DurationLabel:     planning.FormatDuration(ticket.EstimatedDuration),
		Planned:           ticket.Planned(),
		TechnicianID:      ticket.TechnicianID,
		TechnicianName:    ticket.TechnicianName,
		TechnicianColor:   ticket.TechnicianColor,
		Technicians:       technicians,
		CreatedAt:         ticket.CreatedAt,
		UpdatedAt:         ticket.UpdatedAt,
	}
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return items
}
