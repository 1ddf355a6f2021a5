package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/planning-service/internal/api/dto"
	"github.com/spec-kit/planning-service/internal/service"
	apperrors "github.com/spec-kit/planning-service/pkg/util"
)

// PlanningHandler serves the calendar's availability and conflict queries.
type PlanningHandler struct {
	service *service.PlanningService
}

// NewPlanningHandler constructs handler.
func NewPlanningHandler(planningService *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{service: planningService}
}

// Day GET /planning/day?date&technician_id. The full availability view for
// one date: status badge, per-hour drop permissions, open slots.
func (h *PlanningHandler) Day(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return apperrors.NewValidationError("date required", nil)
	}
	technicianID, err := parseOptionalID(c.Query("technician_id"))
	if err != nil {
		return err
	}

	day, err := h.service.DayAvailability(c.UserContext(), date, technicianID)
	if err != nil {
		return err
	}

	slots := make([]dto.TimeRangeResponse, 0, len(day.OpenSlots))
	for _, r := range day.OpenSlots {
		slots = append(slots, dto.TimeRangeResponse{Start: r.Start, End: r.End})
	}
	return c.JSON(fiber.Map{"data": dto.DayAvailabilityResponse{
		Date:                day.Date,
		TechnicianID:        day.TechnicianID,
		Status:              day.Status,
		Hours:               day.Hours,
		OpenSlots:           slots,
		UnavailabilityTypes: day.UnavailabilityTypes,
	}})
}

// Availability GET /planning/availability?date_from&date_to&technician_id.
// Month-view badge data for the inclusive range.
func (h *PlanningHandler) Availability(c *fiber.Ctx) error {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	if dateFrom == "" || dateTo == "" {
		return apperrors.NewValidationError("date_from and date_to required", nil)
	}
	technicianID, err := parseOptionalID(c.Query("technician_id"))
	if err != nil {
		return err
	}

	statuses, err := h.service.RangeAvailability(c.UserContext(), dateFrom, dateTo, technicianID)
	if err != nil {
		return err
	}
	available, err := h.service.AvailableDates(c.UserContext(), dateFrom, dateTo, technicianID)
	if err != nil {
		return err
	}

	dates := make([]string, 0, len(available))
	for date := range available {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	return c.JSON(fiber.Map{"data": dto.RangeAvailabilityResponse{
		Statuses:       statuses,
		AvailableDates: dates,
	}})
}

// ConflictCheck POST /planning/conflict-check. Probes a candidate placement
// without mutating; drag handlers call it on hover.
func (h *PlanningHandler) ConflictCheck(c *fiber.Ctx) error {
	var req dto.ConflictCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketID <= 0 || req.TechnicianID <= 0 {
		return apperrors.NewValidationError("ticket_id and technician_id required", nil)
	}

	result, err := h.service.ConflictPreCheck(c.UserContext(), req.TicketID, req.Date, req.Hour, req.Minutes, req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ConflictCheckResponse{
		HasConflict: result.HasConflict,
		Message:     result.Message,
	}})
}
