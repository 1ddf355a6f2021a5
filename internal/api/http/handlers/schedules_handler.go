package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/planning-service/internal/api/dto"
	"github.com/spec-kit/planning-service/internal/domain"
	"github.com/spec-kit/planning-service/internal/repository"
	"github.com/spec-kit/planning-service/internal/service"
	apperrors "github.com/spec-kit/planning-service/pkg/util"
)

// SchedulesHandler manages technician availability window endpoints.
type SchedulesHandler struct {
	service *service.ScheduleService
}

// NewSchedulesHandler constructs handler.
func NewSchedulesHandler(scheduleService *service.ScheduleService) *SchedulesHandler {
	return &SchedulesHandler{service: scheduleService}
}

// CreateSchedule POST /schedules.
func (h *SchedulesHandler) CreateSchedule(c *fiber.Ctx) error {
	req, err := parseScheduleRequest(c)
	if err != nil {
		return err
	}
	schedule, err := h.service.CreateSchedule(c.UserContext(), scheduleInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": scheduleResponse(schedule)})
}

// UpdateSchedule PUT /schedules/:id.
func (h *SchedulesHandler) UpdateSchedule(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	req, err := parseScheduleRequest(c)
	if err != nil {
		return err
	}
	schedule, err := h.service.UpdateSchedule(c.UserContext(), id, scheduleInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": scheduleResponse(schedule)})
}

// DeleteSchedule DELETE /schedules/:id.
func (h *SchedulesHandler) DeleteSchedule(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteSchedule(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSchedules GET /schedules. Filters: technician_id, date, date_from,
// date_to, type (comma separated).
func (h *SchedulesHandler) ListSchedules(c *fiber.Ctx) error {
	filter := repository.ScheduleFilter{}

	technicianID, err := parseOptionalID(c.Query("technician_id"))
	if err != nil {
		return err
	}
	filter.TechnicianID = technicianID

	if date := c.Query("date"); date != "" {
		filter.Date = &date
	}
	if from := c.Query("date_from"); from != "" {
		filter.DateFrom = &from
	}
	if to := c.Query("date_to"); to != "" {
		filter.DateTo = &to
	}
	if typeStr := c.Query("type"); typeStr != "" {
		for _, part := range strings.Split(typeStr, ",") {
			filter.Types = append(filter.Types, domain.ScheduleType(strings.TrimSpace(part)))
		}
	}

	list, err := h.service.ListSchedules(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ScheduleResponse, 0, len(list))
	for i := range list {
		items = append(items, scheduleResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseScheduleRequest(c *fiber.Ctx) (dto.ScheduleRequest, error) {
	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TechnicianID <= 0 {
		return req, apperrors.NewValidationError("technician_id required", nil)
	}
	return req, nil
}

func scheduleInput(req dto.ScheduleRequest) service.ScheduleInput {
	return service.ScheduleInput{
		TechnicianID: req.TechnicianID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Type:         req.Type,
		Notes:        req.Notes,
	}
}

func scheduleResponse(schedule *domain.Schedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ID:           schedule.ID,
		TechnicianID: schedule.TechnicianID,
		Date:         schedule.Date,
		StartTime:    schedule.StartTime,
		EndTime:      schedule.EndTime,
		Type:         schedule.Type,
		Notes:        schedule.Notes,
		CreatedAt:    schedule.CreatedAt,
		UpdatedAt:    schedule.UpdatedAt,
	}
}
