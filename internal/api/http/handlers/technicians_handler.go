package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/planning-service/internal/api/dto"
	"github.com/spec-kit/planning-service/internal/domain"
	"github.com/spec-kit/planning-service/internal/service"
	apperrors "github.com/spec-kit/planning-service/pkg/util"
)

// TechniciansHandler manages technician administration endpoints.
type TechniciansHandler struct {
	service *service.TechnicianService
}

// NewTechniciansHandler constructs handler.
func NewTechniciansHandler(technicianService *service.TechnicianService) *TechniciansHandler {
	return &TechniciansHandler{service: technicianService}
}

// CreateTechnician POST /technicians.
func (h *TechniciansHandler) CreateTechnician(c *fiber.Ctx) error {
	var req dto.TechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	technician, err := h.service.CreateTechnician(c.UserContext(), service.TechnicianInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": technicianResponse(technician)})
}

// UpdateTechnician PUT /technicians/:id.
func (h *TechniciansHandler) UpdateTechnician(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	technician, err := h.service.UpdateTechnician(c.UserContext(), id, service.TechnicianInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": technicianResponse(technician)})
}

// DeactivateTechnician DELETE /technicians/:id. Soft delete; tickets keep
// their references.
func (h *TechniciansHandler) DeactivateTechnician(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeactivateTechnician(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetTechnician GET /technicians/:id.
func (h *TechniciansHandler) GetTechnician(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	technician, err := h.service.GetTechnician(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": technicianResponse(technician)})
}

// ListTechnicians GET /technicians.
func (h *TechniciansHandler) ListTechnicians(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive", false)
	list, err := h.service.ListTechnicians(c.UserContext(), includeInactive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": technicianResponses(list)})
}

// ListSchedulable GET /technicians/active. Active technicians minus the
// unassigned placeholder, i.e. the rows the calendar displays.
func (h *TechniciansHandler) ListSchedulable(c *fiber.Ctx) error {
	list, err := h.service.ListSchedulable(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": technicianResponses(list)})
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+param, nil)
	}
	return id, nil
}

func parseOptionalID(val string) (*int64, error) {
	if val == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewValidationError("invalid technician_id", nil)
	}
	return &id, nil
}

func technicianResponse(technician *domain.Technician) dto.TechnicianResponse {
	return dto.TechnicianResponse{
		ID:        technician.ID,
		Name:      technician.Name,
		Color:     technician.Color,
		Active:    technician.Active,
		CreatedAt: technician.CreatedAt,
		UpdatedAt: technician.UpdatedAt,
	}
}

func technicianResponses(list []domain.Technician) []dto.TechnicianResponse {
	items := make([]dto.TechnicianResponse, 0, len(list))
	for i := range list {
		items = append(items, technicianResponse(&list[i]))
	}
	return items
}
