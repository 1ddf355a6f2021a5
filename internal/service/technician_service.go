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

// TechnicianService handles technician administration. Technicians are only
// ever deactivated, never deleted, so historical tickets keep valid
// references.
type TechnicianService struct {
	technicians repository.TechnicianRepository
	dispatcher  events.Dispatcher
}

// NewTechnicianService creates the service.
func NewTechnicianService(technicianRepo repository.TechnicianRepository, dispatcher events.Dispatcher) *TechnicianService {
	return &TechnicianService{technicians: technicianRepo, dispatcher: dispatcher}
}

// TechnicianInput describes create/update payloads.
type TechnicianInput struct {
	Name  string
	Color string
}

// CreateTechnician validates and persists a new active technician.
func (s *TechnicianService) CreateTechnician(ctx context.Context, input TechnicianInput) (*domain.Technician, error) {
	if v := planning.ValidateTechnician(input.Name, input.Color); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	technician := &domain.Technician{
		Name:   input.Name,
		Color:  input.Color,
		Active: true,
	}
	if err := s.technicians.Create(ctx, technician); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishChange(ctx, technician)
	return technician, nil
}

// UpdateTechnician validates and applies name/color changes.
func (s *TechnicianService) UpdateTechnician(ctx context.Context, id int64, input TechnicianInput) (*domain.Technician, error) {
	if v := planning.ValidateTechnician(input.Name, input.Color); !v.Valid {
		return nil, apperrors.NewRuleViolation(v.Reason, nil)
	}
	technician, err := s.technicians.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	technician.Name = input.Name
	technician.Color = input.Color
	if err := s.technicians.Update(ctx, technician); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishChange(ctx, technician)
	return technician, nil
}

// DeactivateTechnician soft-deletes a technician.
func (s *TechnicianService) DeactivateTechnician(ctx context.Context, id int64) error {
	if err := s.technicians.Deactivate(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("technician", map[string]any{"technician_id": id})
		}
		return apperrors.MapError(err)
	}
	s.publishChange(ctx, &domain.Technician{ID: id})
	return nil
}

// GetTechnician fetches one technician.
func (s *TechnicianService) GetTechnician(ctx context.Context, id int64) (*domain.Technician, error) {
	technician, err := s.technicians.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return technician, nil
}

// ListTechnicians returns all technicians, optionally including deactivated
// ones.
func (s *TechnicianService) ListTechnicians(ctx context.Context, includeInactive bool) ([]domain.Technician, error) {
	list, err := s.technicians.List(ctx, includeInactive)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// ListSchedulable returns the technicians the calendar schedules against:
// active ones minus the unassigned sentinel.
func (s *TechnicianService) ListSchedulable(ctx context.Context) ([]domain.Technician, error) {
	list, err := s.technicians.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

func (s *TechnicianService) publishChange(ctx context.Context, technician *domain.Technician) {
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTechnicianChanged,
		Entity:   "technician",
		EntityID: technician.ID,
		Payload:  events.TechnicianChangedPayload{Active: technician.Active},
	})
}
