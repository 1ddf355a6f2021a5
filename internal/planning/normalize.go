package planning

import (
	"time"

	"github.com/spec-kit/planning-service/internal/domain"
)

// Defaults applied while normalizing partially filled ticket rows.
const (
	DefaultTitle = "Sans titre"
	DefaultColor = "#fff3cd"
)

// RawTicket is a ticket row as the store hands it over, before the two
// technician representations are reconciled. Older rows only carry the legacy
// single-technician fields, newer ones the Technicians list; some carry both.
type RawTicket struct {
	ID                int64
	Title             string
	Color             string
	Date              *string
	Hour              *int
	Minutes           int
	Description       *string
	EstimatedDuration int

	TechnicianID *int64
	Technician   *domain.Technician
	Technicians  []domain.AssignedTechnician

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize converts a raw row into the canonical Ticket shape. The output
// always keeps the legacy single-technician fields mirroring the primary
// entry of the Technicians list, so the rest of the system never has to look
// at both representations. Pure function, idempotent.
func Normalize(raw RawTicket) domain.Ticket {
	ticket := domain.Ticket{
		ID:                raw.ID,
		Title:             raw.Title,
		Color:             raw.Color,
		Date:              raw.Date,
		Hour:              raw.Hour,
		Minutes:           raw.Minutes,
		Description:       raw.Description,
		EstimatedDuration: raw.EstimatedDuration,
		CreatedAt:         raw.CreatedAt,
		UpdatedAt:         raw.UpdatedAt,
	}
	if ticket.Title == "" {
		ticket.Title = DefaultTitle
	}
	if ticket.Color == "" {
		ticket.Color = DefaultColor
	}

	switch {
	case len(raw.Technicians) > 0:
		ticket.Technicians = append([]domain.AssignedTechnician(nil), raw.Technicians...)
		primary := ticket.Technicians[0]
		for _, at := range ticket.Technicians {
			if at.IsPrimary {
				primary = at
				break
			}
		}
		id := primary.ID
		ticket.TechnicianID = &id
		ticket.TechnicianName = primary.Name
		ticket.TechnicianColor = primary.Color

	case raw.TechnicianID != nil && raw.Technician != nil:
		id := *raw.TechnicianID
		ticket.TechnicianID = &id
		ticket.TechnicianName = raw.Technician.Name
		ticket.TechnicianColor = raw.Technician.Color
		ticket.Technicians = []domain.AssignedTechnician{{
			ID:        id,
			Name:      raw.Technician.Name,
			Color:     raw.Technician.Color,
			IsPrimary: true,
		}}

	default:
		ticket.TechnicianID = nil
		ticket.TechnicianName = domain.UnassignedName
		ticket.TechnicianColor = domain.UnassignedColor
		ticket.Technicians = []domain.AssignedTechnician{}
	}

	return ticket
}

// NormalizeTicket re-runs normalization on an already canonical ticket, for
// callers that mutated the technician list and need the legacy mirror fields
// brought back in sync.
func NormalizeTicket(t domain.Ticket) domain.Ticket {
	raw := RawTicket{
		ID:                t.ID,
		Title:             t.Title,
		Color:             t.Color,
		Date:              t.Date,
		Hour:              t.Hour,
		Minutes:           t.Minutes,
		Description:       t.Description,
		EstimatedDuration: t.EstimatedDuration,
		Technicians:       t.Technicians,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if len(t.Technicians) == 0 && t.TechnicianID != nil {
		raw.TechnicianID = t.TechnicianID
		raw.Technician = &domain.Technician{
			ID:    *t.TechnicianID,
			Name:  t.TechnicianName,
			Color: t.TechnicianColor,
		}
	}
	return Normalize(raw)
}
