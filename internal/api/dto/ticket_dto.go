package dto

import "time"

// CreateTicketRequest payload. New tickets start unplanned; technician_id is
// an optional initial assignment.
type CreateTicketRequest struct {
	Title             string  `json:"title"`
	Color             string  `json:"color"`
	Description       *string `json:"description"`
	EstimatedDuration int     `json:"estimated_duration"`
	TechnicianID      *int64  `json:"technician_id"`
}

// UpdateTicketRequest is a partial detail update; absent fields keep their
// current value.
type UpdateTicketRequest struct {
	Title             *string `json:"title"`
	Color             *string `json:"color"`
	Description       *string `json:"description"`
	EstimatedDuration *int    `json:"estimated_duration"`
}

// ScheduleTicketRequest describes a calendar drop target. hour -1 means the
// all-day row; technician_id is the row the ticket was dropped on and is only
// needed when the ticket has no technician yet.
type ScheduleTicketRequest struct {
	Date         string `json:"date"`
	Hour         int    `json:"hour"`
	Minutes      int    `json:"minutes"`
	TechnicianID *int64 `json:"technician_id"`
}

// AssignTechnicianRequest payload for adding one technician to a ticket.
type AssignTechnicianRequest struct {
	TechnicianID int64 `json:"technician_id"`
}

// AssignedTechnicianResponse is one entry of a ticket's technician list.
type AssignedTechnicianResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsPrimary bool   `json:"is_primary"`
}

// TicketResponse is the canonical ticket shape the calendar consumes. The
// top-level technician fields mirror the primary entry of technicians.
type TicketResponse struct {
	ID                int64                        `json:"id"`
	Title             string                       `json:"title"`
	Color             string                       `json:"color"`
	Date              *string                      `json:"date"`
	Hour              *int                         `json:"hour"`
	Minutes           int                          `json:"minutes"`
	Description       *string                      `json:"description"`
	EstimatedDuration int                          `json:"estimated_duration"`
	DurationLabel     string                       `json:"duration_label"`
	Planned           bool                         `json:"planned"`
	TechnicianID      *int64                       `json:"technician_id"`
	TechnicianName    string                       `json:"technician_name"`
	TechnicianColor   string                       `json:"technician_color"`
	Technicians       []AssignedTechnicianResponse `json:"technicians"`
	CreatedAt         time.Time                    `json:"created_at"`
	UpdatedAt         time.Time                    `json:"updated_at"`
}
