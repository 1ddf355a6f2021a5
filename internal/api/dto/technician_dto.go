package dto

import "time"

// TechnicianRequest payload for create and update.
type TechnicianRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TechnicianResponse represents one technician row.
type TechnicianResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
