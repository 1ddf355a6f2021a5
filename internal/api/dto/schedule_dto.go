package dto

import (
	"time"

	"github.com/spec-kit/planning-service/internal/domain"
)

// ScheduleRequest payload for create and update of one window.
type ScheduleRequest struct {
	TechnicianID int64               `json:"technician_id"`
	Date         string              `json:"date"`
	StartTime    string              `json:"start_time"`
	EndTime      string              `json:"end_time"`
	Type         domain.ScheduleType `json:"type"`
	Notes        *string             `json:"notes"`
}

// ScheduleResponse represents one availability window.
type ScheduleResponse struct {
	ID           int64               `json:"id"`
	TechnicianID int64               `json:"technician_id"`
	Date         string              `json:"date"`
	StartTime    string              `json:"start_time"`
	EndTime      string              `json:"end_time"`
	Type         domain.ScheduleType `json:"type"`
	Notes        *string             `json:"notes"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
