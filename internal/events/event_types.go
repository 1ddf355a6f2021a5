package events

import (
	"time"

	"github.com/spec-kit/planning-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated          EventType = "ticket_created"
	EventTicketUpdated          EventType = "ticket_updated"
	EventTicketScheduled        EventType = "ticket_scheduled"
	EventTicketUnscheduled      EventType = "ticket_unscheduled"
	EventTicketAssigneesChanged EventType = "ticket_assignees_changed"
	EventTicketDeleted          EventType = "ticket_deleted"
	EventScheduleChanged        EventType = "schedule_changed"
	EventTechnicianChanged      EventType = "technician_changed"
)

// Event represents a domain event emitted by services. Calendar clients use
// these as invalidation signals: any event means the affected entity must be
// refetched.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Entity    string      `json:"entity"`
	EntityID  int64       `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// TicketScheduledPayload payload.
type TicketScheduledPayload struct {
	Date    string `json:"date"`
	Hour    int    `json:"hour"`
	Minutes int    `json:"minutes"`
}

// TicketAssigneesChangedPayload payload.
type TicketAssigneesChangedPayload struct {
	TechnicianIDs []int64 `json:"technician_ids"`
	PrimaryID     *int64  `json:"primary_id,omitempty"`
}

// ScheduleChangedPayload payload.
type ScheduleChangedPayload struct {
	TechnicianID int64               `json:"technician_id"`
	Date         string              `json:"date"`
	Type         domain.ScheduleType `json:"type,omitempty"`
}

// TechnicianChangedPayload payload.
type TechnicianChangedPayload struct {
	Active bool `json:"active"`
}
