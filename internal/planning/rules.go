package planning

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spec-kit/planning-service/internal/domain"
)

// Description limits differ by call site: ticket creation keeps the short
// limit, the dedicated description editor the long one.
const (
	MaxTitleLength             = 255
	MaxDescriptionLengthCreate = 500
	MaxDescriptionLengthUpdate = 1000
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validation is the outcome of a rule check. Rule violations are routine UI
// feedback, so they are returned as values rather than errors; Reason is
// ready for inline display.
type Validation struct {
	Valid  bool
	Reason string
}

func valid() Validation {
	return Validation{Valid: true}
}

func invalid(reason string) Validation {
	return Validation{Valid: false, Reason: reason}
}

// CanAddTechnician gates appending a technician to a ticket's list.
//
// Note the asymmetry with CanRemoveTechnician: adding requires the ticket to
// be planned while removing requires it to be unplanned. This mirrors the
// established calendar behavior and is preserved deliberately.
func CanAddTechnician(ticket domain.Ticket, technicianID int64) Validation {
	if !ticket.Planned() {
		return invalid("Le ticket doit être planifié avant d'ajouter un technicien")
	}
	if ticket.HasTechnician(technicianID) {
		return invalid("Ce technicien est déjà assigné au ticket")
	}
	if len(ticket.Technicians) >= domain.MaxTechniciansPerTicket {
		return invalid(fmt.Sprintf("Maximum %d techniciens par ticket", domain.MaxTechniciansPerTicket))
	}
	return valid()
}

// CanRemoveTechnician gates removing a technician from a ticket's list. A
// planned ticket must be taken off the calendar first, and the last
// technician can never be removed.
func CanRemoveTechnician(ticket domain.Ticket, technicianID int64) Validation {
	if ticket.Planned() {
		return invalid("Retirez d'abord le ticket du calendrier avant de modifier les techniciens")
	}
	if !ticket.HasTechnician(technicianID) {
		return invalid("Ce technicien n'est pas assigné au ticket")
	}
	if len(ticket.Technicians) <= 1 {
		return invalid("Impossible de retirer le dernier technicien du ticket")
	}
	return valid()
}

// ValidateTicketCreation checks the fields required to create a ticket.
func ValidateTicketCreation(title, color string) Validation {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return invalid("Le titre est requis")
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return invalid(fmt.Sprintf("Le titre ne doit pas dépasser %d caractères", MaxTitleLength))
	}
	if !hexColorPattern.MatchString(color) {
		return invalid("La couleur doit être au format hexadécimal #RRGGBB")
	}
	return valid()
}

// ValidateDuration accepts quarter-hour durations between 15 minutes and 8
// hours.
func ValidateDuration(minutes int) Validation {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return invalid(fmt.Sprintf("La durée doit être comprise entre %d et %d minutes", MinDurationMinutes, MaxDurationMinutes))
	}
	if minutes%SlotMinutes != 0 {
		return invalid(fmt.Sprintf("La durée doit être un multiple de %d minutes", SlotMinutes))
	}
	return valid()
}

// ValidateDescription enforces the caller-supplied length limit.
func ValidateDescription(description string, limit int) Validation {
	if utf8.RuneCountInString(description) > limit {
		return invalid(fmt.Sprintf("La description ne doit pas dépasser %d caractères", limit))
	}
	return valid()
}

// ValidateDate accepts calendar dates in YYYY-MM-DD form.
func ValidateDate(date string) Validation {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return invalid("La date doit être au format AAAA-MM-JJ")
	}
	return valid()
}

// ValidateHour accepts 0-23 plus the all-day sentinel.
func ValidateHour(hour int) Validation {
	if hour == domain.AllDayHour {
		return valid()
	}
	if hour < 0 || hour > 23 {
		return invalid("L'heure doit être comprise entre 0 et 23")
	}
	return valid()
}

// MaxTechnicianNameLength bounds technician names.
const MaxTechnicianNameLength = 100

// ValidateTechnician checks the fields required to create or update a
// technician.
func ValidateTechnician(name, color string) Validation {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalid("Le nom est requis")
	}
	if utf8.RuneCountInString(trimmed) > MaxTechnicianNameLength {
		return invalid(fmt.Sprintf("Le nom ne doit pas dépasser %d caractères", MaxTechnicianNameLength))
	}
	if !hexColorPattern.MatchString(color) {
		return invalid("La couleur doit être au format hexadécimal #RRGGBB")
	}
	return valid()
}

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)

// ValidateScheduleWindow checks a schedule row before it is written: valid
// date, well-formed times and a non-empty window. Zero-padded HH:MM compares
// correctly as a string.
func ValidateScheduleWindow(date, startTime, endTime string, scheduleType domain.ScheduleType) Validation {
	if v := ValidateDate(date); !v.Valid {
		return v
	}
	if !clockPattern.MatchString(startTime) || !clockPattern.MatchString(endTime) {
		return invalid("Les horaires doivent être au format HH:MM")
	}
	if startTime >= endTime {
		return invalid("L'heure de début doit précéder l'heure de fin")
	}
	switch scheduleType {
	case domain.ScheduleTypeAvailable, domain.ScheduleTypeUnavailable,
		domain.ScheduleTypeVacation, domain.ScheduleTypeSickLeave, domain.ScheduleTypeBreak:
		return valid()
	}
	return invalid("Type de créneau invalide")
}

// ValidateMinutes accepts quarter-hour offsets within the hour.
func ValidateMinutes(minutes int) Validation {
	switch minutes {
	case 0, 15, 30, 45:
		return valid()
	}
	return invalid("Les minutes doivent être 0, 15, 30 ou 45")
}
