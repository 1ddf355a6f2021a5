package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/planning-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Technicians *handlers.TechniciansHandler
	Schedules   *handlers.SchedulesHandler
	Tickets     *handlers.TicketsHandler
	Planning    *handlers.PlanningHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	technicians := app.Group("/technicians")
	technicians.Get("/", cfg.Technicians.ListTechnicians)
	technicians.Get("/active", cfg.Technicians.ListSchedulable)
	technicians.Post("/", cfg.Technicians.CreateTechnician)
	technicians.Get("/:id", cfg.Technicians.GetTechnician)
	technicians.Put("/:id", cfg.Technicians.UpdateTechnician)
	technicians.Delete("/:id", cfg.Technicians.DeactivateTechnician)

	schedules := app.Group("/schedules")
	schedules.Get("/", cfg.Schedules.ListSchedules)
	schedules.Post("/", cfg.Schedules.CreateSchedule)
	schedules.Put("/:id", cfg.Schedules.UpdateSchedule)
	schedules.Delete("/:id", cfg.Schedules.DeleteSchedule)

	tickets := app.Group("/tickets")
	tickets.Get("/backlog", cfg.Tickets.ListBacklog)
	tickets.Get("/calendar", cfg.Tickets.ListCalendar)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", cfg.Tickets.DeleteTicket)
	tickets.Post("/:id/schedule", cfg.Tickets.ScheduleTicket)
	tickets.Post("/:id/unschedule", cfg.Tickets.UnscheduleTicket)
	tickets.Post("/:id/technicians", cfg.Tickets.AddTechnician)
	tickets.Delete("/:id/technicians/:technicianId", cfg.Tickets.RemoveTechnician)

	planning := app.Group("/planning")
	planning.Get("/day", cfg.Planning.Day)
	planning.Get("/availability", cfg.Planning.Availability)
	planning.Post("/conflict-check", cfg.Planning.ConflictCheck)
}
