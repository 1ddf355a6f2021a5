package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/planning-service/internal/domain"
	"github.com/spec-kit/planning-service/internal/events"
	"github.com/spec-kit/planning-service/internal/planning"
	"github.com/spec-kit/planning-service/internal/repository"
)

// In-memory repository fakes for service tests.

type fakeTicketRepo struct {
	nextID      int64
	tickets     map[int64]domain.Ticket
	assignments map[int64][]domain.AssignedTechnician
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets:     make(map[int64]domain.Ticket),
		assignments: make(map[int64][]domain.AssignedTechnician),
	}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.nextID++
	ticket.ID = f.nextID
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	f.tickets[ticket.ID] = *ticket
	f.assignments[ticket.ID] = append([]domain.AssignedTechnician(nil), ticket.Technicians...)
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) ReplaceTechnicians(_ context.Context, ticketID int64, technicians []domain.AssignedTechnician) error {
	if _, ok := f.tickets[ticketID]; !ok {
		return pgx.ErrNoRows
	}
	f.assignments[ticketID] = append([]domain.AssignedTechnician(nil), technicians...)
	return nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tickets, id)
	delete(f.assignments, id)
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int64) (*planning.RawTicket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	raw := f.toRaw(ticket)
	return &raw, nil
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]planning.RawTicket, error) {
	var result []planning.RawTicket
	for _, ticket := range f.tickets {
		if filter.Planned != nil && ticket.Planned() != *filter.Planned {
			continue
		}
		if filter.Date != nil && (ticket.Date == nil || *ticket.Date != *filter.Date) {
			continue
		}
		if filter.DateFrom != nil && (ticket.Date == nil || *ticket.Date < *filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && (ticket.Date == nil || *ticket.Date > *filter.DateTo) {
			continue
		}
		if filter.TechnicianID != nil && !ticket.HasTechnician(*filter.TechnicianID) {
			continue
		}
		result = append(result, f.toRaw(ticket))
	}
	return result, nil
}

func (f *fakeTicketRepo) toRaw(ticket domain.Ticket) planning.RawTicket {
	return planning.RawTicket{
		ID:                ticket.ID,
		Title:             ticket.Title,
		Color:             ticket.Color,
		Date:              ticket.Date,
		Hour:              ticket.Hour,
		Minutes:           ticket.Minutes,
		Description:       ticket.Description,
		EstimatedDuration: ticket.EstimatedDuration,
		Technicians:       append([]domain.AssignedTechnician(nil), f.assignments[ticket.ID]...),
		CreatedAt:         ticket.CreatedAt,
		UpdatedAt:         ticket.UpdatedAt,
	}
}

type fakeTechnicianRepo struct {
	technicians map[int64]domain.Technician
}

func newFakeTechnicianRepo(technicians ...domain.Technician) *fakeTechnicianRepo {
	repo := &fakeTechnicianRepo{technicians: make(map[int64]domain.Technician)}
	for _, technician := range technicians {
		repo.technicians[technician.ID] = technician
	}
	return repo
}

func (f *fakeTechnicianRepo) Create(_ context.Context, technician *domain.Technician) error {
	technician.ID = int64(len(f.technicians) + 1)
	f.technicians[technician.ID] = *technician
	return nil
}

func (f *fakeTechnicianRepo) Update(_ context.Context, technician *domain.Technician) error {
	if _, ok := f.technicians[technician.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.technicians[technician.ID] = *technician
	return nil
}

func (f *fakeTechnicianRepo) Deactivate(_ context.Context, id int64) error {
	technician, ok := f.technicians[id]
	if !ok {
		return pgx.ErrNoRows
	}
	technician.Active = false
	f.technicians[id] = technician
	return nil
}

func (f *fakeTechnicianRepo) GetByID(_ context.Context, id int64) (*domain.Technician, error) {
	technician, ok := f.technicians[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &technician, nil
}

func (f *fakeTechnicianRepo) List(_ context.Context, includeInactive bool) ([]domain.Technician, error) {
	var result []domain.Technician
	for _, technician := range f.technicians {
		if !includeInactive && !technician.Active {
			continue
		}
		result = append(result, technician)
	}
	return result, nil
}

func (f *fakeTechnicianRepo) ListActive(ctx context.Context) ([]domain.Technician, error) {
	all, _ := f.List(ctx, false)
	var result []domain.Technician
	for _, technician := range all {
		if technician.IsUnassignedSentinel() {
			continue
		}
		result = append(result, technician)
	}
	return result, nil
}

type fakeScheduleRepo struct {
	nextID    int64
	schedules []domain.Schedule
}

func (f *fakeScheduleRepo) Create(_ context.Context, schedule *domain.Schedule) error {
	f.nextID++
	schedule.ID = f.nextID
	f.schedules = append(f.schedules, *schedule)
	return nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, schedule *domain.Schedule) error {
	for i := range f.schedules {
		if f.schedules[i].ID == schedule.ID {
			f.schedules[i] = *schedule
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id int64) error {
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	for _, schedule := range f.schedules {
		if schedule.ID == id {
			s := schedule
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeScheduleRepo) ListWithFilter(_ context.Context, filter repository.ScheduleFilter) ([]domain.Schedule, error) {
	var result []domain.Schedule
	for _, schedule := range f.schedules {
		if filter.TechnicianID != nil && schedule.TechnicianID != *filter.TechnicianID {
			continue
		}
		if filter.Date != nil && schedule.Date != *filter.Date {
			continue
		}
		if filter.DateFrom != nil && schedule.Date < *filter.DateFrom {
			continue
		}
		if filter.DateTo != nil && schedule.Date > *filter.DateTo {
			continue
		}
		result = append(result, schedule)
	}
	return result, nil
}

// eventRecorder captures every event published during a test.
type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func newRecordingDispatcher() (events.Dispatcher, *eventRecorder) {
	dispatcher := events.NewInMemoryDispatcher()
	recorder := &eventRecorder{}
	dispatcher.SubscribeAll(func(_ context.Context, event events.Event) error {
		recorder.mu.Lock()
		defer recorder.mu.Unlock()
		recorder.events = append(recorder.events, event)
		return nil
	})
	return dispatcher, recorder
}

func (r *eventRecorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	var types []events.EventType
	for _, event := range r.events {
		types = append(types, event.Type)
	}
	return types
}
