package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/planning-service/internal/domain"
	"github.com/spec-kit/planning-service/internal/planning"
)

// TicketFilter captures calendar and backlog search parameters.
type TicketFilter struct {
	Planned      *bool
	Date         *string
	DateFrom     *string
	DateTo       *string
	TechnicianID *int64
	Limit        int
	Offset       int
}

// TicketRepository encapsulates ticket persistence. Reads return raw rows:
// older tickets only carry the legacy single-technician columns while newer
// ones have ticket_technicians entries, and reconciling the two shapes is the
// normalizer's job, not the repository's.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	ReplaceTechnicians(ctx context.Context, ticketID int64, technicians []domain.AssignedTechnician) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*planning.RawTicket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]planning.RawTicket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `t.id, t.title, t.color, to_char(t.date, 'YYYY-MM-DD'), t.hour, t.minutes,
       t.description, t.estimated_duration, t.technician_id, t.technician_name,
       t.technician_color, t.created_at, t.updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO tickets (title, color, date, hour, minutes, description, estimated_duration,
                             technician_id, technician_name, technician_color)
        VALUES ($1,$2,$3::date,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		ticket.Title,
		ticket.Color,
		ticket.Date,
		ticket.Hour,
		ticket.Minutes,
		ticket.Description,
		ticket.EstimatedDuration,
		ticket.TechnicianID,
		ticket.TechnicianName,
		ticket.TechnicianColor,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return err
	}

	if err := insertTechnicians(ctx, tx, ticket.ID, ticket.Technicians); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, color=$2, date=$3::date, hour=$4, minutes=$5,
            description=$6, estimated_duration=$7, technician_id=$8, technician_name=$9,
            technician_color=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Color,
		ticket.Date,
		ticket.Hour,
		ticket.Minutes,
		ticket.Description,
		ticket.EstimatedDuration,
		ticket.TechnicianID,
		ticket.TechnicianName,
		ticket.TechnicianColor,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ReplaceTechnicians rewrites the assignment rows for a ticket. Callers are
// expected to have run the ticket through the normalizer so the legacy mirror
// columns passed to Update stay in sync with the list.
func (r *ticketRepository) ReplaceTechnicians(ctx context.Context, ticketID int64, technicians []domain.AssignedTechnician) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM ticket_technicians WHERE ticket_id=$1`, ticketID); err != nil {
		return err
	}
	if err := insertTechnicians(ctx, tx, ticketID, technicians); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertTechnicians(ctx context.Context, tx pgx.Tx, ticketID int64, technicians []domain.AssignedTechnician) error {
	const query = `
        INSERT INTO ticket_technicians (ticket_id, technician_id, is_primary, position)
        VALUES ($1,$2,$3,$4)`
	for i, at := range technicians {
		if _, err := tx.Exec(ctx, query, ticketID, at.ID, at.IsPrimary, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*planning.RawTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets t WHERE t.id=$1`, ticketColumns)
	row := r.pool.QueryRow(ctx, query, id)
	raw, err := scanRawTicket(row)
	if err != nil {
		return nil, err
	}
	single := []planning.RawTicket{*raw}
	if err := r.attachTechnicians(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]planning.RawTicket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Planned != nil {
		if *filter.Planned {
			clauses = append(clauses, "t.date IS NOT NULL")
		} else {
			clauses = append(clauses, "t.date IS NULL")
		}
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		clauses = append(clauses, fmt.Sprintf("t.date=$%d::date", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		clauses = append(clauses, fmt.Sprintf("t.date >= $%d::date", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		clauses = append(clauses, fmt.Sprintf("t.date <= $%d::date", len(args)))
	}
	if filter.TechnicianID != nil {
		args = append(args, *filter.TechnicianID)
		placeholder := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(t.technician_id=$%d OR EXISTS (SELECT 1 FROM ticket_technicians tt WHERE tt.ticket_id=t.id AND tt.technician_id=$%d))",
			placeholder, placeholder))
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets t WHERE %s ORDER BY t.date ASC NULLS LAST, t.hour ASC NULLS LAST, t.minutes ASC`,
		ticketColumns, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []planning.RawTicket
	for rows.Next() {
		raw, err := scanRawTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *raw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachTechnicians(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func scanRawTicket(row pgx.Row) (*planning.RawTicket, error) {
	var raw planning.RawTicket
	var technicianName, technicianColor *string
	if err := row.Scan(
		&raw.ID,
		&raw.Title,
		&raw.Color,
		&raw.Date,
		&raw.Hour,
		&raw.Minutes,
		&raw.Description,
		&raw.EstimatedDuration,
		&raw.TechnicianID,
		&technicianName,
		&technicianColor,
		&raw.CreatedAt,
		&raw.UpdatedAt,
	); err != nil {
		return nil, err
	}
	// Legacy rows carry the embedded technician in the mirror columns.
	if raw.TechnicianID != nil {
		technician := domain.Technician{ID: *raw.TechnicianID, Active: true}
		if technicianName != nil {
			technician.Name = *technicianName
		}
		if technicianColor != nil {
			technician.Color = *technicianColor
		}
		raw.Technician = &technician
	}
	return &raw, nil
}

// attachTechnicians loads ticket_technicians rows for the given tickets in
// one query and fills each raw ticket's list in place.
func (r *ticketRepository) attachTechnicians(ctx context.Context, tickets []planning.RawTicket) error {
	if len(tickets) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(tickets))
	for _, raw := range tickets {
		ids = append(ids, raw.ID)
	}

	const query = `
        SELECT tt.ticket_id, tt.technician_id, tech.name, tech.color, tt.is_primary
        FROM ticket_technicians tt
        JOIN technicians tech ON tech.id = tt.technician_id
        WHERE tt.ticket_id = ANY($1)
        ORDER BY tt.ticket_id, tt.position`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byTicket := make(map[int64][]domain.AssignedTechnician)
	for rows.Next() {
		var ticketID int64
		var at domain.AssignedTechnician
		if err := rows.Scan(&ticketID, &at.ID, &at.Name, &at.Color, &at.IsPrimary); err != nil {
			return err
		}
		byTicket[ticketID] = append(byTicket[ticketID], at)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range tickets {
		tickets[i].Technicians = byTicket[tickets[i].ID]
	}
	return nil
}
