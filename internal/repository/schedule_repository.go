package repository

import (
	"fmt"
	"strings"

	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/planning-service/internal/domain"
)

// ScheduleFilter captures schedule search parameters.
type ScheduleFilter struct {
	TechnicianID *int64
	Date         *string
	DateFrom     *string
	DateTo       *string
	Types        []domain.ScheduleType
}

// ScheduleRepository encapsulates schedule window persistence.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) error
	Update(ctx context.Context, schedule *domain.Schedule) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	ListWithFilter(ctx context.Context, filter ScheduleFilter) ([]domain.Schedule, error)
}

type scheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository instantiates repository.
func NewScheduleRepository(pool *pgxpool.Pool) ScheduleRepository {
	return &scheduleRepository{pool: pool}
}

const scheduleColumns = `id, technician_id, to_char(date, 'YYYY-MM-DD'),
       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
       type, notes, created_at, updated_at`

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	const query = `
        INSERT INTO schedules (technician_id, date, start_time, end_time, type, notes)
        VALUES ($1,$2::date,$3::time,$4::time,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		schedule.TechnicianID,
		schedule.Date,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Type,
		schedule.Notes,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	const query = `
        UPDATE schedules SET technician_id=$1, date=$2::date, start_time=$3::time,
            end_time=$4::time, type=$5, notes=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		schedule.TechnicianID,
		schedule.Date,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Type,
		schedule.Notes,
		schedule.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules WHERE id=$1`, scheduleColumns)
	var schedule domain.Schedule
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.TechnicianID,
		&schedule.Date,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.Type,
		&schedule.Notes,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) ListWithFilter(ctx context.Context, filter ScheduleFilter) ([]domain.Schedule, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.TechnicianID != nil {
		args = append(args, *filter.TechnicianID)
		clauses = append(clauses, fmt.Sprintf("technician_id=$%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		clauses = append(clauses, fmt.Sprintf("date=$%d::date", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		clauses = append(clauses, fmt.Sprintf("date >= $%d::date", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		clauses = append(clauses, fmt.Sprintf("date <= $%d::date", len(args)))
	}
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, typ := range filter.Types {
			args = append(args, typ)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("type IN (%s)", strings.Join(placeholders, ",")))
	}

	query := fmt.Sprintf(`SELECT %s FROM schedules WHERE %s ORDER BY date ASC, start_time ASC`,
		scheduleColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Schedule
	for rows.Next() {
		var schedule domain.Schedule
		if err := rows.Scan(
			&schedule.ID,
			&schedule.TechnicianID,
			&schedule.Date,
			&schedule.StartTime,
			&schedule.EndTime,
			&schedule.Type,
			&schedule.Notes,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, schedule)
	}
	return result, rows.Err()
}
