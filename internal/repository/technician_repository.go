package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/planning-service/internal/domain"
)

// TechnicianRepository encapsulates technician persistence. Technicians are
// never hard-deleted; deactivation keeps historical ticket references valid.
type TechnicianRepository interface {
	Create(ctx context.Context, technician *domain.Technician) error
	Update(ctx context.Context, technician *domain.Technician) error
	Deactivate(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Technician, error)
	List(ctx context.Context, includeInactive bool) ([]domain.Technician, error)
	ListActive(ctx context.Context) ([]domain.Technician, error)
}

type technicianRepository struct {
	pool *pgxpool.Pool
}

// NewTechnicianRepository instantiates repository.
func NewTechnicianRepository(pool *pgxpool.Pool) TechnicianRepository {
	return &technicianRepository{pool: pool}
}

func (r *technicianRepository) Create(ctx context.Context, technician *domain.Technician) error {
	const query = `
        INSERT INTO technicians (name, color, active)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		technician.Name,
		technician.Color,
		technician.Active,
	).Scan(&technician.ID, &technician.CreatedAt, &technician.UpdatedAt)
}

func (r *technicianRepository) Update(ctx context.Context, technician *domain.Technician) error {
	const query = `
        UPDATE technicians SET name=$1, color=$2, active=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		technician.Name,
		technician.Color,
		technician.Active,
		technician.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *technicianRepository) Deactivate(ctx context.Context, id int64) error {
	const query = `UPDATE technicians SET active=false, updated_at=NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *technicianRepository) GetByID(ctx context.Context, id int64) (*domain.Technician, error) {
	const query = `
        SELECT id, name, color, active, created_at, updated_at
        FROM technicians WHERE id=$1`
	var technician domain.Technician
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&technician.ID,
		&technician.Name,
		&technician.Color,
		&technician.Active,
		&technician.CreatedAt,
		&technician.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &technician, nil
}

func (r *technicianRepository) List(ctx context.Context, includeInactive bool) ([]domain.Technician, error) {
	query := `
        SELECT id, name, color, active, created_at, updated_at
        FROM technicians`
	if !includeInactive {
		query += ` WHERE active=true`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTechnicians(rows)
}

// ListActive returns schedulable technicians: active rows minus the
// "Non assigné" sentinel, which only exists to represent absence of
// assignment.
func (r *technicianRepository) ListActive(ctx context.Context) ([]domain.Technician, error) {
	const query = `
        SELECT id, name, color, active, created_at, updated_at
        FROM technicians
        WHERE active=true AND name <> $1
        ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query, domain.UnassignedName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTechnicians(rows)
}

func scanTechnicians(rows pgx.Rows) ([]domain.Technician, error) {
	var result []domain.Technician
	for rows.Next() {
		var technician domain.Technician
		if err := rows.Scan(
			&technician.ID,
			&technician.Name,
			&technician.Color,
			&technician.Active,
			&technician.CreatedAt,
			&technician.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, technician)
	}
	return result, rows.Err()
}
