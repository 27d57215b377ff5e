package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/staff"
	"github.com/lassie-dev/funeraria-backend-go/internal/pkg/database"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, role, base_salary, branch_id, is_active, created_at, updated_at
		FROM staff_members
		WHERE id = $1
	`

	var s staff.StaffMember
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.FullName, &s.Role, &s.BaseSalary, &s.BranchID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to get staff member: %w", err)
	}

	return s, nil
}

func (r *staffRepository) ListActive(ctx context.Context) ([]staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, role, base_salary, branch_id, is_active, created_at, updated_at
		FROM staff_members
		WHERE is_active = true
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active staff: %w", err)
	}
	defer rows.Close()

	var members []staff.StaffMember
	for rows.Next() {
		var s staff.StaffMember
		if err := rows.Scan(
			&s.ID, &s.FullName, &s.Role, &s.BaseSalary, &s.BranchID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}
		members = append(members, s)
	}

	return members, nil
}
