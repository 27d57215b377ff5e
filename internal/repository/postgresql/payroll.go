package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/payroll"
	"github.com/lassie-dev/funeraria-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollRecordColumns = `
	p.id, p.staff_id, p.branch_id, p.period, p.period_start, p.period_end,
	p.base_salary, p.commissions_total, p.bonuses, p.overtime, p.gross_salary,
	p.health_deduction, p.pension_deduction, p.tax_deduction, p.other_deductions,
	p.total_deductions, p.net_salary, p.status, p.payment_date, p.notes,
	p.created_at, p.updated_at
`

func scanRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID, &rec.StaffID, &rec.BranchID, &rec.Period, &rec.PeriodStart, &rec.PeriodEnd,
		&rec.BaseSalary, &rec.Commissions, &rec.Bonuses, &rec.Overtime, &rec.GrossSalary,
		&rec.HealthDeduction, &rec.PensionDeduction, &rec.TaxDeduction, &rec.OtherDeductions,
		&rec.TotalDeductions, &rec.NetSalary, &rec.Status, &rec.PaymentDate, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create inserts a draft record. The uk_payroll_staff_period unique
// constraint is the authoritative guard for the one-record-per-(staff,
// period) invariant; a violation surfaces as ErrPayrollRecordAlreadyExists
// so concurrent batch runs degrade to a per-staff duplicate error.
func (r *payrollRepository) Create(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records AS p (
			id, staff_id, branch_id, period, period_start, period_end,
			base_salary, commissions_total, bonuses, overtime, gross_salary,
			health_deduction, pension_deduction, tax_deduction, other_deductions,
			total_deductions, net_salary, status, payment_date, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)
		RETURNING ` + payrollRecordColumns

	row := q.QueryRow(ctx, query,
		record.ID, record.StaffID, record.BranchID, record.Period, record.PeriodStart, record.PeriodEnd,
		record.BaseSalary, record.Commissions, record.Bonuses, record.Overtime, record.GrossSalary,
		record.HealthDeduction, record.PensionDeduction, record.TaxDeduction, record.OtherDeductions,
		record.TotalDeductions, record.NetSalary, record.Status, record.PaymentDate, record.Notes,
	)

	created, err := scanRecord(row)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_staff_period") {
			return payroll.Record{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `, s.full_name
		FROM payroll_records p
		LEFT JOIN staff_members s ON s.id = p.staff_id
		WHERE p.id = $1
	`

	var rec payroll.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.StaffID, &rec.BranchID, &rec.Period, &rec.PeriodStart, &rec.PeriodEnd,
		&rec.BaseSalary, &rec.Commissions, &rec.Bonuses, &rec.Overtime, &rec.GrossSalary,
		&rec.HealthDeduction, &rec.PensionDeduction, &rec.TaxDeduction, &rec.OtherDeductions,
		&rec.TotalDeductions, &rec.NetSalary, &rec.Status, &rec.PaymentDate, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.StaffName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) FindByStaffAndPeriod(ctx context.Context, staffID, period string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records p
		WHERE p.staff_id = $1 AND p.period = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, staffID, period))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to find payroll record by staff and period: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Period != nil {
		conditions = append(conditions, fmt.Sprintf("p.period = $%d", argIdx))
		args = append(args, *filter.Period)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("p.staff_id = $%d", argIdx))
		args = append(args, *filter.StaffID)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT `+payrollRecordColumns+`, s.full_name
		FROM payroll_records p
		LEFT JOIN staff_members s ON s.id = p.staff_id
		WHERE %s
		ORDER BY p.period DESC, s.full_name
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		var rec payroll.Record
		if err := rows.Scan(
			&rec.ID, &rec.StaffID, &rec.BranchID, &rec.Period, &rec.PeriodStart, &rec.PeriodEnd,
			&rec.BaseSalary, &rec.Commissions, &rec.Bonuses, &rec.Overtime, &rec.GrossSalary,
			&rec.HealthDeduction, &rec.PensionDeduction, &rec.TaxDeduction, &rec.OtherDeductions,
			&rec.TotalDeductions, &rec.NetSalary, &rec.Status, &rec.PaymentDate, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.StaffName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Update overwrites the computed money fields and notes. Status and
// payment_date are deliberately excluded; transitions go through
// UpdateStatus only.
func (r *payrollRepository) Update(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records AS p SET
			base_salary = $2, commissions_total = $3, bonuses = $4, overtime = $5,
			gross_salary = $6, health_deduction = $7, pension_deduction = $8,
			tax_deduction = $9, other_deductions = $10, total_deductions = $11,
			net_salary = $12, notes = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + payrollRecordColumns

	row := q.QueryRow(ctx, query,
		record.ID,
		record.BaseSalary, record.Commissions, record.Bonuses, record.Overtime,
		record.GrossSalary, record.HealthDeduction, record.PensionDeduction,
		record.TaxDeduction, record.OtherDeductions, record.TotalDeductions,
		record.NetSalary, record.Notes,
	)

	updated, err := scanRecord(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to update payroll record: %w", err)
	}

	return updated, nil
}

// UpdateStatus performs the conditional state transition. The WHERE clause
// on the current status makes the transition atomic: when two callers race,
// the row matches only once and the loser gets (false, nil).
func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, from, to payroll.Status, paymentDate *time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $3, payment_date = COALESCE($4, payment_date), updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, from, to, paymentDate).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to update payroll status: %w", err)
	}

	return true, nil
}

func (r *payrollRepository) GetSummary(ctx context.Context, period string) (payroll.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COALESCE(SUM(base_salary), 0),
			COALESCE(SUM(commissions_total), 0),
			COALESCE(SUM(bonuses), 0),
			COALESCE(SUM(gross_salary), 0),
			COALESCE(SUM(total_deductions), 0),
			COALESCE(SUM(net_salary), 0)
		FROM payroll_records
		WHERE period = $1
	`

	s := payroll.Summary{Period: period}
	err := q.QueryRow(ctx, query, period).Scan(
		&s.RecordCount, &s.DraftCount, &s.ApprovedCount, &s.PaidCount,
		&s.TotalBaseSalary, &s.TotalCommissions, &s.TotalBonuses,
		&s.TotalGross, &s.TotalDeductions, &s.TotalNet,
	)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return s, nil
}
