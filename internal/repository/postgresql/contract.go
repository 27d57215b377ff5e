package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/contract"
	"github.com/lassie-dev/funeraria-backend-go/internal/pkg/database"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) List(ctx context.Context, filter contract.Filter) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	appendCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.CreatedByID != nil {
		appendCondition("created_by = $%d", *filter.CreatedByID)
	}
	if filter.DriverID != nil {
		appendCondition("driver_id = $%d", *filter.DriverID)
	}
	if filter.AssistantID != nil {
		appendCondition("assistant_id = $%d", *filter.AssistantID)
	}
	if filter.Status != nil {
		appendCondition("status = $%d", *filter.Status)
	}
	if filter.CreatedFrom != nil {
		appendCondition("created_at >= $%d", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		appendCondition("created_at <= $%d", *filter.CreatedTo)
	}
	if filter.ServiceFrom != nil {
		appendCondition("service_date >= $%d", *filter.ServiceFrom)
	}
	if filter.ServiceTo != nil {
		appendCondition("service_date <= $%d", *filter.ServiceTo)
	}

	query := fmt.Sprintf(`
		SELECT id, created_by, driver_id, assistant_id, branch_id, status,
			   night_shift, commission_amount, service_date, created_at, updated_at
		FROM contracts
		WHERE %s
		ORDER BY service_date
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		var c contract.Contract
		if err := rows.Scan(
			&c.ID, &c.CreatedByID, &c.DriverID, &c.AssistantID, &c.BranchID, &c.Status,
			&c.NightShift, &c.CommissionAmount, &c.ServiceDate, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}

	return contracts, nil
}
