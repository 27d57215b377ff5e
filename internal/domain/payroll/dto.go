package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/lassie-dev/funeraria-backend-go/internal/pkg/validator"
)

// ========== REQUEST DTOs ==========

type GenerateRequest struct {
	Period string `json:"period"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidRequest struct {
	PaymentDate *string `json:"payment_date,omitempty"` // "2006-01-02"; defaults to now
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be formatted as YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RESPONSE DTOs ==========

type RecordResponse struct {
	ID               string          `json:"id"`
	StaffID          string          `json:"staff_id"`
	StaffName        string          `json:"staff_name,omitempty"`
	BranchID         string          `json:"branch_id"`
	Period           string          `json:"period"`
	PeriodStart      string          `json:"period_start"`
	PeriodEnd        string          `json:"period_end"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	Commissions      decimal.Decimal `json:"commissions_total"`
	Bonuses          decimal.Decimal `json:"bonuses"`
	Overtime         decimal.Decimal `json:"overtime"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`
	HealthDeduction  decimal.Decimal `json:"health_deduction"`
	PensionDeduction decimal.Decimal `json:"pension_deduction"`
	TaxDeduction     decimal.Decimal `json:"tax_deduction"`
	OtherDeductions  decimal.Decimal `json:"other_deductions"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	Status           string          `json:"status"`
	PaymentDate      *string         `json:"payment_date,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// BatchItem is one successfully generated record in a batch run.
type BatchItem struct {
	StaffID   string          `json:"staff_id"`
	StaffName string          `json:"staff_name"`
	RecordID  string          `json:"record_id"`
	NetSalary decimal.Decimal `json:"net_salary"`
}

// BatchError is one per-staff failure that did not abort the batch.
type BatchError struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	Reason    string `json:"reason"`
}

// BatchResult aggregates the outcome of one generation run. Totals cover
// newly created records only.
type BatchResult struct {
	Period          string          `json:"period"`
	Successes       []BatchItem     `json:"successes"`
	Errors          []BatchError    `json:"errors"`
	Processed       int             `json:"processed"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
}

// Summary aggregates existing records for one period.
type Summary struct {
	Period           string          `json:"period"`
	RecordCount      int             `json:"record_count"`
	DraftCount       int             `json:"draft_count"`
	ApprovedCount    int             `json:"approved_count"`
	PaidCount        int             `json:"paid_count"`
	TotalBaseSalary  decimal.Decimal `json:"total_base_salary"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
	TotalBonuses     decimal.Decimal `json:"total_bonuses"`
	TotalGross       decimal.Decimal `json:"total_gross"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalNet         decimal.Decimal `json:"total_net"`
}
