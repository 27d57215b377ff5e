package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

// Record - Generated payroll result for one staff member and one period.
//
// Money fields always satisfy:
//
//	GrossSalary     = BaseSalary + Commissions + Bonuses + Overtime
//	TotalDeductions = PensionDeduction + HealthDeduction + TaxDeduction + OtherDeductions
//	NetSalary       = GrossSalary - TotalDeductions
//
// Overtime and OtherDeductions are carried as explicit zero placeholders;
// no timesheet or ad-hoc deduction source feeds them yet.
type Record struct {
	ID               string
	StaffID          string
	BranchID         string
	Period           string // "YYYY-MM"
	PeriodStart      time.Time
	PeriodEnd        time.Time
	BaseSalary       decimal.Decimal
	Commissions      decimal.Decimal
	Bonuses          decimal.Decimal
	Overtime         decimal.Decimal
	GrossSalary      decimal.Decimal
	HealthDeduction  decimal.Decimal
	PensionDeduction decimal.Decimal
	TaxDeduction     decimal.Decimal
	OtherDeductions  decimal.Decimal
	TotalDeductions  decimal.Decimal
	NetSalary        decimal.Decimal
	Status           Status
	PaymentDate      *time.Time // nil until the record is paid
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	StaffName *string
}
