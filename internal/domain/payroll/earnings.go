package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/contract"
	"github.com/lassie-dev/funeraria-backend-go/internal/domain/staff"
)

// Earnings groups the variable compensation computed for one staff member
// over one period. Overtime is an explicit zero placeholder until a
// timesheet source exists.
type Earnings struct {
	Commissions decimal.Decimal
	Bonuses     decimal.Decimal
	Overtime    decimal.Decimal
}

// EarningsRates carries the fixed per-service amounts paid on top of base
// salary for operational roles.
type EarningsRates struct {
	DriverServiceBonus    decimal.Decimal
	AssistantServiceBonus decimal.Decimal
	NightShiftPremium     decimal.Decimal
}

func DefaultEarningsRates() EarningsRates {
	return EarningsRates{
		DriverServiceBonus:    decimal.NewFromInt(15000),
		AssistantServiceBonus: decimal.NewFromInt(10000),
		NightShiftPremium:     decimal.NewFromInt(5000),
	}
}

type earningsFunc func(ctx context.Context, member staff.StaffMember, start, end time.Time) (Earnings, error)

// EarningsCalculator computes role-specific variable earnings from finished
// contracts. Dispatch goes through an explicit role -> strategy table; every
// role must have an entry, unknown roles are an error rather than a silent
// zero.
type EarningsCalculator struct {
	contracts  contract.ContractRepository
	rates      EarningsRates
	strategies map[staff.Role]earningsFunc
}

func NewEarningsCalculator(contracts contract.ContractRepository, rates EarningsRates) *EarningsCalculator {
	c := &EarningsCalculator{
		contracts: contracts,
		rates:     rates,
	}
	c.strategies = map[staff.Role]earningsFunc{
		staff.RoleSecretary:     c.secretaryEarnings,
		staff.RoleDriver:        c.driverEarnings,
		staff.RoleAssistant:     c.assistantEarnings,
		staff.RoleAdministrator: c.fixedSalaryEarnings,
		staff.RoleOwner:         c.fixedSalaryEarnings,
	}
	return c
}

// Compute returns the variable earnings for one staff member over the
// inclusive [start, end] period bounds.
func (c *EarningsCalculator) Compute(ctx context.Context, member staff.StaffMember, start, end time.Time) (Earnings, error) {
	fn, ok := c.strategies[member.Role]
	if !ok {
		return zeroEarnings(), fmt.Errorf("%w: %q", ErrUnknownRole, member.Role)
	}
	return fn(ctx, member, start, end)
}

// secretaryEarnings sums the commission of every finished contract the
// secretary created during the period.
func (c *EarningsCalculator) secretaryEarnings(ctx context.Context, member staff.StaffMember, start, end time.Time) (Earnings, error) {
	status := contract.StatusFinished
	contracts, err := c.contracts.List(ctx, contract.Filter{
		CreatedByID: &member.ID,
		Status:      &status,
		CreatedFrom: &start,
		CreatedTo:   &end,
	})
	if err != nil {
		return zeroEarnings(), fmt.Errorf("failed to list contracts for secretary %s: %w", member.ID, err)
	}

	commissions := decimal.Zero
	for _, ct := range contracts {
		commissions = commissions.Add(ct.CommissionAmount)
	}

	return Earnings{Commissions: commissions, Bonuses: decimal.Zero, Overtime: decimal.Zero}, nil
}

// driverEarnings pays a fixed bonus per finished service the driver was
// assigned to during the period, plus a premium for night services.
func (c *EarningsCalculator) driverEarnings(ctx context.Context, member staff.StaffMember, start, end time.Time) (Earnings, error) {
	status := contract.StatusFinished
	contracts, err := c.contracts.List(ctx, contract.Filter{
		DriverID:    &member.ID,
		Status:      &status,
		ServiceFrom: &start,
		ServiceTo:   &end,
	})
	if err != nil {
		return zeroEarnings(), fmt.Errorf("failed to list contracts for driver %s: %w", member.ID, err)
	}

	return Earnings{
		Commissions: decimal.Zero,
		Bonuses:     c.serviceBonuses(contracts, c.rates.DriverServiceBonus),
		Overtime:    decimal.Zero,
	}, nil
}

// assistantEarnings mirrors the driver rule, keyed on the assigned assistant
// and using the assistant per-service rate.
func (c *EarningsCalculator) assistantEarnings(ctx context.Context, member staff.StaffMember, start, end time.Time) (Earnings, error) {
	status := contract.StatusFinished
	contracts, err := c.contracts.List(ctx, contract.Filter{
		AssistantID: &member.ID,
		Status:      &status,
		ServiceFrom: &start,
		ServiceTo:   &end,
	})
	if err != nil {
		return zeroEarnings(), fmt.Errorf("failed to list contracts for assistant %s: %w", member.ID, err)
	}

	return Earnings{
		Commissions: decimal.Zero,
		Bonuses:     c.serviceBonuses(contracts, c.rates.AssistantServiceBonus),
		Overtime:    decimal.Zero,
	}, nil
}

// fixedSalaryEarnings covers administrators and owners: base salary only.
func (c *EarningsCalculator) fixedSalaryEarnings(_ context.Context, _ staff.StaffMember, _, _ time.Time) (Earnings, error) {
	return zeroEarnings(), nil
}

func (c *EarningsCalculator) serviceBonuses(contracts []contract.Contract, perService decimal.Decimal) decimal.Decimal {
	bonuses := decimal.Zero
	for _, ct := range contracts {
		bonuses = bonuses.Add(perService)
		if ct.NightShift {
			bonuses = bonuses.Add(c.rates.NightShiftPremium)
		}
	}
	return bonuses
}

func zeroEarnings() Earnings {
	return Earnings{Commissions: decimal.Zero, Bonuses: decimal.Zero, Overtime: decimal.Zero}
}
