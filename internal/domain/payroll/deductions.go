package payroll

import "github.com/shopspring/decimal"

// Deductions groups the statutory withholdings computed from one gross salary.
type Deductions struct {
	Pension decimal.Decimal
	Health  decimal.Decimal
	Tax     decimal.Decimal
}

func (d Deductions) Total() decimal.Decimal {
	return d.Pension.Add(d.Health).Add(d.Tax)
}

// DeductionCalculator computes pension, health and progressive income tax
// withholdings. It is pure: same gross in, same deductions out.
type DeductionCalculator struct {
	cfg DeductionConfig
}

func NewDeductionCalculator(cfg DeductionConfig) *DeductionCalculator {
	return &DeductionCalculator{cfg: cfg}
}

// Compute derives the three statutory deductions from a gross salary.
// Pension and health are rounded to whole pesos before the tax base is
// formed; the tax base uses the already-rounded pension. Moving the rounding
// to the end shifts the tax by one peso on some inputs, so the order here is
// part of the contract.
func (c *DeductionCalculator) Compute(gross decimal.Decimal) Deductions {
	pension := gross.Mul(c.cfg.PensionRate).Round(0)
	health := gross.Mul(c.cfg.HealthRate).Round(0)
	tax := c.computeTax(gross.Sub(pension))

	return Deductions{
		Pension: pension,
		Health:  health,
		Tax:     tax,
	}
}

// computeTax applies the progressive bracket table to the taxable base.
func (c *DeductionCalculator) computeTax(taxable decimal.Decimal) decimal.Decimal {
	income := taxable.Div(c.cfg.UnitValue)
	b := bracketFor(c.cfg.Brackets, income)

	tax := income.Mul(b.Rate).Sub(b.Rebate).Mul(c.cfg.UnitValue)
	if tax.IsNegative() {
		return decimal.Zero
	}
	return tax.Round(0)
}
