package payroll

import "github.com/shopspring/decimal"

// TaxBracket is one row of the progressive income tax table. Bounds are
// expressed in annual tax units (UTA): Min is exclusive, Max inclusive.
// A nil Max marks the open-ended top bracket.
type TaxBracket struct {
	Min    decimal.Decimal
	Max    *decimal.Decimal
	Rate   decimal.Decimal
	Rebate decimal.Decimal
}

// DeductionConfig carries the statutory rates and the bracket table for one
// fiscal year. It is injected into the DeductionCalculator as an immutable
// value so tables can be swapped without code changes.
type DeductionConfig struct {
	PensionRate decimal.Decimal
	HealthRate  decimal.Decimal
	// UnitValue is the annual tax unit (UTA) in pesos.
	UnitValue decimal.Decimal
	// Brackets must be contiguous, ordered ascending, and cover (0, +inf).
	Brackets []TaxBracket
}

// DefaultDeductionConfig returns the SII annual second-category table with
// the statutory pension and health withholding rates.
func DefaultDeductionConfig() DeductionConfig {
	return DeductionConfig{
		PensionRate: decimal.NewFromFloat(0.10),
		HealthRate:  decimal.NewFromFloat(0.07),
		UnitValue:   decimal.NewFromInt(726984),
		Brackets:    DefaultTaxBrackets(),
	}
}

// DefaultTaxBrackets returns the SII progressive bracket table in UTA units.
func DefaultTaxBrackets() []TaxBracket {
	return []TaxBracket{
		bracket(0, 13.5, 0, 0),
		bracket(13.5, 30, 0.04, 0.54),
		bracket(30, 50, 0.08, 1.74),
		bracket(50, 70, 0.135, 4.49),
		bracket(70, 90, 0.23, 11.14),
		bracket(90, 120, 0.304, 17.80),
		bracket(120, 310, 0.35, 23.32),
		openBracket(310, 0.40, 38.82),
	}
}

func bracket(min, max, rate, rebate float64) TaxBracket {
	upper := decimal.NewFromFloat(max)
	return TaxBracket{
		Min:    decimal.NewFromFloat(min),
		Max:    &upper,
		Rate:   decimal.NewFromFloat(rate),
		Rebate: decimal.NewFromFloat(rebate),
	}
}

func openBracket(min, rate, rebate float64) TaxBracket {
	return TaxBracket{
		Min:    decimal.NewFromFloat(min),
		Rate:   decimal.NewFromFloat(rate),
		Rebate: decimal.NewFromFloat(rebate),
	}
}

// bracketFor picks the bracket whose (Min, Max] interval contains income.
// Brackets are contiguous and ascending, so the first bracket whose upper
// bound is not exceeded wins; this makes the upper bound inclusive and the
// lower bound exclusive.
func bracketFor(brackets []TaxBracket, income decimal.Decimal) TaxBracket {
	for _, b := range brackets {
		if b.Max == nil || income.LessThanOrEqual(*b.Max) {
			return b
		}
	}
	return brackets[len(brackets)-1]
}
