package payroll

import "errors"

var (
	ErrInvalidPeriodFormat        = errors.New("payroll period must be formatted as YYYY-MM")
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordAlreadyPaid   = errors.New("payroll record already paid, cannot recalculate")
	ErrUnknownRole                = errors.New("no earnings rule for staff role")
)
