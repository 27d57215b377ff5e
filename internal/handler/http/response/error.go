package response

import (
	"errors"
	"net/http"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/payroll"
	"github.com/lassie-dev/funeraria-backend-go/internal/domain/staff"
	"github.com/lassie-dev/funeraria-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, payroll.ErrInvalidPeriodFormat):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Conflict(w, "Payroll record is already paid")
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
