package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/payroll"
	"github.com/lassie-dev/funeraria-backend-go/internal/domain/staff"
)

// PayrollService drives payroll generation and the record lifecycle.
type PayrollService interface {
	Generate(ctx context.Context, period string) (payroll.BatchResult, error)
	GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error)
	ListRecords(ctx context.Context, filter payroll.Filter) ([]payroll.RecordResponse, error)
	Approve(ctx context.Context, id string) (bool, error)
	MarkPaid(ctx context.Context, id string, paymentDate *time.Time) (bool, error)
	Recalculate(ctx context.Context, id string) (payroll.RecordResponse, error)
	Summary(ctx context.Context, period string) (payroll.Summary, error)
}

type PayrollServiceImpl struct {
	staffRepo   staff.StaffRepository
	payrollRepo payroll.PayrollRepository
	tx          payroll.TxRunner
	earnings    *payroll.EarningsCalculator
	deductions  *payroll.DeductionCalculator
}

func NewPayrollService(
	staffRepo staff.StaffRepository,
	payrollRepo payroll.PayrollRepository,
	tx payroll.TxRunner,
	earnings *payroll.EarningsCalculator,
	deductions *payroll.DeductionCalculator,
) PayrollService {
	return &PayrollServiceImpl{
		staffRepo:   staffRepo,
		payrollRepo: payrollRepo,
		tx:          tx,
		earnings:    earnings,
		deductions:  deductions,
	}
}

// ========== GENERATION ==========

// Generate creates one draft record per active staff member for the period.
// An invalid period aborts the whole call; everything after that is isolated
// per staff member, so a duplicate or a failed computation for one person
// never stops the rest of the cohort.
func (s *PayrollServiceImpl) Generate(ctx context.Context, period string) (payroll.BatchResult, error) {
	start, end, err := payroll.ResolvePeriod(period)
	if err != nil {
		return payroll.BatchResult{}, err
	}

	members, err := s.staffRepo.ListActive(ctx)
	if err != nil {
		return payroll.BatchResult{}, fmt.Errorf("failed to list active staff: %w", err)
	}

	result := payroll.BatchResult{
		Period:          period,
		Successes:       []payroll.BatchItem{},
		Errors:          []payroll.BatchError{},
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
	}

	for _, member := range members {
		var created payroll.Record
		var skipped *payroll.BatchError

		// Each staff member gets their own transaction, so the existence
		// check and the insert are atomic and a rollback for one person
		// never touches the rest of the batch.
		err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			_, err := s.payrollRepo.FindByStaffAndPeriod(ctx, member.ID, period)
			if err == nil {
				be := batchError(member, payroll.ErrPayrollRecordAlreadyExists)
				skipped = &be
				return nil
			}
			if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
				return fmt.Errorf("failed to check existing payroll record: %w", err)
			}

			record, err := s.buildRecord(ctx, member, period, start, end)
			if err != nil {
				be := batchError(member, err)
				skipped = &be
				return nil
			}

			created, err = s.payrollRepo.Create(ctx, record)
			if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
				// Lost the race to a concurrent batch run; same outcome as
				// the existence check above.
				be := batchError(member, err)
				skipped = &be
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to create payroll record for staff %s: %w", member.ID, err)
			}
			return nil
		})
		if err != nil {
			return payroll.BatchResult{}, err
		}
		if skipped != nil {
			result.Errors = append(result.Errors, *skipped)
			continue
		}

		result.Successes = append(result.Successes, payroll.BatchItem{
			StaffID:   member.ID,
			StaffName: member.FullName,
			RecordID:  created.ID,
			NetSalary: created.NetSalary,
		})
		result.Processed++
		result.TotalGross = result.TotalGross.Add(created.GrossSalary)
		result.TotalDeductions = result.TotalDeductions.Add(created.TotalDeductions)
		result.TotalNet = result.TotalNet.Add(created.NetSalary)
	}

	return result, nil
}

func (s *PayrollServiceImpl) buildRecord(ctx context.Context, member staff.StaffMember, period string, start, end time.Time) (payroll.Record, error) {
	earnings, err := s.earnings.Compute(ctx, member, start, end)
	if err != nil {
		return payroll.Record{}, err
	}

	gross := member.BaseSalary.Add(earnings.Commissions).Add(earnings.Bonuses).Add(earnings.Overtime)
	deductions := s.deductions.Compute(gross)

	other := decimal.Zero
	totalDeductions := deductions.Total().Add(other)

	return payroll.Record{
		ID:               uuid.NewString(),
		StaffID:          member.ID,
		BranchID:         member.BranchID,
		Period:           period,
		PeriodStart:      start,
		PeriodEnd:        end,
		BaseSalary:       member.BaseSalary,
		Commissions:      earnings.Commissions,
		Bonuses:          earnings.Bonuses,
		Overtime:         earnings.Overtime,
		GrossSalary:      gross,
		HealthDeduction:  deductions.Health,
		PensionDeduction: deductions.Pension,
		TaxDeduction:     deductions.Tax,
		OtherDeductions:  other,
		TotalDeductions:  totalDeductions,
		NetSalary:        gross.Sub(totalDeductions),
		Status:           payroll.StatusDraft,
	}, nil
}

// ========== LIFECYCLE ==========

// Approve moves a draft record to approved. A false result means the record
// was not in draft when the conditional update ran; that is a normal outcome
// for the losing side of a race, not an error.
func (s *PayrollServiceImpl) Approve(ctx context.Context, id string) (bool, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if record.Status != payroll.StatusDraft {
		return false, nil
	}

	return s.payrollRepo.UpdateStatus(ctx, id, payroll.StatusDraft, payroll.StatusApproved, nil)
}

// MarkPaid settles an approved record and stamps the payment date, defaulting
// to now. Paid is terminal.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string, paymentDate *time.Time) (bool, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if record.Status != payroll.StatusApproved {
		return false, nil
	}

	paidAt := time.Now().UTC()
	if paymentDate != nil {
		paidAt = *paymentDate
	}

	return s.payrollRepo.UpdateStatus(ctx, id, payroll.StatusApproved, payroll.StatusPaid, &paidAt)
}

// Recalculate recomputes every earnings and deduction field against the
// record's stored period bounds and the staff member's current data. Settled
// pay is immutable: a paid record fails with ErrPayrollRecordAlreadyPaid.
func (s *PayrollServiceImpl) Recalculate(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if record.Status == payroll.StatusPaid {
		return payroll.RecordResponse{}, payroll.ErrPayrollRecordAlreadyPaid
	}

	member, err := s.staffRepo.GetByID(ctx, record.StaffID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	earnings, err := s.earnings.Compute(ctx, member, record.PeriodStart, record.PeriodEnd)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	gross := member.BaseSalary.Add(earnings.Commissions).Add(earnings.Bonuses).Add(earnings.Overtime)
	deductions := s.deductions.Compute(gross)
	totalDeductions := deductions.Total().Add(record.OtherDeductions)

	record.BaseSalary = member.BaseSalary
	record.Commissions = earnings.Commissions
	record.Bonuses = earnings.Bonuses
	record.Overtime = earnings.Overtime
	record.GrossSalary = gross
	record.PensionDeduction = deductions.Pension
	record.HealthDeduction = deductions.Health
	record.TaxDeduction = deductions.Tax
	record.TotalDeductions = totalDeductions
	record.NetSalary = gross.Sub(totalDeductions)
	record.Notes = appendNote(record.Notes, fmt.Sprintf("recalculated at %s", time.Now().UTC().Format(time.RFC3339)))

	updated, err := s.payrollRepo.Update(ctx, record)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return mapToRecordResponse(updated), nil
}

// ========== READS ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.Filter) ([]payroll.RecordResponse, error) {
	if filter.Period != nil {
		if _, _, err := payroll.ResolvePeriod(*filter.Period); err != nil {
			return nil, err
		}
	}

	records, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, mapToRecordResponse(rec))
	}
	return result, nil
}

func (s *PayrollServiceImpl) Summary(ctx context.Context, period string) (payroll.Summary, error) {
	if _, _, err := payroll.ResolvePeriod(period); err != nil {
		return payroll.Summary{}, err
	}
	return s.payrollRepo.GetSummary(ctx, period)
}

// ========== HELPERS ==========

func batchError(member staff.StaffMember, err error) payroll.BatchError {
	return payroll.BatchError{
		StaffID:   member.ID,
		StaffName: member.FullName,
		Reason:    err.Error(),
	}
}

func appendNote(notes, line string) string {
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}

func mapToRecordResponse(r payroll.Record) payroll.RecordResponse {
	var paymentDateStr *string
	if r.PaymentDate != nil {
		str := r.PaymentDate.Format("2006-01-02")
		paymentDateStr = &str
	}

	staffName := ""
	if r.StaffName != nil {
		staffName = *r.StaffName
	}

	return payroll.RecordResponse{
		ID:               r.ID,
		StaffID:          r.StaffID,
		StaffName:        staffName,
		BranchID:         r.BranchID,
		Period:           r.Period,
		PeriodStart:      r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        r.PeriodEnd.Format("2006-01-02"),
		BaseSalary:       r.BaseSalary,
		Commissions:      r.Commissions,
		Bonuses:          r.Bonuses,
		Overtime:         r.Overtime,
		GrossSalary:      r.GrossSalary,
		HealthDeduction:  r.HealthDeduction,
		PensionDeduction: r.PensionDeduction,
		TaxDeduction:     r.TaxDeduction,
		OtherDeductions:  r.OtherDeductions,
		TotalDeductions:  r.TotalDeductions,
		NetSalary:        r.NetSalary,
		Status:           string(r.Status),
		PaymentDate:      paymentDateStr,
		Notes:            r.Notes,
	}
}
