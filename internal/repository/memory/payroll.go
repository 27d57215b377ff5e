package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/payroll"
)

type PayrollRepository struct {
	mu      sync.Mutex
	records map[string]payroll.Record
	// byStaffPeriod stands in for the uk_payroll_staff_period constraint.
	byStaffPeriod map[staffPeriodKey]string
}

type staffPeriodKey struct {
	staffID string
	period  string
}

func NewPayrollRepository() *PayrollRepository {
	return &PayrollRepository{
		records:       make(map[string]payroll.Record),
		byStaffPeriod: make(map[staffPeriodKey]string),
	}
}

func (r *PayrollRepository) Create(_ context.Context, record payroll.Record) (payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := staffPeriodKey{staffID: record.StaffID, period: record.Period}
	if _, exists := r.byStaffPeriod[key]; exists {
		return payroll.Record{}, payroll.ErrPayrollRecordAlreadyExists
	}

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	r.records[record.ID] = record
	r.byStaffPeriod[key] = record.ID
	return record, nil
}

func (r *PayrollRepository) GetByID(_ context.Context, id string) (payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (r *PayrollRepository) FindByStaffAndPeriod(_ context.Context, staffID, period string) (payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byStaffPeriod[staffPeriodKey{staffID: staffID, period: period}]
	if !ok {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	return r.records[id], nil
}

func (r *PayrollRepository) List(_ context.Context, filter payroll.Filter) ([]payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []payroll.Record
	for _, rec := range r.records {
		if filter.Period != nil && rec.Period != *filter.Period {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		if filter.StaffID != nil && rec.StaffID != *filter.StaffID {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (r *PayrollRepository) Update(_ context.Context, record payroll.Record) (payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.records[record.ID]
	if !ok {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}

	// Status and payment date are owned by UpdateStatus.
	record.Status = current.Status
	record.PaymentDate = current.PaymentDate
	record.CreatedAt = current.CreatedAt
	record.UpdatedAt = time.Now().UTC()

	r.records[record.ID] = record
	return record, nil
}

func (r *PayrollRepository) UpdateStatus(_ context.Context, id string, from, to payroll.Status, paymentDate *time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.Status != from {
		return false, nil
	}

	rec.Status = to
	if paymentDate != nil {
		rec.PaymentDate = paymentDate
	}
	rec.UpdatedAt = time.Now().UTC()
	r.records[id] = rec
	return true, nil
}

func (r *PayrollRepository) GetSummary(_ context.Context, period string) (payroll.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := payroll.Summary{
		Period:           period,
		TotalBaseSalary:  decimal.Zero,
		TotalCommissions: decimal.Zero,
		TotalBonuses:     decimal.Zero,
		TotalGross:       decimal.Zero,
		TotalDeductions:  decimal.Zero,
		TotalNet:         decimal.Zero,
	}

	for _, rec := range r.records {
		if rec.Period != period {
			continue
		}
		s.RecordCount++
		switch rec.Status {
		case payroll.StatusDraft:
			s.DraftCount++
		case payroll.StatusApproved:
			s.ApprovedCount++
		case payroll.StatusPaid:
			s.PaidCount++
		}
		s.TotalBaseSalary = s.TotalBaseSalary.Add(rec.BaseSalary)
		s.TotalCommissions = s.TotalCommissions.Add(rec.Commissions)
		s.TotalBonuses = s.TotalBonuses.Add(rec.Bonuses)
		s.TotalGross = s.TotalGross.Add(rec.GrossSalary)
		s.TotalDeductions = s.TotalDeductions.Add(rec.TotalDeductions)
		s.TotalNet = s.TotalNet.Add(rec.NetSalary)
	}

	return s, nil
}
