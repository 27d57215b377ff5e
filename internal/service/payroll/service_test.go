package payroll

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassie-dev/funeraria-backend-go/internal/domain/contract"
	"github.com/lassie-dev/funeraria-backend-go/internal/domain/payroll"
	"github.com/lassie-dev/funeraria-backend-go/internal/domain/staff"
	"github.com/lassie-dev/funeraria-backend-go/internal/repository/memory"
)

const testPeriod = "2026-07"

type fixture struct {
	service   PayrollService
	staff     *memory.StaffRepository
	contracts *memory.ContractRepository
	records   *memory.PayrollRepository
}

func newFixture(members []staff.StaffMember, contracts []contract.Contract) fixture {
	staffRepo := memory.NewStaffRepository(members...)
	contractRepo := memory.NewContractRepository(contracts...)
	payrollRepo := memory.NewPayrollRepository()

	earnings := payroll.NewEarningsCalculator(contractRepo, payroll.DefaultEarningsRates())
	deductions := payroll.NewDeductionCalculator(payroll.DefaultDeductionConfig())

	return fixture{
		service:   NewPayrollService(staffRepo, payrollRepo, memory.TxRunner{}, earnings, deductions),
		staff:     staffRepo,
		contracts: contractRepo,
		records:   payrollRepo,
	}
}

func testStaff(id string, role staff.Role, baseSalary int64) staff.StaffMember {
	return staff.StaffMember{
		ID:         id,
		FullName:   "Staff " + id,
		Role:       role,
		BaseSalary: decimal.NewFromInt(baseSalary),
		BranchID:   "branch-1",
		IsActive:   true,
	}
}

func secretarySale(creator string, commission int64) contract.Contract {
	createdAt := time.Date(2026, time.July, 12, 15, 0, 0, 0, time.UTC)
	return contract.Contract{
		ID:               creator + "-sale",
		CreatedByID:      creator,
		BranchID:         "branch-1",
		Status:           contract.StatusFinished,
		CommissionAmount: decimal.NewFromInt(commission),
		ServiceDate:      createdAt.Add(48 * time.Hour),
		CreatedAt:        createdAt,
	}
}

func driverService(id string, driverID string, night bool) contract.Contract {
	serviceDate := time.Date(2026, time.July, 8, 11, 0, 0, 0, time.UTC)
	if night {
		serviceDate = time.Date(2026, time.July, 21, 3, 0, 0, 0, time.UTC)
	}
	return contract.Contract{
		ID:               id,
		CreatedByID:      "sec-0",
		DriverID:         &driverID,
		BranchID:         "branch-1",
		Status:           contract.StatusFinished,
		NightShift:       night,
		CommissionAmount: decimal.NewFromInt(30000),
		ServiceDate:      serviceDate,
		CreatedAt:        serviceDate.Add(-72 * time.Hour),
	}
}

// countingTxRunner records how many transactions the service opened.
type countingTxRunner struct {
	runs int
}

func (r *countingTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.runs++
	return fn(ctx)
}

// racingPayrollRepo simulates losing the insert race to a concurrent batch
// run: the existence check sees nothing, but the unique constraint fires on
// insert for one staff member.
type racingPayrollRepo struct {
	*memory.PayrollRepository
	racingStaffID string
}

func (r *racingPayrollRepo) FindByStaffAndPeriod(ctx context.Context, staffID, period string) (payroll.Record, error) {
	if staffID == r.racingStaffID {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	return r.PayrollRepository.FindByStaffAndPeriod(ctx, staffID, period)
}

func (r *racingPayrollRepo) Create(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	if record.StaffID == r.racingStaffID {
		return payroll.Record{}, payroll.ErrPayrollRecordAlreadyExists
	}
	return r.PayrollRepository.Create(ctx, record)
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, actual.Equal(decimal.RequireFromString(expected)),
		"expected %s, got %s", expected, actual)
}

// ========== GENERATION ==========

func TestGenerateSecretaryEndToEnd(t *testing.T) {
	f := newFixture(
		[]staff.StaffMember{testStaff("sec-1", staff.RoleSecretary, 500000)},
		[]contract.Contract{secretarySale("sec-1", 25000)},
	)

	result, err := f.service.Generate(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, result.Successes, 1)
	require.Empty(t, result.Errors)
	assert.Equal(t, 1, result.Processed)

	rec, err := f.records.GetByID(context.Background(), result.Successes[0].RecordID)
	require.NoError(t, err)

	requireDecimal(t, "500000", rec.BaseSalary)
	requireDecimal(t, "25000", rec.Commissions)
	requireDecimal(t, "0", rec.Bonuses)
	requireDecimal(t, "0", rec.Overtime)
	requireDecimal(t, "525000", rec.GrossSalary)
	requireDecimal(t, "52500", rec.PensionDeduction)
	requireDecimal(t, "36750", rec.HealthDeduction)
	requireDecimal(t, "0", rec.TaxDeduction)
	requireDecimal(t, "0", rec.OtherDeductions)
	requireDecimal(t, "89250", rec.TotalDeductions)
	requireDecimal(t, "435750", rec.NetSalary)

	assert.Equal(t, payroll.StatusDraft, rec.Status)
	assert.Nil(t, rec.PaymentDate)
	assert.Equal(t, testPeriod, rec.Period)
}

func TestGenerateDriverEndToEnd(t *testing.T) {
	f := newFixture(
		[]staff.StaffMember{testStaff("drv-1", staff.RoleDriver, 400000)},
		[]contract.Contract{
			driverService("svc-day", "drv-1", false),
			driverService("svc-night", "drv-1", true),
		},
	)

	result, err := f.service.Generate(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, result.Successes, 1)

	rec, err := f.records.GetByID(context.Background(), result.Successes[0].RecordID)
	require.NoError(t, err)

	// 15000 * 2 services + 5000 night premium
	requireDecimal(t, "35000", rec.Bonuses)
	requireDecimal(t, "0", rec.Commissions)
	requireDecimal(t, "435000", rec.GrossSalary)

	expectedNet := rec.GrossSalary.
		Sub(rec.PensionDeduction).
		Sub(rec.HealthDeduction).
		Sub(rec.TaxDeduction)
	require.True(t, rec.NetSalary.Equal(expectedNet), "net %s vs %s", rec.NetSalary, expectedNet)
}

func TestGenerateArithmeticClosure(t *testing.T) {
	f := newFixture(
		[]staff.StaffMember{
			testStaff("sec-1", staff.RoleSecretary, 500000),
			testStaff("drv-1", staff.RoleDriver, 400000),
			testStaff("ast-1", staff.RoleAssistant, 350000),
			testStaff("adm-1", staff.RoleAdministrator, 900000),
			testStaff("own-1", staff.RoleOwner, 1200000),
		},
		[]contract.Contract{
			secretarySale("sec-1", 25000),
			driverService("svc-1", "drv-1", true),
		},
	)

	result, err := f.service.Generate(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, result.Successes, 5)
	require.Empty(t, result.Errors)

	records, err := f.records.List(context.Background(), payroll.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 5)

	for _, rec := range records {
		gross := rec.BaseSalary.Add(rec.Commissions).Add(rec.Bonuses).Add(rec.Overtime)
		require.True(t, rec.GrossSalary.Equal(gross), "gross mismatch for %s", rec.StaffID)

		total := rec.PensionDeduction.Add(rec.HealthDeduction).Add(rec.TaxDeduction).Add(rec.OtherDeductions)
		require.True(t, rec.TotalDeductions.Equal(total), "deductions mismatch for %s", rec.StaffID)

		require.True(t, rec.NetSalary.Equal(rec.GrossSalary.Sub(rec.TotalDeductions)), "net mismatch for %s", rec.StaffID)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	f := newFixture(
		[]staff.StaffMember{
			testStaff("sec-1", staff.RoleSecretary, 500000),
			testStaff("drv-1", staff.RoleDriver, 400000),
		},
		nil,
	)

	first, err := f.service.Generate(context.Background(), testPeriod)
	require.NoError(t, err)
	assert.Len(t, first.Successes, 2)
	assert.Empty(t, first.Errors)

	second, err := f.service.Generate(context.Background(), testPeriod)
	require.NoError(t, err)
	assert.Empty(t, second.Successes)
	assert.Equal(t, 0, second.Processed)
	require.Len(t, second.Errors, 2)
	for _, e := range second.Errors {
		assert.Contains(t, e.Reason, "already exists")
	}

	records, err := f.records.List(context.Background(), payroll.Filter{})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGenerateSkipsDuplicateAndContinues(t *testing.T) {
	f := newFixture(
		[]staff.StaffMember{
			testStaff("sec-1", staff.RoleSecretary, 500000),
			testStaff("drv-1", staff.RoleDriver, 400000),
		},
		nil,
	)

	// Pre-existing record for the secretary only.
	_, err := f.records.Create(context.Background(), payroll.Record{
		ID:      "existing",
		StaffID: "sec-1",
		Period:  testPeriod,
		Status:  payroll.StatusDraft,
	})
	require.NoError(t, err)

	result, err := f.service.Generate(context.Background(), testPeriod)
	require.NoError(t, err)

	require.Len(t, result.Successes, 1)
	assert.Equal(t, "drv-1", result.Successes[0].StaffID)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "sec-1", result.Errors[0].StaffID)
}

func TestGenerateIsolatesPerStaffComputeFailures(t *testing.T) {
	f := newFixture(
		[]staff.StaffMember{
			testStaff("sec-1", staff.RoleSecretary, 500000),
			testStaff("odd-1", staff.Role("gardener"), 300000),
		},
		nil,
	)

	result, err := f.service.Generate(context.Background(), testPeriod)
	require.NoError(t, err)

	require.Len(t, result.Successes, 1)
	assert.Equal(t, "sec-1", result.Successes[0].StaffID)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "odd-1", result.Errors[0].StaffID)
	assert.Contains(t, result.Errors[0].Reason, "no earnings rule")
}

func TestGenerateInsertRaceBecomesDuplicateError(t *testing.T) {
	staffRepo := memory.NewStaffRepository(
		testStaff("sec-1", staff.RoleSecretary, 500000),
		testStaff("drv-1", staff.RoleDriver, 400000),
	)
	payrollRepo := &racingPayrollRepo{
		PayrollRepository: memory.NewPayrollRepository(),
		racingStaffID:     "sec-1",
	}

	earnings := payroll.NewEarningsCalculator(memory.NewContractRepository(), payroll.DefaultEarningsRates())
	deductions := payroll.NewDeductionCalculator(payroll.DefaultDeductionConfig())
	svc := NewPayrollService(staffRepo, payrollRepo, memory.TxRunner{}, earnings, deductions)

	result, err := svc.Generate(context.Background(), testPeriod)
	require.NoError(t, err)

	require.Len(t, result.Successes, 1)
	assert.Equal(t, "drv-1", result.Successes[0].StaffID)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "sec-1", result.Errors[0].StaffID)
	assert.Contains(t, result.Errors[0].Reason, "already exists")

	// The loser's record belongs to the winning run; this run stored only
	// the driver's.
	records, err := payrollRepo.List(context.Background(), payroll.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "drv-1", records[0].StaffID)
}

func TestGenerateRunsEachStaffInItsOwnTransaction(t *testing.T) {
	staffRepo := memory.NewStaffRepository(
		testStaff("sec-1", staff.RoleSecretary, 500000),
		testStaff("drv-1", staff.RoleDriver, 400000),
		testStaff("ast-1", staff.RoleAssistant, 350000),
	)
	payrollRepo := memory.NewPayrollRepository()
	tx := &countingTxRunner{}

	earnings := payroll.NewEarningsCalculator(memory.NewContractRepository(), payroll.DefaultEarningsRates())
	deductions := payroll.NewDeductionCalculator(payroll.DefaultDeductionConfig())
	svc := NewPayrollService(staffRepo, payrollRepo, tx, earnings, deductions)

	result, err := svc.Generate(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, result.Successes, 3)
	assert.Equal(t, 3, tx.runs)

	// Duplicate skips still go through a transaction for the check.
	_, err = svc.Generate(context.Background(), testPeriod)
	require.NoError(t, err)
	assert.Equal(t, 6, tx.runs)
}

func TestGenerateEmptyRosterReturnsEmptySlices(t *testing.T) {
	f := newFixture(nil, nil)

	result, err := f.service.Generate(context.Background(), testPeriod)
	require.NoError(t, err)

	// Marshals as [] rather than null.
	assert.NotNil(t, result.Successes)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Successes)
	assert.Empty(t, result.Errors)
}

func TestGenerateInvalidPeriodIsFatal(t *testing.T) {
	f := newFixture([]staff.StaffMember{testStaff("sec-1", staff.RoleSecretary, 500000)}, nil)

	_, err := f.service.Generate(context.Background(), "July 2026")
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriodFormat)

	records, listErr := f.records.List(context.Background(), payroll.Filter{})
	require.NoError(t, listErr)
	assert.Empty(t, records)
}

func TestGenerateBatchTotals(t *testing.T) {
	f := newFixture(
		[]staff.StaffMember{
			testStaff("sec-1", staff.RoleSecretary, 500000),
			testStaff("drv-1", staff.RoleDriver, 400000),
		},
		[]contract.Contract{
			secretarySale("sec-1", 25000),
			driverService("svc-day", "drv-1", false),
			driverService("svc-night", "drv-1", true),
		},
	)

	result, err := f.service.Generate(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, result.Successes, 2)

	// secretary 525000 + driver 435000
	requireDecimal(t, "960000", result.TotalGross)
	// secretary 89250 + driver (43500 + 30450 + 0)
	requireDecimal(t, "163200", result.TotalDeductions)
	requireDecimal(t, "796800", result.TotalNet)
	require.True(t, result.TotalNet.Equal(result.TotalGross.Sub(result.TotalDeductions)))
}

// ========== LIFECYCLE ==========

func generateOne(t *testing.T, f fixture) string {
	t.Helper()
	result, err := f.service.Generate(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, result.Successes, 1)
	return result.Successes[0].RecordID
}

func TestApproveAndPayLifecycle(t *testing.T) {
	f := newFixture([]staff.StaffMember{testStaff("sec-1", staff.RoleSecretary, 500000)}, nil)
	ctx := context.Background()
	id := generateOne(t, f)

	// Paying a draft record is refused and leaves payment_date unset.
	paid, err := f.service.MarkPaid(ctx, id, nil)
	require.NoError(t, err)
	assert.False(t, paid)

	rec, err := f.records.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusDraft, rec.Status)
	assert.Nil(t, rec.PaymentDate)

	// draft -> approved
	approved, err := f.service.Approve(ctx, id)
	require.NoError(t, err)
	assert.True(t, approved)

	// Approving twice: the second caller observes failure, no error.
	approved, err = f.service.Approve(ctx, id)
	require.NoError(t, err)
	assert.False(t, approved)

	// approved -> paid with an explicit payment date
	payDate := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)
	paid, err = f.service.MarkPaid(ctx, id, &payDate)
	require.NoError(t, err)
	assert.True(t, paid)

	rec, err = f.records.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, rec.Status)
	require.NotNil(t, rec.PaymentDate)
	assert.True(t, rec.PaymentDate.Equal(payDate))

	// Paid is terminal in every direction.
	approved, err = f.service.Approve(ctx, id)
	require.NoError(t, err)
	assert.False(t, approved)

	paid, err = f.service.MarkPaid(ctx, id, nil)
	require.NoError(t, err)
	assert.False(t, paid)
}

func TestMarkPaidDefaultsToNow(t *testing.T) {
	f := newFixture([]staff.StaffMember{testStaff("sec-1", staff.RoleSecretary, 500000)}, nil)
	ctx := context.Background()
	id := generateOne(t, f)

	_, err := f.service.Approve(ctx, id)
	require.NoError(t, err)

	before := time.Now().UTC()
	paid, err := f.service.MarkPaid(ctx, id, nil)
	require.NoError(t, err)
	require.True(t, paid)

	rec, err := f.records.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec.PaymentDate)
	assert.False(t, rec.PaymentDate.Before(before))
}

func TestApproveMissingRecord(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.service.Approve(context.Background(), "nope")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

// ========== RECALCULATION ==========

func TestRecalculatePicksUpNewContracts(t *testing.T) {
	f := newFixture(
		[]staff.StaffMember{testStaff("sec-1", staff.RoleSecretary, 500000)},
		[]contract.Contract{secretarySale("sec-1", 25000)},
	)
	ctx := context.Background()
	id := generateOne(t, f)

	// Keep it approved to prove the status survives recalculation.
	_, err := f.service.Approve(ctx, id)
	require.NoError(t, err)

	// A second sale lands in the period after generation.
	late := secretarySale("sec-1", 40000)
	late.ID = "sec-1-late-sale"
	f.contracts.Add(late)

	resp, err := f.service.Recalculate(ctx, id)
	require.NoError(t, err)

	requireDecimal(t, "65000", resp.Commissions)
	requireDecimal(t, "565000", resp.GrossSalary)
	assert.Equal(t, string(payroll.StatusApproved), resp.Status)
	assert.Contains(t, resp.Notes, "recalculated at")

	rec, err := f.records.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, rec.Status)
	require.True(t, rec.NetSalary.Equal(rec.GrossSalary.Sub(rec.TotalDeductions)))
}

func TestRecalculateAppendsAuditNotes(t *testing.T) {
	f := newFixture([]staff.StaffMember{testStaff("sec-1", staff.RoleSecretary, 500000)}, nil)
	ctx := context.Background()
	id := generateOne(t, f)

	_, err := f.service.Recalculate(ctx, id)
	require.NoError(t, err)
	resp, err := f.service.Recalculate(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(resp.Notes, "recalculated at"))
}

func TestRecalculateOnPaidRecordFails(t *testing.T) {
	f := newFixture([]staff.StaffMember{testStaff("sec-1", staff.RoleSecretary, 500000)}, nil)
	ctx := context.Background()
	id := generateOne(t, f)

	_, err := f.service.Approve(ctx, id)
	require.NoError(t, err)
	_, err = f.service.MarkPaid(ctx, id, nil)
	require.NoError(t, err)

	before, err := f.records.GetByID(ctx, id)
	require.NoError(t, err)

	_, err = f.service.Recalculate(ctx, id)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)

	after, err := f.records.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.Notes, after.Notes)
	require.True(t, after.NetSalary.Equal(before.NetSalary))
}

// ========== SUMMARY ==========

func TestSummaryCountsAndTotals(t *testing.T) {
	f := newFixture(
		[]staff.StaffMember{
			testStaff("sec-1", staff.RoleSecretary, 500000),
			testStaff("drv-1", staff.RoleDriver, 400000),
		},
		nil,
	)
	ctx := context.Background()

	result, err := f.service.Generate(ctx, testPeriod)
	require.NoError(t, err)
	require.Len(t, result.Successes, 2)

	_, err = f.service.Approve(ctx, result.Successes[0].RecordID)
	require.NoError(t, err)

	summary, err := f.service.Summary(ctx, testPeriod)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.RecordCount)
	assert.Equal(t, 1, summary.DraftCount)
	assert.Equal(t, 1, summary.ApprovedCount)
	assert.Equal(t, 0, summary.PaidCount)
	requireDecimal(t, "900000", summary.TotalBaseSalary)
	require.True(t, summary.TotalNet.Equal(summary.TotalGross.Sub(summary.TotalDeductions)))
}

func TestSummaryInvalidPeriod(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.service.Summary(context.Background(), "2026-7")
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriodFormat)
}
