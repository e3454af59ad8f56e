package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	portssvc "github.com/agrisuite/genfin_backend/internal/core/ports/services"
	"github.com/agrisuite/genfin_backend/internal/core/services"
	"github.com/agrisuite/genfin_backend/internal/dto"
	"github.com/agrisuite/genfin_backend/internal/utils/payroll"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPayrollRepository is a mock type for the payroll repository interfaces
type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPayrollRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPayrollRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPayrollRepository) FindProfileByEmployeeID(ctx context.Context, employeeID string) (*domain.PayrollProfile, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollProfile), args.Error(1)
}

func (m *MockPayrollRepository) FindProfileByEmployeeIDForUpdate(ctx context.Context, tx pgx.Tx, employeeID string) (*domain.PayrollProfile, error) {
	args := m.Called(ctx, tx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollProfile), args.Error(1)
}

func (m *MockPayrollRepository) ListProfiles(ctx context.Context, limit int, offset int) ([]domain.PayrollProfile, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollProfile), args.Error(1)
}

func (m *MockPayrollRepository) SaveProfile(ctx context.Context, profile domain.PayrollProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockPayrollRepository) UpdateProfile(ctx context.Context, profile domain.PayrollProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockPayrollRepository) AdvanceYTDInTx(ctx context.Context, tx pgx.Tx, employeeID string, grossDelta, ficaWageDelta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, employeeID, grossDelta, ficaWageDelta, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PayrollServiceTestSuite struct {
	suite.Suite
	mockPayrollRepo *MockPayrollRepository
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.PayrollSvcFacade
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockPayrollRepo = new(MockPayrollRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewPayrollService(
		suite.mockPayrollRepo,
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		payroll.Config{
			FUTARate:     decimal.RequireFromString("0.006"),
			FUTAWageBase: decimal.NewFromInt(7000),
			SUTARate:     decimal.RequireFromString("0.027"),
			SUTAWageBase: decimal.NewFromInt(9000),
		},
	)
}

func (suite *PayrollServiceTestSuite) biweeklySingle(employeeID string) *domain.PayrollProfile {
	return &domain.PayrollProfile{
		EmployeeID:   employeeID,
		EmployeeName: "Alice Fielder",
		FilingStatus: domain.FilingSingle,
		Allowances:   0,
		PayFrequency: domain.PayBiweekly,
		PayRate:      decimal.NewFromInt(2000),
		YTDGross:     decimal.Zero,
		YTDFICAWages: decimal.Zero,
		SUTARate:     decimal.Zero,
		IsActive:     true,
	}
}

// --- Profiles ---

func (suite *PayrollServiceTestSuite) TestCreateProfile_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreatePayrollProfileRequest{
		EmployeeID:   "emp-100",
		EmployeeName: "Alice Fielder",
		FilingStatus: domain.FilingSingle,
		PayFrequency: domain.PayBiweekly,
		PayRate:      decimal.NewFromInt(2000),
	}

	suite.mockPayrollRepo.On("SaveProfile", ctx, mock.AnythingOfType("domain.PayrollProfile")).Return(nil).Once()

	profile, err := suite.service.CreateProfile(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal("emp-100", profile.EmployeeID)
	suite.True(profile.IsActive)
	suite.True(profile.YTDGross.IsZero())
	suite.Equal(userID, profile.CreatedBy)
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestCreateProfile_NegativePayRate() {
	ctx := context.Background()
	req := dto.CreatePayrollProfileRequest{
		EmployeeID:   "emp-100",
		EmployeeName: "Alice Fielder",
		FilingStatus: domain.FilingSingle,
		PayFrequency: domain.PayBiweekly,
		PayRate:      decimal.NewFromInt(-1),
	}

	profile, err := suite.service.CreateProfile(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(profile)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "SaveProfile", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestUpdateProfile_UnknownFilingStatus() {
	ctx := context.Background()
	bad := domain.FilingStatus("DOMESTIC_PARTNER")

	suite.mockPayrollRepo.On("FindProfileByEmployeeID", ctx, "emp-100").Return(suite.biweeklySingle("emp-100"), nil).Once()

	profile, err := suite.service.UpdateProfile(ctx, "emp-100", dto.UpdatePayrollProfileRequest{FilingStatus: &bad}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(profile)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "UpdateProfile", mock.Anything, mock.Anything)
}

// --- Withholding calculation ---

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_Success() {
	ctx := context.Background()

	suite.mockPayrollRepo.On("FindProfileByEmployeeID", ctx, "emp-100").Return(suite.biweeklySingle("emp-100"), nil).Once()

	result, err := suite.service.CalculateWithholding(ctx, dto.CalculateWithholdingRequest{
		EmployeeID: "emp-100",
		GrossPay:   decimal.NewFromInt(2000),
	})

	suite.Require().NoError(err)
	suite.True(result.FederalWithholding.Equal(decimal.RequireFromString("161.60")), "federal got %s", result.FederalWithholding)
	suite.True(result.SocialSecurity.Equal(decimal.RequireFromString("124.00")))
	suite.True(result.Medicare.Equal(decimal.RequireFromString("29.00")))
	suite.True(result.FUTA.Equal(decimal.RequireFromString("12.00")))
	suite.True(result.SUTA.Equal(decimal.RequireFromString("54.00")))
	suite.True(result.NetPay.Equal(decimal.RequireFromString("1685.40")))
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_ProfileNotFound() {
	ctx := context.Background()

	suite.mockPayrollRepo.On("FindProfileByEmployeeID", ctx, "emp-404").Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.CalculateWithholding(ctx, dto.CalculateWithholdingRequest{
		EmployeeID: "emp-404",
		GrossPay:   decimal.NewFromInt(2000),
	})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Pay runs ---

func (suite *PayrollServiceTestSuite) payRunRequest(payDate time.Time) dto.RecordPayRunRequest {
	return dto.RecordPayRunRequest{
		PayDate: payDate,
		Lines: []dto.PayRunLine{
			{EmployeeID: "emp-1", GrossPay: decimal.NewFromInt(2000)},
			{EmployeeID: "emp-2", GrossPay: decimal.NewFromInt(2000)},
		},
		WageExpenseAccountID:    "acc-wages",
		TaxLiabilityAccountID:   "acc-taxes",
		CashAccountID:           "acc-cash",
		EmployerTaxExpenseAccID: "acc-emp-taxes",
	}
}

func (suite *PayrollServiceTestSuite) expectActiveAccounts(ctx context.Context, ids ...string) {
	for _, id := range ids {
		account := &domain.Account{AccountID: id, IsActive: true}
		suite.mockAccountRepo.On("FindAccountByID", ctx, id).Return(account, nil).Once()
	}
}

func (suite *PayrollServiceTestSuite) TestRecordPayRun_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	tx := stubTx{}
	payDate := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	req := suite.payRunRequest(payDate)
	gross := decimal.NewFromInt(2000)

	suite.expectActiveAccounts(ctx, "acc-wages", "acc-taxes", "acc-cash", "acc-emp-taxes")
	suite.mockPayrollRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockPayrollRepo.On("Rollback", ctx, tx).Return(nil)
	suite.mockPayrollRepo.On("FindProfileByEmployeeIDForUpdate", ctx, tx, "emp-1").Return(suite.biweeklySingle("emp-1"), nil).Once()
	suite.mockPayrollRepo.On("FindProfileByEmployeeIDForUpdate", ctx, tx, "emp-2").Return(suite.biweeklySingle("emp-2"), nil).Once()
	suite.mockPayrollRepo.On("AdvanceYTDInTx", ctx, tx, "emp-1", gross, gross, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPayrollRepo.On("AdvanceYTDInTx", ctx, tx, "emp-2", gross, gross, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	var savedJournal domain.Journal
	var savedLines []domain.Transaction
	suite.mockJournalRepo.On("SaveJournalInTx", ctx, tx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction")).
		Run(func(args mock.Arguments) {
			savedJournal = args.Get(2).(domain.Journal)
			savedLines = args.Get(3).([]domain.Transaction)
		}).Return(nil).Once()
	suite.mockPayrollRepo.On("Commit", ctx, tx).Return(nil).Once()

	resp, err := suite.service.RecordPayRun(ctx, req, userID)

	suite.Require().NoError(err)
	suite.NotEmpty(resp.JournalID)
	suite.Require().Len(resp.Lines, 2)
	suite.True(resp.Lines[0].Withholding.FederalWithholding.Equal(decimal.RequireFromString("161.60")))
	suite.True(resp.TotalNet.Equal(decimal.RequireFromString("3370.80")))

	suite.Equal(domain.Draft, savedJournal.Status)
	suite.Equal("Pay run 2025-06-13", savedJournal.Description)
	suite.Equal(payDate, savedJournal.JournalDate)

	// Wages and employer taxes debited; liabilities and net cash credited.
	suite.Require().Len(savedLines, 4)
	debits, credits := decimal.Zero, decimal.Zero
	byAccount := map[string]domain.Transaction{}
	for _, line := range savedLines {
		byAccount[line.AccountID] = line
		if line.TransactionType == domain.Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}
	suite.True(debits.Equal(credits), "pay run journal must balance, debits %s credits %s", debits, credits)
	suite.True(byAccount["acc-wages"].Amount.Equal(decimal.NewFromInt(4000)))
	suite.True(byAccount["acc-emp-taxes"].Amount.Equal(decimal.RequireFromString("132.00")))
	suite.True(byAccount["acc-taxes"].Amount.Equal(decimal.RequireFromString("761.20")))
	suite.True(byAccount["acc-cash"].Amount.Equal(decimal.RequireFromString("3370.80")))

	suite.mockPayrollRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestRecordPayRun_InactiveEmployee() {
	ctx := context.Background()
	tx := stubTx{}
	req := suite.payRunRequest(time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC))

	inactive := suite.biweeklySingle("emp-1")
	inactive.IsActive = false

	suite.expectActiveAccounts(ctx, "acc-wages", "acc-taxes", "acc-cash", "acc-emp-taxes")
	suite.mockPayrollRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockPayrollRepo.On("Rollback", ctx, tx).Return(nil)
	suite.mockPayrollRepo.On("FindProfileByEmployeeIDForUpdate", ctx, tx, "emp-1").Return(inactive, nil).Once()

	resp, err := suite.service.RecordPayRun(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, services.ErrEmployeeInactive)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestRecordPayRun_UnknownAccount() {
	ctx := context.Background()
	req := suite.payRunRequest(time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC))

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-wages").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.RecordPayRun(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestPayrollService(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
