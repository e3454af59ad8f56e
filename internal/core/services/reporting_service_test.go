package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	portssvc "github.com/agrisuite/genfin_backend/internal/core/ports/services"
	"github.com/agrisuite/genfin_backend/internal/core/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockReportingRepository is a mock type for the reporting repository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockReportingRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockReportingRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, tx pgx.Tx, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, tx, from, to)
	var revenue, expenses []domain.AccountAmount
	if args.Get(0) != nil {
		revenue = args.Get(0).([]domain.AccountAmount)
	}
	if args.Get(1) != nil {
		expenses = args.Get(1).([]domain.AccountAmount)
	}
	return revenue, expenses, args.Error(2)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, tx pgx.Tx, asOf time.Time) (map[domain.AccountClassification][]domain.AccountAmount, error) {
	args := m.Called(ctx, tx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountClassification][]domain.AccountAmount), args.Error(1)
}

func (m *MockReportingRepository) GetCashBalance(ctx context.Context, tx pgx.Tx, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetCashFlowData(ctx context.Context, tx pgx.Tx, from, to time.Time) (map[domain.AccountClassification][]domain.AccountAmount, error) {
	args := m.Called(ctx, tx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountClassification][]domain.AccountAmount), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingService

	asOf time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.asOf = time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) expectSnapshot(ctx context.Context, tx stubTx) {
	suite.mockRepo.On("BeginSnapshot", ctx).Return(tx, nil).Once()
	suite.mockRepo.On("Rollback", ctx, tx).Return(nil)
}

func amount(id string, net string) domain.AccountAmount {
	return domain.AccountAmount{AccountID: id, NetAmount: decimal.RequireFromString(net)}
}

func classified(id string, class domain.AccountClassification, net string) domain.AccountAmount {
	return domain.AccountAmount{AccountID: id, Classification: class, NetAmount: decimal.RequireFromString(net)}
}

// --- Trial balance ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	tx := stubTx{}
	rows := []domain.TrialBalanceRow{
		{AccountNumber: "1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountNumber: "4000", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}

	suite.expectSnapshot(ctx, tx)
	suite.mockRepo.On("GetTrialBalanceData", ctx, tx, suite.asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Len(report.Rows, 2)
	suite.True(report.TotalDebits.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalCredits.Equal(decimal.NewFromInt(500)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_DivergingTotals() {
	ctx := context.Background()
	tx := stubTx{}
	rows := []domain.TrialBalanceRow{
		{AccountNumber: "1000", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountNumber: "4000", Debit: decimal.Zero, Credit: decimal.NewFromInt(499)},
	}

	suite.expectSnapshot(ctx, tx)
	suite.mockRepo.On("GetTrialBalanceData", ctx, tx, suite.asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrConsistency)
}

// --- Profit and loss ---

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_InvertedRange() {
	ctx := context.Background()

	report, err := suite.service.ProfitAndLoss(ctx, suite.asOf, suite.asOf.AddDate(0, 0, -1), false)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "BeginSnapshot", mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_Totals() {
	ctx := context.Background()
	tx := stubTx{}
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := suite.asOf

	revenue := []domain.AccountAmount{amount("rev-1", "8000"), amount("rev-2", "2000")}
	expenses := []domain.AccountAmount{amount("exp-1", "6500")}

	suite.expectSnapshot(ctx, tx)
	suite.mockRepo.On("GetProfitAndLossData", ctx, tx, from, to).Return(revenue, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, from, to, false)

	suite.Require().NoError(err)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(10000)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(6500)))
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(3500)))
	suite.Nil(report.PriorPeriod)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_WithPriorWindow() {
	ctx := context.Background()
	tx := stubTx{}
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := suite.asOf

	// A thirty day window shifts back to March 2 through March 31.
	priorFrom := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	priorTo := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.expectSnapshot(ctx, tx)
	suite.mockRepo.On("GetProfitAndLossData", ctx, tx, from, to).
		Return([]domain.AccountAmount{amount("rev-1", "1000")}, []domain.AccountAmount{}, nil).Once()
	suite.mockRepo.On("GetProfitAndLossData", ctx, tx, priorFrom, priorTo).
		Return([]domain.AccountAmount{amount("rev-1", "800")}, []domain.AccountAmount{}, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, from, to, true)

	suite.Require().NoError(err)
	suite.Require().NotNil(report.PriorPeriod)
	suite.Equal(priorFrom, report.PriorPeriod.From)
	suite.Equal(priorTo, report.PriorPeriod.To)
	suite.True(report.PriorPeriod.TotalRevenue.Equal(decimal.NewFromInt(800)))
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Balance sheet ---

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Balanced() {
	ctx := context.Background()
	tx := stubTx{}

	grouped := map[domain.AccountClassification][]domain.AccountAmount{
		domain.ClassCash:             {classified("cash-1", domain.ClassCash, "1000")},
		domain.ClassCurrentLiability: {classified("ap-1", domain.ClassCurrentLiability, "400")},
		domain.ClassEquity:           {classified("re-1", domain.ClassEquity, "361")},
	}

	suite.expectSnapshot(ctx, tx)
	suite.mockRepo.On("GetBalanceSheetData", ctx, tx, suite.asOf).Return(grouped, nil).Once()
	// All-time revenue/expense net still sitting outside equity accounts.
	suite.mockRepo.On("GetProfitAndLossData", ctx, tx, time.Time{}, suite.asOf).
		Return([]domain.AccountAmount{amount("rev-1", "239")}, []domain.AccountAmount{}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(600)))
	suite.True(report.CurrentPeriodEarnings.Equal(decimal.NewFromInt(239)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Unbalanced() {
	ctx := context.Background()
	tx := stubTx{}

	grouped := map[domain.AccountClassification][]domain.AccountAmount{
		domain.ClassCash:             {classified("cash-1", domain.ClassCash, "1000")},
		domain.ClassCurrentLiability: {classified("ap-1", domain.ClassCurrentLiability, "400")},
	}

	suite.expectSnapshot(ctx, tx)
	suite.mockRepo.On("GetBalanceSheetData", ctx, tx, suite.asOf).Return(grouped, nil).Once()
	suite.mockRepo.On("GetProfitAndLossData", ctx, tx, time.Time{}, suite.asOf).
		Return([]domain.AccountAmount{}, []domain.AccountAmount{}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.asOf)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrConsistency)
}

// --- Cash flow ---

func (suite *ReportingServiceTestSuite) TestCashFlow_BucketsAndNetChange() {
	ctx := context.Background()
	tx := stubTx{}
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := suite.asOf

	grouped := map[domain.AccountClassification][]domain.AccountAmount{
		domain.ClassRevenue:    {classified("rev-1", domain.ClassRevenue, "500")},
		domain.ClassFixedAsset: {classified("fa-1", domain.ClassFixedAsset, "-200")},
	}

	suite.expectSnapshot(ctx, tx)
	suite.mockRepo.On("GetCashBalance", ctx, tx, from).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockRepo.On("GetCashFlowData", ctx, tx, from, to).Return(grouped, nil).Once()

	report, err := suite.service.CashFlow(ctx, from, to)

	suite.Require().NoError(err)
	suite.True(report.BeginningBalance.Equal(decimal.NewFromInt(100)))
	suite.Require().Len(report.Groups, 2)
	suite.Equal(domain.ActivityOperating, report.Groups[0].Activity)
	suite.True(report.Groups[0].Total.Equal(decimal.NewFromInt(500)))
	suite.Equal(domain.ActivityInvesting, report.Groups[1].Activity)
	suite.True(report.Groups[1].Total.Equal(decimal.NewFromInt(-200)))
	suite.True(report.NetChange.Equal(decimal.NewFromInt(300)))
	suite.True(report.EndingBalance.Equal(decimal.NewFromInt(400)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCashFlow_InvertedRange() {
	ctx := context.Background()

	report, err := suite.service.CashFlow(ctx, suite.asOf, suite.asOf.AddDate(0, 0, -1))

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "BeginSnapshot", mock.Anything)
}

// --- Ratios ---

func (suite *ReportingServiceTestSuite) TestRatios_Defined() {
	ctx := context.Background()
	tx := stubTx{}

	grouped := map[domain.AccountClassification][]domain.AccountAmount{
		domain.ClassCash:             {classified("cash-1", domain.ClassCash, "200")},
		domain.ClassCurrentAsset:     {classified("ar-1", domain.ClassCurrentAsset, "300")},
		domain.ClassCurrentLiability: {classified("ap-1", domain.ClassCurrentLiability, "250")},
		domain.ClassLongTermLiab:     {classified("loan-1", domain.ClassLongTermLiab, "250")},
		domain.ClassEquity:           {classified("re-1", domain.ClassEquity, "900")},
	}
	trailingFrom := suite.asOf.AddDate(0, 0, -364)
	trailingRevenue := []domain.AccountAmount{amount("rev-1", "1000")}
	trailingExpenses := []domain.AccountAmount{
		classified("cogs-1", domain.ClassCOGS, "400"),
		classified("exp-1", domain.ClassExpense, "200"),
	}

	suite.expectSnapshot(ctx, tx)
	suite.mockRepo.On("GetBalanceSheetData", ctx, tx, suite.asOf).Return(grouped, nil).Once()
	suite.mockRepo.On("GetProfitAndLossData", ctx, tx, trailingFrom, suite.asOf).
		Return(trailingRevenue, trailingExpenses, nil).Once()
	suite.mockRepo.On("GetProfitAndLossData", ctx, tx, time.Time{}, suite.asOf).
		Return([]domain.AccountAmount{amount("rev-1", "100")}, []domain.AccountAmount{}, nil).Once()

	report, err := suite.service.Ratios(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().True(report.CurrentRatio.Defined)
	suite.True(report.CurrentRatio.Value.Equal(decimal.NewFromInt(2)))
	suite.Require().True(report.QuickRatio.Defined)
	suite.True(report.QuickRatio.Value.Equal(decimal.RequireFromString("0.8")))
	suite.True(report.WorkingCapital.Equal(decimal.NewFromInt(250)))
	suite.Require().True(report.DebtToEquity.Defined)
	suite.True(report.DebtToEquity.Value.Equal(decimal.RequireFromString("0.5")))
	suite.Require().True(report.GrossMargin.Defined)
	suite.True(report.GrossMargin.Value.Equal(decimal.RequireFromString("0.6")))
	suite.Require().True(report.NetMargin.Defined)
	suite.True(report.NetMargin.Value.Equal(decimal.RequireFromString("0.4")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestRatios_ZeroDenominatorsUndefined() {
	ctx := context.Background()
	tx := stubTx{}

	grouped := map[domain.AccountClassification][]domain.AccountAmount{
		domain.ClassCash:         {classified("cash-1", domain.ClassCash, "250")},
		domain.ClassCurrentAsset: {classified("ar-1", domain.ClassCurrentAsset, "750")},
	}

	suite.expectSnapshot(ctx, tx)
	suite.mockRepo.On("GetBalanceSheetData", ctx, tx, suite.asOf).Return(grouped, nil).Once()
	suite.mockRepo.On("GetProfitAndLossData", ctx, tx, mock.AnythingOfType("time.Time"), suite.asOf).
		Return([]domain.AccountAmount{}, []domain.AccountAmount{}, nil).Twice()

	report, err := suite.service.Ratios(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.False(report.CurrentRatio.Defined)
	suite.False(report.QuickRatio.Defined)
	suite.False(report.DebtToEquity.Defined)
	suite.False(report.GrossMargin.Defined)
	suite.False(report.NetMargin.Defined)
	suite.True(report.WorkingCapital.Equal(decimal.NewFromInt(1000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
