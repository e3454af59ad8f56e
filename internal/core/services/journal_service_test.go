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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// stubTx satisfies pgx.Tx for services that only hand the transaction through
// to mocked repository methods. Any direct use panics.
type stubTx struct {
	pgx.Tx
}

// MockJournalRepository is a mock type for the journal repository interfaces
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalByIDForUpdate(ctx context.Context, tx pgx.Tx, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, tx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	var journals []domain.Journal
	if args.Get(0) != nil {
		journals = args.Get(0).([]domain.Journal)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return journals, token, args.Error(2)
}

func (m *MockJournalRepository) CountDraftJournalsInRange(ctx context.Context, tx pgx.Tx, from, to time.Time) (int64, error) {
	args := m.Called(ctx, tx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction) error {
	args := m.Called(ctx, journal, transactions)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, transactions []domain.Transaction) error {
	args := m.Called(ctx, tx, journal, transactions)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkJournalPostedInTx(ctx context.Context, tx pgx.Tx, journalID string, postedAt time.Time, runningBalances map[string]decimal.Decimal, userID string) error {
	args := m.Called(ctx, tx, journalID, postedAt, runningBalances, userID)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalStatusAndLinksInTx(ctx context.Context, tx pgx.Tx, journalID string, status domain.JournalStatus, reversingJournalID *string, originalJournalID *string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, journalID, status, reversingJournalID, originalJournalID, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockJournalRepository) FindTransactionsByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.Transaction, error) {
	args := m.Called(ctx, journalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.Transaction), args.Error(1)
}

func (m *MockJournalRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockJournalRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var transactions []domain.Transaction
	if args.Get(0) != nil {
		transactions = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return transactions, token, args.Error(2)
}

// MockPeriodRepository is a mock type for the fiscal period repository interfaces
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPeriodRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPeriodRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDateForShare(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, limit int, offset int) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) MarkPeriodClosedInTx(ctx context.Context, tx pgx.Tx, periodID string, closingJournalID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, periodID, closingJournalID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockPeriodRepository
	mockPartyRepo   *MockPartyRepository
	service         portssvc.JournalSvcFacade

	journalDate time.Time
	openPeriod  *domain.FiscalPeriod
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		suite.mockPeriodRepo,
		suite.mockPartyRepo,
	)

	suite.journalDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.openPeriod = &domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "FY2025-03",
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

func (suite *JournalServiceTestSuite) activeAccounts(cashID, revenueID string) map[string]domain.Account {
	return map[string]domain.Account{
		cashID: {
			AccountID:      cashID,
			AccountNumber:  "1000",
			AccountType:    domain.Asset,
			Classification: domain.ClassCash,
			IsActive:       true,
			Balance:        decimal.Zero,
		},
		revenueID: {
			AccountID:      revenueID,
			AccountNumber:  "4000",
			AccountType:    domain.Revenue,
			Classification: domain.ClassRevenue,
			IsActive:       true,
			Balance:        decimal.Zero,
		},
	}
}

func (suite *JournalServiceTestSuite) balancedRequest(cashID, revenueID string) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		JournalDate: suite.journalDate,
		Description: "Cash sale",
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: cashID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
			{AccountID: revenueID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit},
		},
	}
}

// --- CreateJournal ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	cashID, revenueID := uuid.NewString(), uuid.NewString()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.activeAccounts(cashID, revenueID), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.journalDate).Return(suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction")).
		Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.balancedRequest(cashID, revenueID), userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.Equal(domain.Draft, journal.Status)
	suite.Nil(journal.PostedAt)
	suite.Len(journal.Transactions, 2)
	suite.Equal(journal.JournalID, journal.Transactions[0].JournalID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SingleAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateJournalRequest{
		JournalDate: suite.journalDate,
		Description: "Self transfer",
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: accountID, Amount: decimal.NewFromInt(50), TransactionType: domain.Debit},
			{AccountID: accountID, Amount: decimal.NewFromInt(50), TransactionType: domain.Credit},
		},
	}

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrJournalMinAccounts)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_NonPositiveAmount() {
	ctx := context.Background()
	cashID, revenueID := uuid.NewString(), uuid.NewString()
	req := suite.balancedRequest(cashID, revenueID)
	req.Transactions[0].Amount = decimal.Zero

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Unbalanced() {
	ctx := context.Background()
	cashID, revenueID := uuid.NewString(), uuid.NewString()
	req := suite.balancedRequest(cashID, revenueID)
	req.Transactions[1].Amount = decimal.RequireFromString("99.99")

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "do not balance")
}

func (suite *JournalServiceTestSuite) TestCreateJournal_AccountInactive() {
	ctx := context.Background()
	cashID, revenueID := uuid.NewString(), uuid.NewString()
	accounts := suite.activeAccounts(cashID, revenueID)
	inactive := accounts[revenueID]
	inactive.IsActive = false
	accounts[revenueID] = inactive

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.balancedRequest(cashID, revenueID), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrAccountInactive)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_AccountMissing() {
	ctx := context.Background()
	cashID, revenueID := uuid.NewString(), uuid.NewString()
	accounts := suite.activeAccounts(cashID, revenueID)
	delete(accounts, revenueID)

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.balancedRequest(cashID, revenueID), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "does not exist")
}

func (suite *JournalServiceTestSuite) TestCreateJournal_DocumentRefWithoutParty() {
	ctx := context.Background()
	cashID, revenueID := uuid.NewString(), uuid.NewString()
	req := suite.balancedRequest(cashID, revenueID)
	req.Transactions[0].DocumentRef = "INV-1001"

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "requires a party")
}

func (suite *JournalServiceTestSuite) TestCreateJournal_PartyInactive() {
	ctx := context.Background()
	cashID, receivableID := uuid.NewString(), uuid.NewString()
	partyID := uuid.NewString()
	docDate := suite.journalDate

	accounts := suite.activeAccounts(cashID, receivableID)
	req := suite.balancedRequest(cashID, receivableID)
	req.Transactions[1].PartyID = partyID
	req.Transactions[1].DocumentRef = "INV-1001"
	req.Transactions[1].DocumentDate = &docDate

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", ctx, partyID).
		Return(&domain.Party{PartyID: partyID, Kind: domain.Customer, IsActive: false}, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "inactive")
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_NoOpenPeriod() {
	ctx := context.Background()
	cashID, revenueID := uuid.NewString(), uuid.NewString()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.activeAccounts(cashID, revenueID), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.journalDate).Return(nil, apperrors.ErrNotFound).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.balancedRequest(cashID, revenueID), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrNoPeriodForDate)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_ClosedPeriod() {
	ctx := context.Background()
	cashID, revenueID := uuid.NewString(), uuid.NewString()
	closed := *suite.openPeriod
	closed.Status = domain.PeriodClosed

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.activeAccounts(cashID, revenueID), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.journalDate).Return(&closed, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.balancedRequest(cashID, revenueID), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
}

// --- PostJournal ---

func (suite *JournalServiceTestSuite) TestPostJournal_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	journalID := uuid.NewString()
	cashID, revenueID := uuid.NewString(), uuid.NewString()
	tx := stubTx{}

	draft := &domain.Journal{
		JournalID:   journalID,
		JournalDate: suite.journalDate,
		Description: "Cash sale",
		Status:      domain.Draft,
	}
	lines := []domain.Transaction{
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: cashID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: revenueID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit},
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalByIDForUpdate", ctx, tx, journalID).Return(draft, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateForShare", ctx, tx, suite.journalDate).Return(suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("FindTransactionsByJournalID", ctx, journalID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, tx, mock.AnythingOfType("[]string")).
		Return(suite.activeAccounts(cashID, revenueID), nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, tx, mock.AnythingOfType("map[string]decimal.Decimal"), userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockJournalRepo.On("MarkJournalPostedInTx", ctx, tx, journalID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("map[string]decimal.Decimal"), userID).
		Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, tx).Return(nil).Once()

	posted, err := suite.service.PostJournal(ctx, journalID, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.Equal(domain.Posted, posted.Status)
	suite.Require().NotNil(posted.PostedAt)
	suite.Require().Len(posted.Transactions, 2)
	// Debit to the zero-balance cash account and credit to revenue both land
	// the running balance at 100.
	suite.True(posted.Transactions[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	suite.True(posted.Transactions[1].RunningBalance.Equal(decimal.NewFromInt(100)))

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_NotDraft() {
	ctx := context.Background()
	journalID := uuid.NewString()
	tx := stubTx{}
	postedAt := time.Now().UTC()
	alreadyPosted := &domain.Journal{
		JournalID:   journalID,
		JournalDate: suite.journalDate,
		Status:      domain.Posted,
		PostedAt:    &postedAt,
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalByIDForUpdate", ctx, tx, journalID).Return(alreadyPosted, nil).Once()

	posted, err := suite.service.PostJournal(ctx, journalID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(posted)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_ClosedPeriod() {
	ctx := context.Background()
	journalID := uuid.NewString()
	tx := stubTx{}
	closed := *suite.openPeriod
	closed.Status = domain.PeriodClosed
	draft := &domain.Journal{JournalID: journalID, JournalDate: suite.journalDate, Status: domain.Draft}

	suite.mockJournalRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalByIDForUpdate", ctx, tx, journalID).Return(draft, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateForShare", ctx, tx, suite.journalDate).Return(&closed, nil).Once()

	posted, err := suite.service.PostJournal(ctx, journalID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(posted)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

// --- VoidJournal ---

func (suite *JournalServiceTestSuite) TestVoidJournal_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	journalID := uuid.NewString()
	cashID, revenueID := uuid.NewString(), uuid.NewString()
	tx := stubTx{}
	postedAt := time.Now().UTC()

	original := &domain.Journal{
		JournalID:   journalID,
		JournalDate: suite.journalDate,
		Description: "Cash sale",
		Status:      domain.Posted,
		PostedAt:    &postedAt,
	}
	lines := []domain.Transaction{
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: cashID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: revenueID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit},
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalByIDForUpdate", ctx, tx, journalID).Return(original, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateForShare", ctx, tx, suite.journalDate).Return(suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("FindTransactionsByJournalID", ctx, journalID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("SaveJournalInTx", ctx, tx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction")).
		Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, tx, mock.AnythingOfType("[]string")).
		Return(suite.activeAccounts(cashID, revenueID), nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, tx, mock.AnythingOfType("map[string]decimal.Decimal"), userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockJournalRepo.On("MarkJournalPostedInTx", ctx, tx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"), mock.AnythingOfType("map[string]decimal.Decimal"), userID).
		Return(nil).Once()
	suite.mockJournalRepo.On("UpdateJournalStatusAndLinksInTx", ctx, tx, journalID, domain.Reversed, mock.AnythingOfType("*string"), (*string)(nil), userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, tx).Return(nil).Once()

	reversing, err := suite.service.VoidJournal(ctx, journalID, dto.VoidJournalRequest{Reason: "duplicate entry"}, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversing)
	suite.Equal(domain.Posted, reversing.Status)
	suite.Require().NotNil(reversing.OriginalJournalID)
	suite.Equal(journalID, *reversing.OriginalJournalID)
	suite.Contains(reversing.Description, "duplicate entry")
	suite.Require().Len(reversing.Transactions, 2)
	// Sides are swapped on the mirror lines.
	suite.Equal(domain.Credit, reversing.Transactions[0].TransactionType)
	suite.Equal(domain.Debit, reversing.Transactions[1].TransactionType)

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestVoidJournal_AlreadyReversed() {
	ctx := context.Background()
	journalID := uuid.NewString()
	reversingID := uuid.NewString()
	tx := stubTx{}
	postedAt := time.Now().UTC()
	original := &domain.Journal{
		JournalID:          journalID,
		JournalDate:        suite.journalDate,
		Status:             domain.Posted,
		PostedAt:           &postedAt,
		ReversingJournalID: &reversingID,
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalByIDForUpdate", ctx, tx, journalID).Return(original, nil).Once()

	reversing, err := suite.service.VoidJournal(ctx, journalID, dto.VoidJournalRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(reversing)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.Contains(err.Error(), "already reversed")
}

func (suite *JournalServiceTestSuite) TestVoidJournal_NotPosted() {
	ctx := context.Background()
	journalID := uuid.NewString()
	tx := stubTx{}
	draft := &domain.Journal{JournalID: journalID, JournalDate: suite.journalDate, Status: domain.Draft}

	suite.mockJournalRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalByIDForUpdate", ctx, tx, journalID).Return(draft, nil).Once()

	reversing, err := suite.service.VoidJournal(ctx, journalID, dto.VoidJournalRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(reversing)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
}

// --- ListJournals ---

func (suite *JournalServiceTestSuite) TestListJournals_UnknownStatusFilter() {
	ctx := context.Background()
	status := "PENDING"

	resp, err := suite.service.ListJournals(ctx, dto.ListJournalsParams{Limit: 20, Status: &status})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
