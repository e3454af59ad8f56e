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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the account repository interfaces
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, accountType *domain.AccountType, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, accountType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) HasPostedTransactions(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountNumber:  "1000",
		Name:           "Operating Cash",
		AccountType:    domain.Asset,
		Classification: domain.ClassCash,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal(req.AccountNumber, created.AccountNumber)
	suite.Equal(req.Name, created.Name)
	suite.Equal(domain.Asset, created.AccountType)
	suite.Equal(domain.ClassCash, created.Classification)
	suite.True(created.IsActive)
	suite.True(created.Balance.IsZero())
	suite.Equal(creatorUserID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ClassificationMismatch() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountNumber:  "2000",
		Name:           "Accounts Payable",
		AccountType:    domain.Liability,
		Classification: domain.ClassCash,
	}

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountNumber:   "1010",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		Classification:  domain.ClassCash,
		ParentAccountID: &parentID,
	}

	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parentID := uuid.NewString()
	parent := &domain.Account{
		AccountID:      parentID,
		AccountNumber:  "4000",
		AccountType:    domain.Revenue,
		Classification: domain.ClassRevenue,
		IsActive:       true,
	}
	req := dto.CreateAccountRequest{
		AccountNumber:   "1010",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		Classification:  domain.ClassCash,
		ParentAccountID: &parentID,
	}

	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(parent, nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountNumber:  "5000",
		Name:           "Freight Expense",
		AccountType:    domain.Expense,
		Classification: domain.ClassExpense,
	}

	expectedErr := assert.AnError
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(expectedErr).Once()

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByNumber_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		AccountNumber:  "1000",
		Name:           "Operating Cash",
		AccountType:    domain.Asset,
		Classification: domain.ClassCash,
		IsActive:       true,
	}

	suite.mockRepo.On("FindAccountByNumber", ctx, "1000").Return(account, nil).Once()

	found, err := suite.service.GetAccountByNumber(ctx, "1000")

	suite.Require().NoError(err)
	suite.Equal(account, found)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_TypeFilter() {
	ctx := context.Background()
	assetType := domain.Asset
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), AccountType: domain.Asset, Classification: domain.ClassCash},
	}

	suite.mockRepo.On("ListAccounts", ctx, &assetType, 20, 0).Return(accounts, nil).Once()

	typeParam := "ASSET"
	got, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{Limit: 20, Offset: 0, Type: &typeParam})

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_UnknownTypeFilter() {
	ctx := context.Background()
	typeParam := "CONTRA"

	got, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{Limit: 20, Type: &typeParam})

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	updaterUserID := uuid.NewString()
	existing := &domain.Account{
		AccountID:      accountID,
		AccountNumber:  "1000",
		Name:           "Cash",
		AccountType:    domain.Asset,
		Classification: domain.ClassCash,
		IsActive:       true,
	}
	newName := "Operating Cash"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &newName}, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal(updaterUserID, updated.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockRepo.On("DeactivateAccount", ctx, accountID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("DeactivateAccount", ctx, accountID, mock.Anything, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrValidation).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "already inactive")
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
