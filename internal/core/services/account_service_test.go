package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testTenant = "station-42"

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

type AccountServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo, services.WithAccountClock(func() time.Time { return fixedNow }))
}

func strPtr(s string) *string { return &s }

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		Name:        "  Diesel Tank Stock ",
		AccountType: domain.Asset,
		Description: strPtr("Diesel held in underground tanks"),
	}

	suite.mockRepo.On("FindAccountByName", suite.ctx, testTenant, "Diesel Tank Stock").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("*domain.Account")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Account).AccountID = 11
		}).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, testTenant, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(int64(11), account.AccountID)
	suite.Equal("Diesel Tank Stock", account.Name)
	suite.Equal(testTenant, account.TenantID)
	suite.Equal(domain.AccountActive, account.Status)
	suite.False(account.IsSystemAccount)
	suite.Equal("user-1", account.CreatedBy)
	suite.Equal(fixedNow, account.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ReportsEveryProblem() {
	bad := domain.AccountStatus("frozen")
	req := dto.CreateAccountRequest{
		Name:        "X",
		AccountType: domain.AccountType("Revenue"),
		Status:      &bad,
	}

	account, err := suite.service.CreateAccount(suite.ctx, testTenant, req, "user-1")

	suite.Nil(account)
	var validationErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Len(validationErr.Errors, 3)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateName() {
	existing := &domain.Account{AccountID: 3, TenantID: testTenant, Name: "Fuel Sales"}
	suite.mockRepo.On("FindAccountByName", suite.ctx, testTenant, "fuel sales").Return(existing, nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, testTenant, dto.CreateAccountRequest{Name: "fuel sales", AccountType: domain.Customer}, "user-1")

	suite.Nil(account)
	var validationErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Contains(validationErr.Errors[0], "already exists")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateOnSaveRace() {
	suite.mockRepo.On("FindAccountByName", suite.ctx, testTenant, "Lubricants").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(suite.ctx, testTenant, dto.CreateAccountRequest{Name: "Lubricants", AccountType: domain.Asset}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RepositoryFailure() {
	suite.mockRepo.On("FindAccountByName", suite.ctx, testTenant, "Lubricants").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.Anything).Return(assert.AnError).Once()

	account, err := suite.service.CreateAccount(suite.ctx, testTenant, dto.CreateAccountRequest{Name: "Lubricants", AccountType: domain.Asset}, "user-1")

	suite.Nil(account)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RejectsSystemFlagChange() {
	flag := true
	_, err := suite.service.UpdateAccount(suite.ctx, testTenant, 5, dto.UpdateAccountRequest{IsSystemAccount: &flag}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeChangeBlockedByEntries() {
	acc := &domain.Account{AccountID: 5, TenantID: testTenant, Name: "Petty Cash", AccountType: domain.Asset, Status: domain.AccountActive}
	suite.mockRepo.On("FindAccountByID", suite.ctx, testTenant, int64(5)).Return(acc, nil).Once()
	suite.mockRepo.On("CountEntriesForAccount", suite.ctx, testTenant, int64(5)).Return(int64(4), nil).Once()

	newType := domain.Bank
	_, err := suite.service.UpdateAccount(suite.ctx, testTenant, 5, dto.UpdateAccountRequest{AccountType: &newType}, "user-1")

	var protectedErr *apperrors.ProtectedAccountError
	suite.Require().ErrorAs(err, &protectedErr)
	suite.Equal([]apperrors.ProtectionReason{apperrors.ReasonHasEntries}, protectedErr.Reasons)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RenameAndRetypeUnusedAccount() {
	acc := &domain.Account{AccountID: 6, TenantID: testTenant, Name: "Misc", AccountType: domain.Asset, Status: domain.AccountActive}
	suite.mockRepo.On("FindAccountByID", suite.ctx, testTenant, int64(6)).Return(acc, nil).Once()
	suite.mockRepo.On("FindAccountByName", suite.ctx, testTenant, "Station Bank").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CountEntriesForAccount", suite.ctx, testTenant, int64(6)).Return(int64(0), nil).Once()
	suite.mockRepo.On("UpdateAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Station Bank" && a.AccountType == domain.Bank && a.LastUpdatedBy == "user-2"
	})).Return(nil).Once()

	newName := "Station Bank"
	newType := domain.Bank
	updated, err := suite.service.UpdateAccount(suite.ctx, testTenant, 6, dto.UpdateAccountRequest{Name: &newName, AccountType: &newType}, "user-2")

	suite.Require().NoError(err)
	suite.Equal(domain.Bank, updated.AccountType)
	suite.Equal(fixedNow, updated.LastUpdatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_SystemAccountIsProtected() {
	acc := &domain.Account{AccountID: 1, TenantID: testTenant, Name: "Cash-in-Hand", AccountType: domain.Asset, IsSystemAccount: true}
	suite.mockRepo.On("FindAccountByID", suite.ctx, testTenant, int64(1)).Return(acc, nil).Once()
	suite.mockRepo.On("CountEntriesForAccount", suite.ctx, testTenant, int64(1)).Return(int64(2), nil).Once()

	err := suite.service.DeleteAccount(suite.ctx, testTenant, 1, "user-1")

	var protectedErr *apperrors.ProtectedAccountError
	suite.Require().ErrorAs(err, &protectedErr)
	suite.ErrorIs(err, apperrors.ErrProtectedAccount)
	suite.ElementsMatch([]apperrors.ProtectionReason{apperrors.ReasonSystemAccount, apperrors.ReasonHasEntries}, protectedErr.Reasons)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	acc := &domain.Account{AccountID: 9, TenantID: testTenant, Name: "Old", AccountType: domain.Asset}
	suite.mockRepo.On("FindAccountByID", suite.ctx, testTenant, int64(9)).Return(acc, nil).Once()
	suite.mockRepo.On("CountEntriesForAccount", suite.ctx, testTenant, int64(9)).Return(int64(0), nil).Once()
	suite.mockRepo.On("DeleteAccount", suite.ctx, testTenant, int64(9)).Return(nil).Once()

	suite.NoError(suite.service.DeleteAccount(suite.ctx, testTenant, 9, "user-1"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NotFound() {
	suite.mockRepo.On("FindAccountByID", suite.ctx, testTenant, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(suite.ctx, testTenant, 404, "user-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountProtectionStatus() {
	acc := &domain.Account{AccountID: 7, TenantID: testTenant, Name: "Fuel Sales", AccountType: domain.Customer, IsSystemAccount: true}
	suite.mockRepo.On("FindAccountByID", suite.ctx, testTenant, int64(7)).Return(acc, nil).Once()
	suite.mockRepo.On("CountEntriesForAccount", suite.ctx, testTenant, int64(7)).Return(int64(0), nil).Once()

	status, err := suite.service.GetAccountProtectionStatus(suite.ctx, testTenant, 7)

	suite.Require().NoError(err)
	suite.True(status.IsProtected)
	suite.False(status.CanDelete)
	suite.False(status.CanChangeType)
	suite.Equal([]string{"system_account"}, status.Reasons)
}

func (suite *AccountServiceTestSuite) TestSeedSystemAccounts_SkipsExistingNames() {
	suite.mockRepo.On("FindAccountByName", suite.ctx, testTenant, "Cash-in-Hand").
		Return(&domain.Account{AccountID: 1, Name: "Cash-in-Hand"}, nil).Once()
	suite.mockRepo.On("FindAccountByName", suite.ctx, testTenant, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a *domain.Account) bool {
		return a.IsSystemAccount && a.Status == domain.AccountActive
	})).Return(nil)

	created, err := suite.service.SeedSystemAccounts(suite.ctx, testTenant, "user-1")

	suite.Require().NoError(err)
	suite.Len(created, 6)
	for _, acc := range created {
		suite.NotEqual("Cash-in-Hand", acc.Name)
	}
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 6)
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyIsNotNil() {
	suite.mockRepo.On("ListAccounts", suite.ctx, testTenant, domain.AccountFilter{}).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(suite.ctx, testTenant, domain.AccountFilter{})

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
