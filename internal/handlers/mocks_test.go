package handlers_test

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/handlers"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/middleware"
	"github.com/stretchr/testify/mock"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testTenant    = "station-42"
	testUser      = "user-7"
	ledgerPrefix  = "/api/v1/tenants/" + testTenant + "/ledger"
)

// generateTestToken creates a signed HS256 token for the given subject with access to testTenant.
func generateTestToken(userID string) string {
	return generateTenantToken(userID, testTenant)
}

// generateTenantToken creates a signed HS256 token granting the listed tenants.
func generateTenantToken(userID string, tenants ...string) string {
	claims := middleware.LedgerClaims{
		Tenants: tenants,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fuelizer-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// newTestRouter returns an engine with auth applied to the tenant ledger group.
func newTestRouter() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidations()
	r := gin.New()
	group := r.Group("/api/v1/tenants/:tenantID/ledger", middleware.AuthMiddleware(testJWTSecret), middleware.TenantAccess())
	return r, group
}

// --- MockAccountService ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID string, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID string, accountID int64, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, tenantID string, accountID int64, userID string) error {
	args := m.Called(ctx, tenantID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) SeedSystemAccounts(ctx context.Context, tenantID string, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountProtectionStatus(ctx context.Context, tenantID string, accountID int64) (*domain.ProtectionStatus, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProtectionStatus), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- MockVoucherService ---

type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) GetVoucherByID(ctx context.Context, tenantID string, voucherID int64) (*domain.Voucher, error) {
	args := m.Called(ctx, tenantID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherService) ListVouchers(ctx context.Context, tenantID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListVouchersResponse), args.Error(1)
}

func (m *MockVoucherService) PostVoucher(ctx context.Context, tenantID string, req dto.PostVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherService) CancelVoucher(ctx context.Context, tenantID string, voucherID int64, userID string) (*domain.Voucher, error) {
	args := m.Called(ctx, tenantID, voucherID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherService) ValidateEntries(ctx context.Context, tenantID string, entries []dto.EntryRequest) (*domain.EntryValidation, error) {
	args := m.Called(ctx, tenantID, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryValidation), args.Error(1)
}

var _ portssvc.VoucherSvcFacade = (*MockVoucherService)(nil)

// --- MockReportingService ---

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) AccountBalance(ctx context.Context, tenantID string, accountID int64, asOf *time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, tenantID, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockReportingService) TrialBalance(ctx context.Context, tenantID string, from, to *time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitLossReport, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitLossReport), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockReportingService) GeneralLedger(ctx context.Context, tenantID string, accountID int64, from, to *time.Time) (*domain.GeneralLedger, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedger), args.Error(1)
}

func (m *MockReportingService) CashFlow(ctx context.Context, tenantID string, from, to time.Time) (*domain.CashFlowReport, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- MockIntegrityService ---

type MockIntegrityService struct {
	mock.Mock
}

func (m *MockIntegrityService) RunIntegrityCheck(ctx context.Context, tenantID string) (*domain.IntegrityReport, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityReport), args.Error(1)
}

var _ portssvc.IntegrityService = (*MockIntegrityService)(nil)
