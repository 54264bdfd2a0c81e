package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/handlers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockReportingService *MockReportingService
	mockIntegrityService *MockIntegrityService
	token                string
}

func (suite *ReportingHandlerTestSuite) SetupTest() {
	var group *gin.RouterGroup
	suite.router, group = newTestRouter()
	suite.mockReportingService = new(MockReportingService)
	suite.mockIntegrityService = new(MockIntegrityService)
	suite.token = generateTestToken(testUser)

	handlers.RegisterReportingRoutes(group, suite.mockReportingService, suite.mockIntegrityService, time.UTC)
}

func (suite *ReportingHandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, ledgerPrefix+path, nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func utcDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingHandlerTestSuite) TestTrialBalance_Unbounded() {
	suite.mockReportingService.On("TrialBalance", mock.Anything, testTenant, (*time.Time)(nil), (*time.Time)(nil)).
		Return(&domain.TrialBalance{
			Rows: []domain.TrialBalanceRow{
				{AccountID: 1, AccountName: "Cash-in-Hand", AccountType: domain.Asset, DebitBalance: decimal.RequireFromString("500"), CreditBalance: decimal.Zero},
				{AccountID: 3, AccountName: "Fuel Sales", AccountType: domain.Customer, DebitBalance: decimal.Zero, CreditBalance: decimal.RequireFromString("500")},
			},
			TotalDebits:  decimal.RequireFromString("500"),
			TotalCredits: decimal.RequireFromString("500"),
			Difference:   decimal.Zero,
			IsBalanced:   true,
		}, nil).Once()

	w := suite.get("/reports/trial-balance")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsBalanced)
	suite.Len(resp.Rows, 2)
	suite.Equal("500.00", resp.TotalDebits)
	suite.Nil(resp.DateFrom)
}

func (suite *ReportingHandlerTestSuite) TestProfitAndLoss_RequiresBothDates() {
	w := suite.get("/reports/profit-loss?dateFrom=2024-01-01")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "dateTo is required")
	suite.mockReportingService.AssertNotCalled(suite.T(), "ProfitAndLoss", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingHandlerTestSuite) TestProfitAndLoss_InvertedRange() {
	from, to := utcDay(2024, 2, 1), utcDay(2024, 1, 1)
	suite.mockReportingService.On("ProfitAndLoss", mock.Anything, testTenant, from, to).
		Return(nil, apperrors.NewValidationError("dateFrom must not be after dateTo")).Once()

	w := suite.get("/reports/profit-loss?dateFrom=2024-02-01&dateTo=2024-01-01")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ReportingHandlerTestSuite) TestProfitAndLoss() {
	from, to := utcDay(2024, 1, 1), utcDay(2024, 1, 31)
	suite.mockReportingService.On("ProfitAndLoss", mock.Anything, testTenant, from, to).
		Return(&domain.ProfitLossReport{
			DateFrom:            from,
			DateTo:              to,
			Income:              []domain.ReportLine{{AccountID: 3, AccountName: "Fuel Sales", AccountType: domain.Customer, Amount: decimal.RequireFromString("5000")}},
			TotalIncome:         decimal.RequireFromString("5000"),
			TotalDirectExpenses: decimal.RequireFromString("3000"),
			TotalExpenses:       decimal.RequireFromString("3400"),
			GrossProfit:         decimal.RequireFromString("2000"),
			NetProfit:           decimal.RequireFromString("1600"),
		}, nil).Once()

	w := suite.get("/reports/profit-loss?dateFrom=2024-01-01&dateTo=2024-01-31")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProfitLossResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2000.00", resp.GrossProfit)
	suite.Equal("1600.00", resp.NetProfit)
	suite.Equal("2024-01-31", resp.DateTo)
}

func (suite *ReportingHandlerTestSuite) TestBalanceSheet_DefaultsToToday() {
	suite.mockReportingService.On("BalanceSheet", mock.Anything, testTenant, mock.MatchedBy(func(asOf time.Time) bool {
		return asOf.Location() == time.UTC && asOf.Hour() == 0 && asOf.Minute() == 0 && !asOf.IsZero()
	})).Return(&domain.BalanceSheetReport{AsOfDate: utcDay(2024, 1, 15), IsBalanced: true}, nil).Once()

	w := suite.get("/reports/balance-sheet")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestBalanceSheet_ExplicitDate() {
	suite.mockReportingService.On("BalanceSheet", mock.Anything, testTenant, utcDay(2023, 12, 31)).
		Return(&domain.BalanceSheetReport{
			AsOfDate:         utcDay(2023, 12, 31),
			TotalAssets:      decimal.RequireFromString("12000"),
			TotalLiabilities: decimal.RequireFromString("10400"),
			RetainedEarnings: decimal.RequireFromString("1600"),
			TotalEquity:      decimal.RequireFromString("1600"),
			IsBalanced:       true,
		}, nil).Once()

	w := suite.get("/reports/balance-sheet?asOfDate=2023-12-31")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceSheetResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2023-12-31", resp.AsOfDate)
	suite.Equal("1600.00", resp.RetainedEarnings)
}

func (suite *ReportingHandlerTestSuite) TestGeneralLedger_UnknownAccount() {
	from := utcDay(2024, 1, 1)
	suite.mockReportingService.On("GeneralLedger", mock.Anything, testTenant, int64(99), &from, (*time.Time)(nil)).
		Return(nil, apperrors.NewNotFoundError("account %d", 99)).Once()

	w := suite.get("/reports/general-ledger/99?dateFrom=2024-01-01")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ReportingHandlerTestSuite) TestGeneralLedger() {
	suite.mockReportingService.On("GeneralLedger", mock.Anything, testTenant, int64(1), (*time.Time)(nil), (*time.Time)(nil)).
		Return(&domain.GeneralLedger{
			Account:        domain.Account{AccountID: 1, Name: "Cash-in-Hand", AccountType: domain.Asset, Status: domain.AccountActive},
			OpeningBalance: decimal.Zero,
			Lines: []domain.LedgerLine{
				{EntryID: 1, VoucherID: 1, VoucherNumber: "R2024010001", VoucherDate: utcDay(2024, 1, 2), VoucherType: domain.ReceiptVoucher, LineNo: 1, Debit: decimal.RequireFromString("700"), Credit: decimal.Zero, RunningBalance: decimal.RequireFromString("700")},
			},
			TotalDebits:    decimal.RequireFromString("700"),
			TotalCredits:   decimal.Zero,
			ClosingBalance: decimal.RequireFromString("700"),
		}, nil).Once()

	w := suite.get("/reports/general-ledger/1")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GeneralLedgerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Lines, 1)
	suite.Equal("700.00", resp.Lines[0].RunningBalance)
	suite.Equal("2024-01-02", resp.Lines[0].Date)
	suite.Equal("700.00", resp.ClosingBalance)
}

func (suite *ReportingHandlerTestSuite) TestCashFlow_BadDate() {
	w := suite.get("/reports/cash-flow?dateFrom=2024-13-01&dateTo=2024-01-31")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "YYYY-MM-DD")
}

func (suite *ReportingHandlerTestSuite) TestCashFlow() {
	from, to := utcDay(2024, 1, 1), utcDay(2024, 1, 31)
	suite.mockReportingService.On("CashFlow", mock.Anything, testTenant, from, to).
		Return(&domain.CashFlowReport{
			DateFrom:       from,
			DateTo:         to,
			Receipts:       []domain.CashFlowLine{{VoucherID: 1, VoucherNumber: "R2024010001", VoucherDate: utcDay(2024, 1, 2), VoucherType: domain.ReceiptVoucher, Amount: decimal.RequireFromString("700")}},
			TotalReceipts:  decimal.RequireFromString("700"),
			TotalPayments:  decimal.Zero,
			NetCashFlow:    decimal.RequireFromString("700"),
			ClosingBalance: decimal.RequireFromString("700"),
		}, nil).Once()

	w := suite.get("/reports/cash-flow?dateFrom=2024-01-01&dateTo=2024-01-31")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CashFlowResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Receipts, 1)
	suite.Equal("700.00", resp.NetCashFlow)
}

func (suite *ReportingHandlerTestSuite) TestIntegrityCheck() {
	suite.mockIntegrityService.On("RunIntegrityCheck", mock.Anything, testTenant).
		Return(&domain.IntegrityReport{
			TenantID:  testTenant,
			CheckedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Passed:    false,
			Failures:  1,
			Results: []domain.IntegrityCheckResult{
				{CheckName: "voucher_balance", Passed: false, Severity: domain.SeverityError, Message: "1 voucher does not balance", Details: []string{"J2024010003"}},
			},
		}, nil).Once()

	w := suite.get("/reports/integrity-check")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.IntegrityReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Passed)
	suite.Equal(1, resp.Failures)
	suite.Require().Len(resp.Results, 1)
	suite.Equal("error", resp.Results[0].Severity)
}

func (suite *ReportingHandlerTestSuite) TestIntegrityCheck_UnexpectedError() {
	suite.mockIntegrityService.On("RunIntegrityCheck", mock.Anything, testTenant).
		Return(nil, errors.New("connection reset")).Once()

	w := suite.get("/reports/integrity-check")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func TestReportingHandler(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}
