package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// LedgerFlowTestSuite drives the services against the in-memory store.
type LedgerFlowTestSuite struct {
	suite.Suite
	ctx       context.Context
	accounts  portssvc.AccountSvcFacade
	vouchers  portssvc.VoucherSvcFacade
	reporting portssvc.ReportingService
	integrity portssvc.IntegrityService
	ids       map[string]int64
}

func newLedger(now time.Time) (portssvc.AccountSvcFacade, portssvc.VoucherSvcFacade, portssvc.ReportingService, portssvc.IntegrityService) {
	repos := memory.NewRepositoryProvider(memory.NewStore())
	clock := func() time.Time { return now }
	return services.NewAccountService(repos.AccountRepo, services.WithAccountClock(clock)),
		services.NewVoucherService(repos.VoucherRepo, repos.AccountRepo, services.WithVoucherClock(clock)),
		services.NewReportingService(repos.ReportingRepo),
		services.NewIntegrityService(repos.ReportingRepo, services.WithIntegrityClock(clock))
}

func (suite *LedgerFlowTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.accounts, suite.vouchers, suite.reporting, suite.integrity = newLedger(fixedNow)

	created, err := suite.accounts.SeedSystemAccounts(suite.ctx, testTenant, "owner")
	suite.Require().NoError(err)
	suite.Require().Len(created, 7)

	suite.ids = make(map[string]int64, len(created))
	for _, acc := range created {
		suite.ids[acc.Name] = acc.AccountID
	}
}

func (suite *LedgerFlowTestSuite) post(voucherType domain.VoucherType, date string, debit, credit string, amount string) *domain.Voucher {
	v, err := suite.vouchers.PostVoucher(suite.ctx, testTenant, dto.PostVoucherRequest{
		Date:        date,
		VoucherType: voucherType,
		Entries: []dto.EntryRequest{
			{LedgerAccountID: suite.ids[debit], DebitAmount: decimal.RequireFromString(amount)},
			{LedgerAccountID: suite.ids[credit], CreditAmount: decimal.RequireFromString(amount)},
		},
	}, "cashier-1")
	suite.Require().NoError(err)
	return v
}

func (suite *LedgerFlowTestSuite) balanceOf(name string) decimal.Decimal {
	b, err := suite.reporting.AccountBalance(suite.ctx, testTenant, suite.ids[name], nil)
	suite.Require().NoError(err)
	return b.Balance
}

func (suite *LedgerFlowTestSuite) TestSeedIsIdempotent() {
	again, err := suite.accounts.SeedSystemAccounts(suite.ctx, testTenant, "owner")

	suite.Require().NoError(err)
	suite.Empty(again)

	all, err := suite.accounts.ListAccounts(suite.ctx, testTenant, domain.AccountFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 7)
}

func (suite *LedgerFlowTestSuite) TestNumberingPerTypeAndMonth() {
	j1 := suite.post(domain.JournalVoucher, "2024-01-15", "Cash-in-Hand", "Capital Account", "10000")
	j2 := suite.post(domain.JournalVoucher, "2024-01-15", "Cash-in-Hand", "Capital Account", "500")
	p1 := suite.post(domain.PaymentVoucher, "2024-01-10", "Fuel Purchases", "Cash-in-Hand", "3000")
	dec := suite.post(domain.JournalVoucher, "2023-12-31", "Cash-in-Hand", "Capital Account", "1")

	suite.Equal("J2024010001", j1.VoucherNumber)
	suite.Equal("J2024010002", j2.VoucherNumber)
	suite.Equal("P2024010001", p1.VoucherNumber)
	suite.Equal("J2023120001", dec.VoucherNumber)
}

func (suite *LedgerFlowTestSuite) TestEntryWithBothSidesIsRejected() {
	_, err := suite.vouchers.PostVoucher(suite.ctx, testTenant, dto.PostVoucherRequest{
		Date:        "2024-01-15",
		VoucherType: domain.JournalVoucher,
		Entries: []dto.EntryRequest{
			{LedgerAccountID: suite.ids["Cash-in-Hand"], DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.NewFromInt(100)},
			{LedgerAccountID: suite.ids["Capital Account"], CreditAmount: decimal.NewFromInt(100)},
		},
	}, "cashier-1")

	var validationErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Contains(validationErr.Errors, "Entry 1: cannot have both debit and credit amounts")

	page, err := suite.vouchers.ListVouchers(suite.ctx, testTenant, dto.ListVouchersParams{Limit: 10})
	suite.Require().NoError(err)
	suite.Empty(page.Vouchers)
}

func (suite *LedgerFlowTestSuite) TestCancelRestoresBalances() {
	suite.post(domain.JournalVoucher, "2024-01-01", "Cash-in-Hand", "Capital Account", "10000")
	sale := suite.post(domain.ReceiptVoucher, "2024-01-15", "Cash-in-Hand", "Fuel Sales", "5000")
	suite.True(decimal.NewFromInt(15000).Equal(suite.balanceOf("Cash-in-Hand")))

	cancelled, err := suite.vouchers.CancelVoucher(suite.ctx, testTenant, sale.VoucherID, "manager")
	suite.Require().NoError(err)
	suite.Equal(domain.VoucherCancelled, cancelled.Status)
	suite.Require().NotNil(cancelled.CancelledBy)
	suite.Equal("manager", *cancelled.CancelledBy)

	suite.True(decimal.NewFromInt(10000).Equal(suite.balanceOf("Cash-in-Hand")))
	suite.True(suite.balanceOf("Fuel Sales").IsZero())

	_, err = suite.vouchers.CancelVoucher(suite.ctx, testTenant, sale.VoucherID, "manager")
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *LedgerFlowTestSuite) TestAccountWithEntriesCannotBeDeletedOrRetyped() {
	acc, err := suite.accounts.CreateAccount(suite.ctx, testTenant, dto.CreateAccountRequest{Name: "Petrol Tank", AccountType: domain.Asset}, "owner")
	suite.Require().NoError(err)
	suite.ids[acc.Name] = acc.AccountID
	suite.post(domain.JournalVoucher, "2024-01-05", "Petrol Tank", "Capital Account", "750")

	err = suite.accounts.DeleteAccount(suite.ctx, testTenant, acc.AccountID, "owner")
	suite.ErrorIs(err, apperrors.ErrProtectedAccount)

	newType := domain.Bank
	_, err = suite.accounts.UpdateAccount(suite.ctx, testTenant, acc.AccountID, dto.UpdateAccountRequest{AccountType: &newType}, "owner")
	suite.ErrorIs(err, apperrors.ErrProtectedAccount)
}

func (suite *LedgerFlowTestSuite) TestReportsAgreeWithPostings() {
	suite.post(domain.JournalVoucher, "2024-01-01", "Cash-in-Hand", "Capital Account", "10000")
	suite.post(domain.PaymentVoucher, "2024-01-10", "Fuel Purchases", "Cash-in-Hand", "3000")
	suite.post(domain.ReceiptVoucher, "2024-01-15", "Cash-in-Hand", "Fuel Sales", "5000")
	suite.post(domain.PaymentVoucher, "2024-01-12", "General Expenses", "Bank Account", "400")

	tb, err := suite.reporting.TrialBalance(suite.ctx, testTenant, nil, nil)
	suite.Require().NoError(err)
	suite.True(tb.IsBalanced)
	suite.True(decimal.NewFromInt(15400).Equal(tb.TotalDebits))

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	pl, err := suite.reporting.ProfitAndLoss(suite.ctx, testTenant, from, to)
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(5000).Equal(pl.TotalIncome))
	suite.True(decimal.NewFromInt(2000).Equal(pl.GrossProfit))
	suite.True(decimal.NewFromInt(1600).Equal(pl.NetProfit))

	bs, err := suite.reporting.BalanceSheet(suite.ctx, testTenant, to)
	suite.Require().NoError(err)
	suite.True(bs.IsBalanced)
	suite.True(decimal.NewFromInt(1600).Equal(bs.RetainedEarnings))

	gl, err := suite.reporting.GeneralLedger(suite.ctx, testTenant, suite.ids["Cash-in-Hand"], &from, &to)
	suite.Require().NoError(err)
	suite.Require().Len(gl.Lines, 3)
	suite.True(decimal.NewFromInt(12000).Equal(gl.ClosingBalance))
	suite.True(gl.ClosingBalance.Equal(gl.Lines[2].RunningBalance))

	cf, err := suite.reporting.CashFlow(suite.ctx, testTenant, from, to)
	suite.Require().NoError(err)
	suite.Len(cf.Receipts, 2)
	suite.Len(cf.Payments, 2)
	suite.True(decimal.NewFromInt(11600).Equal(cf.NetCashFlow))

	report, err := suite.integrity.RunIntegrityCheck(suite.ctx, testTenant)
	suite.Require().NoError(err)
	suite.True(report.Passed)
	suite.Zero(report.Failures)
}

func TestLedgerFlowTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerFlowTestSuite))
}

func TestConcurrentPostingKeepsNumbersGapless(t *testing.T) {
	ctx := context.Background()
	accounts, vouchers, _, integrity := newLedger(fixedNow)
	created, err := accounts.SeedSystemAccounts(ctx, testTenant, "owner")
	require.NoError(t, err)
	ids := make(map[string]int64)
	for _, acc := range created {
		ids[acc.Name] = acc.AccountID
	}

	const posts = 25
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []string
		errs    []error
	)
	for i := 0; i < posts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			amount := decimal.NewFromInt(int64(100 + i))
			v, err := vouchers.PostVoucher(ctx, testTenant, dto.PostVoucherRequest{
				Date:        "2024-01-15",
				VoucherType: domain.ReceiptVoucher,
				Entries: []dto.EntryRequest{
					{LedgerAccountID: ids["Cash-in-Hand"], DebitAmount: amount},
					{LedgerAccountID: ids["Fuel Sales"], CreditAmount: amount},
				},
			}, fmt.Sprintf("pump-%d", i))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			numbers = append(numbers, v.VoucherNumber)
		}(i)
	}
	wg.Wait()

	require.Empty(t, errs)
	require.Len(t, numbers, posts)
	sort.Strings(numbers)
	for i, n := range numbers {
		assert.Equal(t, fmt.Sprintf("R202401%04d", i+1), n)
	}

	report, err := integrity.RunIntegrityCheck(ctx, testTenant)
	require.NoError(t, err)
	assert.True(t, report.Passed)
}
