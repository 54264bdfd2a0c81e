package pgsql_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/repositories/database/pgsql"
	"github.com/laxmibabar011/Fuelizer-sub003/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// testDatabaseEnv names a disposable PostgreSQL database; the suite is skipped without it.
const testDatabaseEnv = "LEDGER_TEST_PGSQL_URL"

type PostingIntegrationTestSuite struct {
	suite.Suite
	ctx      context.Context
	pool     *pgxpool.Pool
	tenantID string
	accounts portssvc.AccountSvcFacade
	vouchers portssvc.VoucherSvcFacade
	ids      map[string]int64
}

func (suite *PostingIntegrationTestSuite) SetupSuite() {
	url := os.Getenv(testDatabaseEnv)
	if url == "" {
		suite.T().Skipf("%s not set", testDatabaseEnv)
	}
	suite.ctx = context.Background()
	suite.Require().NoError(database.RunMigrations(url, "file://../../../../migrations", slog.Default()))

	pool, err := database.NewPgxPool(suite.ctx, url, true)
	suite.Require().NoError(err)
	suite.pool = pool
}

func (suite *PostingIntegrationTestSuite) TearDownSuite() {
	database.ClosePgxPool(suite.pool)
}

func (suite *PostingIntegrationTestSuite) SetupTest() {
	suite.tenantID = "it-" + uuid.NewString()
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	repos := pgsql.NewRepositoryProvider(suite.pool)
	suite.accounts = services.NewAccountService(repos.AccountRepo, services.WithAccountClock(clock))
	suite.vouchers = services.NewVoucherService(repos.VoucherRepo, repos.AccountRepo, services.WithVoucherClock(clock))

	created, err := suite.accounts.SeedSystemAccounts(suite.ctx, suite.tenantID, "owner")
	suite.Require().NoError(err)
	suite.ids = make(map[string]int64, len(created))
	for _, acc := range created {
		suite.ids[acc.Name] = acc.AccountID
	}
}

func (suite *PostingIntegrationTestSuite) TearDownTest() {
	_, err := suite.pool.Exec(suite.ctx, `DELETE FROM vouchers WHERE tenant_id = $1`, suite.tenantID)
	suite.NoError(err)
	_, err = suite.pool.Exec(suite.ctx, `DELETE FROM accounts WHERE tenant_id = $1`, suite.tenantID)
	suite.NoError(err)
}

func (suite *PostingIntegrationTestSuite) TestConcurrentPostsGetGaplessNumbers() {
	const posts = 20
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
			amount := decimal.NewFromInt(int64(500 + i))
			v, err := suite.vouchers.PostVoucher(suite.ctx, suite.tenantID, dto.PostVoucherRequest{
				Date:        "2024-01-15",
				VoucherType: domain.ReceiptVoucher,
				Entries: []dto.EntryRequest{
					{LedgerAccountID: suite.ids["Cash-in-Hand"], DebitAmount: amount},
					{LedgerAccountID: suite.ids["Fuel Sales"], CreditAmount: amount},
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

	suite.Require().Empty(errs)
	suite.Require().Len(numbers, posts)
	sort.Strings(numbers)
	for i, n := range numbers {
		suite.Equal(fmt.Sprintf("R202401%04d", i+1), n)
	}
}

func (suite *PostingIntegrationTestSuite) TestNextPostContinuesSeries() {
	post := func(amount string) string {
		v, err := suite.vouchers.PostVoucher(suite.ctx, suite.tenantID, dto.PostVoucherRequest{
			Date:        "2024-01-15",
			VoucherType: domain.JournalVoucher,
			Entries: []dto.EntryRequest{
				{LedgerAccountID: suite.ids["General Expenses"], DebitAmount: decimal.RequireFromString(amount)},
				{LedgerAccountID: suite.ids["Cash-in-Hand"], CreditAmount: decimal.RequireFromString(amount)},
			},
		}, "cashier-1")
		suite.Require().NoError(err)
		return v.VoucherNumber
	}

	suite.Equal("J2024010001", post("120"))
	suite.Equal("J2024010002", post("80.50"))
}

func TestPostingIntegration(t *testing.T) {
	suite.Run(t, new(PostingIntegrationTestSuite))
}
