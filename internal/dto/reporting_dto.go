package dto

import (
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID     int64  `json:"account_id"`
	AccountName   string `json:"account_name"`
	AccountType   string `json:"account_type"`
	DebitBalance  string `json:"debit_balance"`
	CreditBalance string `json:"credit_balance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	DateFrom     *string                   `json:"date_from,omitempty"`
	DateTo       *string                   `json:"date_to,omitempty"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  string                    `json:"total_debits"`
	TotalCredits string                    `json:"total_credits"`
	Difference   string                    `json:"difference"`
	IsBalanced   bool                      `json:"is_balanced"`
}

// ReportLineResponse represents an account with its amount in a financial report
type ReportLineResponse struct {
	AccountID   int64  `json:"account_id"`
	AccountName string `json:"account_name"`
	AccountType string `json:"account_type"`
	Amount      string `json:"amount"`
}

// ProfitLossResponse represents the profit and loss report response
type ProfitLossResponse struct {
	DateFrom              string               `json:"date_from"`
	DateTo                string               `json:"date_to"`
	Income                []ReportLineResponse `json:"income"`
	DirectExpenses        []ReportLineResponse `json:"direct_expenses"`
	IndirectExpenses      []ReportLineResponse `json:"indirect_expenses"`
	TotalIncome           string               `json:"total_income"`
	TotalDirectExpenses   string               `json:"total_direct_expenses"`
	TotalIndirectExpenses string               `json:"total_indirect_expenses"`
	TotalExpenses         string               `json:"total_expenses"`
	GrossProfit           string               `json:"gross_profit"`
	NetProfit             string               `json:"net_profit"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOfDate         string               `json:"as_of_date"`
	Assets           []ReportLineResponse `json:"assets"`
	Liabilities      []ReportLineResponse `json:"liabilities"`
	RetainedEarnings string               `json:"retained_earnings"`
	TotalAssets      string               `json:"total_assets"`
	TotalLiabilities string               `json:"total_liabilities"`
	TotalEquity      string               `json:"total_equity"`
	Difference       string               `json:"difference"`
	IsBalanced       bool                 `json:"is_balanced"`
}

// LedgerLineResponse represents one general ledger line.
type LedgerLineResponse struct {
	EntryID        int64   `json:"entry_id"`
	VoucherID      int64   `json:"voucher_id"`
	VoucherNumber  string  `json:"voucher_number"`
	Date           string  `json:"date"`
	VoucherType    string  `json:"voucher_type"`
	Narration      *string `json:"narration,omitempty"`
	Debit          string  `json:"debit"`
	Credit         string  `json:"credit"`
	RunningBalance string  `json:"running_balance"`
}

// GeneralLedgerResponse represents an account's ledger for a period.
type GeneralLedgerResponse struct {
	Account        AccountResponse      `json:"account"`
	DateFrom       *string              `json:"date_from,omitempty"`
	DateTo         *string              `json:"date_to,omitempty"`
	OpeningBalance string               `json:"opening_balance"`
	Lines          []LedgerLineResponse `json:"lines"`
	TotalDebits    string               `json:"total_debits"`
	TotalCredits   string               `json:"total_credits"`
	ClosingBalance string               `json:"closing_balance"`
}

// CashFlowLineResponse represents one voucher in the cash flow report.
type CashFlowLineResponse struct {
	VoucherID     int64   `json:"voucher_id"`
	VoucherNumber string  `json:"voucher_number"`
	Date          string  `json:"date"`
	VoucherType   string  `json:"voucher_type"`
	Narration     *string `json:"narration,omitempty"`
	Amount        string  `json:"amount"`
}

// CashFlowResponse represents the cash flow report response.
type CashFlowResponse struct {
	DateFrom       string                 `json:"date_from"`
	DateTo         string                 `json:"date_to"`
	OpeningBalance string                 `json:"opening_balance"`
	Receipts       []CashFlowLineResponse `json:"receipts"`
	Payments       []CashFlowLineResponse `json:"payments"`
	Transfers      []CashFlowLineResponse `json:"transfers"`
	TotalReceipts  string                 `json:"total_receipts"`
	TotalPayments  string                 `json:"total_payments"`
	NetCashFlow    string                 `json:"net_cash_flow"`
	ClosingBalance string                 `json:"closing_balance"`
}

// IntegrityCheckResultResponse is a single check outcome.
type IntegrityCheckResultResponse struct {
	CheckName string   `json:"check_name"`
	Passed    bool     `json:"passed"`
	Severity  string   `json:"severity"`
	Message   string   `json:"message"`
	Details   []string `json:"details,omitempty"`
}

// IntegrityReportResponse is the outcome of a ledger audit.
type IntegrityReportResponse struct {
	CheckedAt time.Time                      `json:"checked_at"`
	Passed    bool                           `json:"passed"`
	Failures  int                            `json:"failures"`
	Warnings  int                            `json:"warnings"`
	Results   []IntegrityCheckResultResponse `json:"results"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, row := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:     row.AccountID,
			AccountName:   row.AccountName,
			AccountType:   string(row.AccountType),
			DebitBalance:  Money(row.DebitBalance),
			CreditBalance: Money(row.CreditBalance),
		}
	}
	return TrialBalanceResponse{
		DateFrom:     formatDatePtr(tb.DateFrom),
		DateTo:       formatDatePtr(tb.DateTo),
		Rows:         rows,
		TotalDebits:  Money(tb.TotalDebits),
		TotalCredits: Money(tb.TotalCredits),
		Difference:   Money(tb.Difference),
		IsBalanced:   tb.IsBalanced,
	}
}

func toReportLines(lines []domain.ReportLine) []ReportLineResponse {
	res := make([]ReportLineResponse, len(lines))
	for i, l := range lines {
		res[i] = ReportLineResponse{
			AccountID:   l.AccountID,
			AccountName: l.AccountName,
			AccountType: string(l.AccountType),
			Amount:      Money(l.Amount),
		}
	}
	return res
}

// ToProfitLossResponse converts a domain P&L report to a DTO response
func ToProfitLossResponse(r *domain.ProfitLossReport) ProfitLossResponse {
	return ProfitLossResponse{
		DateFrom:              formatDate(r.DateFrom),
		DateTo:                formatDate(r.DateTo),
		Income:                toReportLines(r.Income),
		DirectExpenses:        toReportLines(r.DirectExpenses),
		IndirectExpenses:      toReportLines(r.IndirectExpenses),
		TotalIncome:           Money(r.TotalIncome),
		TotalDirectExpenses:   Money(r.TotalDirectExpenses),
		TotalIndirectExpenses: Money(r.TotalIndirectExpenses),
		TotalExpenses:         Money(r.TotalExpenses),
		GrossProfit:           Money(r.GrossProfit),
		NetProfit:             Money(r.NetProfit),
	}
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOfDate:         formatDate(r.AsOfDate),
		Assets:           toReportLines(r.Assets),
		Liabilities:      toReportLines(r.Liabilities),
		RetainedEarnings: Money(r.RetainedEarnings),
		TotalAssets:      Money(r.TotalAssets),
		TotalLiabilities: Money(r.TotalLiabilities),
		TotalEquity:      Money(r.TotalEquity),
		Difference:       Money(r.Difference),
		IsBalanced:       r.IsBalanced,
	}
}

// ToGeneralLedgerResponse converts a domain general ledger to a DTO response.
func ToGeneralLedgerResponse(gl *domain.GeneralLedger) GeneralLedgerResponse {
	lines := make([]LedgerLineResponse, len(gl.Lines))
	for i, l := range gl.Lines {
		lines[i] = LedgerLineResponse{
			EntryID:        l.EntryID,
			VoucherID:      l.VoucherID,
			VoucherNumber:  l.VoucherNumber,
			Date:           formatDate(l.VoucherDate),
			VoucherType:    string(l.VoucherType),
			Narration:      l.Narration,
			Debit:          Money(l.Debit),
			Credit:         Money(l.Credit),
			RunningBalance: Money(l.RunningBalance),
		}
	}
	return GeneralLedgerResponse{
		Account:        ToAccountResponse(&gl.Account),
		DateFrom:       formatDatePtr(gl.DateFrom),
		DateTo:         formatDatePtr(gl.DateTo),
		OpeningBalance: Money(gl.OpeningBalance),
		Lines:          lines,
		TotalDebits:    Money(gl.TotalDebits),
		TotalCredits:   Money(gl.TotalCredits),
		ClosingBalance: Money(gl.ClosingBalance),
	}
}

func toCashFlowLines(lines []domain.CashFlowLine) []CashFlowLineResponse {
	res := make([]CashFlowLineResponse, len(lines))
	for i, l := range lines {
		res[i] = CashFlowLineResponse{
			VoucherID:     l.VoucherID,
			VoucherNumber: l.VoucherNumber,
			Date:          formatDate(l.VoucherDate),
			VoucherType:   string(l.VoucherType),
			Narration:     l.Narration,
			Amount:        Money(l.Amount),
		}
	}
	return res
}

// ToCashFlowResponse converts a domain cash flow report to a DTO response.
func ToCashFlowResponse(r *domain.CashFlowReport) CashFlowResponse {
	return CashFlowResponse{
		DateFrom:       formatDate(r.DateFrom),
		DateTo:         formatDate(r.DateTo),
		OpeningBalance: Money(r.OpeningBalance),
		Receipts:       toCashFlowLines(r.Receipts),
		Payments:       toCashFlowLines(r.Payments),
		Transfers:      toCashFlowLines(r.Transfers),
		TotalReceipts:  Money(r.TotalReceipts),
		TotalPayments:  Money(r.TotalPayments),
		NetCashFlow:    Money(r.NetCashFlow),
		ClosingBalance: Money(r.ClosingBalance),
	}
}

// ToIntegrityReportResponse converts a domain integrity report to a DTO response.
func ToIntegrityReportResponse(r *domain.IntegrityReport) IntegrityReportResponse {
	results := make([]IntegrityCheckResultResponse, len(r.Results))
	for i, res := range r.Results {
		results[i] = IntegrityCheckResultResponse{
			CheckName: res.CheckName,
			Passed:    res.Passed,
			Severity:  string(res.Severity),
			Message:   res.Message,
			Details:   res.Details,
		}
	}
	return IntegrityReportResponse{
		CheckedAt: r.CheckedAt,
		Passed:    r.Passed,
		Failures:  r.Failures,
		Warnings:  r.Warnings,
		Results:   results,
	}
}
