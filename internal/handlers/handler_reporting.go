package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports and ledger audits
type reportingHandler struct {
	reportingService portssvc.ReportingService
	integrityService portssvc.IntegrityService
	location         *time.Location
	now              func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, is portssvc.IntegrityService, loc *time.Location) *reportingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &reportingHandler{
		reportingService: rs,
		integrityService: is,
		location:         loc,
		now:              time.Now,
	}
}

// RegisterReportingRoutes registers routes related to financial reports.
// loc is the ledger's calendar, used when a report date defaults to today.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, integrityService portssvc.IntegrityService, loc *time.Location) {
	h := newReportingHandler(reportingService, integrityService, loc)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/profit-loss", h.getProfitAndLoss)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/general-ledger/:accountID", h.getGeneralLedger)
		reportingGroup.GET("/cash-flow", h.getCashFlow)
		reportingGroup.GET("/integrity-check", h.runIntegrityCheck)
	}
}

// today returns the current calendar date in the ledger's time zone as a UTC midnight.
func (h *reportingHandler) today() time.Time {
	y, m, d := h.now().In(h.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists every account with its debit or credit balance over the optional window
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	from, ok := dateQuery(c, "dateFrom")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "dateTo")
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), tenantID, from, to)
	if err != nil {
		handleServiceError(c, err, "Failed to generate trial balance")
		return
	}

	if !tb.IsBalanced {
		logger.Warn("Trial balance does not balance", slog.String("tenant_id", tenantID), slog.String("difference", dto.Money(tb.Difference)))
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Income, direct and indirect expenses with gross and net profit for a period
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param dateFrom query string true "From date (YYYY-MM-DD)"
// @Param dateTo query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitLossResponse
// @Failure 400 {object} map[string]string "Missing or invalid dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/reports/profit-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	from, ok := requiredDateQuery(c, "dateFrom")
	if !ok {
		return
	}
	to, ok := requiredDateQuery(c, "dateTo")
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), tenantID, from, to)
	if err != nil {
		handleServiceError(c, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitLossResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Assets, liabilities and equity including retained earnings as of a date
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param asOfDate query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	asOf, ok := dateQuery(c, "asOfDate")
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}
	if asOf == nil {
		today := h.today()
		asOf = &today
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), tenantID, *asOf)
	if err != nil {
		handleServiceError(c, err, "Failed to generate balance sheet")
		return
	}

	if !report.IsBalanced {
		logger.Warn("Balance sheet does not balance", slog.String("tenant_id", tenantID), slog.String("difference", dto.Money(report.Difference)))
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getGeneralLedger godoc
// @Summary Generate an account's general ledger
// @Description Lists an account's posted entries with a running balance starting from the opening balance
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param accountID path int true "Account ID"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/reports/general-ledger/{accountID} [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	from, ok := dateQuery(c, "dateFrom")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "dateTo")
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	gl, err := h.reportingService.GeneralLedger(c.Request.Context(), tenantID, accountID, from, to)
	if err != nil {
		handleServiceError(c, err, "Failed to generate general ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(gl))
}

// getCashFlow godoc
// @Summary Generate cash flow report
// @Description Receipts and payments through cash and bank accounts for a period
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param dateFrom query string true "From date (YYYY-MM-DD)"
// @Param dateTo query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Missing or invalid dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	from, ok := requiredDateQuery(c, "dateFrom")
	if !ok {
		return
	}
	to, ok := requiredDateQuery(c, "dateTo")
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), tenantID, from, to)
	if err != nil {
		handleServiceError(c, err, "Failed to generate cash flow report")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}

// runIntegrityCheck godoc
// @Summary Run a ledger integrity check
// @Description Re-verifies every voucher and the trial balance, and flags accounts with abnormal balances
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.IntegrityReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to run integrity check"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/reports/integrity-check [get]
func (h *reportingHandler) runIntegrityCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	report, err := h.integrityService.RunIntegrityCheck(c.Request.Context(), tenantID)
	if err != nil {
		handleServiceError(c, err, "Failed to run integrity check")
		return
	}

	logger.Info("Integrity check finished", slog.String("tenant_id", tenantID), slog.Bool("passed", report.Passed), slog.Int("failures", report.Failures), slog.Int("warnings", report.Warnings))
	c.JSON(http.StatusOK, dto.ToIntegrityReportResponse(report))
}
