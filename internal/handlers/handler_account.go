package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	reportingService portssvc.ReportingService
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, rs portssvc.ReportingService) *accountHandler {
	return &accountHandler{
		accountService:   as,
		reportingService: rs,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, reportingService portssvc.ReportingService) {
	h := newAccountHandler(accountService, reportingService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/seed", h.seedSystemAccounts)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.GET("/:accountID/protection", h.getProtectionStatus)
		accounts.GET("/:accountID/balance", h.getAccountBalance)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a non-system ledger account for the tenant
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]interface{} "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}
	creatorUserID, ok := currentUser(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID))
	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("account_type", string(req.AccountType)))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		handleServiceError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.Int64("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// seedSystemAccounts godoc
// @Summary Seed the default chart of accounts
// @Description Creates the standard system accounts for a tenant, skipping names that already exist
// @Tags accounts
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Success 200 {array} dto.AccountResponse "Accounts created by this call"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to seed system accounts"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/accounts/seed [post]
func (h *accountHandler) seedSystemAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	created, err := h.accountService.SeedSystemAccounts(c.Request.Context(), tenantID, userID)
	if err != nil {
		handleServiceError(c, err, "Failed to seed system accounts")
		return
	}

	logger.Info("System accounts seeded", slog.String("tenant_id", tenantID), slog.Int("created", len(created)))
	c.JSON(http.StatusOK, dto.ToListAccountResponse(created))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the tenant's chart of accounts, optionally filtered by type and status
// @Tags accounts
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   type query string false "Account type"
// @Param   status query string false "Account status (Active, Inactive)"
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} map[string]interface{} "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		handleBindError(c, err)
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, params.ToFilter())
	if err != nil {
		handleServiceError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, accountID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates name, type, status or description. Type changes are refused for protected accounts.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID path int true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]interface{} "Account is protected"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	updated, err := h.accountService.UpdateAccount(c.Request.Context(), tenantID, accountID, req, userID)
	if err != nil {
		handleServiceError(c, err, "Failed to update account")
		return
	}

	logger.Info("Account updated successfully", slog.String("tenant_id", tenantID), slog.Int64("account_id", accountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(updated))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account that is neither a system account nor referenced by journal entries
// @Tags accounts
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID path int true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]interface{} "Account is protected"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), tenantID, accountID, userID); err != nil {
		handleServiceError(c, err, "Failed to delete account")
		return
	}

	logger.Info("Account deleted", slog.String("tenant_id", tenantID), slog.Int64("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// getProtectionStatus godoc
// @Summary Get account protection status
// @Description Reports whether the account can be deleted or retyped, and why not
// @Tags accounts
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID path int true "Account ID"
// @Success 200 {object} domain.ProtectionStatus
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/accounts/{accountID}/protection [get]
func (h *accountHandler) getProtectionStatus(c *gin.Context) {
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	status, err := h.accountService.GetAccountProtectionStatus(c.Request.Context(), tenantID, accountID)
	if err != nil {
		handleServiceError(c, err, "Failed to get account protection status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// getAccountBalance godoc
// @Summary Get account balance
// @Description Net debit balance of posted entries dated on or before asOfDate (all time when omitted)
// @Tags accounts
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID path int true "Account ID"
// @Param   asOfDate query string false "Balance date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/accounts/{accountID}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	accountID, ok := idParam(c, "accountID")
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

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), tenantID, accountID, asOf)
	if err != nil {
		handleServiceError(c, err, "Failed to calculate account balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(balance))
}
