package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/middleware"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils"
)

type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
	posthogClient  *utils.PosthogClientWrapper
}

func newVoucherHandler(vs portssvc.VoucherSvcFacade, posthogClient *utils.PosthogClientWrapper) *voucherHandler {
	return &voucherHandler{
		voucherService: vs,
		posthogClient:  posthogClient,
	}
}

// RegisterVoucherRoutes registers the posting engine routes. posthogClient may be nil.
func RegisterVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newVoucherHandler(voucherService, posthogClient)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.postVoucher)
		vouchers.POST("/validate", h.validateEntries)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.PATCH("/:voucherID/cancel", h.cancelVoucher)
	}
}

// postVoucher godoc
// @Summary Post a voucher
// @Description Validates the entries, assigns the next voucher number for the type and month, and stores the voucher atomically
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   voucher body dto.PostVoucherRequest true "Voucher header and entries"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]interface{} "Itemized validation errors with totals"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Concurrent posting conflict, retry"
// @Failure 500 {object} map[string]string "Failed to post voucher"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/vouchers [post]
func (h *voucherHandler) postVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	var req dto.PostVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}
	creatorUserID, ok := currentUser(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID))
	logger.Info("Received request to post voucher", slog.String("voucher_type", string(req.VoucherType)), slog.Int("entry_count", len(req.Entries)))

	voucher, err := h.voucherService.PostVoucher(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		handleServiceError(c, err, "Failed to post voucher")
		return
	}

	logger.Info("Voucher posted", slog.Int64("voucher_id", voucher.VoucherID), slog.String("voucher_number", voucher.VoucherNumber))
	middleware.PosthogEvent(c, h.posthogClient, "voucher_posted", map[string]any{
		"voucher_type": string(voucher.VoucherType),
		"entry_count":  len(voucher.Entries),
	})
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// validateEntries godoc
// @Summary Validate voucher entries
// @Description Runs the double-entry checks against the tenant's accounts without posting anything
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   entries body dto.ValidateEntriesRequest true "Entries to validate"
// @Success 200 {object} dto.EntryValidationResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/vouchers/validate [post]
func (h *voucherHandler) validateEntries(c *gin.Context) {
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	var req dto.ValidateEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	result, err := h.voucherService.ValidateEntries(c.Request.Context(), tenantID, req.Entries)
	if err != nil {
		handleServiceError(c, err, "Failed to validate entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryValidationResponse(result))
}

// listVouchers godoc
// @Summary List vouchers
// @Description Lists vouchers newest first with cursor pagination
// @Tags vouchers
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   dateFrom query string false "From date (YYYY-MM-DD)"
// @Param   dateTo query string false "To date (YYYY-MM-DD)"
// @Param   type query string false "Voucher type (Payment, Receipt, Journal)"
// @Param   status query string false "Voucher status (Posted, Cancelled)"
// @Param   limit query int false "Page size (1-100, default 20)"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 400 {object} map[string]interface{} "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		handleBindError(c, err)
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	page, err := h.voucherService.ListVouchers(c.Request.Context(), tenantID, params)
	if err != nil {
		handleServiceError(c, err, "Failed to list vouchers")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getVoucher godoc
// @Summary Get a voucher by ID
// @Tags vouchers
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   voucherID path int true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	voucherID, ok := idParam(c, "voucherID")
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), tenantID, voucherID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// cancelVoucher godoc
// @Summary Cancel a voucher
// @Description Marks a Posted voucher as Cancelled so it no longer affects balances or reports
// @Tags vouchers
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   voucherID path int true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher already cancelled"
// @Security BearerAuth
// @Router /tenants/{tenantID}/ledger/vouchers/{voucherID}/cancel [patch]
func (h *voucherHandler) cancelVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantParam(c)
	if !ok {
		return
	}
	voucherID, ok := idParam(c, "voucherID")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CancelVoucher(c.Request.Context(), tenantID, voucherID, userID)
	if err != nil {
		handleServiceError(c, err, "Failed to cancel voucher")
		return
	}

	logger.Info("Voucher cancelled", slog.String("tenant_id", tenantID), slog.Int64("voucher_id", voucherID))
	middleware.PosthogEvent(c, h.posthogClient, "voucher_cancelled", map[string]any{
		"voucher_type": string(voucher.VoucherType),
	})
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}
