package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/middleware"
)

const (
	maxTenantIDLength = 64
	retryAfterSeconds = "1"
)

// handleServiceError writes the HTTP response for an error returned by a service.
// fallback is the message used for unexpected failures, whose details are only logged.
func handleServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var (
		validationErr *apperrors.ValidationError
		protectedErr  *apperrors.ProtectedAccountError
		stateErr      *apperrors.InvalidStateError
		conflictErr   *apperrors.TransientConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		logger.Warn("Validation failed", slog.Any("details", validationErr.Errors))
		body := gin.H{"error": "Validation failed", "details": validationErr.Errors}
		if validationErr.TotalDebits != nil {
			body["total_debits"] = dto.Money(*validationErr.TotalDebits)
		}
		if validationErr.TotalCredits != nil {
			body["total_credits"] = dto.Money(*validationErr.TotalCredits)
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &protectedErr):
		logger.Warn("Protected account", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reasons": protectedErr.Reasons})
	case errors.As(err, &stateErr):
		logger.Warn("Invalid state transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "current_status": stateErr.Current})
	case errors.As(err, &conflictErr):
		logger.Warn("Transient conflict", slog.Int("attempts", conflictErr.Attempts))
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The ledger is busy, please retry the request"})
	default:
		var appErr *apperrors.AppError
		status := http.StatusInternalServerError
		if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 600 {
			status = appErr.Code
		}
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
	}
}

// handleBindError reports a request that failed JSON or query binding.
func handleBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			details[i] = fieldErrorMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "accounttype":
		return fmt.Sprintf("%s must be a valid account type", fe.Field())
	case "accountstatus":
		return fmt.Sprintf("%s must be one of %s, %s", fe.Field(), domain.AccountActive, domain.AccountInactive)
	case "vouchertype":
		return fmt.Sprintf("%s must be one of %s, %s, %s", fe.Field(), domain.PaymentVoucher, domain.ReceiptVoucher, domain.JournalVoucher)
	case "voucherstatus":
		return fmt.Sprintf("%s must be one of %s, %s", fe.Field(), domain.VoucherPosted, domain.VoucherCancelled)
	case "ledgerdate":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", fe.Field())
	}
	return fmt.Sprintf("%s failed the %q rule", fe.Field(), fe.Tag())
}

// tenantParam reads the tenant from the path, writing a 400 when it is unusable.
func tenantParam(c *gin.Context) (string, bool) {
	tenantID := c.Param("tenantID")
	if tenantID == "" || len(tenantID) > maxTenantIDLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid tenant ID is required in the path"})
		return "", false
	}
	return tenantID, true
}

// idParam parses a positive int64 path parameter, writing a 400 when it is invalid.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s must be a positive integer", name)})
		return 0, false
	}
	return id, true
}

// dateQuery parses an optional YYYY-MM-DD query parameter, writing a 400 when it is malformed.
func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s must be in YYYY-MM-DD format", name)})
		return nil, false
	}
	return &t, true
}

// requiredDateQuery is dateQuery for parameters that must be present.
func requiredDateQuery(c *gin.Context, name string) (time.Time, bool) {
	t, ok := dateQuery(c, name)
	if !ok {
		return time.Time{}, false
	}
	if t == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s is required", name)})
		return time.Time{}, false
	}
	return *t, true
}

// currentUser returns the authenticated user, writing a 401 when there is none.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
