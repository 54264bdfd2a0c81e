package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AllTenants in a token's tenants claim grants access to every tenant's ledger.
const AllTenants = "*"

// LedgerClaims are the token claims the ledger reads. Tenants lists the station
// tenants whose ledgers the subject may use.
type LedgerClaims struct {
	Tenants []string `json:"tenants,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware handler that validates JWT bearer tokens
// issued by the host platform. The token subject becomes the acting user recorded
// in audit fields.
func AuthMiddleware(jwtSecret string, opts ...jwt.ParserOption) gin.HandlerFunc {
	parser := jwt.NewParser(append([]jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}, opts...)...)

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims := &LedgerClaims{}
		token, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if !token.Valid || claims.Subject == "" {
			logger.Warn("User ID (subject) missing from token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		userID := claims.Subject
		enrichedLogger := logger.With(slog.String("user_id", userID))

		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))
		c.Set(string(userIDKey), userID)
		c.Set(string(tenantsKey), claims.Tenants)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}

// TenantAccess rejects requests whose :tenantID path segment is not granted by the
// token's tenants claim. It must run after AuthMiddleware.
func TenantAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.Param("tenantID")
		granted, _ := c.Get(string(tenantsKey))
		tenants, _ := granted.([]string)
		for _, t := range tenants {
			if t == AllTenants || t == tenantID {
				c.Next()
				return
			}
		}

		GetLoggerFromCtx(c.Request.Context()).Warn("Tenant not granted by token", slog.String("tenant_id", tenantID))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access to this tenant is not permitted"})
	}
}
