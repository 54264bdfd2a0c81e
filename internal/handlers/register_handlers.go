package handlers

import (
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/laxmibabar011/Fuelizer-sub003/cmd/docs"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/middleware"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/platform/config"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

const ledgerBasePath = "/api/v1/tenants/:tenantID/ledger"

var registerValidationsOnce sync.Once

// RegisterValidations installs the ledger binding rules on gin's validator. Safe to call repeatedly.
func RegisterValidations() {
	registerValidationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Error("Gin validator engine is not go-playground/validator, ledger binding rules not registered")
			return
		}
		if err := dto.RegisterValidations(v); err != nil {
			slog.Error("Failed to register ledger binding rules", slog.String("error", err.Error()))
		}
	})
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// rateLimiter and posthogClient may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
	posthogClient *utils.PosthogClientWrapper,
) {
	RegisterValidations()

	r.GET("/", getHome)
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services, rateLimiter, posthogClient)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the tenant ledger group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
	posthogClient *utils.PosthogClientWrapper,
) {
	var jwtOpts []jwt.ParserOption
	if cfg.JWTIssuer != "" {
		jwtOpts = append(jwtOpts, jwt.WithIssuer(cfg.JWTIssuer))
	}

	ledger := r.Group(ledgerBasePath, middleware.AuthMiddleware(cfg.JWTSecret, jwtOpts...), middleware.TenantAccess())
	if rateLimiter != nil {
		ledger.Use(middleware.RateLimit(rateLimiter))
	}
	ledger.Use(middleware.PosthogMiddleware(posthogClient))

	RegisterAccountRoutes(ledger, services.Account, services.Reporting)
	RegisterVoucherRoutes(ledger, services.Voucher, posthogClient)
	RegisterReportingRoutes(ledger, services.Reporting, services.Integrity, cfg.LedgerLocation())
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
