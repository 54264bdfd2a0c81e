package services

import (
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)

	container.Voucher = NewVoucherService(
		repos.VoucherRepo,
		repos.AccountRepo,
		WithLedgerLocation(cfg.LedgerLocation()),
		WithMaxPostingAttempts(cfg.PostingMaxAttempts),
	)

	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Integrity = NewIntegrityService(repos.ReportingRepo)

	return container
}
