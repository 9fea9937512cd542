package services

import (
	"github.com/SscSPs/caisse_manager/internal/core/ledger"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The ledger must already be restored from repos.OperationRepo.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, l *ledger.Ledger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// User service first: every other service resolves roles through it
	var userOpts []UserServiceOption
	if repos.RoleCache != nil {
		userOpts = append(userOpts, WithRoleCache(repos.RoleCache, cfg.RoleCacheTTL))
	}
	container.User = NewUserService(repos.UserRepo, userOpts...)
	container.Auth = NewAuthService(cfg, container.User)

	container.Location = NewLocationService(repos.LocationRepo, container.User)
	container.Source = NewSourceService(repos.SourceRepo, container.User)
	container.Settings = NewSettingsService(repos.SettingsRepo, container.User)

	var opOpts []OperationServiceOption
	if repos.Attachments != nil {
		opOpts = append(opOpts, WithAttachmentStore(repos.Attachments, cfg.MaxUploadBytes))
	}
	container.Operation = NewOperationService(l, repos.LocationRepo, container.Settings, opOpts...)
	container.Reporting = NewReportingService(l, repos.LocationRepo, container.Settings)

	return container
}
