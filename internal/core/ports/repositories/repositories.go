package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo      UserRepositoryFacade
	LocationRepo  LocationRepositoryFacade
	OperationRepo OperationRepositoryFacade
	SourceRepo    SourceRepositoryFacade
	SettingsRepo  SettingsRepositoryFacade
	RoleCache     UserRoleCache   // optional
	Attachments   AttachmentStore // optional, uploads are rejected without it
}
