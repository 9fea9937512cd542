package services_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- MockRoleCache ---
type MockRoleCache struct {
	mock.Mock
}

func (m *MockRoleCache) GetUserRole(ctx context.Context, userID string) (domain.UserRole, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserRole), args.Error(1)
}

func (m *MockRoleCache) SetUserRole(ctx context.Context, userID string, role domain.UserRole, ttl time.Duration) error {
	args := m.Called(ctx, userID, role, ttl)
	return args.Error(0)
}

func (m *MockRoleCache) DeleteUserRole(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portsrepo.UserRoleCache = (*MockRoleCache)(nil)

// --- MockRoleProvider ---
type MockRoleProvider struct {
	mock.Mock
}

func (m *MockRoleProvider) GetUserRole(ctx context.Context, userID string) (domain.UserRole, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserRole), args.Error(1)
}

var _ portssvc.UserRoleProvider = (*MockRoleProvider)(nil)

// --- MockLocationRepository ---
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	args := m.Called(ctx, locationID)
	var location *domain.Location
	if args.Get(0) != nil {
		location = args.Get(0).(*domain.Location)
	}
	return location, args.Error(1)
}

func (m *MockLocationRepository) FindLocations(ctx context.Context, activeOnly bool) ([]domain.Location, error) {
	args := m.Called(ctx, activeOnly)
	var locations []domain.Location
	if args.Get(0) != nil {
		locations = args.Get(0).([]domain.Location)
	}
	return locations, args.Error(1)
}

func (m *MockLocationRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) UpdateLocation(ctx context.Context, location domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

var _ portsrepo.LocationRepositoryFacade = (*MockLocationRepository)(nil)

// --- MockSourceRepository ---
type MockSourceRepository struct {
	mock.Mock
}

func (m *MockSourceRepository) FindSourceByID(ctx context.Context, sourceID string) (*domain.Source, error) {
	args := m.Called(ctx, sourceID)
	var source *domain.Source
	if args.Get(0) != nil {
		source = args.Get(0).(*domain.Source)
	}
	return source, args.Error(1)
}

func (m *MockSourceRepository) FindSources(ctx context.Context, sourceType *domain.SourceType) ([]domain.Source, error) {
	args := m.Called(ctx, sourceType)
	var sources []domain.Source
	if args.Get(0) != nil {
		sources = args.Get(0).([]domain.Source)
	}
	return sources, args.Error(1)
}

func (m *MockSourceRepository) SaveSource(ctx context.Context, source domain.Source) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockSourceRepository) UpdateSource(ctx context.Context, source domain.Source) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockSourceRepository) DeleteSource(ctx context.Context, sourceID string) error {
	args := m.Called(ctx, sourceID)
	return args.Error(0)
}

var _ portsrepo.SourceRepositoryFacade = (*MockSourceRepository)(nil)

// --- MockSettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	var settings *domain.Settings
	if args.Get(0) != nil {
		settings = args.Get(0).(*domain.Settings)
	}
	return settings, args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

var _ portsrepo.SettingsRepositoryFacade = (*MockSettingsRepository)(nil)

// --- MockOperationRepository ---
type MockOperationRepository struct {
	mock.Mock
}

func (m *MockOperationRepository) FindAllOperations(ctx context.Context) ([]domain.Operation, error) {
	args := m.Called(ctx)
	var ops []domain.Operation
	if args.Get(0) != nil {
		ops = args.Get(0).([]domain.Operation)
	}
	return ops, args.Error(1)
}

func (m *MockOperationRepository) SaveOperation(ctx context.Context, op domain.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockOperationRepository) UpdateOperationSignature(ctx context.Context, op domain.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

var _ portsrepo.OperationRepositoryFacade = (*MockOperationRepository)(nil)

// --- MockAttachmentStore ---
type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	data, _ := io.ReadAll(content)
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentStore) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

var _ portsrepo.AttachmentStore = (*MockAttachmentStore)(nil)
