package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/core/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockSettingsRepository
	mockRoles *MockRoleProvider
	service   portssvc.SettingsSvcFacade
	ctx       context.Context
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettingsRepository)
	suite.mockRoles = new(MockRoleProvider)
	suite.service = services.NewSettingsService(suite.mockRepo, suite.mockRoles)
	suite.ctx = context.Background()
	suite.mockRoles.On("GetUserRole", mock.Anything, "admin").Return(domain.UserRoleAdmin, nil)
	suite.mockRoles.On("GetUserRole", mock.Anything, "clerk").Return(domain.UserRoleUser, nil)
}

func (suite *SettingsServiceTestSuite) TestGetSettings_Defaults() {
	suite.mockRepo.On("FindSettings", suite.ctx).Return(nil, apperrors.NewNotFoundError("settings")).Once()

	settings, err := suite.service.GetSettings(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(domain.DefaultSettings(), *settings)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_KeepsUnsetOptionalFields() {
	stored := domain.DefaultSettings()
	stored.Language = "en"
	suite.mockRepo.On("FindSettings", suite.ctx).Return(&stored, nil).Once()
	suite.mockRepo.On("SaveSettings", suite.ctx, mock.MatchedBy(func(s domain.Settings) bool {
		return s.CompanyName == "ACME" && s.DefaultCurrency == "XOF" && s.Language == "en" && s.EnableNotifications && s.LastUpdatedBy == "admin"
	})).Return(nil).Once()

	settings, err := suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{CompanyName: "ACME", DefaultCurrency: "XOF"}, "admin")

	suite.Require().NoError(err)
	suite.Equal("XOF", settings.DefaultCurrency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_NotAdmin() {
	_, err := suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{CompanyName: "ACME", DefaultCurrency: "EUR"}, "clerk")
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_UnsupportedCurrency() {
	_, err := suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{CompanyName: "ACME", DefaultCurrency: "JPY"}, "admin")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
