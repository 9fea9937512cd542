package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/core/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LocationServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockLocationRepository
	mockRoles *MockRoleProvider
	service   portssvc.LocationSvcFacade
	ctx       context.Context
}

func (suite *LocationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLocationRepository)
	suite.mockRoles = new(MockRoleProvider)
	suite.service = services.NewLocationService(suite.mockRepo, suite.mockRoles)
	suite.ctx = context.Background()

	suite.mockRoles.On("GetUserRole", mock.Anything, "admin").Return(domain.UserRoleAdmin, nil)
	suite.mockRoles.On("GetUserRole", mock.Anything, "manager").Return(domain.UserRoleUser, nil)
	suite.mockRoles.On("GetUserRole", mock.Anything, "clerk").Return(domain.UserRoleUser, nil)
}

func (suite *LocationServiceTestSuite) managedLocation() *domain.Location {
	manager := "manager"
	return &domain.Location{LocationID: "L1", Name: "Main", ManagerID: &manager, IsActive: true}
}

func (suite *LocationServiceTestSuite) TestCreateLocation_Admin() {
	suite.mockRepo.On("SaveLocation", suite.ctx, mock.MatchedBy(func(l domain.Location) bool {
		return l.Name == "Annex" && l.IsActive && l.CreatedBy == "admin"
	})).Return(nil).Once()

	location, err := suite.service.CreateLocation(suite.ctx, dto.CreateLocationRequest{Name: "  Annex "}, "admin")

	suite.Require().NoError(err)
	suite.NotEmpty(location.LocationID)
	suite.Equal("Annex", location.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LocationServiceTestSuite) TestCreateLocation_NotAdmin() {
	_, err := suite.service.CreateLocation(suite.ctx, dto.CreateLocationRequest{Name: "Annex"}, "clerk")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLocation", mock.Anything, mock.Anything)
}

func (suite *LocationServiceTestSuite) TestUpdateLocation_ByManager() {
	suite.mockRepo.On("FindLocationByID", suite.ctx, "L1").Return(suite.managedLocation(), nil).Once()
	suite.mockRepo.On("UpdateLocation", suite.ctx, mock.MatchedBy(func(l domain.Location) bool {
		return l.Phone == "+221 33 000 00 00" && l.LastUpdatedBy == "manager"
	})).Return(nil).Once()

	phone := "+221 33 000 00 00"
	location, err := suite.service.UpdateLocation(suite.ctx, "L1", dto.UpdateLocationRequest{Phone: &phone}, "manager")

	suite.Require().NoError(err)
	suite.Equal(phone, location.Phone)
}

func (suite *LocationServiceTestSuite) TestUpdateLocation_ManagerCannotReassign() {
	suite.mockRepo.On("FindLocationByID", suite.ctx, "L1").Return(suite.managedLocation(), nil).Once()

	other := "clerk"
	_, err := suite.service.UpdateLocation(suite.ctx, "L1", dto.UpdateLocationRequest{ManagerID: &other}, "manager")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LocationServiceTestSuite) TestUpdateLocation_OtherUserForbidden() {
	suite.mockRepo.On("FindLocationByID", suite.ctx, "L1").Return(suite.managedLocation(), nil).Once()

	name := "Renamed"
	_, err := suite.service.UpdateLocation(suite.ctx, "L1", dto.UpdateLocationRequest{Name: &name}, "clerk")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LocationServiceTestSuite) TestDeactivateLocation() {
	suite.mockRepo.On("FindLocationByID", suite.ctx, "L1").Return(suite.managedLocation(), nil).Once()
	suite.mockRepo.On("UpdateLocation", suite.ctx, mock.MatchedBy(func(l domain.Location) bool {
		return !l.IsActive
	})).Return(nil).Once()

	suite.Require().NoError(suite.service.DeactivateLocation(suite.ctx, "L1", "admin"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LocationServiceTestSuite) TestDeactivateLocation_NotFound() {
	suite.mockRepo.On("FindLocationByID", suite.ctx, "nope").Return(nil, apperrors.NewNotFoundError("location nope")).Once()

	err := suite.service.DeactivateLocation(suite.ctx, "nope", "admin")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LocationServiceTestSuite) TestListLocations_RepoError() {
	suite.mockRepo.On("FindLocations", suite.ctx, true).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListLocations(suite.ctx, true)

	suite.ErrorIs(err, assert.AnError)
}

func TestLocationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LocationServiceTestSuite))
}
