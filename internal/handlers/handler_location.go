package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/SscSPs/caisse_manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

type locationHandler struct {
	locationService portssvc.LocationSvcFacade
}

func newLocationHandler(ls portssvc.LocationSvcFacade) *locationHandler {
	return &locationHandler{locationService: ls}
}

func registerLocationRoutes(rg *gin.RouterGroup, locationService portssvc.LocationSvcFacade) {
	h := newLocationHandler(locationService)

	locations := rg.Group("/locations")
	{
		locations.POST("", h.createLocation)
		locations.GET("", h.listLocations)
		locations.GET("/:id", h.getLocation)
		locations.PUT("/:id", h.updateLocation)
		locations.DELETE("/:id", h.deactivateLocation)
	}
}

// createLocation godoc
// @Summary Create a cash location
// @Description Creates a new cash location (admin only)
// @Tags locations
// @Accept  json
// @Produce  json
// @Param   location body dto.CreateLocationRequest true "Location details"
// @Success 201 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations [post]
func (h *locationHandler) createLocation(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "create location")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Location created", slog.String("location_id", location.LocationID))
	c.JSON(http.StatusCreated, dto.ToLocationResponse(location))
}

// listLocations godoc
// @Summary List cash locations
// @Tags locations
// @Produce  json
// @Param   activeOnly query bool false "Only active locations"
// @Success 200 {object} dto.ListLocationsResponse
// @Security BearerAuth
// @Router /locations [get]
func (h *locationHandler) listLocations(c *gin.Context) {
	var params dto.ListLocationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	locations, err := h.locationService.ListLocations(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		respondWithError(c, err, "list locations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLocationsResponse(locations))
}

// getLocation godoc
// @Summary Get a cash location
// @Tags locations
// @Produce  json
// @Param   id path string true "Location ID"
// @Success 200 {object} dto.LocationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [get]
func (h *locationHandler) getLocation(c *gin.Context) {
	location, err := h.locationService.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "get location")
		return
	}
	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}

// updateLocation godoc
// @Summary Update a cash location
// @Description Manager of the location or admin; only an admin may change the manager
// @Tags locations
// @Accept  json
// @Produce  json
// @Param   id path string true "Location ID"
// @Param   location body dto.UpdateLocationRequest true "Fields to update"
// @Success 200 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [put]
func (h *locationHandler) updateLocation(c *gin.Context) {
	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	location, err := h.locationService.UpdateLocation(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "update location")
		return
	}
	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}

// deactivateLocation godoc
// @Summary Deactivate a cash location
// @Description Soft delete; the history and balance of the location are kept
// @Tags locations
// @Param   id path string true "Location ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [delete]
func (h *locationHandler) deactivateLocation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.locationService.DeactivateLocation(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "deactivate location")
		return
	}
	c.Status(http.StatusNoContent)
}
