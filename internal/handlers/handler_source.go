package handlers

import (
	"net/http"

	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/gin-gonic/gin"
)

type sourceHandler struct {
	sourceService portssvc.SourceSvcFacade
}

func registerSourceRoutes(rg *gin.RouterGroup, sourceService portssvc.SourceSvcFacade) {
	h := &sourceHandler{sourceService: sourceService}

	sources := rg.Group("/sources")
	{
		sources.POST("", h.createSource)
		sources.GET("", h.listSources)
		sources.GET("/:id", h.getSource)
		sources.PUT("/:id", h.updateSource)
		sources.DELETE("/:id", h.deleteSource)
	}
}

// createSource godoc
// @Summary Create a fund source
// @Tags sources
// @Accept  json
// @Produce  json
// @Param   source body dto.CreateSourceRequest true "Source"
// @Success 201 {object} dto.SourceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /sources [post]
func (h *sourceHandler) createSource(c *gin.Context) {
	var req dto.CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	source, err := h.sourceService.CreateSource(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "create source")
		return
	}
	c.JSON(http.StatusCreated, source)
}

// listSources godoc
// @Summary List fund sources
// @Tags sources
// @Produce  json
// @Param   type query string false "in or out"
// @Success 200 {object} dto.ListSourcesResponse
// @Security BearerAuth
// @Router /sources [get]
func (h *sourceHandler) listSources(c *gin.Context) {
	var params dto.ListSourcesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	var sourceType *domain.SourceType
	if params.Type != "" {
		t := domain.SourceType(params.Type)
		sourceType = &t
	}
	sources, err := h.sourceService.ListSources(c.Request.Context(), sourceType)
	if err != nil {
		respondWithError(c, err, "list sources")
		return
	}
	c.JSON(http.StatusOK, dto.ListSourcesResponse{Sources: sources})
}

// getSource godoc
// @Summary Get a fund source
// @Tags sources
// @Produce  json
// @Param   id path string true "Source ID"
// @Success 200 {object} dto.SourceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sources/{id} [get]
func (h *sourceHandler) getSource(c *gin.Context) {
	source, err := h.sourceService.GetSource(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "get source")
		return
	}
	c.JSON(http.StatusOK, source)
}

// updateSource godoc
// @Summary Update a fund source
// @Description Fixed sources cannot be changed
// @Tags sources
// @Accept  json
// @Produce  json
// @Param   id path string true "Source ID"
// @Param   source body dto.UpdateSourceRequest true "Fields to update"
// @Success 200 {object} dto.SourceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sources/{id} [put]
func (h *sourceHandler) updateSource(c *gin.Context) {
	var req dto.UpdateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	source, err := h.sourceService.UpdateSource(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "update source")
		return
	}
	c.JSON(http.StatusOK, source)
}

// deleteSource godoc
// @Summary Delete a fund source
// @Description Fixed sources cannot be deleted
// @Tags sources
// @Param   id path string true "Source ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sources/{id} [delete]
func (h *sourceHandler) deleteSource(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.sourceService.DeleteSource(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "delete source")
		return
	}
	c.Status(http.StatusNoContent)
}
