package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/SscSPs/caisse_manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

type reportHandler struct {
	reportingService portssvc.ReportingSvc
}

func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := &reportHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.summary)
		reports.GET("/export", h.export)
	}
}

// summary godoc
// @Summary Totals per operation type
// @Tags reports
// @Produce  json
// @Param   locationId query string false "Location"
// @Param   startDate query string false "YYYY-MM-DD"
// @Param   endDate query string false "YYYY-MM-DD, inclusive"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportHandler) summary(c *gin.Context) {
	var params dto.ReportFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.reportingService.Summary(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "build summary")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// export godoc
// @Summary Export operations
// @Description Chronological export as csv, yaml or xlsx
// @Tags reports
// @Produce  octet-stream
// @Param   locationId query string false "Location"
// @Param   type query string false "in, out or return"
// @Param   startDate query string false "YYYY-MM-DD"
// @Param   endDate query string false "YYYY-MM-DD, inclusive"
// @Param   format query string false "csv, yaml or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/export [get]
func (h *reportHandler) export(c *gin.Context) {
	var params dto.ExportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	file, err := h.reportingService.Export(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "export operations")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Operations exported",
		slog.String("file", file.FileName), slog.Int("bytes", len(file.Content)))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
