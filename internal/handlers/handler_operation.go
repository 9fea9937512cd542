package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/SscSPs/caisse_manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

// multipart framing on top of the file itself
const multipartOverhead = 1 << 20

type operationHandler struct {
	operationService portssvc.OperationSvcFacade
	maxUploadBytes   int64
}

func registerOperationRoutes(rg *gin.RouterGroup, operationService portssvc.OperationSvcFacade, maxUploadBytes int64) {
	h := &operationHandler{operationService: operationService, maxUploadBytes: maxUploadBytes}

	operations := rg.Group("/operations")
	{
		operations.POST("", h.recordOperation)
		operations.GET("", h.listOperations)
		operations.GET("/:id", h.getOperation)
		operations.POST("/:id/sign", h.markSigned)
		operations.POST("/:id/attachment", h.attachScan)
		operations.GET("/:id/voucher", h.getVoucher)
	}
}

func parseOperationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid operation id %q", c.Param("id"))})
		return 0, false
	}
	return id, true
}

// recordOperation godoc
// @Summary Record a cash operation
// @Description Records a cash-in, cash-out or return and assigns its voucher number
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   operation body dto.CreateOperationRequest true "Operation"
// @Success 201 {object} dto.OperationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /operations [post]
func (h *operationHandler) recordOperation(c *gin.Context) {
	var req dto.CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	op, err := h.operationService.RecordOperation(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "record operation")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Operation recorded",
		slog.Int64("operation_id", op.OperationID), slog.String("voucher", op.VoucherNumber))
	c.JSON(http.StatusCreated, dto.ToOperationResponse(op))
}

// listOperations godoc
// @Summary Query operations
// @Description Filtered view of the ledger, newest first
// @Tags operations
// @Produce  json
// @Param   locationId query string false "Location"
// @Param   type query string false "in, out or return"
// @Param   source query string false "Source"
// @Param   startDate query string false "YYYY-MM-DD"
// @Param   endDate query string false "YYYY-MM-DD, inclusive"
// @Param   isSigned query bool false "Signature state"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListOperationsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /operations [get]
func (h *operationHandler) listOperations(c *gin.Context) {
	var params dto.ListOperationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.operationService.ListOperations(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "list operations")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getOperation godoc
// @Summary Get an operation
// @Tags operations
// @Produce  json
// @Param   id path int true "Operation ID"
// @Success 200 {object} dto.OperationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /operations/{id} [get]
func (h *operationHandler) getOperation(c *gin.Context) {
	id, ok := parseOperationID(c)
	if !ok {
		return
	}
	op, err := h.operationService.GetOperation(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err, "get operation")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponse(op))
}

// markSigned godoc
// @Summary Mark an operation as signed
// @Tags operations
// @Produce  json
// @Param   id path int true "Operation ID"
// @Success 200 {object} dto.OperationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /operations/{id}/sign [post]
func (h *operationHandler) markSigned(c *gin.Context) {
	id, ok := parseOperationID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	op, err := h.operationService.MarkSigned(c.Request.Context(), id, userID)
	if err != nil {
		respondWithError(c, err, "mark operation signed")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponse(op))
}

// attachScan godoc
// @Summary Attach the signed voucher scan
// @Description Multipart upload of a jpeg, png, gif or pdf; marks the operation signed
// @Tags operations
// @Accept  mpfd
// @Produce  json
// @Param   id path int true "Operation ID"
// @Param   file formData file true "Signed voucher"
// @Success 200 {object} dto.OperationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already attached"
// @Failure 413 {object} ErrorResponse
// @Security BearerAuth
// @Router /operations/{id}/attachment [post]
func (h *operationHandler) attachScan(c *gin.Context) {
	id, ok := parseOperationID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file is too large"})
			return
		}
		respondWithError(c, apperrors.NewValidationFailedError("multipart field 'file' is required"), "read upload")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, fmt.Errorf("failed to open uploaded file: %w", err), "read upload")
		return
	}
	defer file.Close()

	op, err := h.operationService.AttachScan(c.Request.Context(), id, dto.AttachmentUpload{
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
		Content:  file,
	}, userID)
	if err != nil {
		respondWithError(c, err, "attach scan")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponse(op))
}

// getVoucher godoc
// @Summary Printable voucher of an operation
// @Tags operations
// @Produce  json
// @Param   id path int true "Operation ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /operations/{id}/voucher [get]
func (h *operationHandler) getVoucher(c *gin.Context) {
	id, ok := parseOperationID(c)
	if !ok {
		return
	}
	voucher, err := h.operationService.GetVoucher(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err, "get voucher")
		return
	}
	c.JSON(http.StatusOK, voucher)
}
