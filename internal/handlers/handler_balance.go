package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/caisse_manager/internal/core/ports/services"
	"github.com/SscSPs/caisse_manager/internal/dto"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	operationService portssvc.OperationReaderSvc
}

func registerBalanceRoutes(rg *gin.RouterGroup, operationService portssvc.OperationReaderSvc) {
	h := &balanceHandler{operationService: operationService}
	rg.GET("/balances", h.listBalances)
	rg.GET("/balances/:locationId", h.getBalance)
}

// listBalances godoc
// @Summary Running balance of every location
// @Tags balances
// @Produce  json
// @Success 200 {object} dto.ListBalancesResponse
// @Security BearerAuth
// @Router /balances [get]
func (h *balanceHandler) listBalances(c *gin.Context) {
	balances, err := h.operationService.ListBalances(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "list balances")
		return
	}
	resp := dto.ListBalancesResponse{Balances: make([]dto.BalanceResponse, len(balances))}
	for i, b := range balances {
		resp.Balances[i] = dto.ToBalanceResponse(b)
	}
	c.JSON(http.StatusOK, resp)
}

// getBalance godoc
// @Summary Running balance of a location
// @Tags balances
// @Produce  json
// @Param   locationId path string true "Location ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /balances/{locationId} [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	balance, err := h.operationService.GetBalance(c.Request.Context(), c.Param("locationId"))
	if err != nil {
		respondWithError(c, err, "get balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(*balance))
}
