package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minhvn/solemart/internal/adapter/gateway"
	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/server/http/dto"
)

// PaymentHandler terminates the gateway redirect flow.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Return handles GET /api/payment/return. The gateway redirects the customer
// here after payment; the same URL is hit again on reload or back navigation,
// so the response is always the stored settlement for the transaction ref.
func (h *PaymentHandler) Return(c *gin.Context) {
	cb := gateway.ParseCallback(c.Request.URL.Query())
	if cb.TransactionRef == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	settlement, err := h.facade.SettlePayment(c.Request.Context(), cb)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.SettlementResponse{
		TransactionRef: settlement.TransactionRef,
		Outcome:        string(settlement.Outcome),
		ResponseCode:   settlement.ResponseCode,
		Message:        settlement.Message,
		OrderID:        settlement.OrderID,
		Amount:         settlement.Amount,
	}

	switch settlement.Outcome {
	case model.SettlementDeclined:
		resp.Error = domainErrors.ErrGatewayDeclined.Error()
		c.JSON(http.StatusPaymentRequired, resp)
	case model.SettlementReconcileFailed:
		resp.Error = domainErrors.ErrReconciliation.Error()
		c.JSON(http.StatusBadGateway, resp)
	default:
		c.JSON(http.StatusOK, resp)
	}
}
