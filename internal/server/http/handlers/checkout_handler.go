package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/pkg/card"
	"github.com/minhvn/solemart/internal/server/http/dto"
	"github.com/minhvn/solemart/internal/usecase"
)

// CheckoutHandler places orders.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Create handles POST /api/order.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	in := usecase.CheckoutInput{
		Items:           toCartItems(req.Items),
		ShippingAddress: toAddress(req.ShippingAddress),
		ShippingMethod:  model.ShippingMethod(req.ShippingMethod),
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		DiscountCode:    req.DiscountCode,
		Notes:           req.Notes,
	}
	if req.Card != nil {
		in.Card = &card.Details{
			Number: req.Card.Number,
			Expiry: req.Card.Expiry,
			CVC:    req.Card.CVC,
			Holder: req.Card.Holder,
		}
	}

	result, err := h.facade.PlaceOrder(c.Request.Context(), CurrentUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart),
			errors.Is(err, domainErrors.ErrInvalidShippingMethod),
			errors.Is(err, domainErrors.ErrInvalidDiscount),
			errors.Is(err, domainErrors.ErrInvalidAddress),
			errors.Is(err, domainErrors.ErrInvalidPaymentMethod):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, card.ErrInvalid):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrGatewayUnavailable):
			c.Status(http.StatusBadGateway)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	if result.Kind == usecase.DispatchRedirect {
		c.JSON(http.StatusOK, dto.CheckoutResponse{
			PaymentURL:     result.PaymentURL,
			TransactionRef: result.TransactionRef,
		})
		return
	}

	order := toOrderResponse(*result.Order)
	c.JSON(http.StatusCreated, dto.CheckoutResponse{Order: &order})
}
