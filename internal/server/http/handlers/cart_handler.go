package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/server/http/dto"
)

// CartHandler prices carts and validates discount codes.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Quote handles POST /api/cart/quote.
func (h *CartHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	totals, err := h.facade.QuoteCart(c.Request.Context(), toCartItems(req.Items), model.ShippingMethod(req.ShippingMethod), req.DiscountCode)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart),
			errors.Is(err, domainErrors.ErrInvalidShippingMethod),
			errors.Is(err, domainErrors.ErrInvalidDiscount):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{
		Subtotal:       totals.Subtotal,
		ShippingCost:   totals.ShippingCost,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
	})
}

// ValidateDiscount handles POST /api/discount/validate.
func (h *CartHandler) ValidateDiscount(c *gin.Context) {
	var req dto.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	amount, err := h.facade.ValidateDiscount(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidDiscount):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.DiscountResponse{Code: req.Code, Amount: amount})
}
