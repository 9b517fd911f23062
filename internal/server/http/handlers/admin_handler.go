package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/server/http/dto"
	"github.com/minhvn/solemart/internal/usecase"
)

// AdminHandler manages administrative order endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// List handles GET /api/admin/orders.
func (h *AdminHandler) List(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context(), orderFilterFromQuery(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Update handles PUT /api/order/update/:id.
func (h *AdminHandler) Update(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.AdminOrderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	update := usecase.AdminOrderUpdate{
		TrackingNumber: req.TrackingNumber,
		Note:           req.Note,
	}
	if req.Status != nil {
		status := model.OrderStatus(*req.Status)
		update.Status = &status
	}
	if req.ShippingAddress != nil {
		address := toAddress(*req.ShippingAddress)
		update.ShippingAddress = &address
	}

	if err := h.facade.UpdateOrder(c.Request.Context(), id, update); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrForbidden):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}
