package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
	"github.com/minhvn/solemart/internal/server/http/dto"
	"github.com/minhvn/solemart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// IsAdmin reports whether the authenticated token carries the admin role.
func IsAdmin(c *gin.Context) bool {
	val, ok := c.Get(middleware.AdminContextKey)
	if !ok {
		return false
	}
	admin, _ := val.(bool)
	return admin
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// orderFilterFromQuery reads the optional status/from/to/limit/offset filters.
func orderFilterFromQuery(c *gin.Context) repository.OrderFilter {
	var filter repository.OrderFilter
	if status := c.Query("status"); status != "" {
		s := model.OrderStatus(status)
		filter.Status = &s
	}
	if from := c.Query("from"); from != "" {
		if ts, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &ts
		}
	}
	if to := c.Query("to"); to != "" {
		if ts, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &ts
		}
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}
	return filter
}

func toCartItems(items []dto.CartItemPayload) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		out = append(out, model.CartItem{
			ProductID:     it.ProductID,
			Size:          it.Size,
			Color:         it.Color,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			OriginalPrice: it.OriginalPrice,
		})
	}
	return out
}

func toAddress(a dto.AddressPayload) model.Address {
	return model.Address{
		HouseNumber: a.HouseNumber,
		Street:      a.Street,
		Ward:        a.Ward,
		District:    a.District,
		City:        a.City,
		Phone:       a.Phone,
	}
}

func toAddressPayload(a model.Address) dto.AddressPayload {
	return dto.AddressPayload{
		HouseNumber: a.HouseNumber,
		Street:      a.Street,
		Ward:        a.Ward,
		District:    a.District,
		City:        a.City,
		Phone:       a.Phone,
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:     it.ProductID,
			Size:          it.Size,
			Color:         it.Color,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			OriginalPrice: it.OriginalPrice,
		})
	}
	history := make([]dto.StatusEntryResponse, 0, len(order.StatusHistory))
	for _, entry := range order.StatusHistory {
		history = append(history, dto.StatusEntryResponse{
			Status:    string(entry.Status),
			Note:      entry.Note,
			CreatedAt: entry.CreatedAt,
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		ShippingCost:    order.ShippingCost,
		DiscountAmount:  order.DiscountAmount,
		FinalAmount:     order.FinalAmount,
		ShippingAddress: toAddressPayload(order.ShippingAddress),
		ShippingMethod:  string(order.ShippingMethod),
		PaymentMethod:   string(order.PaymentMethod),
		OrderStatus:     string(order.OrderStatus),
		PaymentStatus:   string(order.PaymentStatus),
		TrackingNumber:  order.TrackingNumber,
		StatusHistory:   history,
		OrderedAt:       order.OrderedAt,
		DeliveredAt:     order.DeliveredAt,
	}
}
