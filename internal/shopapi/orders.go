package shopapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/internal/checkout"
	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
)

func (s *ShopAPI) placeOrder(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var input checkout.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order")
	}

	order, err := s.checkout.PlaceOrder(c.Request().Context(), userID, input)
	if err != nil {
		return failCheckout(c, err)
	}
	return ok(c, order)
}

func (s *ShopAPI) listOrders(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	page, perPage := parsePagination(c)

	db := webserver.GetDB(c).Model(&domain.Order{}).Where("user_id = ?", userID)
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	var rows []domain.Order
	if err := db.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return paged(c, rows, total, page, perPage)
}

func (s *ShopAPI) getOrder(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	if perr != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
	}
	var order domain.Order
	// owner-scoped lookup: other users' orders are indistinguishable from
	// absent ones
	if err := webserver.GetDB(c).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	}
	return ok(c, order)
}

func (s *ShopAPI) cancelOrder(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	if perr != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
	}

	order, err := s.checkout.CancelForUser(c.Request().Context(), userID, id)
	if err != nil {
		return failCheckout(c, err)
	}
	return ok(c, order)
}
