package adminapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
)

// whitelist allowed sort columns to avoid SQL injection
var orderSortColumns = map[string]string{
	"id":           "id",
	"created_at":   "created_at",
	"total_amount": "total_amount",
}

func (s *AdminAPI) listOrders(c echo.Context) error {
	page, perPage := parsePagination(c)

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	sortCol, found := orderSortColumns[sortField]
	if !found || sortCol == "" {
		sortCol = "created_at"
	}

	db := webserver.GetDB(c).Model(&domain.Order{})
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}
	if ps := strings.TrimSpace(c.QueryParam("paymentStatus")); ps != "" {
		db = db.Where("payment_status = ?", ps)
	}
	if no := strings.TrimSpace(c.QueryParam("orderNo")); no != "" {
		db = db.Where("order_no = ?", no)
	}
	if uid := strings.TrimSpace(c.QueryParam("userId")); uid != "" {
		if id, err := strconv.ParseInt(uid, 10, 64); err == nil {
			db = db.Where("user_id = ?", id)
		}
	}
	// date filters accept anything dateparse understands ("2026-08-01",
	// "08/01/2026", unix seconds, ...)
	if from := strings.TrimSpace(c.QueryParam("from")); from != "" {
		if t, err := dateparse.ParseLocal(from); err == nil {
			db = db.Where("created_at >= ?", t)
		} else {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse from date")
		}
	}
	if to := strings.TrimSpace(c.QueryParam("to")); to != "" {
		if t, err := dateparse.ParseLocal(to); err == nil {
			db = db.Where("created_at < ?", t)
		} else {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse to date")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	var rows []domain.Order
	if err := db.Order(sortCol + " " + order).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return paged(c, rows, total, page, perPage)
}

func (s *AdminAPI) getOrder(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
	}
	var order domain.Order
	if err := webserver.GetDB(c).Where("id = ?", id).First(&order).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	}
	return ok(c, order)
}

type orderStatusPayload struct {
	Status string `json:"status"`
}

func (s *AdminAPI) updateOrderStatus(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
	}
	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request")
	}
	next := domain.OrderStatus(payload.Status)
	if !next.Valid() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown order status "+payload.Status)
	}

	order, err := s.checkout.UpdateStatus(c.Request().Context(), id, next)
	if err != nil {
		return failCheckout(c, err)
	}
	writeAdminLog(c, s.operatorName(c), "order.status",
		fmt.Sprintf("order %s set to %s", order.OrderNo, next))
	return ok(c, order)
}

func (s *AdminAPI) cancelOrder(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
	}
	order, err := s.checkout.Cancel(c.Request().Context(), id)
	if err != nil {
		return failCheckout(c, err)
	}
	writeAdminLog(c, s.operatorName(c), "order.cancel",
		fmt.Sprintf("order %s cancelled at %s", order.OrderNo, time.Now().Format(time.RFC3339)))
	return ok(c, order)
}
