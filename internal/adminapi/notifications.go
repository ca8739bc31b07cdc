package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
)

func (s *AdminAPI) listNotifications(c echo.Context) error {
	page, perPage := parsePagination(c)

	db := webserver.GetDB(c).Model(&domain.Notification{})
	if kind := strings.TrimSpace(c.QueryParam("kind")); kind != "" {
		db = db.Where("kind = ?", kind)
	}
	if c.QueryParam("unread") == "true" {
		db = db.Where("read = ?", false)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	var rows []domain.Notification
	if err := db.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return paged(c, rows, total, page, perPage)
}

func (s *AdminAPI) markNotificationRead(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
	}
	res := webserver.GetDB(c).Model(&domain.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"read": true, "updated_at": time.Now()})
	if res.Error != nil {
		return webserver.FailInternal(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
	}
	return ok(c, map[string]interface{}{"id": id, "read": true})
}

func (s *AdminAPI) markAllNotificationsRead(c echo.Context) error {
	res := webserver.GetDB(c).Model(&domain.Notification{}).
		Where("read = ?", false).
		Updates(map[string]interface{}{"read": true, "updated_at": time.Now()})
	if res.Error != nil {
		return webserver.FailInternal(c, res.Error)
	}
	return ok(c, map[string]interface{}{"marked": res.RowsAffected})
}

// clearReadNotifications deletes already-read entries; unread ones stay
// until an operator has seen them.
func (s *AdminAPI) clearReadNotifications(c echo.Context) error {
	res := webserver.GetDB(c).
		Where("read = ?", true).
		Delete(&domain.Notification{})
	if res.Error != nil {
		return webserver.FailInternal(c, res.Error)
	}
	return ok(c, map[string]interface{}{"cleared": res.RowsAffected})
}
