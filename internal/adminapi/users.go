package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
	"github.com/talkincode/toughmall/pkg/common"
)

func (s *AdminAPI) listUsers(c echo.Context) error {
	page, perPage := parsePagination(c)

	db := webserver.GetDB(c).Model(&domain.User{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	var rows []domain.User
	if err := db.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return paged(c, rows, total, page, perPage)
}

func (s *AdminAPI) getUser(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
	}
	var user domain.User
	if err := webserver.GetDB(c).Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	}
	return ok(c, user)
}

type userStatusPayload struct {
	Status string `json:"status"`
}

// updateUserStatus enables or disables a storefront account. A disabled
// account keeps its data but can no longer sign in.
func (s *AdminAPI) updateUserStatus(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
	}
	var payload userStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request")
	}
	if payload.Status != common.ENABLED && payload.Status != common.DISABLED {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Status must be enabled or disabled")
	}

	db := webserver.GetDB(c)
	var user domain.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	}
	if err := db.Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": payload.Status, "updated_at": time.Now()}).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	user.Status = payload.Status
	writeAdminLog(c, s.operatorName(c), "user.status",
		fmt.Sprintf("user %s set to %s", user.Email, payload.Status))
	return ok(c, user)
}
