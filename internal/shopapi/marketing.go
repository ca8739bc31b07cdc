package shopapi

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
	"github.com/talkincode/toughmall/pkg/common"
)

func (s *ShopAPI) listBanners(c echo.Context) error {
	now := time.Now()
	var rows []domain.Banner
	if err := webserver.GetDB(c).
		Where("status = ?", common.ENABLED).
		Where("start_at <= ? AND end_at > ?", now, now).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}

func (s *ShopAPI) listAnnouncements(c echo.Context) error {
	var rows []domain.Announcement
	if err := webserver.GetDB(c).
		Where("status = ?", common.ENABLED).
		Where("expire_at > ?", time.Now()).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}
