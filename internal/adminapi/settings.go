package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/internal/app"
	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
)

// settable shop settings; unknown names are rejected to keep the
// sys_config table from collecting typos
var shopSettingNames = map[string]bool{
	app.ShopName:            true,
	app.ShopCurrency:        true,
	app.ShopLowStockLevel:   true,
	app.ShopOrderMailNotify: true,
}

func (s *AdminAPI) getSettings(c echo.Context) error {
	var rows []domain.SysConfig
	if err := webserver.GetDB(c).
		Where("type = ?", app.SettingsShop).
		Order("sort ASC, name ASC").
		Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}

type settingPayload struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (s *AdminAPI) saveSetting(c echo.Context) error {
	var payload settingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse setting")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if !shopSettingNames[payload.Name] {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown setting "+payload.Name)
	}

	if err := s.settings.Save(app.SettingsShop, payload.Name, payload.Value); err != nil {
		return webserver.FailInternal(c, err)
	}
	writeAdminLog(c, s.operatorName(c), "settings.save", payload.Name+"="+payload.Value)
	return ok(c, map[string]interface{}{"name": payload.Name, "value": payload.Value})
}
