package app

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/toughmall/internal/auth"
	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "toughmall"

	var operator domain.SysAdmin
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashedPassword, herr := auth.HashPassword(defaultPassword)
		if herr != nil {
			zap.L().Error("failed to hash default super admin password", zap.Error(herr))
			return
		}
		if err := a.gormDB.Create(&domain.SysAdmin{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Email:     "N/A",
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)
	if !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysAdmin{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

// defaultSettings seeds missing sys_config rows without touching existing
// values.
func (a *Application) checkSettings() {
	defaults := []domain.SysConfig{
		{Sort: 1, Type: SettingsShop, Name: ShopName, Value: "ToughMall", Remark: "Storefront display name"},
		{Sort: 2, Type: SettingsShop, Name: ShopCurrency, Value: "USD", Remark: "Display currency code"},
		{Sort: 3, Type: SettingsShop, Name: ShopLowStockLevel, Value: "5", Remark: "Low stock notification threshold"},
		{Sort: 4, Type: SettingsShop, Name: ShopOrderMailNotify, Value: "true", Remark: "Send mail to operators on new orders"},
	}

	for _, cfg := range defaults {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", cfg.Type, cfg.Name).
			Count(&count)
		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   cfg.Sort,
				Type:   cfg.Type,
				Name:   cfg.Name,
				Value:  cfg.Value,
				Remark: cfg.Remark,
			})
			zap.L().Info("initialized setting",
				zap.String("key", cfg.Type+"."+cfg.Name),
				zap.String("default", cfg.Value))
		}
	}
}

// checkCategories seeds the default browsing categories
func (a *Application) checkCategories() {
	defaultCategories := []domain.Category{
		{Name: "Sneakers", Slug: "sneakers", Sort: 1},
		{Name: "Apparel", Slug: "apparel", Sort: 2},
		{Name: "Accessories", Slug: "accessories", Sort: 3},
	}

	for _, cat := range defaultCategories {
		var count int64
		a.gormDB.Model(&domain.Category{}).Where("slug = ?", cat.Slug).Count(&count)
		if count == 0 {
			cat.ID = common.UUIDint64()
			cat.CreatedAt = time.Now()
			cat.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&cat).Error; err != nil {
				zap.L().Error("failed to create default category", zap.String("slug", cat.Slug), zap.Error(err))
			} else {
				zap.L().Info("initialized default category", zap.String("slug", cat.Slug))
			}
		}
	}
}

// checkFeatures seeds the storefront highlight tiles
func (a *Application) checkFeatures() {
	defaultFeatures := []domain.Feature{
		{Title: "Free Shipping", Text: "Free shipping on orders over $50", Icon: "truck", Sort: 1},
		{Title: "Easy Returns", Text: "30 day hassle-free returns", Icon: "refresh", Sort: 2},
		{Title: "Secure Checkout", Text: "Payments protected end to end", Icon: "lock", Sort: 3},
	}

	for _, f := range defaultFeatures {
		var count int64
		a.gormDB.Model(&domain.Feature{}).Where("title = ?", f.Title).Count(&count)
		if count == 0 {
			f.ID = common.UUIDint64()
			f.CreatedAt = time.Now()
			f.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&f).Error; err != nil {
				zap.L().Error("failed to create default feature", zap.String("title", f.Title), zap.Error(err))
			} else {
				zap.L().Info("initialized default feature", zap.String("title", f.Title))
			}
		}
	}
}
