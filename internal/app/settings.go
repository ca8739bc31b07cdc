package app

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/toughmall/internal/domain"
)

// Setting categories and keys
const (
	SettingsShop = "shop"

	ShopName            = "ShopName"
	ShopCurrency        = "Currency"
	ShopLowStockLevel   = "LowStockLevel"
	ShopOrderMailNotify = "OrderMailNotify"
)

// SettingsManager reads and writes sys_config rows with a small in-memory
// cache. Values are coerced with spf13/cast at the call site type.
type SettingsManager struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]string
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db, cache: make(map[string]string)}
}

func (m *SettingsManager) cacheKey(category, name string) string {
	return category + "." + name
}

func (m *SettingsManager) getValue(category, name string) string {
	key := m.cacheKey(category, name)
	m.mu.RLock()
	if v, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		return ""
	}
	m.mu.Lock()
	m.cache[key] = cfg.Value
	m.mu.Unlock()
	return cfg.Value
}

func (m *SettingsManager) GetString(category, name string) string {
	return m.getValue(category, name)
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.getValue(category, name))
}

func (m *SettingsManager) GetBool(category, name string) bool {
	return cast.ToBool(m.getValue(category, name))
}

// Save upserts one setting value and refreshes the cache.
func (m *SettingsManager) Save(category, name, value string) error {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = m.db.Create(&domain.SysConfig{
			Type:      category,
			Name:      name,
			Value:     value,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error
	case err == nil:
		err = m.db.Model(&domain.SysConfig{}).
			Where("id = ?", cfg.ID).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	}
	if err != nil {
		return errors.Wrapf(err, "save setting %s.%s", category, name)
	}

	m.mu.Lock()
	m.cache[m.cacheKey(category, name)] = value
	m.mu.Unlock()
	zap.L().Info("setting saved", zap.String("key", m.cacheKey(category, name)))
	return nil
}
