package domain

import "time"

// Notification kinds
const (
	NotifyOrderCreated = "order_created"
	NotifyLowStock     = "low_stock"
	NotifySystem       = "system"
)

// Notification is an admin-facing inbox entry, created best-effort outside
// of any transaction.
type Notification struct {
	ID        int64     `json:"id,string"`
	Kind      string    `gorm:"size:64;index" json:"kind"`
	Title     string    `gorm:"size:256" json:"title"`
	Body      string    `gorm:"size:2048" json:"body"`
	RefId     int64     `json:"ref_id,string"`
	Read      bool      `gorm:"index" json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Notification) TableName() string {
	return "notification"
}
