package domain

import "time"

// Category groups products for storefront browsing.
type Category struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"index;size:128" json:"name" form:"name"`
	Slug      string    `gorm:"uniqueIndex;size:128" json:"slug" form:"slug"`
	Image     string    `gorm:"size:1024" json:"image" form:"image"`
	Sort      int       `json:"sort" form:"sort"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "category"
}

// Feature is a storefront highlight tile (free shipping, returns, ...).
type Feature struct {
	ID        int64     `json:"id,string" form:"id"`
	Title     string    `gorm:"size:128" json:"title" form:"title"`
	Text      string    `gorm:"size:512" json:"text" form:"text"`
	Icon      string    `gorm:"size:256" json:"icon" form:"icon"`
	Sort      int       `json:"sort" form:"sort"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Feature) TableName() string {
	return "feature"
}
