package domain

import "time"

// Banner is a storefront hero/slider entry, visible while enabled and
// inside its [StartAt, EndAt) window.
type Banner struct {
	ID        int64     `json:"id,string" form:"id"`
	Title     string    `gorm:"size:256" json:"title" form:"title"`
	Image     string    `gorm:"size:1024" json:"image" form:"image"`
	Link      string    `gorm:"size:1024" json:"link" form:"link"`
	Position  int       `json:"position" form:"position"`
	Status    string    `gorm:"size:32;index" json:"status" form:"status"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Banner) TableName() string {
	return "banner"
}

// Announcement is a short storefront notice bar message.
type Announcement struct {
	ID        int64     `json:"id,string" form:"id"`
	Text      string    `gorm:"size:512" json:"text" form:"text"`
	Status    string    `gorm:"size:32;index" json:"status" form:"status"`
	ExpireAt  time.Time `json:"expire_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Announcement) TableName() string {
	return "announcement"
}
