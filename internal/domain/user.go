package domain

import "time"

// User is a storefront customer account. Saved addresses are a small
// per-user list embedded as a document column.
type User struct {
	ID        int64             `json:"id,string" form:"id"`
	Name      string            `json:"name" form:"name"`
	Email     string            `gorm:"uniqueIndex;size:256" json:"email" form:"email"`
	Password  string            `json:"-"`
	Addresses []ShippingAddress `gorm:"serializer:json" json:"addresses"`
	Status    string            `gorm:"size:32" json:"status"`
	LastLogin time.Time         `json:"last_login"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}

// CartItem is a client-selected line kept in the per-user cart aggregate.
type CartItem struct {
	ProductId int64  `json:"product_id,string"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// Cart is a per-user mutable aggregate with last-write-wins semantics; it
// is owned by a single user so no finer concurrency control is needed.
type Cart struct {
	ID        int64      `json:"id,string"`
	UserId    int64      `gorm:"uniqueIndex" json:"user_id,string"`
	Items     []CartItem `gorm:"serializer:json" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Cart) TableName() string {
	return "cart"
}

// Wishlist holds product ids a user flagged, last-write-wins like Cart.
type Wishlist struct {
	ID         int64     `json:"id,string"`
	UserId     int64     `gorm:"uniqueIndex" json:"user_id,string"`
	ProductIds []int64   `gorm:"serializer:json" json:"product_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Wishlist) TableName() string {
	return "wishlist"
}
