package domain

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Payment status values
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// PaymentMethodCOD marks cash-on-delivery; every other method is assumed
// pre-captured by the external payment gateway.
const PaymentMethodCOD = "cod"

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further status change is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// rank orders the forward chain pending < processing < shipped < delivered.
func (s OrderStatus) rank() int {
	switch s {
	case OrderPending:
		return 0
	case OrderProcessing:
		return 1
	case OrderShipped:
		return 2
	case OrderDelivered:
		return 3
	}
	return -1
}

// CanTransitionTo reports whether a generic status update from s to next is
// legal: only forward moves along the chain; terminal states never move;
// cancelled is reachable only through the cancellation path.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderCancelled {
		return false
	}
	return next.Valid() && next.rank() > s.rank()
}

// CanCancel reports whether the cancellation path is open from s.
func (s OrderStatus) CanCancel() bool {
	return s == OrderPending || s == OrderProcessing
}

// OrderItem is one line item: a snapshot of product/size/price at order
// time. It does not track back to the live product price.
type OrderItem struct {
	ProductId int64   `json:"product_id,string"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// ShippingAddress is embedded into the order as a snapshot.
type ShippingAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zipcode  string `json:"zipcode"`
	Country  string `json:"country"`
}

type Order struct {
	ID            int64           `json:"id,string" form:"id"`
	OrderNo       string          `gorm:"uniqueIndex;size:64" json:"order_no"`
	UserId        int64           `gorm:"index" json:"user_id,string"`
	Items         []OrderItem     `gorm:"serializer:json" json:"items"`
	TotalAmount   float64         `json:"total_amount"`
	Address       ShippingAddress `gorm:"serializer:json" json:"address"`
	Status        OrderStatus     `gorm:"size:32;index" json:"status"`
	PaymentMethod string          `gorm:"size:32" json:"payment_method"`
	PaymentStatus string          `gorm:"size:32;index" json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}
