package domain

import "time"

// Product stock status values
const (
	ProductInStock    = "in-stock"
	ProductOutOfStock = "out-of-stock"
	ProductComingSoon = "coming-soon"
)

// SizeQuantity is the inventory count for one (product, size) pair.
type SizeQuantity struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Product is a catalog item. Per-size stock lives in Sizes; TotalQuantity is
// always recomputed as the sum over Sizes and never written independently.
type Product struct {
	ID            int64          `json:"id,string" form:"id"`
	Name          string         `gorm:"index" json:"name" form:"name"`
	Description   string         `gorm:"size:4096" json:"description" form:"description"`
	Brand         string         `gorm:"size:128" json:"brand" form:"brand"`
	CategoryId    int64          `gorm:"index" json:"category_id,string" form:"category_id"`
	Price         float64        `json:"price" form:"price"`
	Images        []string       `gorm:"serializer:json" json:"images"`
	Sizes         []SizeQuantity `gorm:"serializer:json" json:"sizes"`
	TotalQuantity int            `json:"total_quantity"`
	Status        string         `gorm:"size:32;index" json:"status" form:"status"`
	Featured      bool           `gorm:"index" json:"featured" form:"featured"`
	Keywords      string         `gorm:"size:1024" json:"keywords" form:"keywords"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}

// SizeIndex returns the position of size in Sizes, or -1 when the size is
// not configured for this product.
func (p *Product) SizeIndex(size string) int {
	for i := range p.Sizes {
		if p.Sizes[i].Size == size {
			return i
		}
	}
	return -1
}

// RecomputeTotal recalculates TotalQuantity from Sizes and keeps the stock
// status consistent with it. A coming-soon product keeps its status.
func (p *Product) RecomputeTotal() {
	total := 0
	for i := range p.Sizes {
		total += p.Sizes[i].Quantity
	}
	p.TotalQuantity = total
	if p.Status == ProductComingSoon {
		return
	}
	if total > 0 {
		p.Status = ProductInStock
	} else {
		p.Status = ProductOutOfStock
	}
}
