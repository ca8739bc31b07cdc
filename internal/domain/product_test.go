package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeTotalSumsSizes(t *testing.T) {
	p := Product{
		Status: ProductOutOfStock,
		Sizes:  []SizeQuantity{{Size: "8", Quantity: 2}, {Size: "9", Quantity: 3}},
	}
	p.RecomputeTotal()
	assert.Equal(t, 5, p.TotalQuantity)
	assert.Equal(t, ProductInStock, p.Status)
}

func TestRecomputeTotalDrainedGoesOutOfStock(t *testing.T) {
	p := Product{
		Status: ProductInStock,
		Sizes:  []SizeQuantity{{Size: "8", Quantity: 0}},
	}
	p.RecomputeTotal()
	assert.Equal(t, 0, p.TotalQuantity)
	assert.Equal(t, ProductOutOfStock, p.Status)
}

func TestRecomputeTotalPreservesComingSoon(t *testing.T) {
	p := Product{
		Status: ProductComingSoon,
		Sizes:  []SizeQuantity{{Size: "8", Quantity: 10}},
	}
	p.RecomputeTotal()
	assert.Equal(t, 10, p.TotalQuantity)
	assert.Equal(t, ProductComingSoon, p.Status)
}

func TestSizeIndex(t *testing.T) {
	p := Product{Sizes: []SizeQuantity{{Size: "8"}, {Size: "9"}}}
	assert.Equal(t, 1, p.SizeIndex("9"))
	assert.Equal(t, -1, p.SizeIndex("13"))
}
