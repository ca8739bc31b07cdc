package adminapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talkincode/toughmall/internal/domain"
)

func TestProductPayloadValidate(t *testing.T) {
	base := func() productPayload {
		return productPayload{
			Name:  "Air Runner",
			Price: 99.5,
			Sizes: []domain.SizeQuantity{{Size: "9", Quantity: 3}, {Size: "10", Quantity: 0}},
		}
	}

	t.Run("valid", func(t *testing.T) {
		p := base()
		assert.Empty(t, p.validate())
	})

	t.Run("blank name", func(t *testing.T) {
		p := base()
		p.Name = "   "
		assert.NotEmpty(t, p.validate())
	})

	t.Run("negative price", func(t *testing.T) {
		p := base()
		p.Price = -1
		assert.NotEmpty(t, p.validate())
	})

	t.Run("duplicate size", func(t *testing.T) {
		p := base()
		p.Sizes = append(p.Sizes, domain.SizeQuantity{Size: "9", Quantity: 1})
		assert.NotEmpty(t, p.validate())
	})

	t.Run("negative quantity", func(t *testing.T) {
		p := base()
		p.Sizes[0].Quantity = -2
		assert.NotEmpty(t, p.validate())
	})

	t.Run("unknown status", func(t *testing.T) {
		p := base()
		p.Status = "sold-out"
		assert.NotEmpty(t, p.validate())
	})
}

func TestProductPayloadApplyRecomputesStock(t *testing.T) {
	p := productPayload{
		Name:  "Air Runner",
		Price: 99.5,
		Sizes: []domain.SizeQuantity{{Size: "9", Quantity: 3}, {Size: "10", Quantity: 4}},
	}
	var prod domain.Product
	p.apply(&prod)

	// the client never controls the derived fields
	assert.Equal(t, 7, prod.TotalQuantity)
	assert.Equal(t, domain.ProductInStock, prod.Status)
}

func TestProductPayloadApplyEmptyStockGoesOut(t *testing.T) {
	p := productPayload{
		Name:  "Air Runner",
		Sizes: []domain.SizeQuantity{{Size: "9", Quantity: 0}},
	}
	var prod domain.Product
	p.apply(&prod)

	assert.Equal(t, 0, prod.TotalQuantity)
	assert.Equal(t, domain.ProductOutOfStock, prod.Status)
}

func TestProductPayloadApplyKeepsComingSoon(t *testing.T) {
	p := productPayload{
		Name:   "Air Runner 2",
		Status: domain.ProductComingSoon,
		Sizes:  []domain.SizeQuantity{{Size: "9", Quantity: 5}},
	}
	var prod domain.Product
	p.apply(&prod)

	assert.Equal(t, domain.ProductComingSoon, prod.Status)
	assert.Equal(t, 5, prod.TotalQuantity)
}
