package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/toughmall/internal/domain"
)

func sneaker(id int64) domain.Product {
	return domain.Product{
		ID:    id,
		Name:  "runner-classic",
		Price: 59.9,
		Sizes: []domain.SizeQuantity{
			{Size: "8", Quantity: 5},
			{Size: "9", Quantity: 2},
		},
		TotalQuantity: 7,
		Status:        domain.ProductInStock,
	}
}

func testAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Name:   "Jordan Lee",
		Phone:  "13800000000",
		Street: "1 Main St",
		City:   "Springfield",
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	repo := newMemRepository(sneaker(100))
	svc := NewService(repo, nil)

	order, err := svc.PlaceOrder(context.Background(), 1, PlaceOrderInput{
		Items: []PlaceOrderItem{
			{ProductId: 100, Size: "9", Quantity: 1, Color: "black"},
			{ProductId: 100, Size: "8", Quantity: 2},
		},
		Address:       testAddress(),
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, domain.OrderProcessing, order.Status)
	assert.Equal(t, domain.PaymentCompleted, order.PaymentStatus)
	assert.InDelta(t, 59.9*3, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "runner-classic", order.Items[0].Name)
	assert.Equal(t, 59.9, order.Items[0].UnitPrice)
	assert.NotEmpty(t, order.OrderNo)

	p := repo.product(100)
	assert.Equal(t, 3, p.Sizes[0].Quantity) // size 8: 5-2
	assert.Equal(t, 1, p.Sizes[1].Quantity) // size 9: 2-1
	assert.Equal(t, 4, p.TotalQuantity)
	assert.Equal(t, domain.ProductInStock, p.Status)
}

func TestPlaceOrderCashOnDeliveryKeepsPaymentPending(t *testing.T) {
	repo := newMemRepository(sneaker(100))
	svc := NewService(repo, nil)

	order, err := svc.PlaceOrder(context.Background(), 1, PlaceOrderInput{
		Items:         []PlaceOrderItem{{ProductId: 100, Size: "8", Quantity: 1}},
		Address:       testAddress(),
		PaymentMethod: "cod",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	assert.Equal(t, domain.OrderProcessing, order.Status)
}

func TestPlaceOrderProductNotFound(t *testing.T) {
	repo := newMemRepository(sneaker(100))
	svc := NewService(repo, nil)

	_, err := svc.PlaceOrder(context.Background(), 1, PlaceOrderInput{
		Items:         []PlaceOrderItem{{ProductId: 999, Size: "8", Quantity: 1}},
		Address:       testAddress(),
		PaymentMethod: "card",
	})
	var nf *ProductNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(999), nf.ProductId)
	assert.Equal(t, 0, repo.orderCount())
}

func TestPlaceOrderInvalidSize(t *testing.T) {
	repo := newMemRepository(sneaker(100))
	svc := NewService(repo, nil)

	_, err := svc.PlaceOrder(context.Background(), 1, PlaceOrderInput{
		Items:         []PlaceOrderItem{{ProductId: 100, Size: "13", Quantity: 1}},
		Address:       testAddress(),
		PaymentMethod: "card",
	})
	var is *InvalidSizeError
	require.ErrorAs(t, err, &is)
	assert.Equal(t, "13", is.Size)
	assert.Equal(t, 0, repo.orderCount())
}

func TestPlaceOrderInsufficientStockLeavesNothingModified(t *testing.T) {
	repo := newMemRepository(sneaker(100))
	svc := NewService(repo, nil)

	// first line would succeed, second line overdraws size 9
	_, err := svc.PlaceOrder(context.Background(), 1, PlaceOrderInput{
		Items: []PlaceOrderItem{
			{ProductId: 100, Size: "8", Quantity: 1},
			{ProductId: 100, Size: "9", Quantity: 3},
		},
		Address:       testAddress(),
		PaymentMethod: "card",
	})
	var ins *InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, int64(100), ins.ProductId)
	assert.Equal(t, "9", ins.Size)
	assert.Equal(t, 3, ins.Requested)
	assert.Equal(t, 2, ins.Available)

	// atomicity: the successful first line must not be observable
	p := repo.product(100)
	assert.Equal(t, 5, p.Sizes[0].Quantity)
	assert.Equal(t, 2, p.Sizes[1].Quantity)
	assert.Equal(t, 7, p.TotalQuantity)
	assert.Equal(t, 0, repo.orderCount())
}

func TestPlaceOrderInsertFailureRollsBackStock(t *testing.T) {
	repo := newMemRepository(sneaker(100))
	repo.failCreateOrder = true
	svc := NewService(repo, nil)

	_, err := svc.PlaceOrder(context.Background(), 1, PlaceOrderInput{
		Items:         []PlaceOrderItem{{ProductId: 100, Size: "8", Quantity: 1}},
		Address:       testAddress(),
		PaymentMethod: "card",
	})
	require.Error(t, err)

	p := repo.product(100)
	assert.Equal(t, 5, p.Sizes[0].Quantity)
	assert.Equal(t, 7, p.TotalQuantity)
	assert.Equal(t, 0, repo.orderCount())
}

func TestPlaceOrderDrainsSizeNineExactly(t *testing.T) {
	// product has size "9" with quantity 2; ordering 2 succeeds and leaves 0,
	// an identical follow-up order fails and creates nothing.
	repo := newMemRepository(domain.Product{
		ID:    200,
		Name:  "limited-run",
		Price: 120,
		Sizes: []domain.SizeQuantity{{Size: "9", Quantity: 2}},
	})
	svc := NewService(repo, nil)

	in := PlaceOrderInput{
		Items:         []PlaceOrderItem{{ProductId: 200, Size: "9", Quantity: 2}},
		Address:       testAddress(),
		PaymentMethod: "card",
	}

	first, err := svc.PlaceOrder(context.Background(), 1, in)
	require.NoError(t, err)
	assert.InDelta(t, 240, first.TotalAmount, 0.001)

	p := repo.product(200)
	assert.Equal(t, 0, p.Sizes[0].Quantity)
	assert.Equal(t, 0, p.TotalQuantity)
	assert.Equal(t, domain.ProductOutOfStock, p.Status)

	_, err = svc.PlaceOrder(context.Background(), 2, in)
	var ins *InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, 0, ins.Available)
	assert.Equal(t, 1, repo.orderCount())
}

func TestPlaceOrderConcurrentPlacementsNeverOversell(t *testing.T) {
	repo := newMemRepository(domain.Product{
		ID:    200,
		Name:  "limited-run",
		Price: 120,
		Sizes: []domain.SizeQuantity{{Size: "9", Quantity: 2}},
	})
	svc := NewService(repo, nil)

	in := PlaceOrderInput{
		Items:         []PlaceOrderItem{{ProductId: 200, Size: "9", Quantity: 2}},
		Address:       testAddress(),
		PaymentMethod: "card",
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.PlaceOrder(context.Background(), int64(i+1), in)
		}(i)
	}
	wg.Wait()

	var okCount, stockCount int
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		var ins *InsufficientStockError
		require.ErrorAs(t, err, &ins)
		stockCount++
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, stockCount)
	assert.Equal(t, 1, repo.orderCount())
	assert.Equal(t, 0, repo.product(200).TotalQuantity)
}

func TestPlaceOrderValidation(t *testing.T) {
	svc := NewService(newMemRepository(), nil)

	cases := []struct {
		name string
		in   PlaceOrderInput
	}{
		{"empty items", PlaceOrderInput{Address: testAddress(), PaymentMethod: "card"}},
		{"zero quantity", PlaceOrderInput{
			Items:         []PlaceOrderItem{{ProductId: 1, Size: "8", Quantity: 0}},
			Address:       testAddress(),
			PaymentMethod: "card",
		}},
		{"missing size", PlaceOrderInput{
			Items:         []PlaceOrderItem{{ProductId: 1, Quantity: 1}},
			Address:       testAddress(),
			PaymentMethod: "card",
		}},
		{"missing address", PlaceOrderInput{
			Items:         []PlaceOrderItem{{ProductId: 1, Size: "8", Quantity: 1}},
			PaymentMethod: "card",
		}},
		{"missing payment method", PlaceOrderInput{
			Items:   []PlaceOrderItem{{ProductId: 1, Size: "8", Quantity: 1}},
			Address: testAddress(),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), 1, tc.in)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}
