package checkout

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/talkincode/toughmall/internal/domain"
)

// memRepository implements Repository with commit/rollback semantics: every
// write goes to a staging area that is applied only when the transaction
// callback returns nil.
type memRepository struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	orders   map[int64]domain.Order

	// failCreateOrder injects a storage fault on order insert to exercise
	// rollback behavior.
	failCreateOrder bool
}

func newMemRepository(products ...domain.Product) *memRepository {
	r := &memRepository{
		products: make(map[int64]domain.Product),
		orders:   make(map[int64]domain.Order),
	}
	for _, p := range products {
		r.products[p.ID] = cloneProduct(p)
	}
	return r
}

func cloneProduct(p domain.Product) domain.Product {
	sizes := make([]domain.SizeQuantity, len(p.Sizes))
	copy(sizes, p.Sizes)
	p.Sizes = sizes
	images := make([]string, len(p.Images))
	copy(images, p.Images)
	p.Images = images
	return p
}

func cloneOrder(o domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func (r *memRepository) InTransaction(_ context.Context, fn func(tx Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memTx{
		repo:     r,
		products: make(map[int64]domain.Product),
		orders:   make(map[int64]domain.Order),
	}
	if err := fn(tx); err != nil {
		return err
	}
	for id, p := range tx.products {
		r.products[id] = p
	}
	for id, o := range tx.orders {
		r.orders[id] = o
	}
	return nil
}

func (r *memRepository) product(id int64) domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneProduct(r.products[id])
}

func (r *memRepository) orderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

func (r *memRepository) firstOrder() domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		return cloneOrder(o)
	}
	return domain.Order{}
}

type memTx struct {
	repo     *memRepository
	products map[int64]domain.Product
	orders   map[int64]domain.Order
}

func (t *memTx) ProductForUpdate(_ context.Context, id int64) (*domain.Product, error) {
	if p, ok := t.products[id]; ok {
		p := cloneProduct(p)
		return &p, nil
	}
	p, ok := t.repo.products[id]
	if !ok {
		return nil, &ProductNotFoundError{ProductId: id}
	}
	p = cloneProduct(p)
	return &p, nil
}

func (t *memTx) SaveProduct(_ context.Context, p *domain.Product) error {
	t.products[p.ID] = cloneProduct(*p)
	return nil
}

func (t *memTx) CreateOrder(_ context.Context, o *domain.Order) error {
	if t.repo.failCreateOrder {
		return errors.New("simulated order insert failure")
	}
	t.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (t *memTx) OrderForUpdate(_ context.Context, id int64) (*domain.Order, error) {
	if o, ok := t.orders[id]; ok {
		o := cloneOrder(o)
		return &o, nil
	}
	o, ok := t.repo.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (t *memTx) SaveOrder(_ context.Context, o *domain.Order) error {
	t.orders[o.ID] = cloneOrder(*o)
	return nil
}
