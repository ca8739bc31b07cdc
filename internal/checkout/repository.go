package checkout

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talkincode/toughmall/internal/domain"
)

// Tx is the transactional view handed to the placement/transition logic.
// Every write made through a Tx becomes visible atomically when the
// surrounding InTransaction callback returns nil, and not at all otherwise.
type Tx interface {
	// ProductForUpdate loads a product under a write lock so concurrent
	// placements against the same product serialize.
	ProductForUpdate(ctx context.Context, id int64) (*domain.Product, error)

	// SaveProduct persists the mutated product inside the transaction.
	SaveProduct(ctx context.Context, p *domain.Product) error

	// CreateOrder inserts the new order inside the transaction.
	CreateOrder(ctx context.Context, o *domain.Order) error

	// OrderForUpdate loads an order under a write lock.
	OrderForUpdate(ctx context.Context, id int64) (*domain.Order, error)

	// SaveOrder persists the mutated order inside the transaction.
	SaveOrder(ctx context.Context, o *domain.Order) error
}

// Repository exposes the store's native multi-document atomicity.
type Repository interface {
	// InTransaction runs fn inside one atomic unit; a non-nil error from fn
	// rolls back everything written through the Tx.
	InTransaction(ctx context.Context, fn func(tx Tx) error) error
}

// GormRepository is the GORM implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM-based repository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) InTransaction(ctx context.Context, fn func(tx Tx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) ProductForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductId: id}
		}
		return nil, errors.Wrapf(err, "load product %d", id)
	}
	return &p, nil
}

func (t *gormTx) SaveProduct(ctx context.Context, p *domain.Product) error {
	return errors.Wrapf(t.db.WithContext(ctx).Save(p).Error, "save product %d", p.ID)
}

func (t *gormTx) CreateOrder(ctx context.Context, o *domain.Order) error {
	return errors.Wrapf(t.db.WithContext(ctx).Create(o).Error, "create order %s", o.OrderNo)
}

func (t *gormTx) OrderForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errors.Wrapf(err, "load order %d", id)
	}
	return &o, nil
}

func (t *gormTx) SaveOrder(ctx context.Context, o *domain.Order) error {
	return errors.Wrapf(t.db.WithContext(ctx).Save(o).Error, "save order %d", o.ID)
}
