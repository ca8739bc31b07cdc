package checkout

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/pkg/common"
	"github.com/talkincode/toughmall/pkg/metrics"
)

// Topic published after an order placement commits. Subscribers receive
// the *domain.Order; delivery is best-effort and never part of the
// transaction.
const TopicOrderCreated = "order.created"

// Publisher is the in-process event bus surface the service needs.
// asaskevich/EventBus satisfies it.
type Publisher interface {
	Publish(topic string, args ...interface{})
}

// PlaceOrderItem is one requested line: which product, which size, how many.
type PlaceOrderItem struct {
	ProductId int64  `json:"product_id,string"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderInput is the cart-like placement payload.
type PlaceOrderInput struct {
	Items         []PlaceOrderItem       `json:"items"`
	Address       domain.ShippingAddress `json:"address"`
	PaymentMethod string                 `json:"payment_method"`
}

// Service implements order placement and the order status state machine.
type Service struct {
	repo Repository
	bus  Publisher
}

// NewService creates the checkout service. bus may be nil, in which case
// no post-commit events are published.
func NewService(repo Repository, bus Publisher) *Service {
	return &Service{repo: repo, bus: bus}
}

func validatePlaceOrder(in *PlaceOrderInput) error {
	if len(in.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "at least one line item is required"}
	}
	for _, it := range in.Items {
		if it.ProductId == 0 {
			return &ValidationError{Field: "items.product_id", Reason: "required"}
		}
		if strings.TrimSpace(it.Size) == "" {
			return &ValidationError{Field: "items.size", Reason: "required"}
		}
		if it.Quantity <= 0 {
			return &ValidationError{Field: "items.quantity", Reason: "must be positive"}
		}
	}
	if strings.TrimSpace(in.Address.Name) == "" {
		return &ValidationError{Field: "address.name", Reason: "required"}
	}
	if strings.TrimSpace(in.Address.Street) == "" {
		return &ValidationError{Field: "address.street", Reason: "required"}
	}
	if strings.TrimSpace(in.Address.City) == "" {
		return &ValidationError{Field: "address.city", Reason: "required"}
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return &ValidationError{Field: "payment_method", Reason: "required"}
	}
	return nil
}

// paymentStatusFor derives the initial payment status from the method:
// cash on delivery stays pending, anything else was pre-captured by the
// external gateway.
func paymentStatusFor(method string) string {
	if strings.EqualFold(method, domain.PaymentMethodCOD) {
		return domain.PaymentPending
	}
	return domain.PaymentCompleted
}

// PlaceOrder atomically verifies and decrements stock for every line item,
// then creates the order. Any per-item failure aborts the whole unit: no
// product is left partially modified and no order row exists. Callers must
// have authenticated userID; the service trusts it.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (*domain.Order, error) {
	if err := validatePlaceOrder(&in); err != nil {
		return nil, err
	}

	var order *domain.Order
	err := s.repo.InTransaction(ctx, func(tx Tx) error {
		now := time.Now()
		items := make([]domain.OrderItem, 0, len(in.Items))
		total := 0.0

		for _, it := range in.Items {
			p, err := tx.ProductForUpdate(ctx, it.ProductId)
			if err != nil {
				return err
			}
			idx := p.SizeIndex(it.Size)
			if idx < 0 {
				return &InvalidSizeError{ProductId: p.ID, Size: it.Size}
			}
			if p.Sizes[idx].Quantity < it.Quantity {
				return &InsufficientStockError{
					ProductId: p.ID,
					Size:      it.Size,
					Requested: it.Quantity,
					Available: p.Sizes[idx].Quantity,
				}
			}

			p.Sizes[idx].Quantity -= it.Quantity
			p.RecomputeTotal()
			p.UpdatedAt = now
			if err := tx.SaveProduct(ctx, p); err != nil {
				return err
			}

			items = append(items, domain.OrderItem{
				ProductId: p.ID,
				Name:      p.Name,
				Size:      it.Size,
				Color:     it.Color,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
			})
			total += p.Price * float64(it.Quantity)
		}

		order = &domain.Order{
			ID:            common.UUIDint64(),
			OrderNo:       common.OrderNumber(),
			UserId:        userID,
			Items:         items,
			TotalAmount:   total,
			Address:       in.Address,
			Status:        domain.OrderProcessing,
			PaymentMethod: in.PaymentMethod,
			PaymentStatus: paymentStatusFor(in.PaymentMethod),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncrCounter("orders_created", 1)
	metrics.SetGauge("orders_last_amount", int64(order.TotalAmount*100))
	if s.bus != nil {
		s.bus.Publish(TopicOrderCreated, order)
	}
	zap.L().Info("order placed",
		zap.String("order_no", order.OrderNo),
		zap.Int64("user_id", userID),
		zap.Float64("total", order.TotalAmount))
	return order, nil
}

// UpdateStatus applies a generic forward status update. Terminal orders
// never move again; cancellation is only reachable through Cancel.
// Updating to the current status is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, next domain.OrderStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "unknown status"}
	}
	var order *domain.Order
	err := s.repo.InTransaction(ctx, func(tx Tx) error {
		o, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status == next {
			order = o
			return nil
		}
		if !o.Status.CanTransitionTo(next) {
			return &InvalidTransitionError{From: o.Status, To: next}
		}
		o.Status = next
		o.UpdatedAt = time.Now()
		if err := tx.SaveOrder(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel moves an order to cancelled, permitted only from pending or
// processing. Stock is not restored.
func (s *Service) Cancel(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.cancel(ctx, orderID, 0)
}

// CancelForUser cancels on behalf of a storefront user; an order owned by
// somebody else is reported as not found rather than forbidden.
func (s *Service) CancelForUser(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	return s.cancel(ctx, orderID, userID)
}

func (s *Service) cancel(ctx context.Context, orderID, ownerID int64) (*domain.Order, error) {
	var order *domain.Order
	err := s.repo.InTransaction(ctx, func(tx Tx) error {
		o, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if ownerID != 0 && o.UserId != ownerID {
			return ErrOrderNotFound
		}
		if !o.Status.CanCancel() {
			return &InvalidTransitionError{From: o.Status, To: domain.OrderCancelled}
		}
		o.Status = domain.OrderCancelled
		o.UpdatedAt = time.Now()
		if err := tx.SaveOrder(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("order cancelled", zap.String("order_no", order.OrderNo))
	return order, nil
}
