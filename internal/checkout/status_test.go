package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/toughmall/internal/domain"
)

func seedOrder(status domain.OrderStatus) (*memRepository, int64) {
	repo := newMemRepository()
	repo.orders[500] = domain.Order{
		ID:      500,
		OrderNo: "20260828500",
		UserId:  9,
		Status:  status,
	}
	return repo, 500
}

func TestUpdateStatusForward(t *testing.T) {
	repo, id := seedOrder(domain.OrderProcessing)
	svc := NewService(repo, nil)

	o, err := svc.UpdateStatus(context.Background(), id, domain.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, o.Status)

	o, err = svc.UpdateStatus(context.Background(), id, domain.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDelivered, o.Status)
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	repo, id := seedOrder(domain.OrderProcessing)
	svc := NewService(repo, nil)

	o, err := svc.UpdateStatus(context.Background(), id, domain.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderProcessing, o.Status)
}

func TestUpdateStatusTerminalIsImmutable(t *testing.T) {
	for _, terminal := range []domain.OrderStatus{domain.OrderDelivered, domain.OrderCancelled} {
		repo, id := seedOrder(terminal)
		svc := NewService(repo, nil)

		for _, next := range []domain.OrderStatus{
			domain.OrderPending, domain.OrderProcessing, domain.OrderShipped,
		} {
			_, err := svc.UpdateStatus(context.Background(), id, next)
			var it *InvalidTransitionError
			require.ErrorAs(t, err, &it, "from %s to %s", terminal, next)
			assert.Equal(t, terminal, it.From)
		}
	}
}

func TestUpdateStatusBackwardRejected(t *testing.T) {
	repo, id := seedOrder(domain.OrderShipped)
	svc := NewService(repo, nil)

	_, err := svc.UpdateStatus(context.Background(), id, domain.OrderPending)
	var it *InvalidTransitionError
	assert.ErrorAs(t, err, &it)
}

func TestUpdateStatusCannotCancelThroughUpdate(t *testing.T) {
	repo, id := seedOrder(domain.OrderProcessing)
	svc := NewService(repo, nil)

	_, err := svc.UpdateStatus(context.Background(), id, domain.OrderCancelled)
	var it *InvalidTransitionError
	assert.ErrorAs(t, err, &it)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	repo, id := seedOrder(domain.OrderProcessing)
	svc := NewService(repo, nil)

	_, err := svc.UpdateStatus(context.Background(), id, domain.OrderStatus("returned"))
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestUpdateStatusOrderNotFound(t *testing.T) {
	svc := NewService(newMemRepository(), nil)

	_, err := svc.UpdateStatus(context.Background(), 404, domain.OrderShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCancelFromPendingAndProcessing(t *testing.T) {
	for _, from := range []domain.OrderStatus{domain.OrderPending, domain.OrderProcessing} {
		repo, id := seedOrder(from)
		svc := NewService(repo, nil)

		o, err := svc.Cancel(context.Background(), id)
		require.NoError(t, err, "from %s", from)
		assert.Equal(t, domain.OrderCancelled, o.Status)
	}
}

func TestCancelShippedRejectedThenProcessingSucceeds(t *testing.T) {
	repo, id := seedOrder(domain.OrderShipped)
	svc := NewService(repo, nil)

	_, err := svc.Cancel(context.Background(), id)
	var it *InvalidTransitionError
	require.ErrorAs(t, err, &it)
	assert.Equal(t, domain.OrderShipped, it.From)

	// same order back in processing cancels fine
	repo.orders[id] = domain.Order{ID: id, OrderNo: "20260828500", UserId: 9, Status: domain.OrderProcessing}
	o, err := svc.Cancel(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, o.Status)
}

func TestCancelFromTerminalRejected(t *testing.T) {
	for _, from := range []domain.OrderStatus{domain.OrderDelivered, domain.OrderCancelled} {
		repo, id := seedOrder(from)
		svc := NewService(repo, nil)

		_, err := svc.Cancel(context.Background(), id)
		var it *InvalidTransitionError
		assert.ErrorAs(t, err, &it, "from %s", from)
	}
}

func TestCancelForUserChecksOwnership(t *testing.T) {
	repo, id := seedOrder(domain.OrderProcessing)
	svc := NewService(repo, nil)

	// somebody else's order looks like it does not exist
	_, err := svc.CancelForUser(context.Background(), 777, id)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	o, err := svc.CancelForUser(context.Background(), 9, id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, o.Status)
}
