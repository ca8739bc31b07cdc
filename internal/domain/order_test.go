package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusForwardChain(t *testing.T) {
	assert.True(t, OrderPending.CanTransitionTo(OrderProcessing))
	assert.True(t, OrderPending.CanTransitionTo(OrderShipped))
	assert.True(t, OrderProcessing.CanTransitionTo(OrderShipped))
	assert.True(t, OrderShipped.CanTransitionTo(OrderDelivered))

	assert.False(t, OrderShipped.CanTransitionTo(OrderProcessing))
	assert.False(t, OrderProcessing.CanTransitionTo(OrderPending))
}

func TestOrderStatusTerminalNeverMoves(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderDelivered, OrderCancelled} {
		for _, next := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
			assert.False(t, terminal.CanTransitionTo(next),
				"%s -> %s must be rejected", terminal, next)
		}
		assert.False(t, terminal.CanCancel())
	}
}

func TestOrderStatusCancelOnlyViaCancelPath(t *testing.T) {
	assert.False(t, OrderPending.CanTransitionTo(OrderCancelled))
	assert.False(t, OrderProcessing.CanTransitionTo(OrderCancelled))

	assert.True(t, OrderPending.CanCancel())
	assert.True(t, OrderProcessing.CanCancel())
	assert.False(t, OrderShipped.CanCancel())
}

func TestOrderStatusUnknownIsInvalid(t *testing.T) {
	bogus := OrderStatus("archived")
	assert.False(t, bogus.Valid())
	assert.False(t, OrderPending.CanTransitionTo(bogus))
}
