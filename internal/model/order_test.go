package model

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderID(t *testing.T) {
	form := regexp.MustCompile(`^[0-9a-f]{24}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewOrderID()
		assert.Regexp(t, form, id)
		assert.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
}

func TestShortCodeOf(t *testing.T) {
	assert.Equal(t, "3d9d2f", ShortCodeOf("65a1b2c3d4e5f607183d9d2f"))
	assert.Equal(t, "f60718", ShortCodeOf("65a1b2c3d4e5f60718"))
	assert.Equal(t, "abc", ShortCodeOf("abc"))

	id := NewOrderID()
	assert.Equal(t, id[18:], ShortCodeOf(id))
}

func TestOrderStatusEnum(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("returned"))
	assert.False(t, ValidOrderStatus(""))

	assert.True(t, TerminalOrderStatus(OrderDelivered))
	assert.True(t, TerminalOrderStatus(OrderCancelled))
	assert.False(t, TerminalOrderStatus(OrderShipped))
}
