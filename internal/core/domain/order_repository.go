package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// OrderRepository is the abstraction for any kind of database intended to
// persist Orders. Orders are never deleted.
type OrderRepository interface {
	// AddOrder stores a new order. It returns ErrDuplicateOrderId if another
	// order with the same id exists.
	AddOrder(ctx context.Context, order *Order) error
	// GetOrder returns the order with the given id, or ErrOrderNotFound.
	GetOrder(ctx context.Context, orderId common.Hash) (*Order, error)
	// GetAllOrders returns all the stored orders sorted by creation.
	GetAllOrders(ctx context.Context) ([]Order, error)
	// GetOrdersBySender returns all the orders created by the given sender
	// sorted by creation.
	GetOrdersBySender(ctx context.Context, sender common.Address) ([]Order, error)
	// GetActiveOrders returns the orders neither fulfilled nor refunded.
	GetActiveOrders(ctx context.Context) ([]Order, error)
	// UpdateOrder allows to commit multiple changes to the same order in a
	// transactional way.
	UpdateOrder(
		ctx context.Context,
		orderId common.Hash,
		updateFn func(o *Order) (*Order, error),
	) error
	// NextNonce increments and returns the nonce of the given sender. The
	// first returned nonce is 1.
	NextNonce(ctx context.Context, sender common.Address) (uint64, error)
}
