package inmemory

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

// OrderRepositoryImpl represents an in memory storage
type OrderRepositoryImpl struct {
	store *memStore
}

// newOrderRepositoryImpl returns a new OrderRepositoryImpl backed by the
// given store.
func newOrderRepositoryImpl(store *memStore) *OrderRepositoryImpl {
	return &OrderRepositoryImpl{store}
}

func (r *OrderRepositoryImpl) AddOrder(
	_ context.Context, order *domain.Order,
) error {
	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	if _, ok := r.store.orders[order.Id]; ok {
		return domain.ErrDuplicateOrderId
	}

	r.store.orders[order.Id] = order.Clone()
	r.store.orderIds = append(r.store.orderIds, order.Id)
	return nil
}

func (r *OrderRepositoryImpl) GetOrder(
	_ context.Context, orderId common.Hash,
) (*domain.Order, error) {
	r.store.lock.RLock()
	defer r.store.lock.RUnlock()

	return r.getOrder(orderId)
}

func (r *OrderRepositoryImpl) GetAllOrders(
	_ context.Context,
) ([]domain.Order, error) {
	return r.findOrders(func(_ *domain.Order) bool { return true }), nil
}

func (r *OrderRepositoryImpl) GetOrdersBySender(
	_ context.Context, sender common.Address,
) ([]domain.Order, error) {
	return r.findOrders(func(o *domain.Order) bool {
		return o.Sender == sender
	}), nil
}

func (r *OrderRepositoryImpl) GetActiveOrders(
	_ context.Context,
) ([]domain.Order, error) {
	return r.findOrders(func(o *domain.Order) bool {
		return o.IsActive()
	}), nil
}

// UpdateOrder runs updateFn without holding the lock so that it can use other
// repositories sharing the same store.
func (r *OrderRepositoryImpl) UpdateOrder(
	_ context.Context,
	orderId common.Hash,
	updateFn func(o *domain.Order) (*domain.Order, error),
) error {
	r.store.lock.RLock()
	order, err := r.getOrder(orderId)
	r.store.lock.RUnlock()
	if err != nil {
		return err
	}

	updatedOrder, err := updateFn(order)
	if err != nil {
		return err
	}

	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	r.store.orders[orderId] = updatedOrder.Clone()
	return nil
}

func (r *OrderRepositoryImpl) NextNonce(
	_ context.Context, sender common.Address,
) (uint64, error) {
	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	r.store.nonces[sender]++
	return r.store.nonces[sender], nil
}

func (r *OrderRepositoryImpl) getOrder(orderId common.Hash) (*domain.Order, error) {
	order, ok := r.store.orders[orderId]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order.Clone(), nil
}

func (r *OrderRepositoryImpl) findOrders(
	filter func(o *domain.Order) bool,
) []domain.Order {
	r.store.lock.RLock()
	defer r.store.lock.RUnlock()

	orders := make([]domain.Order, 0)
	for _, id := range r.store.orderIds {
		order := r.store.orders[id]
		if filter(order) {
			orders = append(orders, *order.Clone())
		}
	}
	return orders
}
