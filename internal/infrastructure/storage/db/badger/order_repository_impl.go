package dbbadger

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type orderRepositoryImpl struct {
	store txStore
}

func newOrderRepositoryImpl(store *badgerhold.Store) domain.OrderRepository {
	return orderRepositoryImpl{txStore{store}}
}

func (r orderRepositoryImpl) AddOrder(
	ctx context.Context, order *domain.Order,
) error {
	seq, err := r.nextSeq(ctx)
	if err != nil {
		return err
	}

	key := order.Id.Hex()
	if err := r.store.insert(ctx, key, toInfraOrder(*order, seq)); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrDuplicateOrderId
		}
		return err
	}
	return nil
}

func (r orderRepositoryImpl) GetOrder(
	ctx context.Context, orderId common.Hash,
) (*domain.Order, error) {
	order, _, err := r.getOrder(ctx, orderId)
	return order, err
}

func (r orderRepositoryImpl) GetAllOrders(
	ctx context.Context,
) ([]domain.Order, error) {
	return r.findOrders(ctx, badgerhold.Where("Seq").Gt(uint64(0)))
}

func (r orderRepositoryImpl) GetOrdersBySender(
	ctx context.Context, sender common.Address,
) ([]domain.Order, error) {
	query := badgerhold.Where("Sender").Eq(sender.Hex())
	return r.findOrders(ctx, query)
}

func (r orderRepositoryImpl) GetActiveOrders(
	ctx context.Context,
) ([]domain.Order, error) {
	query := badgerhold.Where("IsFulfilled").Eq(false).
		And("IsRefunded").Eq(false)
	return r.findOrders(ctx, query)
}

func (r orderRepositoryImpl) UpdateOrder(
	ctx context.Context,
	orderId common.Hash,
	updateFn func(o *domain.Order) (*domain.Order, error),
) error {
	order, seq, err := r.getOrder(ctx, orderId)
	if err != nil {
		return err
	}

	updatedOrder, err := updateFn(order)
	if err != nil {
		return err
	}

	return r.store.update(ctx, orderId.Hex(), toInfraOrder(*updatedOrder, seq))
}

func (r orderRepositoryImpl) NextNonce(
	ctx context.Context, sender common.Address,
) (uint64, error) {
	key := sender.Hex()

	var nonce Nonce
	if err := r.store.get(ctx, key, &nonce); err != nil {
		if !errors.Is(err, badgerhold.ErrNotFound) {
			return 0, err
		}
		nonce = Nonce{Sender: key}
	}

	nonce.Value++
	if err := r.store.upsert(ctx, key, nonce); err != nil {
		return 0, err
	}
	return nonce.Value, nil
}

func (r orderRepositoryImpl) getOrder(
	ctx context.Context, orderId common.Hash,
) (*domain.Order, uint64, error) {
	var order Order
	if err := r.store.get(ctx, orderId.Hex(), &order); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, 0, domain.ErrOrderNotFound
		}
		return nil, 0, err
	}

	o, err := order.toDomain()
	if err != nil {
		return nil, 0, err
	}
	return o, order.Seq, nil
}

func (r orderRepositoryImpl) findOrders(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Order, error) {
	var orders []Order
	if err := r.store.find(ctx, &orders, query.SortBy("Seq")); err != nil {
		return nil, err
	}

	res := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		o, err := order.toDomain()
		if err != nil {
			return nil, err
		}
		res = append(res, *o)
	}
	return res, nil
}

// nextSeq returns the creation sequence number of a new order.
func (r orderRepositoryImpl) nextSeq(ctx context.Context) (uint64, error) {
	var counter Counter
	if err := r.store.get(ctx, orderCounterKey, &counter); err != nil {
		if !errors.Is(err, badgerhold.ErrNotFound) {
			return 0, err
		}
	}

	counter.Value++
	if err := r.store.upsert(ctx, orderCounterKey, counter); err != nil {
		return 0, err
	}
	return counter.Value, nil
}
