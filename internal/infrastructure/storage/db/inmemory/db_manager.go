package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
)

type txCtxKey struct{}

type RepoManager struct {
	store  *memStore
	txLock *sync.Mutex

	orderRepository    domain.OrderRepository
	registryRepository domain.RegistryRepository
	balanceRepository  domain.BalanceRepository
}

func NewRepoManager() ports.RepoManager {
	store := newMemStore()

	return &RepoManager{
		store:              store,
		txLock:             &sync.Mutex{},
		orderRepository:    newOrderRepositoryImpl(store),
		registryRepository: newRegistryRepositoryImpl(store),
		balanceRepository:  newBalanceRepositoryImpl(store),
	}
}

func (d *RepoManager) OrderRepository() domain.OrderRepository {
	return d.orderRepository
}

func (d *RepoManager) RegistryRepository() domain.RegistryRepository {
	return d.registryRepository
}

func (d *RepoManager) BalanceRepository() domain.BalanceRepository {
	return d.balanceRepository
}

// RunTransaction serializes the handlers. Write transactions take a snapshot
// of the whole state and restore it if the handler fails or panics. A handler
// invoked with a context already carrying a transaction joins it.
func (d *RepoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (res interface{}, err error) {
	if ctx.Value(txCtxKey{}) != nil {
		return handler(ctx)
	}

	d.txLock.Lock()
	defer d.txLock.Unlock()

	var snapshot *memStore
	if !readOnly {
		snapshot = d.store.snapshot()
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("recovered: %v", rec)
		}
		if err != nil {
			res = nil
			if snapshot != nil {
				d.store.restore(snapshot)
			}
		}
	}()

	return handler(context.WithValue(ctx, txCtxKey{}, struct{}{}))
}

func (d *RepoManager) Close() {}
