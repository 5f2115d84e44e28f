package inmemory

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// BalanceRepositoryImpl represents an in memory storage
type BalanceRepositoryImpl struct {
	store *memStore
}

// newBalanceRepositoryImpl returns a new BalanceRepositoryImpl backed by the
// given store.
func newBalanceRepositoryImpl(store *memStore) *BalanceRepositoryImpl {
	return &BalanceRepositoryImpl{store}
}

func (r *BalanceRepositoryImpl) GetBalance(
	_ context.Context, account, asset common.Address,
) (*big.Int, error) {
	r.store.lock.RLock()
	defer r.store.lock.RUnlock()

	return r.getBalance(account, asset), nil
}

func (r *BalanceRepositoryImpl) UpdateBalance(
	_ context.Context,
	account, asset common.Address,
	updateFn func(amount *big.Int) (*big.Int, error),
) error {
	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	updatedAmount, err := updateFn(r.getBalance(account, asset))
	if err != nil {
		return err
	}

	key := balanceKey{account, asset}
	if updatedAmount == nil || updatedAmount.Sign() == 0 {
		delete(r.store.balances, key)
		return nil
	}
	r.store.balances[key] = new(big.Int).Set(updatedAmount)
	return nil
}

func (r *BalanceRepositoryImpl) getBalance(account, asset common.Address) *big.Int {
	amount, ok := r.store.balances[balanceKey{account, asset}]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(amount)
}
