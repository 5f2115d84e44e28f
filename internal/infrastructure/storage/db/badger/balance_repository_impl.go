package dbbadger

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type balanceRepositoryImpl struct {
	store txStore
}

func newBalanceRepositoryImpl(store *badgerhold.Store) domain.BalanceRepository {
	return balanceRepositoryImpl{txStore{store}}
}

func (r balanceRepositoryImpl) GetBalance(
	ctx context.Context, account, asset common.Address,
) (*big.Int, error) {
	var balance Balance
	if err := r.store.get(ctx, balanceKey(account, asset), &balance); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return new(big.Int), nil
		}
		return nil, err
	}
	return parseAmount(balance.Amount)
}

func (r balanceRepositoryImpl) UpdateBalance(
	ctx context.Context,
	account, asset common.Address,
	updateFn func(amount *big.Int) (*big.Int, error),
) error {
	amount, err := r.GetBalance(ctx, account, asset)
	if err != nil {
		return err
	}

	updatedAmount, err := updateFn(amount)
	if err != nil {
		return err
	}

	key := balanceKey(account, asset)
	if updatedAmount == nil || updatedAmount.Sign() == 0 {
		if err := r.store.delete(ctx, key, Balance{}); err != nil &&
			!errors.Is(err, badgerhold.ErrNotFound) {
			return err
		}
		return nil
	}

	return r.store.upsert(ctx, key, Balance{
		Account: account.Hex(),
		Asset:   asset.Hex(),
		Amount:  updatedAmount.String(),
	})
}
