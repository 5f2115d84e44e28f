package domain

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInsufficientBalance ...
var ErrInsufficientBalance = errors.New("insufficient balance")

// Balance is the amount of an asset held by an account in custody.
type Balance struct {
	Account common.Address
	Asset   common.Address
	Amount  *big.Int
}

// BalanceRepository persists the custody balances moved by the asset
// transfer gateway.
type BalanceRepository interface {
	// GetBalance returns the balance of the account for the given asset, zero
	// if never funded.
	GetBalance(ctx context.Context, account, asset common.Address) (*big.Int, error)
	// UpdateBalance allows to change the balance of an account in a
	// transactional way.
	UpdateBalance(
		ctx context.Context,
		account, asset common.Address,
		updateFn func(amount *big.Int) (*big.Int, error),
	) error
}
