package ports

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AssetTransferGateway is the only way value moves in and out of the escrow.
// Every method either succeeds or returns an error that must abort the whole
// operation.
type AssetTransferGateway interface {
	// EscrowAccount returns the account holding the escrowed funds.
	EscrowAccount() common.Address
	// Withdraw moves amount of asset from the given account into the escrow.
	Withdraw(ctx context.Context, from, asset common.Address, amount *big.Int) error
	// Deposit credits amount of asset to the given account.
	Deposit(ctx context.Context, to, asset common.Address, amount *big.Int) error
	// Transfer moves amount of asset from the escrow account to the given one.
	Transfer(
		ctx context.Context, asset, fromEscrow, to common.Address, amount *big.Int,
	) error
}

// BalanceReader is optionally implemented by gateways that can report the
// balances they keep.
type BalanceReader interface {
	BalanceOf(ctx context.Context, account, asset common.Address) (*big.Int, error)
}
