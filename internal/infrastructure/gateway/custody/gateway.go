// Package custody implements an asset transfer gateway that keeps account
// balances in the ledger's own repositories. Transfers are therefore part of
// the same transaction as the order changes that trigger them.
package custody

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/pkg/mathutil"
)

var (
	// ErrUnknownEscrowAccount is returned when transferring from an account
	// other than the escrow one.
	ErrUnknownEscrowAccount = errors.New("unknown escrow account")
	// ErrNegativeAmount ...
	ErrNegativeAmount = errors.New("amount must not be negative")
)

type Gateway struct {
	escrowAccount common.Address
	repository    domain.BalanceRepository
}

func NewGateway(
	escrowAccount common.Address, repository domain.BalanceRepository,
) (*Gateway, error) {
	if escrowAccount == (common.Address{}) {
		return nil, fmt.Errorf("missing escrow account")
	}
	if repository == nil {
		return nil, fmt.Errorf("missing balance repository")
	}
	return &Gateway{escrowAccount, repository}, nil
}

func (g *Gateway) EscrowAccount() common.Address {
	return g.escrowAccount
}

func (g *Gateway) Withdraw(
	ctx context.Context, from, asset common.Address, amount *big.Int,
) error {
	if err := g.move(ctx, asset, from, g.escrowAccount, amount); err != nil {
		return fmt.Errorf("failed to withdraw from %s: %w", from.Hex(), err)
	}
	return nil
}

func (g *Gateway) Deposit(
	ctx context.Context, to, asset common.Address, amount *big.Int,
) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return domain.ErrZeroAddress
	}
	if mathutil.IsZero(amount) {
		return nil
	}
	if err := g.credit(ctx, to, asset, amount); err != nil {
		return fmt.Errorf("failed to deposit to %s: %w", to.Hex(), err)
	}

	log.Debugf("deposited %s of %s to %s", amount, asset.Hex(), to.Hex())
	return nil
}

func (g *Gateway) Transfer(
	ctx context.Context, asset, fromEscrow, to common.Address, amount *big.Int,
) error {
	if fromEscrow != g.escrowAccount {
		return ErrUnknownEscrowAccount
	}
	if err := g.move(ctx, asset, fromEscrow, to, amount); err != nil {
		return fmt.Errorf("failed to transfer to %s: %w", to.Hex(), err)
	}
	return nil
}

func (g *Gateway) BalanceOf(
	ctx context.Context, account, asset common.Address,
) (*big.Int, error) {
	return g.repository.GetBalance(ctx, account, asset)
}

func (g *Gateway) move(
	ctx context.Context, asset, from, to common.Address, amount *big.Int,
) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return domain.ErrZeroAddress
	}
	if mathutil.IsZero(amount) || from == to {
		return nil
	}

	if err := g.debit(ctx, from, asset, amount); err != nil {
		return err
	}
	if err := g.credit(ctx, to, asset, amount); err != nil {
		return err
	}

	log.Debugf(
		"moved %s of %s from %s to %s", amount, asset.Hex(), from.Hex(), to.Hex(),
	)
	return nil
}

func (g *Gateway) debit(
	ctx context.Context, account, asset common.Address, amount *big.Int,
) error {
	return g.repository.UpdateBalance(
		ctx, account, asset, func(balance *big.Int) (*big.Int, error) {
			if balance.Cmp(amount) < 0 {
				return nil, fmt.Errorf(
					"%w: has %s, needs %s", domain.ErrInsufficientBalance, balance, amount,
				)
			}
			return mathutil.Sub(balance, amount)
		},
	)
}

func (g *Gateway) credit(
	ctx context.Context, account, asset common.Address, amount *big.Int,
) error {
	return g.repository.UpdateBalance(
		ctx, account, asset, func(balance *big.Int) (*big.Int, error) {
			return mathutil.Add(balance, amount)
		},
	)
}

func validateAmount(amount *big.Int) error {
	if amount != nil && amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	return nil
}
