package custody_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/infrastructure/gateway/custody"
	"github.com/tdex-network/tdex-escrow/internal/infrastructure/storage/db/inmemory"
)

var (
	escrow = common.HexToAddress("0xe5c0000000000000000000000000000000000e5c")
	alice  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	usdc   = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func TestNewGateway(t *testing.T) {
	t.Parallel()

	repoManager := inmemory.NewRepoManager()

	_, err := custody.NewGateway(common.Address{}, repoManager.BalanceRepository())
	require.Error(t, err)

	_, err = custody.NewGateway(escrow, nil)
	require.Error(t, err)

	gw, err := custody.NewGateway(escrow, repoManager.BalanceRepository())
	require.NoError(t, err)
	require.Equal(t, escrow, gw.EscrowAccount())
}

func TestGatewayTransfers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := newTestGateway(t)

	require.NoError(t, gw.Deposit(ctx, alice, usdc, big.NewInt(1000)))
	require.NoError(t, gw.Withdraw(ctx, alice, usdc, big.NewInt(700)))
	requireBalance(t, gw, alice, "300")
	requireBalance(t, gw, escrow, "700")

	require.NoError(t, gw.Transfer(ctx, usdc, escrow, bob, big.NewInt(200)))
	requireBalance(t, gw, escrow, "500")
	requireBalance(t, gw, bob, "200")

	// Zero amounts are no-ops.
	require.NoError(t, gw.Transfer(ctx, usdc, escrow, bob, big.NewInt(0)))
	require.NoError(t, gw.Withdraw(ctx, bob, usdc, nil))
	requireBalance(t, gw, bob, "200")
}

func TestFailingGatewayTransfers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := newTestGateway(t)
	require.NoError(t, gw.Deposit(ctx, alice, usdc, big.NewInt(100)))

	tests := []struct {
		name          string
		run           func() error
		expectedError error
	}{
		{
			name: "withdraw_insufficient_balance",
			run: func() error {
				return gw.Withdraw(ctx, alice, usdc, big.NewInt(101))
			},
			expectedError: domain.ErrInsufficientBalance,
		},
		{
			name: "transfer_insufficient_balance",
			run: func() error {
				return gw.Transfer(ctx, usdc, escrow, bob, big.NewInt(1))
			},
			expectedError: domain.ErrInsufficientBalance,
		},
		{
			name: "transfer_from_unknown_escrow",
			run: func() error {
				return gw.Transfer(ctx, usdc, alice, bob, big.NewInt(1))
			},
			expectedError: custody.ErrUnknownEscrowAccount,
		},
		{
			name: "transfer_to_zero_address",
			run: func() error {
				return gw.Transfer(ctx, usdc, escrow, common.Address{}, big.NewInt(1))
			},
			expectedError: domain.ErrZeroAddress,
		},
		{
			name: "negative_deposit",
			run: func() error {
				return gw.Deposit(ctx, alice, usdc, big.NewInt(-1))
			},
			expectedError: custody.ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		err := tt.run()
		require.ErrorIs(t, err, tt.expectedError, tt.name)
	}

	requireBalance(t, gw, alice, "100")
	requireBalance(t, gw, bob, "0")
}

func newTestGateway(t *testing.T) *custody.Gateway {
	repoManager := inmemory.NewRepoManager()
	gw, err := custody.NewGateway(escrow, repoManager.BalanceRepository())
	require.NoError(t, err)
	return gw
}

func requireBalance(
	t *testing.T, gw *custody.Gateway, account common.Address, expected string,
) {
	balance, err := gw.BalanceOf(context.Background(), account, usdc)
	require.NoError(t, err)
	require.Equal(t, expected, balance.String())
}
