package application

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tdex-network/tdex-escrow/internal/core/application/ledger"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
	"github.com/tdex-network/tdex-escrow/internal/storageutil/uow"
	"github.com/tdex-network/tdex-escrow/pkg/stats"
)

type (
	CreateOrderArgs = ledger.CreateOrderArgs
	SettleArgs      = ledger.SettleArgs
	RefundArgs      = ledger.RefundArgs
	FeeConfig       = ledger.FeeConfig
)

type LedgerService interface {
	CreateOrder(ctx context.Context, args CreateOrderArgs) (*domain.Order, error)
	Settle(ctx context.Context, args SettleArgs) (*domain.Settlement, error)
	Refund(ctx context.Context, args RefundArgs) (*domain.Refund, error)
	Deposit(ctx context.Context, to, asset common.Address, amount *big.Int) error

	GetOrder(ctx context.Context, orderId common.Hash) (*domain.Order, error)
	ListOrders(ctx context.Context, sender *common.Address) ([]domain.Order, error)
	IsTokenSupported(ctx context.Context, token common.Address) (bool, error)
	GetFeeConfig(ctx context.Context) (*FeeConfig, error)
	GetBalance(ctx context.Context, account, asset common.Address) (*big.Int, error)
}

func NewLedgerService(
	repoManager ports.RepoManager, unitOfWork *uow.UnitOfWork,
	gateway ports.AssetTransferGateway, metrics *stats.LedgerMetrics,
) (LedgerService, error) {
	return ledger.NewService(repoManager, unitOfWork, gateway, metrics)
}
