package application

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tdex-network/tdex-escrow/internal/core/application/operator"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
	"github.com/tdex-network/tdex-escrow/internal/storageutil/uow"
)

type OperatorService interface {
	Initialize(ctx context.Context, owner common.Address) error
	GetRegistry(ctx context.Context) (*domain.Registry, error)
	SetSupportedToken(
		ctx context.Context, caller, token common.Address, enable bool,
	) error
	UpdateProtocolFee(
		ctx context.Context, caller common.Address, percent uint64,
	) error
	UpdateRoleAddress(
		ctx context.Context, caller common.Address,
		kind domain.RoleKind, addr common.Address,
	) error
	Pause(ctx context.Context, caller common.Address) error
	Unpause(ctx context.Context, caller common.Address) error
}

func NewOperatorService(
	repoManager ports.RepoManager, unitOfWork *uow.UnitOfWork,
) (OperatorService, error) {
	return operator.NewService(repoManager, unitOfWork)
}
