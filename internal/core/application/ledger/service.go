package ledger

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
	"github.com/tdex-network/tdex-escrow/internal/storageutil/uow"
	"github.com/tdex-network/tdex-escrow/pkg/mathutil"
	"github.com/tdex-network/tdex-escrow/pkg/stats"
)

const (
	opCreateOrder = "CreateOrder"
	opSettle      = "Settle"
	opRefund      = "Refund"
	opDeposit     = "Deposit"
)

// Service is the order lifecycle state machine. Every operation runs as one
// unit of work: the registry read, the order changes and the transfers are
// committed together or not at all.
type Service struct {
	repoManager ports.RepoManager
	unitOfWork  *uow.UnitOfWork
	gateway     ports.AssetTransferGateway
	metrics     *stats.LedgerMetrics

	now func() time.Time
}

func NewService(
	repoManager ports.RepoManager, unitOfWork *uow.UnitOfWork,
	gateway ports.AssetTransferGateway, metrics *stats.LedgerMetrics,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if unitOfWork == nil {
		return nil, fmt.Errorf("missing unit of work")
	}
	if gateway == nil {
		return nil, fmt.Errorf("missing asset transfer gateway")
	}

	svc := &Service{repoManager, unitOfWork, gateway, metrics, time.Now}

	if metrics != nil {
		orders, err := repoManager.OrderRepository().GetActiveOrders(
			context.Background(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to count active orders: %w", err)
		}
		metrics.SetActiveOrders(len(orders))
	}
	return svc, nil
}

// CreateOrder escrows the gross amount plus the sender fee from the sender
// and stores a new active order.
func (s *Service) CreateOrder(
	ctx context.Context, args CreateOrderArgs,
) (*domain.Order, error) {
	res, err := s.unitOfWork.Run(
		ctx, opCreateOrder,
		func(ctx context.Context, journal *uow.Journal) (interface{}, error) {
			registry, err := s.repoManager.RegistryRepository().GetRegistry(ctx)
			if err != nil {
				return nil, err
			}
			if registry.Paused {
				return nil, domain.ErrPaused
			}
			if !registry.IsTokenSupported(args.Token) {
				return nil, domain.ErrTokenNotSupported
			}

			orderRepo := s.repoManager.OrderRepository()
			nonce, err := orderRepo.NextNonce(ctx, args.Sender)
			if err != nil {
				return nil, err
			}

			order, err := domain.NewOrder(
				args.Sender, args.Token, args.Amount, args.Rate,
				args.SenderFeeRecipient, args.SenderFee, args.RefundAddress,
				args.MessageHash, registry.ProtocolFeePercent, nonce,
				s.now().Unix(),
			)
			if err != nil {
				return nil, err
			}
			if err := orderRepo.AddOrder(ctx, order); err != nil {
				return nil, err
			}

			escrowed, err := order.EscrowedAmount()
			if err != nil {
				return nil, err
			}
			if err := s.gateway.Withdraw(
				ctx, order.Sender, order.Token, escrowed,
			); err != nil {
				return nil, err
			}

			journal.Record(domain.OrderCreated{
				Sender:      order.Sender,
				Token:       order.Token,
				Amount:      order.Amount,
				ProtocolFee: order.ProtocolFee,
				OrderId:     order.Id,
				Rate:        order.Rate,
				MessageHash: order.MessageHash,
			})
			return order, nil
		},
	)
	if err != nil {
		return nil, err
	}

	order := res.(*domain.Order)
	s.metrics.AddActiveOrders(1)
	log.Debugf("created order %s for sender %s", order.Id.Hex(), order.Sender.Hex())
	return order, nil
}

// Settle pays the liquidity provider its share of the order. The settlement
// that brings the order to zero remaining basis points fulfills it and
// releases the sender and protocol fees.
func (s *Service) Settle(
	ctx context.Context, args SettleArgs,
) (*domain.Settlement, error) {
	res, err := s.unitOfWork.Run(
		ctx, opSettle,
		func(ctx context.Context, journal *uow.Journal) (interface{}, error) {
			registry, err := s.repoManager.RegistryRepository().GetRegistry(ctx)
			if err != nil {
				return nil, err
			}
			if err := registry.OnlyAggregator(args.Caller); err != nil {
				return nil, err
			}

			var order *domain.Order
			var settlement *domain.Settlement
			if err := s.repoManager.OrderRepository().UpdateOrder(
				ctx, args.OrderId, func(o *domain.Order) (*domain.Order, error) {
					st, err := o.Settle(args.SettleBps)
					if err != nil {
						return nil, err
					}
					order, settlement = o, st
					return o, nil
				},
			); err != nil {
				return nil, err
			}

			escrow := s.gateway.EscrowAccount()
			if settlement.Fulfilled {
				if !mathutil.IsZero(settlement.SenderFee) {
					if err := s.gateway.Transfer(
						ctx, order.Token, escrow, order.SenderFeeRecipient,
						settlement.SenderFee,
					); err != nil {
						return nil, err
					}
					journal.Record(domain.SenderFeeTransferred{
						Recipient: order.SenderFeeRecipient,
						Amount:    settlement.SenderFee,
					})
				}
				if !mathutil.IsZero(settlement.ProtocolFee) {
					if err := s.gateway.Transfer(
						ctx, order.Token, escrow, registry.Treasury,
						settlement.ProtocolFee,
					); err != nil {
						return nil, err
					}
				}
			}

			if err := s.gateway.Transfer(
				ctx, order.Token, escrow, args.LiquidityProvider,
				settlement.ProviderAmount,
			); err != nil {
				return nil, err
			}

			journal.Record(domain.OrderSettled{
				SplitOrderId:      args.SplitOrderId,
				OrderId:           args.OrderId,
				LiquidityProvider: args.LiquidityProvider,
				SettlePercent:     args.SettleBps,
			})
			return settlement, nil
		},
	)
	if err != nil {
		return nil, err
	}

	settlement := res.(*domain.Settlement)
	if settlement.Fulfilled {
		s.metrics.AddActiveOrders(-1)
	}
	log.Debugf(
		"settled %d bps of order %s to %s", args.SettleBps,
		args.OrderId.Hex(), args.LiquidityProvider.Hex(),
	)
	return settlement, nil
}

// Refund closes the order returning the remaining escrowed value to its
// refund address, except for the fee that goes to the treasury.
func (s *Service) Refund(
	ctx context.Context, args RefundArgs,
) (*domain.Refund, error) {
	res, err := s.unitOfWork.Run(
		ctx, opRefund,
		func(ctx context.Context, journal *uow.Journal) (interface{}, error) {
			registry, err := s.repoManager.RegistryRepository().GetRegistry(ctx)
			if err != nil {
				return nil, err
			}
			if err := registry.OnlyAggregator(args.Caller); err != nil {
				return nil, err
			}

			var order *domain.Order
			var refund *domain.Refund
			if err := s.repoManager.OrderRepository().UpdateOrder(
				ctx, args.OrderId, func(o *domain.Order) (*domain.Order, error) {
					r, err := o.Refund(args.Fee)
					if err != nil {
						return nil, err
					}
					order, refund = o, r
					return o, nil
				},
			); err != nil {
				return nil, err
			}

			escrow := s.gateway.EscrowAccount()
			if !mathutil.IsZero(refund.Fee) {
				if err := s.gateway.Transfer(
					ctx, order.Token, escrow, registry.Treasury, refund.Fee,
				); err != nil {
					return nil, err
				}
			}
			if err := s.gateway.Transfer(
				ctx, order.Token, escrow, order.RefundAddress, refund.Amount,
			); err != nil {
				return nil, err
			}

			journal.Record(domain.OrderRefunded{
				Fee:     refund.Fee,
				OrderId: args.OrderId,
			})
			return refund, nil
		},
	)
	if err != nil {
		return nil, err
	}

	s.metrics.AddActiveOrders(-1)
	log.Debugf("refunded order %s", args.OrderId.Hex())
	return res.(*domain.Refund), nil
}

// Deposit credits external funds to the given account through the gateway.
func (s *Service) Deposit(
	ctx context.Context, to, asset common.Address, amount *big.Int,
) error {
	if mathutil.IsZero(amount) {
		return domain.ErrAmountZero
	}

	_, err := s.unitOfWork.Run(
		ctx, opDeposit,
		func(ctx context.Context, _ *uow.Journal) (interface{}, error) {
			return nil, s.gateway.Deposit(ctx, to, asset, amount)
		},
	)
	return err
}

func (s *Service) GetOrder(
	ctx context.Context, orderId common.Hash,
) (*domain.Order, error) {
	res, err := s.unitOfWork.Read(
		ctx, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.OrderRepository().GetOrder(ctx, orderId)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.Order), nil
}

// ListOrders returns all orders, or only those of the given sender if not
// nil, sorted by creation.
func (s *Service) ListOrders(
	ctx context.Context, sender *common.Address,
) ([]domain.Order, error) {
	res, err := s.unitOfWork.Read(
		ctx, func(ctx context.Context) (interface{}, error) {
			if sender != nil {
				return s.repoManager.OrderRepository().GetOrdersBySender(
					ctx, *sender,
				)
			}
			return s.repoManager.OrderRepository().GetAllOrders(ctx)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.([]domain.Order), nil
}

func (s *Service) IsTokenSupported(
	ctx context.Context, token common.Address,
) (bool, error) {
	registry, err := s.getRegistry(ctx)
	if err != nil {
		return false, err
	}
	return registry.IsTokenSupported(token), nil
}

func (s *Service) GetFeeConfig(ctx context.Context) (*FeeConfig, error) {
	registry, err := s.getRegistry(ctx)
	if err != nil {
		return nil, err
	}
	feePercent, maxBps := registry.FeeConfig()
	return &FeeConfig{feePercent, maxBps}, nil
}

// GetBalance returns the balance of the account if the gateway keeps
// balances.
func (s *Service) GetBalance(
	ctx context.Context, account, asset common.Address,
) (*big.Int, error) {
	reader, ok := s.gateway.(ports.BalanceReader)
	if !ok {
		return nil, ErrBalancesNotSupported
	}

	res, err := s.unitOfWork.Read(
		ctx, func(ctx context.Context) (interface{}, error) {
			return reader.BalanceOf(ctx, account, asset)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*big.Int), nil
}

func (s *Service) getRegistry(ctx context.Context) (*domain.Registry, error) {
	res, err := s.unitOfWork.Read(
		ctx, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.RegistryRepository().GetRegistry(ctx)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.Registry), nil
}
