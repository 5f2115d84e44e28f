package application_test

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-escrow/internal/core/application"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
)

var (
	ctx = context.Background()

	owner      = common.HexToAddress("0xa00000000000000000000000000000000000000a")
	aggregator = common.HexToAddress("0xb00000000000000000000000000000000000000b")
	treasury   = common.HexToAddress("0xc00000000000000000000000000000000000000c")
	escrow     = common.HexToAddress("0xe5c0000000000000000000000000000000000e5c")
	sender     = common.HexToAddress("0x1000000000000000000000000000000000000001")
	token      = common.HexToAddress("0x2000000000000000000000000000000000000002")
	provider   = common.HexToAddress("0x5000000000000000000000000000000000000005")
)

func TestConfig(t *testing.T) {
	t.Parallel()

	for _, dbType := range []string{application.DBInMemory, application.DBBadger} {
		dbType := dbType
		t.Run(dbType, func(t *testing.T) {
			t.Parallel()

			pubsub := &recordingPubSub{lock: &sync.Mutex{}}
			registry := prometheus.NewRegistry()
			cfg := &application.Config{
				DBType:        dbType,
				DBConfig:      "",
				EscrowAccount: escrow,
				PubSub:        pubsub,
				Registerer:    registry,
			}
			require.NoError(t, cfg.Validate())

			operatorSvc := cfg.OperatorService()
			ledgerSvc := cfg.LedgerService()

			require.NoError(t, operatorSvc.Initialize(ctx, owner))
			require.NoError(t, operatorSvc.SetSupportedToken(ctx, owner, token, true))
			require.NoError(t, operatorSvc.UpdateRoleAddress(ctx, owner, domain.RoleAggregator, aggregator))
			require.NoError(t, operatorSvc.UpdateRoleAddress(ctx, owner, domain.RoleTreasury, treasury))
			require.NoError(t, operatorSvc.UpdateProtocolFee(ctx, owner, 10000))

			require.NoError(t, ledgerSvc.Deposit(ctx, sender, token, big.NewInt(1000000)))
			order, err := ledgerSvc.CreateOrder(ctx, application.CreateOrderArgs{
				Sender:        sender,
				Token:         token,
				Amount:        big.NewInt(1000000),
				Rate:          decimal.NewFromInt(1),
				RefundAddress: sender,
				MessageHash:   "QmMessage",
			})
			require.NoError(t, err)

			_, err = ledgerSvc.Settle(ctx, application.SettleArgs{
				Caller:            aggregator,
				OrderId:           order.Id,
				LiquidityProvider: provider,
				SettleBps:         domain.MaxBps,
			})
			require.NoError(t, err)

			balance, err := ledgerSvc.GetBalance(ctx, treasury, token)
			require.NoError(t, err)
			require.Equal(t, "90909", balance.String())

			cfg.Close()

			topics := pubsub.topics()
			require.Equal(t, []string{
				domain.TopicTokenSupportUpdated,
				domain.TopicProtocolAddressUpdated,
				domain.TopicProtocolAddressUpdated,
				domain.TopicProtocolFeeUpdated,
				domain.TopicOrderCreated,
				domain.TopicOrderSettled,
			}, topics)

			count, err := testutil.GatherAndCount(registry, "escrow_operations_total")
			require.NoError(t, err)
			require.Greater(t, count, 0)
		})
	}
}

func TestFailingConfig(t *testing.T) {
	t.Parallel()

	cfg := &application.Config{DBType: "pg", EscrowAccount: escrow}
	require.ErrorIs(t, cfg.Validate(), application.ErrUnknownDBType)

	cfg = &application.Config{DBType: application.DBInMemory}
	require.ErrorIs(t, cfg.Validate(), application.ErrMissingEscrowAccount)
}

type recordingPubSub struct {
	lock     *sync.Mutex
	messages []string
}

func (p *recordingPubSub) Subscribe(_, _, _ string) (string, error) {
	return "", nil
}

func (p *recordingPubSub) Unsubscribe(_, _ string) error {
	return nil
}

func (p *recordingPubSub) ListSubscriptionsForTopic(_ string) []ports.Subscription {
	return nil
}

func (p *recordingPubSub) Publish(topic, _ string) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.messages = append(p.messages, topic)
	return nil
}

func (p *recordingPubSub) Close() error {
	return nil
}

func (p *recordingPubSub) topics() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]string{}, p.messages...)
}
