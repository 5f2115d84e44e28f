package db_test

import (
	"context"
	"crypto/rand"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
	dbbadger "github.com/tdex-network/tdex-escrow/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-escrow/internal/infrastructure/storage/db/inmemory"
)

type repoManager struct {
	Name      string
	DBManager ports.RepoManager
}

func (r repoManager) read(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.DBManager.RunTransaction(context.Background(), true, query)
}

func (r repoManager) write(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.DBManager.RunTransaction(context.Background(), false, query)
}

func createRepoManagers(t *testing.T) []repoManager {
	inmemoryDBManager := inmemory.NewRepoManager()
	badgerDBManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		inmemoryDBManager.Close()
		badgerDBManager.Close()
	})

	return []repoManager{
		{
			Name:      "badger",
			DBManager: badgerDBManager,
		},
		{
			Name:      "inmemory",
			DBManager: inmemoryDBManager,
		},
	}
}

func makeRandomOrder(t *testing.T, sender common.Address, nonce uint64) *domain.Order {
	order, err := domain.NewOrder(
		sender, randomAddress(), big.NewInt(int64(randomIntInRange(1, 1000000))),
		decimal.NewFromFloat(1532.5), randomAddress(), big.NewInt(100),
		randomAddress(), "QmOrderMessage", 10000, nonce, time.Now().Unix(),
	)
	require.NoError(t, err)
	return order
}

func requireEqualOrders(t *testing.T, expected, actual *domain.Order) {
	require.NotNil(t, actual)
	require.Equal(t, expected.Id, actual.Id)
	require.Equal(t, expected.Sender, actual.Sender)
	require.Equal(t, expected.Token, actual.Token)
	require.Equal(t, expected.SenderFeeRecipient, actual.SenderFeeRecipient)
	require.Equal(t, expected.SenderFee.String(), actual.SenderFee.String())
	require.Equal(t, expected.ProtocolFee.String(), actual.ProtocolFee.String())
	require.Equal(t, expected.IsFulfilled, actual.IsFulfilled)
	require.Equal(t, expected.IsRefunded, actual.IsRefunded)
	require.Equal(t, expected.RefundAddress, actual.RefundAddress)
	require.Equal(t, expected.CurrentBps, actual.CurrentBps)
	require.Equal(t, expected.Amount.String(), actual.Amount.String())
	require.Equal(t, expected.Nonce, actual.Nonce)
	require.True(t, expected.Rate.Equal(actual.Rate))
	require.Equal(t, expected.MessageHash, actual.MessageHash)
	require.Equal(t, expected.CreatedAt, actual.CreatedAt)
}

func randomAddress() common.Address {
	return common.BytesToAddress(randomBytes(20))
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}

func randomIntInRange(min, max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64()) + min
}
