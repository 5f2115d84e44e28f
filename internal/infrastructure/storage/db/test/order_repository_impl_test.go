package db_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

func TestOrderRepositoryImplementations(t *testing.T) {
	repositories := createRepoManagers(t)

	for i := range repositories {
		repo := repositories[i]

		t.Run(repo.Name, func(t *testing.T) {
			t.Parallel()

			t.Run("testAddAndGetOrder", func(t *testing.T) {
				t.Parallel()
				testAddAndGetOrder(t, repo)
			})

			t.Run("testAddDuplicateOrder", func(t *testing.T) {
				t.Parallel()
				testAddDuplicateOrder(t, repo)
			})

			t.Run("testGetOrdersBySender", func(t *testing.T) {
				t.Parallel()
				testGetOrdersBySender(t, repo)
			})

			t.Run("testUpdateOrder", func(t *testing.T) {
				t.Parallel()
				testUpdateOrder(t, repo)
			})

			t.Run("testNextNonce", func(t *testing.T) {
				t.Parallel()
				testNextNonce(t, repo)
			})
		})
	}
}

func testAddAndGetOrder(t *testing.T, repo repoManager) {
	order := makeRandomOrder(t, randomAddress(), 1)

	_, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.OrderRepository().GetOrder(ctx, order.Id)
	})
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.DBManager.OrderRepository().AddOrder(ctx, order)
	})
	require.NoError(t, err)

	iOrder, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.OrderRepository().GetOrder(ctx, order.Id)
	})
	require.NoError(t, err)
	requireEqualOrders(t, order, iOrder.(*domain.Order))

	iOrders, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.OrderRepository().GetAllOrders(ctx)
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(iOrders.([]domain.Order)), 1)
}

func testAddDuplicateOrder(t *testing.T, repo repoManager) {
	order := makeRandomOrder(t, randomAddress(), 1)

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.DBManager.OrderRepository().AddOrder(ctx, order)
	})
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.DBManager.OrderRepository().AddOrder(ctx, order)
	})
	require.ErrorIs(t, err, domain.ErrDuplicateOrderId)
}

func testGetOrdersBySender(t *testing.T, repo repoManager) {
	sender := randomAddress()
	orders := []*domain.Order{
		makeRandomOrder(t, sender, 1),
		makeRandomOrder(t, sender, 2),
		makeRandomOrder(t, sender, 3),
	}

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		for _, o := range orders {
			if err := repo.DBManager.OrderRepository().AddOrder(ctx, o); err != nil {
				return nil, err
			}
		}
		// Orders from other senders must not be returned.
		return nil, repo.DBManager.OrderRepository().AddOrder(
			ctx, makeRandomOrder(t, randomAddress(), 1),
		)
	})
	require.NoError(t, err)

	iOrders, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.OrderRepository().GetOrdersBySender(ctx, sender)
	})
	require.NoError(t, err)
	found := iOrders.([]domain.Order)
	require.Len(t, found, len(orders))
	for i := range found {
		requireEqualOrders(t, orders[i], &found[i])
	}

	iOrders, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.OrderRepository().GetOrdersBySender(
			ctx, randomAddress(),
		)
	})
	require.NoError(t, err)
	require.Empty(t, iOrders.([]domain.Order))
}

func testUpdateOrder(t *testing.T, repo repoManager) {
	order := makeRandomOrder(t, randomAddress(), 1)

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.DBManager.OrderRepository().AddOrder(ctx, order)
	})
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.DBManager.OrderRepository().UpdateOrder(
			ctx, order.Id, func(o *domain.Order) (*domain.Order, error) {
				if _, err := o.Settle(domain.MaxBps); err != nil {
					return nil, err
				}
				return o, nil
			},
		)
	})
	require.NoError(t, err)

	iOrder, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.OrderRepository().GetOrder(ctx, order.Id)
	})
	require.NoError(t, err)
	updatedOrder := iOrder.(*domain.Order)
	require.True(t, updatedOrder.IsFulfilled)
	require.Zero(t, updatedOrder.CurrentBps)
	require.Zero(t, updatedOrder.Amount.Sign())

	iOrders, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.OrderRepository().GetActiveOrders(ctx)
	})
	require.NoError(t, err)
	for _, o := range iOrders.([]domain.Order) {
		require.NotEqual(t, order.Id, o.Id)
	}

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.DBManager.OrderRepository().UpdateOrder(
			ctx, common.Hash{}, func(o *domain.Order) (*domain.Order, error) {
				return o, nil
			},
		)
	})
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func testNextNonce(t *testing.T, repo repoManager) {
	sender := randomAddress()

	for i := 1; i <= 3; i++ {
		iNonce, err := repo.write(func(ctx context.Context) (interface{}, error) {
			return repo.DBManager.OrderRepository().NextNonce(ctx, sender)
		})
		require.NoError(t, err)
		require.Equal(t, uint64(i), iNonce.(uint64))
	}

	iNonce, err := repo.write(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.OrderRepository().NextNonce(ctx, randomAddress())
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), iNonce.(uint64))
}
