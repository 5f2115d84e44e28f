package ports

import (
	"context"

	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

// RepoManager gives access to the repositories of the ledger and allows to
// run a set of read/write operations against them as one atomic unit.
type RepoManager interface {
	OrderRepository() domain.OrderRepository
	RegistryRepository() domain.RegistryRepository
	BalanceRepository() domain.BalanceRepository

	// RunTransaction invokes the handler with a context bound to a new
	// transaction. The transaction is committed if the handler returns no
	// error, otherwise every change made within it is discarded.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	Close()
}
