package uow

import (
	"context"
	"fmt"
	"sync"

	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
	"github.com/tdex-network/tdex-escrow/pkg/stats"
)

// EventPublisher delivers the events of committed units of work.
type EventPublisher interface {
	PublishEvents(events []domain.Event)
}

// Journal collects the events emitted within a unit of work. They are handed
// to the publisher only if the unit of work commits.
type Journal struct {
	events []domain.Event
}

// Record appends the given events to the journal.
func (j *Journal) Record(events ...domain.Event) {
	j.events = append(j.events, events...)
}

// Events returns the recorded events in emission order.
func (j *Journal) Events() []domain.Event {
	return j.events
}

// UnitOfWork runs every ledger operation as one serializable, all-or-nothing
// transaction over the repositories of the given RepoManager.
type UnitOfWork struct {
	repoManager ports.RepoManager
	publisher   EventPublisher
	metrics     *stats.LedgerMetrics

	lock *sync.Mutex
}

// NewUnitOfWork returns a new UnitOfWork. Publisher and metrics are optional.
func NewUnitOfWork(
	repoManager ports.RepoManager,
	publisher EventPublisher,
	metrics *stats.LedgerMetrics,
) (*UnitOfWork, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	return &UnitOfWork{
		repoManager: repoManager,
		publisher:   publisher,
		metrics:     metrics,
		lock:        &sync.Mutex{},
	}, nil
}

// Run executes fn within a new write transaction. Either all its changes are
// committed or none of them is, in which case the recorded events are
// dropped. Units of work never overlap, and events are handed to the
// publisher in commit order.
func (u *UnitOfWork) Run(
	ctx context.Context,
	operation string,
	fn func(ctx context.Context, journal *Journal) (interface{}, error),
) (interface{}, error) {
	u.lock.Lock()
	defer u.lock.Unlock()

	journal := &Journal{}
	res, err := u.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return fn(ctx, journal)
		},
	)
	if err != nil {
		u.metrics.ObserveFailure(operation, domain.ErrorKind(err))
		return nil, err
	}

	u.metrics.ObserveSuccess(operation)
	if u.publisher != nil && len(journal.Events()) > 0 {
		u.publisher.PublishEvents(journal.Events())
	}
	return res, nil
}

// Read executes fn within a read-only transaction.
func (u *UnitOfWork) Read(
	ctx context.Context, fn func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	return u.repoManager.RunTransaction(ctx, true, fn)
}
