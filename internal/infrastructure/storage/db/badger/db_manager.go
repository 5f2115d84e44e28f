package dbbadger

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

type txCtxKey struct{}

type repoManager struct {
	store  *badgerhold.Store
	txLock *sync.Mutex

	orderRepository    domain.OrderRepository
	registryRepository domain.RegistryRepository
	balanceRepository  domain.BalanceRepository
}

// NewRepoManager opens (or creates if not exists) the badger store in the
// given base directory. An empty directory makes the store in-memory.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, "ledger")
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	return &repoManager{
		store:              store,
		txLock:             &sync.Mutex{},
		orderRepository:    newOrderRepositoryImpl(store),
		registryRepository: newRegistryRepositoryImpl(store),
		balanceRepository:  newBalanceRepositoryImpl(store),
	}, nil
}

func (d *repoManager) OrderRepository() domain.OrderRepository {
	return d.orderRepository
}

func (d *repoManager) RegistryRepository() domain.RegistryRepository {
	return d.registryRepository
}

func (d *repoManager) BalanceRepository() domain.BalanceRepository {
	return d.balanceRepository
}

// RunTransaction binds a new badger transaction to the context passed to the
// handler. Write transactions are serialized. A handler invoked with a
// context already carrying a transaction joins it.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	if txFromContext(ctx) != nil {
		return handler(ctx)
	}

	if !readOnly {
		d.txLock.Lock()
		defer d.txLock.Unlock()
	}

	tx := d.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := runHandler(context.WithValue(ctx, txCtxKey{}, tx), handler)
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("committing transaction: %w", err)
		}
	}
	return res, nil
}

func (d *repoManager) Close() {
	if err := d.store.Close(); err != nil {
		log.WithError(err).Warn("closing ledger db")
	}
}

func runHandler(
	ctx context.Context, handler func(ctx context.Context) (interface{}, error),
) (res interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res, err = nil, fmt.Errorf("recovered: %v", rec)
		}
	}()

	return handler(ctx)
}

func txFromContext(ctx context.Context) *badger.Txn {
	tx, _ := ctx.Value(txCtxKey{}).(*badger.Txn)
	return tx
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
