package application

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
	"github.com/tdex-network/tdex-escrow/internal/infrastructure/gateway/custody"
	dbbadger "github.com/tdex-network/tdex-escrow/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-escrow/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/tdex-escrow/internal/storageutil/uow"
	"github.com/tdex-network/tdex-escrow/pkg/stats"
)

const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBInMemory: {},
	}
)

// Config lazily wires the application services. DBConfig is the datadir of
// the badger db, ignored for the inmemory one.
type Config struct {
	DBType   string
	DBConfig interface{}

	EscrowAccount common.Address
	PubSub        ports.PubSub
	Registerer    prometheus.Registerer

	repo       ports.RepoManager
	metrics    *stats.LedgerMetrics
	gateway    ports.AssetTransferGateway
	unitOfWork *uow.UnitOfWork
	pubsub     PubSubService
	operator   OperatorService
	ledger     LedgerService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return ErrUnknownDBType
	}
	if c.EscrowAccount == (common.Address{}) {
		return ErrMissingEscrowAccount
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.ledgerMetrics(); err != nil {
		return err
	}
	if _, err := c.ledgerService(); err != nil {
		return err
	}
	if _, err := c.operatorService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) PubSubService() PubSubService {
	svc, _ := c.pubsubService()
	return svc
}

func (c *Config) OperatorService() OperatorService {
	svc, _ := c.operatorService()
	return svc
}

func (c *Config) LedgerService() LedgerService {
	svc, _ := c.ledgerService()
	return svc
}

// Close flushes pending events and closes the db.
func (c *Config) Close() {
	if c.pubsub != nil {
		if err := c.pubsub.Close(); err != nil {
			log.WithError(err).Warn("closing pubsub")
		}
	}
	if c.repo != nil {
		c.repo.Close()
	}
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			datadir, _ := c.DBConfig.(string)
			repoManager, err := dbbadger.NewRepoManager(
				datadir, NewDBLogger("badger"),
			)
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = inmemory.NewRepoManager()
		default:
			return nil, ErrUnknownDBType
		}
	}
	return c.repo, nil
}

func (c *Config) ledgerMetrics() (*stats.LedgerMetrics, error) {
	if c.metrics == nil && c.Registerer != nil {
		metrics, err := stats.NewLedgerMetrics(c.Registerer)
		if err != nil {
			return nil, err
		}
		c.metrics = metrics
	}
	return c.metrics, nil
}

func (c *Config) assetTransferGateway() (ports.AssetTransferGateway, error) {
	if c.gateway == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		gateway, err := custody.NewGateway(
			c.EscrowAccount, repo.BalanceRepository(),
		)
		if err != nil {
			return nil, err
		}
		c.gateway = gateway
	}
	return c.gateway, nil
}

func (c *Config) pubsubService() (PubSubService, error) {
	if c.pubsub == nil && c.PubSub != nil {
		pubsub, err := NewPubSubService(c.PubSub)
		if err != nil {
			return nil, err
		}
		c.pubsub = pubsub
	}
	return c.pubsub, nil
}

func (c *Config) unitOfWorkRunner() (*uow.UnitOfWork, error) {
	if c.unitOfWork == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		metrics, err := c.ledgerMetrics()
		if err != nil {
			return nil, err
		}
		pubsub, err := c.pubsubService()
		if err != nil {
			return nil, err
		}

		var publisher uow.EventPublisher
		if pubsub != nil {
			publisher = pubsub
		}
		unitOfWork, err := uow.NewUnitOfWork(repo, publisher, metrics)
		if err != nil {
			return nil, err
		}
		c.unitOfWork = unitOfWork
	}
	return c.unitOfWork, nil
}

func (c *Config) operatorService() (OperatorService, error) {
	if c.operator == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		unitOfWork, err := c.unitOfWorkRunner()
		if err != nil {
			return nil, err
		}
		operator, err := NewOperatorService(repo, unitOfWork)
		if err != nil {
			return nil, err
		}
		c.operator = operator
	}
	return c.operator, nil
}

func (c *Config) ledgerService() (LedgerService, error) {
	if c.ledger == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		unitOfWork, err := c.unitOfWorkRunner()
		if err != nil {
			return nil, err
		}
		gateway, err := c.assetTransferGateway()
		if err != nil {
			return nil, err
		}
		metrics, err := c.ledgerMetrics()
		if err != nil {
			return nil, err
		}
		ledger, err := NewLedgerService(repo, unitOfWork, gateway, metrics)
		if err != nil {
			return nil, err
		}
		c.ledger = ledger
	}
	return c.ledger, nil
}

// NewDBLogger returns a badger logger tagged with the given db name.
func NewDBLogger(db string) badger.Logger {
	return badgerLogger{log.WithField("db", db)}
}

// badgerLogger adapts a logrus entry to the badger logger, demoting badger's
// info messages to debug.
type badgerLogger struct {
	*log.Entry
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Entry.Debugf(format, args...)
}
