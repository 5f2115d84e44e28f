package inmemory

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

type balanceKey struct {
	account common.Address
	asset   common.Address
}

// memStore is the state shared by all in-memory repositories. Values are
// stored as private copies and handed out as copies.
type memStore struct {
	orders   map[common.Hash]*domain.Order
	orderIds []common.Hash
	nonces   map[common.Address]uint64
	registry *domain.Registry
	balances map[balanceKey]*big.Int

	lock *sync.RWMutex
}

func newMemStore() *memStore {
	return &memStore{
		orders:   make(map[common.Hash]*domain.Order),
		orderIds: make([]common.Hash, 0),
		nonces:   make(map[common.Address]uint64),
		balances: make(map[balanceKey]*big.Int),
		lock:     &sync.RWMutex{},
	}
}

// snapshot returns a deep copy of the current state.
func (s *memStore) snapshot() *memStore {
	s.lock.RLock()
	defer s.lock.RUnlock()

	cp := newMemStore()
	for id, o := range s.orders {
		cp.orders[id] = o.Clone()
	}
	cp.orderIds = append(cp.orderIds, s.orderIds...)
	for addr, n := range s.nonces {
		cp.nonces[addr] = n
	}
	if s.registry != nil {
		cp.registry = s.registry.Clone()
	}
	for k, v := range s.balances {
		cp.balances[k] = new(big.Int).Set(v)
	}
	return cp
}

// restore replaces the current state with the given snapshot.
func (s *memStore) restore(snapshot *memStore) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.orders = snapshot.orders
	s.orderIds = snapshot.orderIds
	s.nonces = snapshot.nonces
	s.registry = snapshot.registry
	s.balances = snapshot.balances
}
