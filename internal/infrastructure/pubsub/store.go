package pubsub

import (
	"errors"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

var ErrSubscriptionNotFound = errors.New("webhook not found")

// subscriptionStore persists the subscriptions in a badgerhold store,
// indexed by event.
type subscriptionStore struct {
	db *badgerhold.Store
}

func newSubscriptionStore(
	baseDir string, logger badger.Logger,
) (*subscriptionStore, error) {
	var dir string
	if len(baseDir) > 0 {
		dir = filepath.Join(baseDir, "pubsub")
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = logger
	if len(dir) <= 0 {
		opts.InMemory = true
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder: badgerhold.DefaultEncode,
		Decoder: badgerhold.DefaultDecode,
		Options: opts,
	})
	if err != nil {
		return nil, err
	}
	return &subscriptionStore{db}, nil
}

// add stores the subscription unless another one with the same id exists.
func (s *subscriptionStore) add(sub *Subscription) error {
	err := s.db.Insert(sub.ID, *sub)
	if errors.Is(err, badgerhold.ErrKeyExists) {
		return nil
	}
	return err
}

func (s *subscriptionStore) remove(id string) error {
	err := s.db.Delete(id, Subscription{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return ErrSubscriptionNotFound
	}
	return err
}

// listForEvent returns the subscriptions for the given event sorted by id.
// An empty event returns all of them.
func (s *subscriptionStore) listForEvent(event string) (subscriptions, error) {
	query := badgerhold.Where("ID").Ne("")
	if len(event) > 0 {
		query = badgerhold.Where("Event").Eq(event).Index("Event")
	}

	var subs []Subscription
	if err := s.db.Find(&subs, query.SortBy("ID")); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *subscriptionStore) close() error {
	return s.db.Close()
}
