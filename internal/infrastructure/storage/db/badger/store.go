package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"
)

// txStore runs badgerhold operations within the transaction bound to the
// context, if any.
type txStore struct {
	store *badgerhold.Store
}

func (s txStore) get(ctx context.Context, key, result interface{}) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.store.TxGet(tx, key, result)
	}
	return s.store.Get(key, result)
}

func (s txStore) insert(ctx context.Context, key, data interface{}) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.store.TxInsert(tx, key, data)
	}
	return s.store.Insert(key, data)
}

func (s txStore) update(ctx context.Context, key, data interface{}) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.store.TxUpdate(tx, key, data)
	}
	return s.store.Update(key, data)
}

func (s txStore) upsert(ctx context.Context, key, data interface{}) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.store.TxUpsert(tx, key, data)
	}
	return s.store.Upsert(key, data)
}

func (s txStore) delete(ctx context.Context, key, dataType interface{}) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.store.TxDelete(tx, key, dataType)
	}
	return s.store.Delete(key, dataType)
}

func (s txStore) find(
	ctx context.Context, result interface{}, query *badgerhold.Query,
) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.store.TxFind(tx, result, query)
	}
	return s.store.Find(result, query)
}
