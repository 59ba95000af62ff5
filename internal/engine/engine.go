package engine

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tidwall/btree"
)

var ErrEntryNotFound = errors.New("entry does not exist in store")

const castPanic = "how could primary key items not be of type *Entry"

// Iterator receives a copy of each scanned entry. Returning false
// stops the scan.
type Iterator func(ent *Entry) bool

// Engine holds all live entries in a btree ordered by id. It is not
// safe for concurrent use; the owning DB serializes access.
type Engine struct {
	ids *btree.BTree
}

func New() *Engine {
	return &Engine{
		ids: btree.NewNonConcurrent(byIDs),
	}
}

func byIDs(a, b interface{}) bool {
	i1, i2 := a.(*Entry), b.(*Entry)
	return i1.ID < i2.ID
}

// NextID computes the id for the next entry as current count + 1.
// After a removal the next id can equal a live entry's id; Put then
// replaces that entry, exactly as the original scheme does.
func (e *Engine) NextID() int {
	return e.ids.Len() + 1
}

// Put stores ent, replacing any entry with the same id. The replaced
// entry is returned, or nil if the id was free.
func (e *Engine) Put(ent *Entry) *Entry {
	existing := e.ids.Set(ent)
	if existing == nil {
		return nil
	}

	prior, ok := existing.(*Entry)
	if !ok {
		panic(castPanic)
	}

	return prior
}

func (e *Engine) Get(id int) (*Entry, error) {
	found := e.ids.Get(&Entry{ID: id})
	if found == nil {
		return nil, errors.Wrapf(ErrEntryNotFound, "id %d", id)
	}

	ent, ok := found.(*Entry)
	if !ok {
		panic(castPanic)
	}

	return ent.clone(), nil
}

func (e *Engine) Remove(id int) (*Entry, error) {
	existing := e.ids.Delete(&Entry{ID: id})
	if existing == nil {
		return nil, errors.Wrapf(ErrEntryNotFound, "id %d", id)
	}

	prior, ok := existing.(*Entry)
	if !ok {
		panic(castPanic)
	}

	return prior, nil
}

// Drop deletes an entry without reporting whether it existed. Used by
// transaction rollback.
func (e *Engine) Drop(id int) {
	e.ids.Delete(&Entry{ID: id})
}

func (e *Engine) Count() int {
	return e.ids.Len()
}

func (e *Engine) ScanAscend(ctx context.Context, ir Iterator) {
	e.ids.Ascend(nil, ctxIterator(ctx, ir))
}

func (e *Engine) ScanDescend(ctx context.Context, ir Iterator) {
	e.ids.Descend(nil, ctxIterator(ctx, ir))
}

// ScanRangeAscend iterates entries with from <= id <= to in ascending
// order.
func (e *Engine) ScanRangeAscend(ctx context.Context, from, to int, ir Iterator) {
	upper := &Entry{ID: to}
	iter := ctxIterator(ctx, ir)

	e.ids.Ascend(&Entry{ID: from}, func(item interface{}) bool {
		return !e.ids.Less(upper, item) && iter(item)
	})
}

// ScanRangeDescend iterates entries with from <= id <= to in descending
// order.
func (e *Engine) ScanRangeDescend(ctx context.Context, from, to int, ir Iterator) {
	lower := &Entry{ID: from}
	iter := ctxIterator(ctx, ir)

	e.ids.Descend(&Entry{ID: to}, func(item interface{}) bool {
		return !e.ids.Less(item, lower) && iter(item)
	})
}

func (e *Engine) FlushAll() {
	e.ids = btree.NewNonConcurrent(byIDs)
}

func ctxIterator(ctx context.Context, ir Iterator) func(item interface{}) bool {
	return func(item interface{}) bool {
		if ctx.Err() != nil {
			return false
		}

		ent, ok := item.(*Entry)
		if !ok {
			panic(castPanic)
		}

		return ir(ent.clone())
	}
}
