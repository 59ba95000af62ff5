package roster

import (
	"context"

	"github.com/dmelnich/roster/internal/engine"
	"github.com/pkg/errors"
)

var ErrRecordNotFound = errors.New("record does not exist in store")
var ErrTxIsReadOnly = errors.New("transaction is read only")

type undo struct {
	id    int
	prior *engine.Entry
}

// Tx is a single transaction over the store. Mutations are journaled
// so a failed Update callback can be rolled back.
type Tx struct {
	readOnly bool
	e        *engine.Engine
	schema   *Schema
	ctx      context.Context
	journal  []undo
}

// Add validates a complete field set and stores it under the next
// count-based id. Nothing is stored when validation fails.
func (x *Tx) Add(ff Fields) (int, error) {
	if x.readOnly {
		return 0, ErrTxIsReadOnly
	}

	value, err := x.schema.Apply(ff)
	if err != nil {
		return 0, err
	}

	id := x.e.NextID()
	prior := x.e.Put(engine.NewEntry(id, value))
	x.journal = append(x.journal, undo{id: id, prior: prior})

	return id, nil
}

func (x *Tx) Get(id int) (*Record, error) {
	ent, err := x.e.Get(id)
	if err != nil {
		if errors.Is(err, engine.ErrEntryNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "id %d", id)
		}

		return nil, err
	}

	return newRecord(ent), nil
}

// Update applies a partial field set to an existing record,
// all-or-nothing. Fields absent from ff keep their prior bytes.
func (x *Tx) Update(id int, ff Fields) (*Record, error) {
	if x.readOnly {
		return nil, ErrTxIsReadOnly
	}

	ent, err := x.e.Get(id)
	if err != nil {
		if errors.Is(err, engine.ErrEntryNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "id %d", id)
		}

		return nil, err
	}

	value, err := x.schema.Merge(ent.Value, ff)
	if err != nil {
		return nil, err
	}

	updated := engine.NewEntry(id, value)
	prior := x.e.Put(updated)
	x.journal = append(x.journal, undo{id: id, prior: prior})

	return newRecord(updated), nil
}

// Remove deletes a record and returns its prior value.
func (x *Tx) Remove(id int) (*Record, error) {
	if x.readOnly {
		return nil, ErrTxIsReadOnly
	}

	prior, err := x.e.Remove(id)
	if err != nil {
		if errors.Is(err, engine.ErrEntryNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "id %d", id)
		}

		return nil, err
	}

	x.journal = append(x.journal, undo{id: id, prior: prior})

	return newRecord(prior), nil
}

// Find collects records into dest according to the query options:
// order, id range and limit. An empty result is not an error.
func (x *Tx) Find(ctx context.Context, q *queryOptions, dest *[]Record) error {
	if q == nil {
		q = Q()
	}

	ir := func(ent *engine.Entry) bool {
		*dest = append(*dest, *newRecord(ent))
		return q.limit == 0 || len(*dest) < q.limit
	}

	if q.idRange != nil {
		if q.order == Descend {
			x.e.ScanRangeDescend(ctx, q.idRange.From, q.idRange.To, ir)
		} else {
			x.e.ScanRangeAscend(ctx, q.idRange.From, q.idRange.To, ir)
		}
	} else if q.order == Descend {
		x.e.ScanDescend(ctx, ir)
	} else {
		x.e.ScanAscend(ctx, ir)
	}

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "find interrupted")
	}

	return nil
}

func (x *Tx) Count() int {
	return x.e.Count()
}

func (x *Tx) rollback() error {
	for i := len(x.journal) - 1; i >= 0; i-- {
		u := x.journal[i]
		if u.prior == nil {
			x.e.Drop(u.id)
		} else {
			x.e.Put(u.prior)
		}
	}

	x.journal = nil
	return nil
}

func (x *Tx) commit() error {
	x.journal = nil
	return nil
}
