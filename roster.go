package roster

import (
	"context"
	"sync"

	"github.com/dmelnich/roster/internal/engine"
	"github.com/pkg/errors"
)

var ErrStoreAlreadyClosed = errors.New("store already closed")

type UserCallback func(tx *Tx) error

type Closer func() error

func NullCloser() error { return nil }

// DB is an in-memory record store. State lives only for the lifetime
// of the instance; Close discards it.
type DB struct {
	e      *engine.Engine
	schema *Schema
	mu     sync.RWMutex
	closed bool
}

func New(cfg *Config) (*DB, Closer, error) {
	db := DB{e: engine.New()}

	if cfg == nil {
		cfg = &Config{}
	}

	if err := cfg.applyTo(&db); err != nil {
		return nil, NullCloser, err
	}

	return &db, db.close, nil
}

func (db *DB) close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrStoreAlreadyClosed
	}

	db.e.FlushAll()
	db.e = nil
	db.closed = true
	return nil
}

func (db *DB) begin(ctx context.Context, readOnly bool) (*Tx, error) {
	if db.closed {
		return nil, ErrStoreAlreadyClosed
	}

	tx := Tx{
		e:        db.e,
		schema:   db.schema,
		ctx:      ctx,
		readOnly: readOnly,
	}

	return &tx, nil
}

func (db *DB) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return 0
	}

	return db.e.Count()
}

func (db *DB) Get(id int) (*Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tx, err := db.begin(context.Background(), true)
	if err != nil {
		return nil, err
	}

	return tx.Get(id)
}

func (db *DB) View(ctx context.Context, cb UserCallback) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tx, err := db.begin(ctx, true)
	if err != nil {
		return err
	}

	err = cb(tx)
	if err != nil {
		if rbErr := tx.rollback(); rbErr != nil {
			return errors.Wrap(err, rbErr.Error())
		}

		return errors.Wrap(err, "store read failed. rolled back")
	}

	return tx.commit()
}

func (db *DB) Update(ctx context.Context, cb UserCallback) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.begin(ctx, false)
	if err != nil {
		return err
	}

	err = cb(tx)
	if err != nil {
		if rbErr := tx.rollback(); rbErr != nil {
			return errors.Wrap(err, rbErr.Error())
		}

		return errors.Wrap(err, "store write failed. rolled back")
	}

	return tx.commit()
}
