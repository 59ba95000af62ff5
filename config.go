package roster

// Config tunes a store instance. A nil or zero Config yields a store
// with the default student schema.
type Config struct {
	Schema *Schema
}

func (cfg *Config) applyTo(db *DB) error {
	if cfg.Schema == nil {
		cfg.Schema = DefaultSchema()
	}

	db.schema = cfg.Schema

	return nil
}
