package roster

import (
	"encoding/json"

	"github.com/dmelnich/roster/internal/engine"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var ErrJsonCouldNotBeUnmarshalled = errors.New("record value could not be unmarshalled, probably is invalid")
var ErrJsonPathInvalid = errors.New("json path is invalid")

type M map[string]interface{}

// Record is a read-only view of a stored entry: the integer id and the
// serialized field values.
type Record struct {
	id    int
	value []byte
}

func newRecord(ent *engine.Entry) *Record {
	return &Record{
		id:    ent.ID,
		value: ent.Value,
	}
}

func (r *Record) ID() int {
	return r.id
}

func (r *Record) Value() []byte {
	return r.value
}

func (r *Record) RawString() string {
	return string(r.value)
}

func (r *Record) M() (M, error) {
	result := make(M)
	if err := json.Unmarshal(r.value, &result); err != nil {
		return nil, errors.Wrap(ErrJsonCouldNotBeUnmarshalled, err.Error())
	}

	return result, nil
}

func (r *Record) String(path string) (string, error) {
	raw := gjson.GetBytes(r.value, path)
	if !raw.Exists() {
		return "", ErrJsonPathInvalid
	}
	return raw.String(), nil
}

func (r *Record) StringOrDefault(path, def string) string {
	if v, err := r.String(path); err != nil {
		return def
	} else {
		return v
	}
}

func (r *Record) Int(path string) (int, error) {
	get := gjson.GetBytes(r.value, path)
	if !get.Exists() {
		return 0, ErrJsonPathInvalid
	}

	return int(get.Int()), nil
}

func (r *Record) IntOrDefault(path string, def int) int {
	if v, err := r.Int(path); err != nil {
		return def
	} else {
		return v
	}
}
