package roster

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var ErrInvalidField = errors.New("invalid field value")
var ErrInvalidSchema = errors.New("invalid schema")

// characters that would break json paths or console assignments
const forbiddenNameChars = ". \t\"=*"

type fieldType uint8

const (
	strDataType fieldType = iota
	intDataType
)

func (ft fieldType) String() string {
	switch ft {
	case strDataType:
		return "string"
	case intDataType:
		return "int"
	}

	return "unknown"
}

type FieldOption func(f *Field)

// Optional marks a field that may be omitted on add.
func Optional(f *Field) {
	f.required = false
}

// WithMin sets the lower bound of a field: minimal length for strings,
// minimal value for integers.
func WithMin(min int) FieldOption {
	return func(f *Field) {
		f.min = &min
	}
}

// WithMax sets the upper bound of a field: maximal length for strings,
// maximal value for integers.
func WithMax(max int) FieldOption {
	return func(f *Field) {
		f.max = &max
	}
}

type Field struct {
	name     string
	dt       fieldType
	required bool
	min      *int
	max      *int
}

func StrField(name string, opts ...FieldOption) Field {
	f := Field{name: name, dt: strDataType, required: true}
	for _, withOpt := range opts {
		withOpt(&f)
	}

	return f
}

func IntField(name string, opts ...FieldOption) Field {
	f := Field{name: name, dt: intDataType, required: true}
	for _, withOpt := range opts {
		withOpt(&f)
	}

	return f
}

func (f *Field) coerce(raw string) ([]byte, error) {
	switch f.dt {
	case intDataType:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidField, "field %s: %q is not an integer", f.name, raw)
		}

		if f.min != nil && n < *f.min {
			return nil, errors.Wrapf(ErrInvalidField, "field %s: %d is less than %d", f.name, n, *f.min)
		}

		if f.max != nil && n > *f.max {
			return nil, errors.Wrapf(ErrInvalidField, "field %s: %d is greater than %d", f.name, n, *f.max)
		}

		return []byte(strconv.Itoa(n)), nil
	case strDataType:
		if f.min != nil && len(raw) < *f.min {
			return nil, errors.Wrapf(ErrInvalidField, "field %s must be at least %d characters long", f.name, *f.min)
		}

		if f.max != nil && len(raw) > *f.max {
			return nil, errors.Wrapf(ErrInvalidField, "field %s must be at most %d characters long", f.name, *f.max)
		}

		b, err := json.Marshal(raw)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidField, "field %s: %v", f.name, err)
		}

		return b, nil
	}

	return nil, errors.Wrapf(ErrInvalidField, "field %s has unsupported type", f.name)
}

// Schema declares the named fields of a record in order. Field order
// is preserved in serialized values and listings.
type Schema struct {
	fields []Field
}

func NewSchema(fields ...Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, errors.Wrap(ErrInvalidSchema, "schema requires at least one field")
	}

	seen := make(map[string]struct{}, len(fields))
	for i := range fields {
		name := fields[i].name
		if name == "" {
			return nil, errors.Wrap(ErrInvalidSchema, "field name cannot be empty")
		}

		if strings.ContainsAny(name, forbiddenNameChars) {
			return nil, errors.Wrapf(ErrInvalidSchema, "field name %q contains forbidden characters", name)
		}

		if _, ok := seen[name]; ok {
			return nil, errors.Wrapf(ErrInvalidSchema, "field name %q is declared twice", name)
		}

		seen[name] = struct{}{}
	}

	return &Schema{fields: fields}, nil
}

// DefaultSchema matches the original student records: a non-empty name
// and a non-negative integer age.
func DefaultSchema() *Schema {
	s, err := NewSchema(
		StrField("name", WithMin(1)),
		IntField("age", WithMin(0)),
	)

	if err != nil {
		panic("default schema must be valid: " + err.Error())
	}

	return s
}

func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i := range s.fields {
		names[i] = s.fields[i].name
	}

	return names
}

// Apply validates a complete field set for a new record and serializes
// it. Required fields must be present; nothing is stored on failure.
func (s *Schema) Apply(ff Fields) ([]byte, error) {
	if err := s.checkUnknown(ff); err != nil {
		return nil, err
	}

	parts := make(map[string][]byte, len(s.fields))
	for i := range s.fields {
		f := &s.fields[i]

		raw, ok := ff[f.name]
		if !ok {
			if f.required {
				return nil, errors.Wrapf(ErrInvalidField, "required field %s is missing", f.name)
			}

			continue
		}

		b, err := f.coerce(raw)
		if err != nil {
			return nil, err
		}

		parts[f.name] = b
	}

	return s.serialize(parts), nil
}

// Merge validates a partial field set against an existing serialized
// value. Supplied fields replace, absent fields keep their prior bytes.
func (s *Schema) Merge(existing []byte, ff Fields) ([]byte, error) {
	if err := s.checkUnknown(ff); err != nil {
		return nil, err
	}

	parts := make(map[string][]byte, len(s.fields))
	for i := range s.fields {
		f := &s.fields[i]

		if raw, ok := ff[f.name]; ok {
			b, err := f.coerce(raw)
			if err != nil {
				return nil, err
			}

			parts[f.name] = b
			continue
		}

		if res := gjson.GetBytes(existing, f.name); res.Exists() {
			parts[f.name] = []byte(res.Raw)
		}
	}

	return s.serialize(parts), nil
}

func (s *Schema) checkUnknown(ff Fields) error {
	for name := range ff {
		known := false
		for i := range s.fields {
			if s.fields[i].name == name {
				known = true
				break
			}
		}

		if !known {
			return errors.Wrapf(ErrInvalidField, "field %s is not declared in the schema", name)
		}
	}

	return nil
}

func (s *Schema) serialize(parts map[string][]byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	first := true
	for i := range s.fields {
		b, ok := parts[s.fields[i].name]
		if !ok {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}
		first = false

		buf.WriteByte('"')
		buf.WriteString(s.fields[i].name)
		buf.WriteString(`":`)
		buf.Write(b)
	}

	buf.WriteByte('}')
	return buf.Bytes()
}
