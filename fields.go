package roster

// Fields carries raw text field values as supplied by the request
// surface, keyed by field name. On update only present keys are
// applied; absence means "leave unchanged".
type Fields map[string]string

func (ff Fields) Has(name string) bool {
	_, ok := ff[name]
	return ok
}
