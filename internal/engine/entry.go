package engine

import "github.com/jinzhu/copier"

// Entry is a single stored record: the integer primary key and the
// serialized field values.
type Entry struct {
	ID    int
	Value []byte
}

func NewEntry(id int, value []byte) *Entry {
	return &Entry{ID: id, Value: value}
}

func (ent *Entry) clone() *Entry {
	var cpEnt Entry
	if err := copier.Copy(&cpEnt, ent); err != nil {
		panic("could not copy entry: " + err.Error())
	}

	return &cpEnt
}
