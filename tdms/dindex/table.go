package dindex

import (
	"fmt"

	"tdms-savior/ds"
	"tdms-savior/tdms/dpath"
)

type (
	// Table is an append-only arena of shape records.
	Table struct {
		records []RawDataIndex
	}
	// Cache remembers the most recent shape each object defined, indexed
	// directly by object id.
	Cache struct {
		previous []ID
	}
)

const noMapping = ID(-1)

func NewTable() *Table {
	return &Table{
		records: make([]RawDataIndex, 0),
	}
}

func (r *Table) Alloc(record RawDataIndex) ID {
	r.records = append(r.records, record)
	return ID(len(r.records) - 1)
}

// Get panics on an id this table never allocated.
func (r *Table) Get(id ID) RawDataIndex {
	return r.records[id]
}

func (r *Table) Len() int {
	return len(r.records)
}

func NewCache() *Cache {
	return &Cache{
		previous: make([]ID, 0),
	}
}

func (r *Cache) Set(object dpath.ID, id ID) {
	index := int(object)
	if index < 0 {
		panic(fmt.Sprintf("dindex.Cache.Set: negative object id %d", index))
	}
	if index >= len(r.previous) {
		r.previous = append(r.previous, ds.Repeat(index-len(r.previous)+1, noMapping)...)
	}
	r.previous[index] = id
}

func (r *Cache) Get(object dpath.ID) (ID, bool) {
	index := int(object)
	if index < 0 || index >= len(r.previous) {
		return 0, false
	}
	id := r.previous[index]
	return id, id != noMapping
}
