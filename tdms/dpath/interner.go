// Package dpath interns TDMS object paths into small dense ids.
package dpath

import (
	"github.com/cespare/xxhash/v2"
)

type (
	// ID identifies an object path within one decode session.
	ID int
	// Interner maps each distinct path to an ID in first-seen order.
	//
	// Paths are bucketed by their xxHash64 so a lookup hashes the string
	// once; colliding paths share a bucket and are told apart by comparison.
	Interner struct {
		idsByHash map[uint64][]ID
		paths     []string
	}
)

func NewInterner() *Interner {
	return &Interner{
		idsByHash: make(map[uint64][]ID),
		paths:     make([]string, 0),
	}
}

func (r *Interner) GetOrCreateID(path string) ID {
	hash := xxhash.Sum64String(path)
	for _, id := range r.idsByHash[hash] {
		if r.paths[id] == path {
			return id
		}
	}
	id := ID(len(r.paths))
	r.paths = append(r.paths, path)
	r.idsByHash[hash] = append(r.idsByHash[hash], id)
	return id
}

// Lookup finds the ID of path without creating one.
func (r *Interner) Lookup(path string) (ID, bool) {
	for _, id := range r.idsByHash[xxhash.Sum64String(path)] {
		if r.paths[id] == path {
			return id, true
		}
	}
	return 0, false
}

func (r *Interner) Path(id ID) (string, bool) {
	if id < 0 || int(id) >= len(r.paths) {
		return "", false
	}
	return r.paths[id], true
}

func (r *Interner) Len() int {
	return len(r.paths)
}

// Paths lists every interned path, indexed by ID.
func (r *Interner) Paths() []string {
	paths := make([]string, len(r.paths))
	copy(paths, r.paths)
	return paths
}
