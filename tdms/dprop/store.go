package dprop

import (
	"tdms-savior/ds"
	"tdms-savior/tdms/dpath"
)

func NewStore() *Store {
	return &Store{
		propertiesByObject: make(map[dpath.ID][]Property),
	}
}

func (r *Store) Append(id dpath.ID, properties ...Property) {
	r.propertiesByObject[id] = append(r.propertiesByObject[id], properties...)
}

// All returns every property recorded for id, oldest first.
func (r *Store) All(id dpath.ID) []Property {
	return ds.ShallowCopy(r.propertiesByObject[id])
}

// Latest returns the most recently decoded property called name.
func (r *Store) Latest(id dpath.ID, name string) (Property, bool) {
	properties := r.propertiesByObject[id]
	for i := len(properties) - 1; i >= 0; i-- {
		if properties[i].Name == name {
			return properties[i], true
		}
	}
	return Property{}, false
}
