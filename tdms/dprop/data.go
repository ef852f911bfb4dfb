// Package dprop decodes TDMS object properties and keeps them per object.
package dprop

import (
	"tdms-savior/tdms/dpath"
	"tdms-savior/tdms/dtype"
)

type (
	Property struct {
		Name     string         `json:"name"`
		DataType dtype.DataType `json:"data_type"`
		Value    any            `json:"value"`
	}
	// Store keeps properties in the order they were decoded. A property
	// repeated by a later segment is appended, not replaced.
	Store struct {
		propertiesByObject map[dpath.ID][]Property
	}
)
