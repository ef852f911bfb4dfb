// Package dindex holds the shape records that describe how an object's
// samples are laid out in a segment's raw data.
package dindex

import (
	"tdms-savior/tdms/dtype"
)

type (
	RawDataIndex struct {
		DataType       dtype.DataType `json:"data_type"`
		NumberOfValues uint64         `json:"number_of_values"`
		// DataSize is the byte length of the object's samples in one chunk.
		DataSize uint64 `json:"data_size"`
	}
	// ID refers to a record allocated in a Table.
	ID int
)

// Raw data index header sentinels. Any other header value introduces an
// inline shape.
const (
	HeaderNoData               = uint32(0xFFFFFFFF)
	HeaderMatchesPrevious      = uint32(0x00000000)
	HeaderFormatChangingScaler = uint32(0x00001269)
	HeaderDigitalLineScaler    = uint32(0x0000126A)
)
