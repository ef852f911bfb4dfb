// Package lbytes reads the fixed-width primitives a TDMS segment is made of.
package lbytes

import (
	"encoding/binary"
	"io"
)

type (
	// Engine is a byte order that can both decode and append.
	// binary.LittleEndian and binary.BigEndian satisfy it.
	Engine interface {
		binary.ByteOrder
		binary.AppendByteOrder
	}
	Reader struct {
		source io.ReadSeeker
		order  Engine
		pos    int64
	}
)

var (
	LittleEndian Engine = binary.LittleEndian
	BigEndian    Engine = binary.BigEndian
)
