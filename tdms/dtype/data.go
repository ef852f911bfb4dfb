// Package dtype is the registry of TDMS value encodings.
package dtype

import (
	"fmt"
)

type (
	// DataType is the wire code of a TDMS value encoding.
	DataType uint32
)

const (
	Void                  = DataType(0x00)
	I8                    = DataType(0x01)
	I16                   = DataType(0x02)
	I32                   = DataType(0x03)
	I64                   = DataType(0x04)
	U8                    = DataType(0x05)
	U16                   = DataType(0x06)
	U32                   = DataType(0x07)
	U64                   = DataType(0x08)
	SingleFloat           = DataType(0x09)
	DoubleFloat           = DataType(0x0A)
	ExtendedFloat         = DataType(0x0B)
	SingleFloatWithUnit   = DataType(0x19)
	DoubleFloatWithUnit   = DataType(0x1A)
	ExtendedFloatWithUnit = DataType(0x1B)
	String                = DataType(0x20)
	Boolean               = DataType(0x21)
	TimeStamp             = DataType(0x44)
	FixedPoint            = DataType(0x4F)
	ComplexSingleFloat    = DataType(0x08000C)
	ComplexDoubleFloat    = DataType(0x10000D)
	// DAQmxRawData marks scaler-based layouts. It has no fixed width.
	DAQmxRawData = DataType(0xFFFFFFFF)
)

type info struct {
	name  string
	width int
}

var registry = map[DataType]info{
	Void:                  {"void", 0},
	I8:                    {"i8", 1},
	I16:                   {"i16", 2},
	I32:                   {"i32", 4},
	I64:                   {"i64", 8},
	U8:                    {"u8", 1},
	U16:                   {"u16", 2},
	U32:                   {"u32", 4},
	U64:                   {"u64", 8},
	SingleFloat:           {"single_float", 4},
	DoubleFloat:           {"double_float", 8},
	ExtendedFloat:         {"extended_float", 16},
	SingleFloatWithUnit:   {"single_float_with_unit", 4},
	DoubleFloatWithUnit:   {"double_float_with_unit", 8},
	ExtendedFloatWithUnit: {"extended_float_with_unit", 16},
	String:                {"string", 0},
	Boolean:               {"boolean", 1},
	TimeStamp:             {"timestamp", 16},
	FixedPoint:            {"fixed_point", 8},
	ComplexSingleFloat:    {"complex_single_float", 8},
	ComplexDoubleFloat:    {"complex_double_float", 16},
	DAQmxRawData:          {"daqmx_raw_data", 0},
}

func (r DataType) String() string {
	if i, ok := registry[r]; ok {
		return i.name
	}
	return fmt.Sprintf("unknown(0x%X)", uint32(r))
}

func (r DataType) IsKnown() bool {
	_, ok := registry[r]
	return ok
}

// Width returns the byte width of one value, or false when the width is not
// fixed (strings) or not meaningful (void, DAQmx raw data).
func (r DataType) Width() (int, bool) {
	i, ok := registry[r]
	if !ok || i.width == 0 {
		return 0, false
	}
	return i.width, true
}

func (r DataType) IsNumeric() bool {
	switch r {
	case I8, I16, I32, I64, U8, U16, U32, U64,
		SingleFloat, DoubleFloat, SingleFloatWithUnit, DoubleFloatWithUnit:
		return true
	}
	return false
}

func (r DataType) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
