package dtype

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"tdms-savior/ds"
	"tdms-savior/tdms/derr"
	"tdms-savior/tdms/lbytes"
)

// Epoch is the zero point of TDMS timestamps.
var Epoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// FromUint32 validates a wire code read at offset.
func FromUint32(code uint32, offset int64) (DataType, error) {
	dataType := DataType(code)
	if !dataType.IsKnown() {
		return Void, derr.New(derr.KindUnknownType, offset, "type code 0x%X", code)
	}
	return dataType, nil
}

func Read(reader *lbytes.Reader) (DataType, error) {
	offset := reader.Pos()
	code, err := reader.ReadUint32()
	if err != nil {
		return Void, err
	}
	return FromUint32(code, offset)
}

// ToTime converts the two halves of a TDMS timestamp: whole seconds since
// Epoch and a positive fraction of a second in units of 2^-64.
func ToTime(seconds int64, fraction uint64) time.Time {
	nanos := int64(float64(fraction) / math.Exp2(64) * 1e9)
	return Epoch.Add(time.Duration(seconds) * time.Second).Add(time.Duration(nanos))
}

// ReadValue reads one value of dataType, as stored in a property.
func ReadValue(reader *lbytes.Reader, dataType DataType) (any, error) {
	offset := reader.Pos()
	switch dataType {
	case I8:
		return reader.ReadInt8()
	case I16:
		return reader.ReadInt16()
	case I32:
		return reader.ReadInt32()
	case I64:
		return reader.ReadInt64()
	case U8:
		return reader.ReadUint8()
	case U16:
		return reader.ReadUint16()
	case U32:
		return reader.ReadUint32()
	case U64:
		return reader.ReadUint64()
	case SingleFloat, SingleFloatWithUnit:
		return reader.ReadFloat32()
	case DoubleFloat, DoubleFloatWithUnit:
		return reader.ReadFloat64()
	case String:
		return reader.ReadString()
	case Boolean:
		b, err := reader.ReadUint8()
		return b != 0, err
	case TimeStamp:
		bs, err := reader.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		return decodeTime(reader.ByteOrder(), bs), nil
	case ComplexSingleFloat:
		bs, err := reader.ReadBytes(8)
		if err != nil {
			return nil, err
		}
		return decodeComplex64(reader.ByteOrder(), bs), nil
	case ComplexDoubleFloat:
		bs, err := reader.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		return decodeComplex128(reader.ByteOrder(), bs), nil
	case Void, ExtendedFloat, ExtendedFloatWithUnit, FixedPoint, DAQmxRawData:
		return nil, derr.New(derr.KindNotImplemented, offset, "values of type %s", dataType)
	}
	return nil, derr.New(derr.KindUnknownType, offset, "type code 0x%X", uint32(dataType))
}

// DecodeValues decodes count fixed-width values of dataType packed in bs and
// returns them as a typed slice ([]float32, []int16, []time.Time...).
func DecodeValues(order lbytes.Engine, dataType DataType, bs []byte) (any, error) {
	width, ok := dataType.Width()
	if !ok {
		return nil, derr.New(derr.KindNotImplemented, -1, "fixed-width decoding of type %s", dataType)
	}
	if len(bs)%width != 0 {
		err := derr.New(derr.KindCorruptSegment, -1, "%d bytes is not a multiple of %d", len(bs), width)
		return nil, errors.Wrap(err, "dtype.DecodeValues error")
	}
	chunks := ds.MakeChunks(bs, width)
	switch dataType {
	case I8:
		return decodeEach(chunks, func(b []byte) int8 { return int8(b[0]) }), nil
	case I16:
		return decodeEach(chunks, func(b []byte) int16 { return int16(order.Uint16(b)) }), nil
	case I32:
		return decodeEach(chunks, func(b []byte) int32 { return int32(order.Uint32(b)) }), nil
	case I64:
		return decodeEach(chunks, func(b []byte) int64 { return int64(order.Uint64(b)) }), nil
	case U8:
		return decodeEach(chunks, func(b []byte) uint8 { return b[0] }), nil
	case U16:
		return decodeEach(chunks, order.Uint16), nil
	case U32:
		return decodeEach(chunks, order.Uint32), nil
	case U64:
		return decodeEach(chunks, order.Uint64), nil
	case SingleFloat, SingleFloatWithUnit:
		return decodeEach(chunks, func(b []byte) float32 { return math.Float32frombits(order.Uint32(b)) }), nil
	case DoubleFloat, DoubleFloatWithUnit:
		return decodeEach(chunks, func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) }), nil
	case Boolean:
		return decodeEach(chunks, func(b []byte) bool { return b[0] != 0 }), nil
	case TimeStamp:
		return decodeEach(chunks, func(b []byte) time.Time { return decodeTime(order, b) }), nil
	case ComplexSingleFloat:
		return decodeEach(chunks, func(b []byte) complex64 { return decodeComplex64(order, b) }), nil
	case ComplexDoubleFloat:
		return decodeEach(chunks, func(b []byte) complex128 { return decodeComplex128(order, b) }), nil
	}
	return nil, derr.New(derr.KindNotImplemented, -1, "sample decoding of type %s", dataType)
}

func decodeEach[T any](chunks [][]byte, decode func([]byte) T) []T {
	values := make([]T, len(chunks))
	for i, chunk := range chunks {
		values[i] = decode(chunk)
	}
	return values
}

// The fraction comes first in little-endian files and last in big-endian ones.
func decodeTime(order lbytes.Engine, bs []byte) time.Time {
	if order == lbytes.BigEndian {
		return ToTime(int64(order.Uint64(bs[:8])), order.Uint64(bs[8:]))
	}
	return ToTime(int64(order.Uint64(bs[8:])), order.Uint64(bs[:8]))
}

func decodeComplex64(order lbytes.Engine, bs []byte) complex64 {
	re := math.Float32frombits(order.Uint32(bs[:4]))
	im := math.Float32frombits(order.Uint32(bs[4:8]))
	return complex(re, im)
}

func decodeComplex128(order lbytes.Engine, bs []byte) complex128 {
	re := math.Float64frombits(order.Uint64(bs[:8]))
	im := math.Float64frombits(order.Uint64(bs[8:16]))
	return complex(re, im)
}
