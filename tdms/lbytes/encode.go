package lbytes

import (
	"math"
)

func EncodeUint32(order Engine, value uint32) []byte {
	return order.AppendUint32(make([]byte, 0, 4), value)
}

func EncodeInt32(order Engine, value int32) []byte {
	return EncodeUint32(order, uint32(value))
}

func EncodeUint64(order Engine, value uint64) []byte {
	return order.AppendUint64(make([]byte, 0, 8), value)
}

func EncodeInt64(order Engine, value int64) []byte {
	return EncodeUint64(order, uint64(value))
}

func EncodeFloat32(order Engine, value float32) []byte {
	return EncodeUint32(order, math.Float32bits(value))
}

func EncodeFloat64(order Engine, value float64) []byte {
	return EncodeUint64(order, math.Float64bits(value))
}

func EncodeString(order Engine, value string) []byte {
	bs := EncodeUint32(order, uint32(len(value)))
	return append(bs, value...)
}
