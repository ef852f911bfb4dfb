package tdmstest

import (
	"tdms-savior/tdms/lbytes"
)

func Float32s(order lbytes.Engine, values ...float32) []byte {
	bs := make([]byte, 0, 4*len(values))
	for _, value := range values {
		bs = append(bs, lbytes.EncodeFloat32(order, value)...)
	}
	return bs
}

func Float64s(order lbytes.Engine, values ...float64) []byte {
	bs := make([]byte, 0, 8*len(values))
	for _, value := range values {
		bs = append(bs, lbytes.EncodeFloat64(order, value)...)
	}
	return bs
}

func Int32s(order lbytes.Engine, values ...int32) []byte {
	bs := make([]byte, 0, 4*len(values))
	for _, value := range values {
		bs = append(bs, lbytes.EncodeInt32(order, value)...)
	}
	return bs
}

// Strings lays out string samples the way a TDMS writer does: one u32 end
// offset per value, then the concatenated UTF-8 bytes.
func Strings(order lbytes.Engine, values ...string) []byte {
	offsets := make([]byte, 0, 4*len(values))
	payload := make([]byte, 0)
	for _, value := range values {
		payload = append(payload, value...)
		offsets = append(offsets, lbytes.EncodeUint32(order, uint32(len(payload)))...)
	}
	return append(offsets, payload...)
}

// Interleave merges equally long columns of fixed-width values row by row.
func Interleave(width []int, columns ...[]byte) []byte {
	bs := make([]byte, 0)
	if len(columns) == 0 {
		return bs
	}
	rows := len(columns[0]) / width[0]
	for row := 0; row < rows; row++ {
		for i, column := range columns {
			bs = append(bs, column[row*width[i]:(row+1)*width[i]]...)
		}
	}
	return bs
}
