// Package tdmstest builds synthetic TDMS files for tests.
package tdmstest

import (
	"fmt"

	"tdms-savior/tdms/dheader"
	"tdms-savior/tdms/dindex"
	"tdms-savior/tdms/dtype"
	"tdms-savior/tdms/lbytes"
)

type (
	IndexKind int
	Index     struct {
		Kind      IndexKind
		DataType  dtype.DataType
		Dimension uint32
		Count     uint64
		// StringSize is only written for string shapes.
		StringSize uint64
	}
	Property struct {
		Name     string
		DataType dtype.DataType
		Value    any
	}
	Object struct {
		Path       string
		Index      Index
		Properties []Property
	}
	Segment struct {
		TOC     dheader.TOCMask
		Version int32
		Objects []Object
		RawData []byte
		// NextSegmentOffset overrides the computed offset when set.
		NextSegmentOffset *uint64
	}
	Builder struct {
		segments []Segment
	}
)

const (
	IndexNoData IndexKind = iota
	IndexMatchesPrevious
	IndexInline
	IndexFormatChangingScaler
	IndexDigitalLineScaler
)

const DefaultTOC = dheader.TOCMetaData | dheader.TOCNewObjList | dheader.TOCRawData

func NoData() Index {
	return Index{Kind: IndexNoData}
}

func MatchesPrevious() Index {
	return Index{Kind: IndexMatchesPrevious}
}

func Inline(dataType dtype.DataType, count uint64) Index {
	return Index{Kind: IndexInline, DataType: dataType, Dimension: 1, Count: count}
}

func InlineString(count uint64, size uint64) Index {
	return Index{Kind: IndexInline, DataType: dtype.String, Dimension: 1, Count: count, StringSize: size}
}

func NewBuilder() *Builder {
	return &Builder{
		segments: make([]Segment, 0),
	}
}

func (r *Builder) Segment(segment Segment) *Builder {
	r.segments = append(r.segments, segment)
	return r
}

func (r *Builder) Bytes() []byte {
	bs := make([]byte, 0)
	for _, segment := range r.segments {
		bs = append(bs, EncodeSegment(segment)...)
	}
	return bs
}

func Order(toc dheader.TOCMask) lbytes.Engine {
	if toc.Has(dheader.TOCBigEndian) {
		return lbytes.BigEndian
	}
	return lbytes.LittleEndian
}

func EncodeSegment(segment Segment) []byte {
	order := Order(segment.TOC)
	meta := lbytes.EncodeUint32(order, uint32(len(segment.Objects)))
	for _, object := range segment.Objects {
		meta = append(meta, EncodeObject(order, object)...)
	}
	nextSegmentOffset := uint64(len(meta) + len(segment.RawData))
	if segment.NextSegmentOffset != nil {
		nextSegmentOffset = *segment.NextSegmentOffset
	}
	version := segment.Version
	if version == 0 {
		version = 4713
	}
	leadIn := dheader.LeadIn{
		TOC:               segment.TOC,
		Version:           version,
		NextSegmentOffset: nextSegmentOffset,
		RawDataOffset:     uint64(len(meta)),
	}

	bs := dheader.Encode(leadIn)
	bs = append(bs, meta...)
	bs = append(bs, segment.RawData...)
	return bs
}

func EncodeObject(order lbytes.Engine, object Object) []byte {
	bs := lbytes.EncodeString(order, object.Path)
	switch object.Index.Kind {
	case IndexNoData:
		bs = append(bs, lbytes.EncodeUint32(order, dindex.HeaderNoData)...)
	case IndexMatchesPrevious:
		bs = append(bs, lbytes.EncodeUint32(order, dindex.HeaderMatchesPrevious)...)
	case IndexFormatChangingScaler:
		bs = append(bs, lbytes.EncodeUint32(order, dindex.HeaderFormatChangingScaler)...)
	case IndexDigitalLineScaler:
		bs = append(bs, lbytes.EncodeUint32(order, dindex.HeaderDigitalLineScaler)...)
	case IndexInline:
		shape := lbytes.EncodeUint32(order, uint32(object.Index.DataType))
		shape = append(shape, lbytes.EncodeUint32(order, object.Index.Dimension)...)
		shape = append(shape, lbytes.EncodeUint64(order, object.Index.Count)...)
		if object.Index.DataType == dtype.String {
			shape = append(shape, lbytes.EncodeUint64(order, object.Index.StringSize)...)
		}
		// the header holds the byte length of the shape that follows
		bs = append(bs, lbytes.EncodeUint32(order, uint32(len(shape)+4))...)
		bs = append(bs, shape...)
	}
	bs = append(bs, lbytes.EncodeUint32(order, uint32(len(object.Properties)))...)
	for _, property := range object.Properties {
		bs = append(bs, EncodeProperty(order, property)...)
	}
	return bs
}

func EncodeProperty(order lbytes.Engine, property Property) []byte {
	bs := lbytes.EncodeString(order, property.Name)
	bs = append(bs, lbytes.EncodeUint32(order, uint32(property.DataType))...)
	switch value := property.Value.(type) {
	case string:
		bs = append(bs, lbytes.EncodeString(order, value)...)
	case int32:
		bs = append(bs, lbytes.EncodeInt32(order, value)...)
	case uint32:
		bs = append(bs, lbytes.EncodeUint32(order, value)...)
	case int64:
		bs = append(bs, lbytes.EncodeInt64(order, value)...)
	case uint64:
		bs = append(bs, lbytes.EncodeUint64(order, value)...)
	case float32:
		bs = append(bs, lbytes.EncodeFloat32(order, value)...)
	case float64:
		bs = append(bs, lbytes.EncodeFloat64(order, value)...)
	case bool:
		if value {
			bs = append(bs, 1)
		} else {
			bs = append(bs, 0)
		}
	case []byte:
		bs = append(bs, value...)
	default:
		panic(fmt.Sprintf("tdmstest.EncodeProperty: unsupported value %T", value))
	}
	return bs
}
