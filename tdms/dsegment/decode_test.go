package dsegment

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tdms-savior/tdms/derr"
	"tdms-savior/tdms/dheader"
	"tdms-savior/tdms/dindex"
	"tdms-savior/tdms/dpath"
	"tdms-savior/tdms/dprop"
	"tdms-savior/tdms/dtype"
	"tdms-savior/tdms/lbytes"
	"tdms-savior/tdms/tdmstest"
)

const chan1 = "/'Group'/'Chan1'"

var le = lbytes.LittleEndian

func decodeBytes(t *testing.T, bs []byte) (*Index, error) {
	t.Helper()
	return Decode(bytes.NewReader(bs))
}

func TestDecode_SingleSegment(t *testing.T) {
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC: dheader.TOCMetaData | dheader.TOCNewObjList,
				Objects: []tdmstest.Object{
					{Path: chan1, Index: tdmstest.Inline(dtype.SingleFloat, 4)},
				},
				RawData: tdmstest.Float32s(le, 1, 2, 3, 4),
			},
		).
		Bytes()
	assert.Equal(t, []byte{0x54, 0x44, 0x53, 0x6D}, bs[:4])

	index, err := decodeBytes(t, bs)
	require.NoError(t, err)
	require.Len(t, index.Segments, 1)
	assert.Equal(t, 1, index.Paths.Len())

	segment := index.Segments[0]
	assert.Equal(t, int64(0), segment.Position)
	assert.Equal(t, uint64(len(bs)), segment.NextSegmentPosition)
	assert.Equal(t, uint64(len(bs)-16), segment.DataPosition)
	require.Len(t, segment.Objects, 1)
	assert.Equal(t, dpath.ID(0), segment.Objects[0].ObjectID)
	require.NotNil(t, segment.Objects[0].RawDataIndex)
	assert.Equal(
		t,
		dindex.RawDataIndex{DataType: dtype.SingleFloat, NumberOfValues: 4, DataSize: 16},
		index.Indexes.Get(*segment.Objects[0].RawDataIndex),
	)
}

func TestDecode_SegmentCount(t *testing.T) {
	for n := 0; n < 5; n++ {
		builder := tdmstest.NewBuilder()
		for i := 0; i < n; i++ {
			builder.Segment(
				tdmstest.Segment{
					TOC: tdmstest.DefaultTOC,
					Objects: []tdmstest.Object{
						{Path: "/'Group'", Index: tdmstest.NoData()},
						{Path: chan1, Index: tdmstest.Inline(dtype.I32, 2)},
					},
					RawData: tdmstest.Int32s(le, int32(i), int32(-i)),
				},
			)
		}
		index, err := decodeBytes(t, builder.Bytes())
		require.NoError(t, err)
		assert.Len(t, index.Segments, n)
		for i, segment := range index.Segments {
			if i > 0 {
				assert.Equal(t, index.Segments[i-1].NextSegmentPosition, uint64(segment.Position))
			}
			assert.Nil(t, segment.Objects[0].RawDataIndex)
		}
	}
}

func TestDecode_MatchesPrevious(t *testing.T) {
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.Inline(dtype.DoubleFloat, 2)}},
				RawData: tdmstest.Float64s(le, 1, 2),
			},
		).
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.MatchesPrevious()}},
				RawData: tdmstest.Float64s(le, 3, 4),
			},
		).
		Bytes()

	index, err := decodeBytes(t, bs)
	require.NoError(t, err)
	require.Len(t, index.Segments, 2)
	first := index.Segments[0].Objects[0].RawDataIndex
	second := index.Segments[1].Objects[0].RawDataIndex
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
	assert.Equal(t, 1, index.Indexes.Len())

	cached, ok := index.Cache.Get(dpath.ID(0))
	assert.True(t, ok)
	assert.Equal(t, *first, cached)
}

func TestDecode_MatchesPreviousRedefined(t *testing.T) {
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.Inline(dtype.I32, 1)}},
				RawData: tdmstest.Int32s(le, 1),
			},
		).
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.Inline(dtype.I32, 2)}},
				RawData: tdmstest.Int32s(le, 2, 3),
			},
		).
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.MatchesPrevious()}},
				RawData: tdmstest.Int32s(le, 4, 5),
			},
		).
		Bytes()

	index, err := decodeBytes(t, bs)
	require.NoError(t, err)
	assert.Equal(t, *index.Segments[1].Objects[0].RawDataIndex, *index.Segments[2].Objects[0].RawDataIndex)
	assert.NotEqual(t, *index.Segments[0].Objects[0].RawDataIndex, *index.Segments[2].Objects[0].RawDataIndex)
}

func TestDecode_MissingPreviousIndex(t *testing.T) {
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.MatchesPrevious()}},
			},
		).
		Bytes()

	index, err := decodeBytes(t, bs)
	assert.Nil(t, index)
	assert.True(t, errors.Is(err, derr.ErrMissingPreviousIndex))
}

func TestDecode_NotImplemented(t *testing.T) {
	tests := map[string]tdmstest.Segment{
		"no metadata": {
			TOC: dheader.TOCRawData,
		},
		"no new object list": {
			TOC:     dheader.TOCMetaData | dheader.TOCRawData,
			Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.NoData()}},
		},
		"format changing scaler": {
			TOC:     tdmstest.DefaultTOC,
			Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.Index{Kind: tdmstest.IndexFormatChangingScaler}}},
		},
		"digital line scaler": {
			TOC:     tdmstest.DefaultTOC,
			Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.Index{Kind: tdmstest.IndexDigitalLineScaler}}},
		},
	}
	for name, segment := range tests {
		bs := tdmstest.NewBuilder().Segment(segment).Bytes()
		_, err := decodeBytes(t, bs)
		assert.True(t, derr.IsKind(err, derr.KindNotImplemented), name)
	}
}

func TestDecode_InvalidDimension(t *testing.T) {
	shape := tdmstest.Inline(dtype.I16, 3)
	shape.Dimension = 2
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: shape}},
			},
		).
		Bytes()

	_, err := decodeBytes(t, bs)
	assert.True(t, derr.IsKind(err, derr.KindInvalidDimension))
	offset, ok := derr.OffsetOf(err)
	require.True(t, ok)
	// lead-in, object count, path, header, data type
	assert.Equal(t, int64(28+4+4+len(chan1)+4+4), offset)
}

func TestDecode_TruncatedLeadIn(t *testing.T) {
	bs := tdmstest.NewBuilder().
		Segment(tdmstest.Segment{TOC: tdmstest.DefaultTOC}).
		Bytes()

	index, err := decodeBytes(t, bs[:14])
	assert.Nil(t, index)
	assert.True(t, errors.Is(err, derr.ErrTruncatedInput))
}

func TestDecode_TruncatedMetadata(t *testing.T) {
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.Inline(dtype.I32, 1)}},
				RawData: tdmstest.Int32s(le, 1),
			},
		).
		Bytes()

	_, err := decodeBytes(t, bs[:40])
	assert.True(t, derr.IsKind(err, derr.KindTruncatedInput))
}

func TestDecode_InvalidSegmentHeader(t *testing.T) {
	segment := tdmstest.Segment{
		TOC:     tdmstest.DefaultTOC,
		Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.Inline(dtype.I32, 1)}},
		RawData: tdmstest.Int32s(le, 1),
	}
	bs := tdmstest.NewBuilder().Segment(segment).Segment(segment).Bytes()
	second := len(bs) / 2
	bs[second] = 'X'

	_, err := decodeBytes(t, bs)
	assert.True(t, derr.IsKind(err, derr.KindInvalidSegmentHeader))
	offset, ok := derr.OffsetOf(err)
	require.True(t, ok)
	assert.Equal(t, int64(second), offset)
}

func TestDecode_BigEndian(t *testing.T) {
	be := lbytes.BigEndian
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC: tdmstest.DefaultTOC | dheader.TOCBigEndian,
				Objects: []tdmstest.Object{
					{
						Path:  chan1,
						Index: tdmstest.Inline(dtype.I32, 2),
						Properties: []tdmstest.Property{
							{Name: "NI_ChannelName", DataType: dtype.String, Value: "Chan1"},
						},
					},
				},
				RawData: tdmstest.Int32s(be, 7, 8),
			},
		).
		Bytes()

	index, err := decodeBytes(t, bs)
	require.NoError(t, err)
	require.Len(t, index.Segments, 1)
	assert.True(t, index.Segments[0].BigEndian())
	record := index.Indexes.Get(*index.Segments[0].Objects[0].RawDataIndex)
	assert.Equal(t, uint64(2), record.NumberOfValues)

	property, ok := index.Properties.Latest(dpath.ID(0), "NI_ChannelName")
	assert.True(t, ok)
	assert.Equal(t, "Chan1", property.Value)
}

func TestDecode_UnknownNextSegmentOffset(t *testing.T) {
	unknown := uint64(0xFFFFFFFFFFFFFFFF)
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:               tdmstest.DefaultTOC,
				Objects:           []tdmstest.Object{{Path: chan1, Index: tdmstest.Inline(dtype.I32, 1)}},
				RawData:           tdmstest.Int32s(le, 1, 2, 3),
				NextSegmentOffset: &unknown,
			},
		).
		Bytes()

	index, err := decodeBytes(t, bs)
	require.NoError(t, err)
	require.Len(t, index.Segments, 1)
	assert.Equal(t, uint64(len(bs)), index.Segments[0].NextSegmentPosition)
}

func TestDecode_CorruptOffsets(t *testing.T) {
	tooSmall := uint64(0)
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:               tdmstest.DefaultTOC,
				Objects:           []tdmstest.Object{{Path: chan1, Index: tdmstest.Inline(dtype.I32, 1)}},
				RawData:           tdmstest.Int32s(le, 1),
				NextSegmentOffset: &tooSmall,
			},
		).
		Bytes()

	_, err := decodeBytes(t, bs)
	assert.True(t, derr.IsKind(err, derr.KindCorruptSegment))
}

func TestDecode_PropertiesAccumulate(t *testing.T) {
	segment := func(gain float64) tdmstest.Segment {
		return tdmstest.Segment{
			TOC: tdmstest.DefaultTOC,
			Objects: []tdmstest.Object{
				{
					Path:  "/'Group'",
					Index: tdmstest.NoData(),
					Properties: []tdmstest.Property{
						{Name: "gain", DataType: dtype.DoubleFloat, Value: gain},
					},
				},
			},
		}
	}
	bs := tdmstest.NewBuilder().Segment(segment(1)).Segment(segment(2)).Bytes()

	index, err := decodeBytes(t, bs)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]dprop.Property{
			{Name: "gain", DataType: dtype.DoubleFloat, Value: 1.0},
			{Name: "gain", DataType: dtype.DoubleFloat, Value: 2.0},
		},
		index.Properties.All(dpath.ID(0)),
	)
}

func TestDecode_StartsAtCurrentPosition(t *testing.T) {
	segment := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.NoData()}},
			},
		).
		Bytes()
	bs := append(make([]byte, 8), segment...)
	reader := bytes.NewReader(bs)
	_, err := reader.Seek(8, 0)
	require.NoError(t, err)

	index, err := Decode(reader)
	require.NoError(t, err)
	require.Len(t, index.Segments, 1)
	assert.Equal(t, int64(8), index.Segments[0].Position)
}

func TestDecode_WithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.NoData()}},
			},
		).
		Bytes()

	_, err := Decode(bytes.NewReader(bs), WithLogger(zap.New(core).Sugar()))
	require.NoError(t, err)
	entries := logs.FilterMessage("decoded segment").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["objects"])
}

// segmentWithMeta frames raw metadata bytes in a lead-in whose offsets match
// the bytes given.
func segmentWithMeta(meta ...[]byte) []byte {
	body := bytes.Join(meta, nil)
	leadIn := dheader.LeadIn{
		TOC:               tdmstest.DefaultTOC,
		Version:           4713,
		NextSegmentOffset: uint64(len(body)),
		RawDataOffset:     uint64(len(body)),
	}
	return append(dheader.Encode(leadIn), body...)
}

func TestDecode_HugeCounts(t *testing.T) {
	tests := map[string][]byte{
		"object count": segmentWithMeta(
			lbytes.EncodeUint32(le, 0xFFFFFFFF),
		),
		"path length": segmentWithMeta(
			lbytes.EncodeUint32(le, 1),
			lbytes.EncodeUint32(le, 0xFFFFFFF0),
		),
		"property count": segmentWithMeta(
			lbytes.EncodeUint32(le, 1),
			lbytes.EncodeString(le, chan1),
			lbytes.EncodeUint32(le, dindex.HeaderNoData),
			lbytes.EncodeUint32(le, 0xFFFFFFFF),
		),
	}
	for name, bs := range tests {
		t.Run(name, func(t *testing.T) {
			var err error
			assert.NotPanics(t, func() {
				_, err = decodeBytes(t, bs)
			})
			assert.True(t, derr.IsKind(err, derr.KindTruncatedInput), "%+v", err)
		})
	}
}

func TestDecode_NextSegmentPastEnd(t *testing.T) {
	pastEnd := uint64(1 << 62)
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:               tdmstest.DefaultTOC,
				Objects:           []tdmstest.Object{{Path: chan1, Index: tdmstest.Inline(dtype.I32, 1)}},
				RawData:           tdmstest.Int32s(le, 1),
				NextSegmentOffset: &pastEnd,
			},
		).
		Bytes()

	index, err := decodeBytes(t, bs)
	assert.Nil(t, index)
	assert.True(t, derr.IsKind(err, derr.KindTruncatedInput))
	offset, ok := derr.OffsetOf(err)
	require.True(t, ok)
	assert.Equal(t, int64(0), offset)

	// one byte short of the declared segment
	bs = tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC:     tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{{Path: chan1, Index: tdmstest.Inline(dtype.I32, 1)}},
				RawData: tdmstest.Int32s(le, 1),
			},
		).
		Bytes()
	_, err = decodeBytes(t, bs[:len(bs)-1])
	assert.True(t, derr.IsKind(err, derr.KindTruncatedInput))
}
