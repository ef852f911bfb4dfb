// Package dsample turns a decoded index back into channel samples.
package dsample

import (
	"math/bits"

	"tdms-savior/ds"
	"tdms-savior/tdms/derr"
	"tdms-savior/tdms/dindex"
	"tdms-savior/tdms/dpath"
	"tdms-savior/tdms/dsegment"
	"tdms-savior/tdms/dtype"
)

type (
	// Plan says where one object's samples live inside one segment.
	Plan struct {
		Segment      dsegment.Segment    `json:"segment"`
		Record       dindex.RawDataIndex `json:"record"`
		ChunkSize    uint64              `json:"chunk_size"`
		ChunkCount   uint64              `json:"chunk_count"`
		ObjectOffset uint64              `json:"object_offset"`
		// RowWidth and ColumnOffset are only set for interleaved segments.
		RowWidth     uint64 `json:"row_width"`
		ColumnOffset uint64 `json:"column_offset"`
	}
)

// ChunkStart is the absolute offset of chunk k of the segment.
func (r Plan) ChunkStart(k uint64) uint64 {
	return r.Segment.DataPosition + k*r.ChunkSize
}

// MakePlans lists, in segment order, every segment that carries samples for
// object, with the arithmetic needed to find them.
func MakePlans(index *dsegment.Index, object dpath.ID) ([]Plan, error) {
	plans := make([]Plan, 0)
	for _, segment := range index.Segments {
		plan, ok, err := makePlan(index, segment, object)
		if err != nil {
			return nil, err
		}
		if ok {
			plans = append(plans, *plan)
		}
	}
	return plans, nil
}

func makePlan(index *dsegment.Index, segment dsegment.Segment, object dpath.ID) (*Plan, bool, error) {
	if !segment.HasRawData() {
		return nil, false, nil
	}

	plan := Plan{Segment: segment}
	found := false
	rows := uint64(0)
	for i, segmentObject := range segment.Objects {
		if segmentObject.RawDataIndex == nil {
			continue
		}
		record := index.Indexes.Get(*segmentObject.RawDataIndex)
		width, fixed := record.DataType.Width()
		if segment.Interleaved() {
			if !fixed {
				return nil, false, derr.New(
					derr.KindNotImplemented, segment.Position,
					"interleaved raw data of type %s", record.DataType,
				)
			}
			// every column of an interleaved row holds one value per object
			if plan.RowWidth == 0 {
				rows = record.NumberOfValues
			} else if record.NumberOfValues != rows {
				return nil, false, derr.New(
					derr.KindCorruptSegment, segment.Position,
					"interleaved object %d has %d values, expected %d", i, record.NumberOfValues, rows,
				)
			}
		}
		if segmentObject.ObjectID == object && !found {
			if record.DataType == dtype.String && record.NumberOfValues > record.DataSize/4 {
				return nil, false, derr.New(
					derr.KindCorruptSegment, segment.Position,
					"%d string offsets do not fit in %d bytes", record.NumberOfValues, record.DataSize,
				)
			}
			plan.Record = record
			plan.ObjectOffset = plan.ChunkSize
			plan.ColumnOffset = plan.RowWidth
			found = true
		}
		chunkSize, carry := bits.Add64(plan.ChunkSize, record.DataSize, 0)
		if carry != 0 {
			return nil, false, derr.New(
				derr.KindCorruptSegment, segment.Position,
				"raw data chunk size overflows at object %d", i,
			)
		}
		plan.ChunkSize = chunkSize
		plan.RowWidth += uint64(width)
	}
	if !found || plan.ChunkSize == 0 {
		return nil, false, nil
	}
	if !segment.Interleaved() {
		plan.RowWidth = 0
		plan.ColumnOffset = 0
	}

	span := segment.NextSegmentPosition - segment.DataPosition
	chunkCount, ok := ds.DivideEvenly(span, plan.ChunkSize)
	if !ok {
		return nil, false, derr.New(
			derr.KindCorruptSegment, segment.Position,
			"raw data of %d bytes is not a whole number of %d-byte chunks", span, plan.ChunkSize,
		)
	}
	plan.ChunkCount = chunkCount
	return &plan, true, nil
}
