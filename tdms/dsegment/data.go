// Package dsegment walks a TDMS source segment by segment and builds the
// index later used to extract samples.
package dsegment

import (
	"go.uber.org/zap"

	"tdms-savior/tdms/dheader"
	"tdms-savior/tdms/dindex"
	"tdms-savior/tdms/dpath"
	"tdms-savior/tdms/dprop"
)

type (
	SegmentObject struct {
		ObjectID dpath.ID `json:"object_id"`
		// RawDataIndex is nil when the object has no data in the segment.
		RawDataIndex *dindex.ID `json:"raw_data_index"`
	}
	Segment struct {
		Position            int64           `json:"position"`
		DataPosition        uint64          `json:"data_position"`
		NextSegmentPosition uint64          `json:"next_segment_position"`
		TOC                 dheader.TOCMask `json:"toc"`
		Objects             []SegmentObject `json:"objects"`
	}
	// Index is everything one decode produced. It is not modified after
	// Decode returns, so it can be shared between goroutines.
	Index struct {
		Segments   []Segment
		Paths      *dpath.Interner
		Indexes    *dindex.Table
		Cache      *dindex.Cache
		Properties *dprop.Store
	}
	Config struct {
		Logger *zap.SugaredLogger
	}
	Option func(*Config)
)

func NoData(objectID dpath.ID) SegmentObject {
	return SegmentObject{ObjectID: objectID}
}

func WithData(objectID dpath.ID, id dindex.ID) SegmentObject {
	return SegmentObject{ObjectID: objectID, RawDataIndex: &id}
}

func (r Segment) HasRawData() bool {
	return r.TOC.Has(dheader.TOCRawData)
}

func (r Segment) Interleaved() bool {
	return r.TOC.Has(dheader.TOCInterleavedData)
}

func (r Segment) BigEndian() bool {
	return r.TOC.Has(dheader.TOCBigEndian)
}

// WithLogger traces every decoded segment at debug level.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(config *Config) {
		if logger != nil {
			config.Logger = logger
		}
	}
}
