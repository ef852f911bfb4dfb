// Package dheader decodes the 28-byte lead-in that opens every TDMS segment.
package dheader

import (
	"strings"
)

type (
	LeadIn struct {
		// Position is the absolute offset of the magic bytes.
		Position          int64   `json:"position"`
		TOC               TOCMask `json:"toc"`
		Version           int32   `json:"version"`
		NextSegmentOffset uint64  `json:"next_segment_offset"`
		RawDataOffset     uint64  `json:"raw_data_offset"`
	}
	TOCMask uint32
)

const (
	LeadInSize = 28

	TOCMetaData        = TOCMask(1 << 1)
	TOCNewObjList      = TOCMask(1 << 2)
	TOCRawData         = TOCMask(1 << 3)
	TOCInterleavedData = TOCMask(1 << 5)
	TOCBigEndian       = TOCMask(1 << 6)
	TOCDAQmxRawData    = TOCMask(1 << 7)

	// UnknownNextSegmentOffset is written by a writer that never finished
	// the segment; the segment then runs to the end of the file.
	UnknownNextSegmentOffset = uint64(0xFFFFFFFFFFFFFFFF)
)

var (
	MagicNumberBytes = []byte{0x54, 0x44, 0x53, 0x6D}
	tocFlagNames     = []struct {
		flag TOCMask
		name string
	}{
		{TOCMetaData, "MetaData"},
		{TOCNewObjList, "NewObjList"},
		{TOCRawData, "RawData"},
		{TOCInterleavedData, "InterleavedData"},
		{TOCBigEndian, "BigEndian"},
		{TOCDAQmxRawData, "DAQmxRawData"},
	}
)

func (r TOCMask) Has(flag TOCMask) bool {
	return r&flag == flag
}

func (r TOCMask) String() string {
	names := make([]string, 0, len(tocFlagNames))
	for _, f := range tocFlagNames {
		if r.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return "{" + strings.Join(names, "|") + "}"
}

func (r LeadIn) NextSegmentPosition() uint64 {
	return uint64(r.Position) + LeadInSize + r.NextSegmentOffset
}

func (r LeadIn) DataPosition() uint64 {
	return uint64(r.Position) + LeadInSize + r.RawDataOffset
}
