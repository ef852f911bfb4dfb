package dsegment

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"tdms-savior/tdms/derr"
	"tdms-savior/tdms/dheader"
	"tdms-savior/tdms/dindex"
	"tdms-savior/tdms/dpath"
	"tdms-savior/tdms/dprop"
	"tdms-savior/tdms/lbytes"
)

type session struct {
	Index
	reader *lbytes.Reader
	log    *zap.SugaredLogger
}

func newSession(reader *lbytes.Reader, config Config) *session {
	return &session{
		Index: Index{
			Segments:   make([]Segment, 0),
			Paths:      dpath.NewInterner(),
			Indexes:    dindex.NewTable(),
			Cache:      dindex.NewCache(),
			Properties: dprop.NewStore(),
		},
		reader: reader,
		log:    config.Logger,
	}
}

// Decode reads every segment from the current position of source to its
// end. The first malformed or unsupported segment aborts the whole decode.
func Decode(source io.ReadSeeker, opts ...Option) (*Index, error) {
	config := Config{
		Logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	start, err := source.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, derr.Wrap(derr.KindIo, -1, err)
	}
	reader := lbytes.NewReader(source)
	if err := reader.Seek(start); err != nil {
		return nil, err
	}

	s := newSession(reader, config)
	if err := s.decodeSegments(); err != nil {
		err := errors.Wrap(err, "dsegment.Decode error")
		return nil, err
	}
	return &s.Index, nil
}

func (s *session) decodeSegments() error {
	for {
		segment, last, err := s.decodeSegment()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		s.log.Debugw(
			"decoded segment",
			"index", len(s.Segments),
			"position", segment.Position,
			"toc", segment.TOC.String(),
			"objects", len(segment.Objects),
			"data_position", segment.DataPosition,
			"next_segment_position", segment.NextSegmentPosition,
		)
		s.Segments = append(s.Segments, *segment)
		if last {
			return nil
		}
		if err := s.reader.Seek(int64(segment.NextSegmentPosition)); err != nil {
			return err
		}
	}
}

// decodeSegment also reports whether this segment has to be the last one,
// which is the case when its writer never recorded where it ends.
func (s *session) decodeSegment() (*Segment, bool, error) {
	leadIn, err := dheader.Decode(s.reader)
	if err == io.EOF {
		return nil, false, io.EOF
	}
	if err != nil {
		return nil, false, err
	}

	size, err := s.reader.Size()
	if err != nil {
		return nil, false, err
	}
	last := false
	nextSegmentPosition := leadIn.NextSegmentPosition()
	if leadIn.NextSegmentOffset == dheader.UnknownNextSegmentOffset {
		nextSegmentPosition = uint64(size)
		last = true
		s.log.Debugw("segment runs to end of source", "position", leadIn.Position, "size", size)
	}
	if nextSegmentPosition > uint64(size) {
		return nil, false, derr.New(
			derr.KindTruncatedInput, leadIn.Position,
			"segment ends at %d, past the end of the source at %d", nextSegmentPosition, size,
		)
	}
	leadInEnd := uint64(leadIn.Position) + dheader.LeadInSize
	if nextSegmentPosition < leadInEnd || leadIn.DataPosition() < leadInEnd ||
		leadIn.DataPosition() > nextSegmentPosition {
		return nil, false, derr.New(
			derr.KindCorruptSegment, leadIn.Position,
			"raw data at %d and next segment at %d do not fit after the lead-in",
			leadIn.DataPosition(), nextSegmentPosition,
		)
	}

	if !leadIn.TOC.Has(dheader.TOCMetaData) {
		return nil, false, derr.New(
			derr.KindNotImplemented, leadIn.Position,
			"segment without metadata, toc %s", leadIn.TOC,
		)
	}
	objects, err := s.decodeObjectList(leadIn.TOC)
	if err != nil {
		err := errors.Wrapf(err, "dsegment.decodeSegment error: segment at %d", leadIn.Position)
		return nil, false, err
	}

	return &Segment{
		Position:            leadIn.Position,
		DataPosition:        leadIn.DataPosition(),
		NextSegmentPosition: nextSegmentPosition,
		TOC:                 leadIn.TOC,
		Objects:             objects,
	}, last, nil
}

func (s *session) decodeObjectList(toc dheader.TOCMask) ([]SegmentObject, error) {
	if !toc.Has(dheader.TOCNewObjList) {
		return nil, derr.New(
			derr.KindNotImplemented, s.reader.Pos(),
			"incremental object list, toc %s", toc,
		)
	}

	numObjects, err := s.reader.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "dsegment.decodeObjectList error: read object count")
		return nil, err
	}
	objects := make([]SegmentObject, 0)
	for i := uint32(0); i < numObjects; i++ {
		object, err := s.decodeObject()
		if err != nil {
			err := errors.Wrapf(err, "dsegment.decodeObjectList error: object %d of %d", i, numObjects)
			return nil, err
		}
		objects = append(objects, *object)
	}
	return objects, nil
}

func (s *session) decodeObject() (*SegmentObject, error) {
	path, err := s.reader.ReadString()
	if err != nil {
		err := errors.Wrap(err, "dsegment.decodeObject error: read object path")
		return nil, err
	}
	objectID := s.Paths.GetOrCreateID(path)

	headerOffset := s.reader.Pos()
	header, err := s.reader.ReadUint32()
	if err != nil {
		err := errors.Wrapf(err, `dsegment.decodeObject error: read raw data index header of "%s"`, path)
		return nil, err
	}

	object := SegmentObject{}
	switch header {
	case dindex.HeaderNoData:
		object = NoData(objectID)
	case dindex.HeaderMatchesPrevious:
		id, ok := s.Cache.Get(objectID)
		if !ok {
			return nil, derr.New(
				derr.KindMissingPreviousIndex, headerOffset,
				`object "%s" reuses a raw data index it never defined`, path,
			)
		}
		object = WithData(objectID, id)
	case dindex.HeaderFormatChangingScaler, dindex.HeaderDigitalLineScaler:
		return nil, derr.New(
			derr.KindNotImplemented, headerOffset,
			`object "%s" uses DAQmx raw data index 0x%X`, path, header,
		)
	default:
		record, err := dindex.Decode(s.reader)
		if err != nil {
			err := errors.Wrapf(err, `dsegment.decodeObject error: read raw data index of "%s"`, path)
			return nil, err
		}
		id := s.Indexes.Alloc(*record)
		s.Cache.Set(objectID, id)
		object = WithData(objectID, id)
	}

	properties, err := dprop.DecodeBlock(s.reader)
	if err != nil {
		err := errors.Wrapf(err, `dsegment.decodeObject error: read properties of "%s"`, path)
		return nil, err
	}
	s.Properties.Append(objectID, properties...)

	return &object, nil
}
