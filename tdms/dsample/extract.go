package dsample

import (
	"io"
	"reflect"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"tdms-savior/ds"
	"tdms-savior/tdms/derr"
	"tdms-savior/tdms/dpath"
	"tdms-savior/tdms/dsegment"
	"tdms-savior/tdms/dtype"
	"tdms-savior/tdms/lbytes"
)

// Extractor reads samples through an io.ReaderAt, so one Extractor may serve
// several goroutines at once.
type Extractor struct {
	source io.ReaderAt
	index  *dsegment.Index
}

func NewExtractor(source io.ReaderAt, index *dsegment.Index) *Extractor {
	return &Extractor{
		source: source,
		index:  index,
	}
}

// Count is the total number of samples of object across all segments.
func (r *Extractor) Count(object dpath.ID) (uint64, error) {
	plans, err := MakePlans(r.index, object)
	if err != nil {
		return 0, errors.Wrap(err, "dsample.Count error")
	}
	return lo.Reduce(
		plans,
		func(total uint64, plan Plan, _ int) uint64 {
			return total + plan.ChunkCount*plan.Record.NumberOfValues
		},
		uint64(0),
	), nil
}

// DataType is the type of the first shape object defined, or false if it
// never carries data.
func (r *Extractor) DataType(object dpath.ID) (dtype.DataType, bool, error) {
	plans, err := MakePlans(r.index, object)
	if err != nil {
		return dtype.Void, false, errors.Wrap(err, "dsample.DataType error")
	}
	if len(plans) == 0 {
		return dtype.Void, false, nil
	}
	return plans[0].Record.DataType, true, nil
}

// Values returns every sample of object as a typed slice, for example
// []float32 or []string. An object without data yields nil.
func (r *Extractor) Values(object dpath.ID) (any, error) {
	plans, err := MakePlans(r.index, object)
	if err != nil {
		return nil, errors.Wrap(err, "dsample.Values error")
	}
	if len(plans) == 0 {
		return nil, nil
	}

	dataType := plans[0].Record.DataType
	var values reflect.Value
	for _, plan := range plans {
		if plan.Record.DataType != dataType {
			return nil, derr.New(
				derr.KindCorruptSegment, plan.Segment.Position,
				"object changes type from %s to %s", dataType, plan.Record.DataType,
			)
		}
		segmentValues, err := r.readPlan(plan)
		if err != nil {
			return nil, errors.Wrapf(err, "dsample.Values error: segment at %d", plan.Segment.Position)
		}
		if !values.IsValid() {
			values = reflect.ValueOf(segmentValues)
		} else {
			values = reflect.AppendSlice(values, reflect.ValueOf(segmentValues))
		}
	}
	return values.Interface(), nil
}

// ValuesMany extracts several objects concurrently. Results follow the
// order of objects.
func (r *Extractor) ValuesMany(objects ...dpath.ID) ([]any, error) {
	results := make([]any, len(objects))
	errs := make([]error, len(objects))
	var wg sync.WaitGroup
	for i, object := range objects {
		wg.Add(1)
		go func(i int, object dpath.ID) {
			defer wg.Done()
			results[i], errs[i] = r.Values(object)
		}(i, object)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (r *Extractor) readPlan(plan Plan) (any, error) {
	order := lbytes.LittleEndian
	if plan.Segment.BigEndian() {
		order = lbytes.BigEndian
	}
	if plan.Record.DataType == dtype.String {
		return r.readStrings(order, plan)
	}

	bs := make([]byte, 0)
	for k := uint64(0); k < plan.ChunkCount; k++ {
		if plan.Segment.Interleaved() {
			chunk, err := r.readAt(plan.ChunkStart(k), plan.ChunkSize)
			if err != nil {
				return nil, err
			}
			column, err := pickColumn(chunk, plan)
			if err != nil {
				return nil, err
			}
			bs = append(bs, column...)
			continue
		}
		chunk, err := r.readAt(plan.ChunkStart(k)+plan.ObjectOffset, plan.Record.DataSize)
		if err != nil {
			return nil, err
		}
		bs = append(bs, chunk...)
	}
	return dtype.DecodeValues(order, plan.Record.DataType, bs)
}

func pickColumn(chunk []byte, plan Plan) ([]byte, error) {
	w, _ := plan.Record.DataType.Width()
	width := uint64(w)
	rows := plan.Record.NumberOfValues
	if plan.RowWidth == 0 || rows > uint64(len(chunk))/plan.RowWidth {
		return nil, derr.New(
			derr.KindCorruptSegment, plan.Segment.Position,
			"%d interleaved rows of %d bytes do not fit in %d bytes", rows, plan.RowWidth, len(chunk),
		)
	}
	column := make([]byte, 0, plan.Record.DataSize)
	for _, row := range ds.MakeRange(0, rows, 1) {
		start := row*plan.RowWidth + plan.ColumnOffset
		column = append(column, chunk[start:start+width]...)
	}
	return column, nil
}

// Each chunk of a string object holds one u32 end offset per value followed
// by the concatenated UTF-8 payload.
func (r *Extractor) readStrings(order lbytes.Engine, plan Plan) ([]string, error) {
	count := plan.Record.NumberOfValues
	values := make([]string, 0)
	for k := uint64(0); k < plan.ChunkCount; k++ {
		start := plan.ChunkStart(k) + plan.ObjectOffset
		chunk, err := r.readAt(start, plan.Record.DataSize)
		if err != nil {
			return nil, err
		}
		if count > uint64(len(chunk))/4 {
			return nil, derr.New(derr.KindCorruptSegment, int64(start), "%d string offsets do not fit in %d bytes", count, len(chunk))
		}
		payload := chunk[4*count:]
		previous := uint64(0)
		for i := uint64(0); i < count; i++ {
			end := uint64(order.Uint32(chunk[4*i:]))
			if end < previous || end > uint64(len(payload)) {
				return nil, derr.New(derr.KindCorruptSegment, int64(start+4*i), "string end offset %d out of range", end)
			}
			s := payload[previous:end]
			if !utf8.Valid(s) {
				return nil, derr.New(derr.KindInvalidString, int64(start+4*count+previous), "string %d is not valid UTF-8", i)
			}
			values = append(values, string(s))
			previous = end
		}
	}
	return values, nil
}

func (r *Extractor) readAt(offset uint64, size uint64) ([]byte, error) {
	bs := make([]byte, size)
	n, err := r.source.ReadAt(bs, int64(offset))
	if n == len(bs) {
		return bs, nil
	}
	if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, derr.New(derr.KindTruncatedInput, int64(offset), "wanted %d bytes, got %d", size, n)
	}
	return nil, derr.Wrap(derr.KindIo, int64(offset), err)
}
