package lbytes

import (
	"bytes"
	"io"
	"math"
	"unicode/utf8"

	"tdms-savior/tdms/derr"
)

// NewReader wraps source, which is assumed to be positioned at offset 0.
// Reads are little-endian until SetByteOrder says otherwise.
func NewReader(source io.ReadSeeker) *Reader {
	return &Reader{
		source: source,
		order:  LittleEndian,
		pos:    0,
	}
}

func NewBytesReader(bs []byte) *Reader {
	return NewReader(bytes.NewReader(bs))
}

func (r *Reader) Pos() int64 {
	return r.pos
}

func (r *Reader) ByteOrder() Engine {
	return r.order
}

func (r *Reader) SetByteOrder(order Engine) {
	r.order = order
}

func (r *Reader) Seek(pos int64) error {
	n, err := r.source.Seek(pos, io.SeekStart)
	if err != nil {
		return derr.Wrap(derr.KindIo, pos, err)
	}
	r.pos = n
	return nil
}

// Size reports the total length of the source and leaves the position
// unchanged.
func (r *Reader) Size() (int64, error) {
	end, err := r.source.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, derr.Wrap(derr.KindIo, r.pos, err)
	}
	if _, err := r.source.Seek(r.pos, io.SeekStart); err != nil {
		return 0, derr.Wrap(derr.KindIo, r.pos, err)
	}
	return end, nil
}

// ReadBytesOrEOF is ReadBytes, except that finding no byte at all returns a
// bare io.EOF instead of a truncation error. It marks a clean end of stream.
func (r *Reader) ReadBytesOrEOF(n int) ([]byte, error) {
	bs := make([]byte, n)
	read, err := io.ReadFull(r.source, bs)
	if read == 0 && err == io.EOF {
		return nil, io.EOF
	}
	return r.finishRead(bs, n, read, err)
}

// maxEagerRead is the largest read allocated up front. Longer lengths come
// from the file itself and may exceed it, so they grow with the data read.
const maxEagerRead = 1 << 16

func (r *Reader) ReadBytes(n int) ([]byte, error) {
	// return early so reading nothing at the end of the source is not an EOF
	if n == 0 {
		return []byte{}, nil
	}
	if n > maxEagerRead {
		bs, err := io.ReadAll(io.LimitReader(r.source, int64(n)))
		if err == nil && len(bs) < n {
			err = io.ErrUnexpectedEOF
		}
		return r.finishRead(bs, n, len(bs), err)
	}
	bs := make([]byte, n)
	read, err := io.ReadFull(r.source, bs)
	return r.finishRead(bs, n, read, err)
}

func (r *Reader) finishRead(bs []byte, want int, read int, err error) ([]byte, error) {
	start := r.pos
	r.pos += int64(read)
	switch {
	case err == nil:
		return bs, nil
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return nil, derr.New(
			derr.KindTruncatedInput, start,
			"wanted %d bytes, got %d", want, read,
		)
	default:
		return nil, derr.Wrap(derr.KindIo, start, err)
	}
}

func (r *Reader) ReadUint8() (uint8, error) {
	bs, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	bs, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(bs), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	bs, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(bs), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	bs, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(bs), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadString reads a u32 byte length followed by that many bytes of UTF-8.
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	start := r.pos
	bs, err := r.ReadBytes(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bs) {
		return "", derr.New(derr.KindInvalidString, start, "%d bytes are not valid UTF-8", length)
	}
	return string(bs), nil
}
