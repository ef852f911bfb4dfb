package dheader

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"tdms-savior/tdms/derr"
	"tdms-savior/tdms/lbytes"
)

func IsValidMagicNumber(bs []byte) bool {
	return len(bs) >= 4 && bytes.Equal(bs[:4], MagicNumberBytes)
}

// Decode reads a lead-in at the reader's position. It returns a bare io.EOF
// when the source ends exactly where a segment would start.
//
// The TOC mask is always little-endian; the rest of the segment follows the
// mask's byte order, so Decode switches the reader's byte order accordingly.
func Decode(reader *lbytes.Reader) (*LeadIn, error) {
	position := reader.Pos()
	magicNumberBytes, err := reader.ReadBytesOrEOF(4)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		err := errors.Wrap(err, "dheader.Decode error: read magic number")
		return nil, err
	}
	if !IsValidMagicNumber(magicNumberBytes) {
		return nil, derr.New(
			derr.KindInvalidSegmentHeader, position,
			`expected "%v", got "%v"`, MagicNumberBytes, magicNumberBytes,
		)
	}

	reader.SetByteOrder(lbytes.LittleEndian)
	toc, err := reader.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "dheader.Decode error: read toc mask")
		return nil, err
	}
	leadIn := LeadIn{
		Position: position,
		TOC:      TOCMask(toc),
	}
	if leadIn.TOC.Has(TOCBigEndian) {
		reader.SetByteOrder(lbytes.BigEndian)
	}

	leadIn.Version, err = reader.ReadInt32()
	if err != nil {
		err := errors.Wrap(err, "dheader.Decode error: read version")
		return nil, err
	}
	leadIn.NextSegmentOffset, err = reader.ReadUint64()
	if err != nil {
		err := errors.Wrap(err, "dheader.Decode error: read next segment offset")
		return nil, err
	}
	leadIn.RawDataOffset, err = reader.ReadUint64()
	if err != nil {
		err := errors.Wrap(err, "dheader.Decode error: read raw data offset")
		return nil, err
	}

	return &leadIn, nil
}
