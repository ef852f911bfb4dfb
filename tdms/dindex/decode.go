package dindex

import (
	"math/bits"

	"github.com/pkg/errors"

	"tdms-savior/tdms/derr"
	"tdms-savior/tdms/dtype"
	"tdms-savior/tdms/lbytes"
)

// Decode reads an inline shape: data type, dimension, value count and, for
// strings only, the total byte size.
func Decode(reader *lbytes.Reader) (*RawDataIndex, error) {
	dataType, err := dtype.Read(reader)
	if err != nil {
		err := errors.Wrap(err, "dindex.Decode error: read data type")
		return nil, err
	}

	dimensionOffset := reader.Pos()
	dimension, err := reader.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "dindex.Decode error: read dimension")
		return nil, err
	}
	if dimension != 1 {
		return nil, derr.New(derr.KindInvalidDimension, dimensionOffset, "dimension must be 1, got %d", dimension)
	}

	countOffset := reader.Pos()
	numberOfValues, err := reader.ReadUint64()
	if err != nil {
		err := errors.Wrap(err, "dindex.Decode error: read number of values")
		return nil, err
	}

	dataSize := uint64(0)
	if width, ok := dataType.Width(); ok {
		hi, size := bits.Mul64(uint64(width), numberOfValues)
		if hi != 0 {
			return nil, derr.New(
				derr.KindCorruptSegment, countOffset,
				"%d values of %d bytes overflow the raw data size", numberOfValues, width,
			)
		}
		dataSize = size
	} else if dataType == dtype.String {
		dataSize, err = reader.ReadUint64()
		if err != nil {
			err := errors.Wrap(err, "dindex.Decode error: read string data size")
			return nil, err
		}
	} else {
		return nil, derr.New(derr.KindNotImplemented, dimensionOffset-4, "raw data of type %s", dataType)
	}

	return &RawDataIndex{
		DataType:       dataType,
		NumberOfValues: numberOfValues,
		DataSize:       dataSize,
	}, nil
}
