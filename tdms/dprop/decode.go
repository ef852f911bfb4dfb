package dprop

import (
	"github.com/pkg/errors"

	"tdms-savior/tdms/dtype"
	"tdms-savior/tdms/lbytes"
)

func Decode(reader *lbytes.Reader) (*Property, error) {
	name, err := reader.ReadString()
	if err != nil {
		err := errors.Wrap(err, "dprop.Decode error: read property name")
		return nil, err
	}
	dataType, err := dtype.Read(reader)
	if err != nil {
		err := errors.Wrapf(err, `dprop.Decode error: read type of property "%s"`, name)
		return nil, err
	}
	value, err := dtype.ReadValue(reader, dataType)
	if err != nil {
		err := errors.Wrapf(err, `dprop.Decode error: read value of property "%s"`, name)
		return nil, err
	}

	return &Property{
		Name:     name,
		DataType: dataType,
		Value:    value,
	}, nil
}

// DecodeBlock reads a u32 property count and that many properties.
func DecodeBlock(reader *lbytes.Reader) ([]Property, error) {
	numProperties, err := reader.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "dprop.DecodeBlock error: read property count")
		return nil, err
	}
	properties := make([]Property, 0)
	for i := uint32(0); i < numProperties; i++ {
		property, err := Decode(reader)
		if err != nil {
			err := errors.Wrapf(err, "dprop.DecodeBlock error: property %d of %d", i, numProperties)
			return nil, err
		}
		properties = append(properties, *property)
	}
	return properties, nil
}
