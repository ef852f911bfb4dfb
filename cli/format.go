package cli

import (
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"

	"tdms-savior/tdms"
	"tdms-savior/tdms/dprop"
	"tdms-savior/tdms/dtype"
)

// jsonValue keeps values encoding/json can't marshal (complex numbers) as
// text.
func jsonValue(value any) any {
	switch v := value.(type) {
	case complex64, complex128:
		return fmt.Sprint(v)
	}
	return value
}

func propertiesMap(properties []dprop.Property) *orderedmap.OrderedMap {
	om := orderedmap.New()
	for _, property := range properties {
		om.Set(property.Name, jsonValue(property.Value))
	}
	return om
}

func channelMap(channel *tdms.Channel) (*orderedmap.OrderedMap, error) {
	om := orderedmap.New()
	length, err := channel.Len()
	if err != nil {
		return nil, err
	}
	dataType, ok, err := channel.DataType()
	if err != nil {
		return nil, err
	}
	if ok {
		om.Set("data_type", dataType.String())
	} else {
		om.Set("data_type", nil)
	}
	om.Set("length", length)
	om.Set("properties", propertiesMap(channel.Properties()))
	return om, nil
}

// ToJSON describes the whole file, keeping declaration order everywhere.
func ToJSON(file *tdms.File) ([]byte, error) {
	root := orderedmap.New()
	root.Set("properties", propertiesMap(file.Root().Properties()))
	groups := orderedmap.New()
	for _, group := range file.Groups() {
		groupMap := orderedmap.New()
		groupMap.Set("properties", propertiesMap(group.Properties()))
		channels := orderedmap.New()
		for _, channel := range group.Channels() {
			om, err := channelMap(channel)
			if err != nil {
				return nil, errors.Wrapf(err, `cli.ToJSON error: channel "%s"`, channel.Path())
			}
			channels.Set(channel.Name(), om)
		}
		groupMap.Set("channels", channels)
		groups.Set(group.Name(), groupMap)
	}
	root.Set("groups", groups)
	return root.MarshalJSON()
}

func writeProperties(out io.Writer, indent string, properties []dprop.Property) error {
	for _, property := range properties {
		_, err := fmt.Fprintf(out, "%s%s = %s (%s)\n", indent, property.Name, dtype.Format(property.Value), property.DataType)
		if err != nil {
			return err
		}
	}
	return nil
}

func WriteSummary(file *tdms.File, out io.Writer) error {
	fmt.Fprintf(out, "%d segments, %d objects\n", len(file.Segments()), len(file.Paths()))
	if err := writeProperties(out, "  ", file.Root().Properties()); err != nil {
		return err
	}
	for _, group := range file.Groups() {
		fmt.Fprintf(out, "Group %s\n", group.Name())
		if err := writeProperties(out, "  ", group.Properties()); err != nil {
			return err
		}
		for _, channel := range group.Channels() {
			length, err := channel.Len()
			if err != nil {
				return err
			}
			dataType, ok, err := channel.DataType()
			if err != nil {
				return err
			}
			typeName := "no data"
			if ok {
				typeName = dataType.String()
			}
			fmt.Fprintf(out, "  Channel %s [%s, %d values]\n", channel.Name(), typeName, length)
			if err := writeProperties(out, "    ", channel.Properties()); err != nil {
				return err
			}
		}
	}
	return nil
}
