package tdms

import (
	"github.com/pkg/errors"

	"tdms-savior/tdms/derr"
	"tdms-savior/tdms/dpath"
	"tdms-savior/tdms/dprop"
	"tdms-savior/tdms/dsample"
	"tdms-savior/tdms/dtype"
)

func (r *Object) Path() string {
	return r.path
}

// Name is the last path component, or "/" for the root.
func (r *Object) Name() string {
	if len(r.components) == 0 {
		return r.path
	}
	return r.components[len(r.components)-1]
}

func (r *Object) Kind() dpath.Kind {
	return r.kind
}

// Declared is false for a root or group that is only implied by the paths
// of its children.
func (r *Object) Declared() bool {
	return r.declared
}

// Properties lists every property decoded for the object, including values
// repeated by later segments.
func (r *Object) Properties() []dprop.Property {
	if !r.declared {
		return []dprop.Property{}
	}
	return r.file.index.Properties.All(r.id)
}

// Property returns the latest value of the named property.
func (r *Object) Property(name string) (dprop.Property, bool) {
	if !r.declared {
		return dprop.Property{}, false
	}
	return r.file.index.Properties.Latest(r.id, name)
}

func (r *Group) Channels() []*Channel {
	return r.channels.Values()
}

func (r *Group) Channel(name string) (*Channel, error) {
	channel, ok := r.channels.Get(name)
	if !ok {
		return nil, derr.New(derr.KindNotFound, -1, `channel "%s" in group "%s"`, name, r.Name())
	}
	return channel, nil
}

func (r *Channel) Group() *Group {
	return r.group
}

// DataType is false for a channel that never carries samples.
func (r *Channel) DataType() (dtype.DataType, bool, error) {
	return r.file.extractor.DataType(r.id)
}

// Len is the number of samples across all segments.
func (r *Channel) Len() (uint64, error) {
	count, err := r.file.extractor.Count(r.id)
	if err != nil {
		err := errors.Wrapf(err, `tdms.Channel.Len error: "%s"`, r.path)
		return 0, err
	}
	return count, nil
}

// ReadAll returns every sample as a typed slice such as []float64 or
// []time.Time, or nil when the channel has no data.
func (r *Channel) ReadAll() (any, error) {
	values, err := r.file.extractor.Values(r.id)
	if err != nil {
		err := errors.Wrapf(err, `tdms.Channel.ReadAll error: "%s"`, r.path)
		return nil, err
	}
	return values, nil
}

// ReadFloat64 widens numeric samples to float64 for plotting.
func (r *Channel) ReadFloat64() ([]float64, error) {
	values, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return dsample.ToFloat64s(values)
}

// ReadChannels reads several channels concurrently.
func (r *File) ReadChannels(channels ...*Channel) ([]any, error) {
	ids := make([]dpath.ID, 0, len(channels))
	for _, channel := range channels {
		if channel.file != r {
			return nil, derr.New(derr.KindNotFound, -1, `channel "%s" belongs to another file`, channel.path)
		}
		ids = append(ids, channel.id)
	}
	values, err := r.extractor.ValuesMany(ids...)
	if err != nil {
		err := errors.Wrap(err, "tdms.File.ReadChannels error")
		return nil, err
	}
	return values, nil
}
