package tdms

import (
	"github.com/pkg/errors"

	"tdms-savior/ds"
	"tdms-savior/tdms/derr"
	"tdms-savior/tdms/dpath"
	"tdms-savior/tdms/dsample"
	"tdms-savior/tdms/dsegment"
)

// Open decodes the metadata of every segment in source. Samples are not
// read until a channel asks for them, so source must stay open as long as
// the returned File is used.
func Open(source Source, opts ...dsegment.Option) (*File, error) {
	index, err := dsegment.Decode(source, opts...)
	if err != nil {
		err := errors.Wrap(err, "tdms.Open error")
		return nil, err
	}
	file := &File{
		index:     index,
		extractor: dsample.NewExtractor(source, index),
		objects:   make(map[string]*Object),
		groups:    ds.NewLinkedHashMap[string, *Group](),
	}
	file.buildHierarchy()
	return file, nil
}

// buildHierarchy groups objects by path in first-seen order. A channel whose
// group was never declared gets an undeclared group without properties.
// Objects with a malformed path stay reachable through Object and Paths only.
func (r *File) buildHierarchy() {
	r.root = r.newObject(dpath.Build(), []string{}, 0, false)
	for i, path := range r.index.Paths.Paths() {
		components, err := dpath.Parse(path)
		if err != nil {
			object := r.newObject(path, nil, dpath.ID(i), true)
			object.kind = dpath.KindUnknown
			r.objects[path] = object
			continue
		}
		object := r.newObject(path, components, dpath.ID(i), true)
		switch dpath.KindOf(components) {
		case dpath.KindRoot:
			r.root = object
		case dpath.KindGroup:
			group := r.group(components[0])
			group.Object = object
		case dpath.KindChannel:
			group := r.group(components[0])
			group.channels.Put(components[1], &Channel{Object: object, group: group})
		}
		r.objects[path] = object
	}
}

func (r *File) newObject(path string, components []string, id dpath.ID, declared bool) *Object {
	return &Object{
		file:       r,
		id:         id,
		declared:   declared,
		kind:       dpath.KindOf(components),
		path:       path,
		components: components,
	}
}

func (r *File) group(name string) *Group {
	return r.groups.GetOrPut(
		name,
		func() *Group {
			return &Group{
				Object:   r.newObject(dpath.Build(name), []string{name}, 0, false),
				channels: ds.NewLinkedHashMap[string, *Channel](),
			}
		},
	)
}

func (r *File) Root() *Object {
	return r.root
}

func (r *File) Groups() []*Group {
	return r.groups.Values()
}

func (r *File) Group(name string) (*Group, error) {
	group, ok := r.groups.Get(name)
	if !ok {
		return nil, derr.New(derr.KindNotFound, -1, `group "%s"`, name)
	}
	return group, nil
}

// Channel looks a channel up by group and channel name.
func (r *File) Channel(groupName string, channelName string) (*Channel, error) {
	group, err := r.Group(groupName)
	if err != nil {
		return nil, err
	}
	return group.Channel(channelName)
}

// Object looks up any declared object by its full path.
func (r *File) Object(path string) (*Object, error) {
	object, ok := r.objects[path]
	if !ok {
		return nil, derr.New(derr.KindNotFound, -1, `object "%s"`, path)
	}
	return object, nil
}

// Paths lists every object path in the order it was first declared.
func (r *File) Paths() []string {
	return r.index.Paths.Paths()
}

func (r *File) Segments() []dsegment.Segment {
	return ds.ShallowCopy(r.index.Segments)
}

func (r *File) Index() *dsegment.Index {
	return r.index
}
