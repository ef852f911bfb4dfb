package tdms

import (
	"io"

	"tdms-savior/ds"
	"tdms-savior/tdms/dpath"
	"tdms-savior/tdms/dsample"
	"tdms-savior/tdms/dsegment"
)

type (
	// Source is what Open reads from; *os.File and *bytes.Reader fit.
	Source interface {
		io.ReadSeeker
		io.ReaderAt
	}
	File struct {
		index     *dsegment.Index
		extractor *dsample.Extractor
		root      *Object
		objects   map[string]*Object
		groups    *ds.LinkedHashMap[string, *Group]
	}
	Object struct {
		file       *File
		id         dpath.ID
		declared   bool
		kind       dpath.Kind
		path       string
		components []string
	}
	Group struct {
		*Object
		channels *ds.LinkedHashMap[string, *Channel]
	}
	Channel struct {
		*Object
		group *Group
	}
)
