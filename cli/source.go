package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"

	"tdms-savior/tdms"
	"tdms-savior/tdms/dheader"
)

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

// OpenSource opens a TDMS file for decoding. Archives ending in .gz, .zst
// or .lz4 are inflated into memory since decoding needs to seek.
func OpenSource(path string) (tdms.Source, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		err := errors.Wrapf(err, `cli.OpenSource error: open "%s"`, path)
		return nil, nil, err
	}

	var inflate func(io.Reader) (io.Reader, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		inflate = func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		}
	case ".zst":
		inflate = func(r io.Reader) (io.Reader, error) {
			decoder, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return decoder.IOReadCloser(), nil
		}
	case ".lz4":
		inflate = func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		}
	}

	if inflate == nil {
		if err := checkMagicNumber(f); err != nil {
			f.Close()
			return nil, nil, errors.Wrapf(err, `cli.OpenSource error: "%s"`, path)
		}
		return f, f, nil
	}

	defer f.Close()
	reader, err := inflate(f)
	if err != nil {
		err := errors.Wrapf(err, `cli.OpenSource error: inflate "%s"`, path)
		return nil, nil, err
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}
	bs, err := io.ReadAll(reader)
	if err != nil {
		err := errors.Wrapf(err, `cli.OpenSource error: inflate "%s"`, path)
		return nil, nil, err
	}
	source := bytes.NewReader(bs)
	if err := checkMagicNumber(source); err != nil {
		return nil, nil, errors.Wrapf(err, `cli.OpenSource error: "%s"`, path)
	}
	return source, nopCloser{}, nil
}

func checkMagicNumber(source io.ReadSeeker) error {
	bs := make([]byte, 4)
	n, err := io.ReadFull(source, bs)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}
	if !dheader.IsValidMagicNumber(bs[:n]) {
		return errors.Errorf(`not a TDMS file: starts with "%v"`, bs[:n])
	}
	_, err = source.Seek(0, io.SeekStart)
	return err
}
