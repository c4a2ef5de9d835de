package hprccatalog

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType compares the leading bytes of a stream against a set of known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
//
// Short inputs (a header-only sheet can be a handful of bytes) are matched
// only against signatures that fit.
func DetectDataType(head []byte) DataType {
Outer:
	for dt, sig := range byteCodeSigs {
		if len(head) < len(sig) {
			continue
		}
		for position := range sig {
			if head[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompressReadCloser peeks at the start of rc and, if it carries a known
// compression signature, returns a reader over the decompressed content.
// Closing the returned reader closes rc.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	// Peek returns what it could alongside io.EOF for short streams, which is
	// fine: an empty or tiny file is simply uncompressed.
	head, err := br.Peek(6)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		rc.Close()
		return nil, err
	}

	var r io.Reader
	switch DetectDataType(head) {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, err
		}
		r = gz
	case DataTypeZip:
		// A zipped sheet is expected to hold the one table we want, first.
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			rc.Close()
			return nil, err
		}
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		x, err := xz.NewReader(br, 0)
		if err != nil {
			rc.Close()
			return nil, err
		}
		r = x
	case DataTypeZ:
		rc.Close()
		return nil, errors.New("unix compress (.Z) streams are not supported; recompress with gzip")
	default:
		r = br
	}

	return &chainedReadCloser{Reader: r, closer: rc}, nil
}

// chainedReadCloser reads from a (possibly decompressing) wrapper but closes
// the underlying source.
type chainedReadCloser struct {
	io.Reader
	closer io.Closer
}

func (c *chainedReadCloser) Close() error {
	return c.closer.Close()
}
