package rawpix

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd frame magic per RFC 8878.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// NewSource wraps a raw pixel stream, transparently decompressing it when
// it is a zstd-framed dump. Plain streams pass through buffered.
func NewSource(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(zstdMagic))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return br, nil
		}

		return nil, err
	}

	if !bytes.Equal(head, zstdMagic) {
		return br, nil
	}

	zr, err := zstd.NewReader(br)
	if err != nil {
		return nil, err
	}

	return zr.IOReadCloser(), nil
}
