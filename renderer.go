package rawpix

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// RenderResult reports how a render call ended.
type RenderResult struct {
	// Complete is false when cancellation stopped the render before every
	// row was written. The buffer then holds a valid partial image.
	Complete bool
}

// Renderer decodes one source format into a caller-owned bitmap. Renderers
// hold no per-call state and are safe for concurrent use against different
// buffers.
type Renderer interface {
	// Format returns the source format descriptor.
	Format() *ImageFormat
	// RenderedFormat is the pixel format the renderer writes.
	RenderedFormat() PixelFormat
	// Render streams src into dst. Truncated input is not an error: missing
	// rows decode as transparent black. Cancellation is not an error either;
	// it yields a result with Complete set to false.
	Render(ctx context.Context, src io.Reader, dst *Bitmap, opts *RenderOptions) (RenderResult, error)
}

var registry = map[string]Renderer{}

func register(r Renderer) {
	f := r.Format()
	registry[f.Name] = r

	for _, a := range f.Aliases {
		registry[a] = r
	}
}

// LookupRenderer resolves a format name or alias, case-insensitively.
func LookupRenderer(name string) (Renderer, error) {
	r, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}

	return r, nil
}

// Formats returns the canonical names of all registered formats, sorted.
func Formats() []string {
	seen := map[string]bool{}
	names := make([]string, 0, len(registry))

	for _, r := range registry {
		name := r.Format().Name
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// Render decodes src into dst using the renderer registered for format.
func Render(ctx context.Context, format string, src io.Reader, dst *Bitmap, optFns ...func(*RenderOptions)) (RenderResult, error) {
	r, err := LookupRenderer(format)
	if err != nil {
		return RenderResult{}, err
	}

	opts := defaultRenderOptions()
	for _, fn := range optFns {
		fn(opts)
	}

	return r.Render(ctx, src, dst, opts)
}

func checkBitmap(dst *Bitmap, want PixelFormat) error {
	if dst == nil || dst.width <= 0 || dst.height <= 0 {
		return ErrInvalidDimensions
	}

	if dst.format != want {
		return fmt.Errorf("%w: buffer is %s, renderer writes %s", ErrPixelFormat, dst.format, want)
	}

	return nil
}

// rowReader reads fixed-size rows from a stream. Once the stream runs out,
// the short tail is zero-filled and every later row reads as all zeros, so
// truncated input decodes deterministically.
type rowReader struct {
	src io.Reader
	buf []byte
	eof bool
}

func newRowReader(src io.Reader, rowStride int) *rowReader {
	return &rowReader{src: src, buf: make([]byte, rowStride)}
}

func (r *rowReader) next() []byte {
	if r.eof {
		for i := range r.buf {
			r.buf[i] = 0
		}

		return r.buf
	}

	n, err := io.ReadFull(r.src, r.buf)
	if err != nil {
		for i := n; i < len(r.buf); i++ {
			r.buf[i] = 0
		}

		r.eof = true
	}

	return r.buf
}

// composeUint16 builds a 16-bit sample from two stream bytes.
func composeUint16(b1, b2 byte, order ByteOrder) uint16 {
	if order == BigEndian {
		return uint16(b1)<<8 | uint16(b2)
	}

	return uint16(b2)<<8 | uint16(b1)
}
