package rawpix

import (
	"context"
	"io"
)

// packed16Renderer decodes single-plane formats that pack a whole pixel
// into one 16-bit value.
type packed16Renderer struct {
	format *ImageFormat
	unpack func(v uint16) (b, g, r, a uint8)
}

func init() {
	register(&packed16Renderer{
		format: &ImageFormat{
			Name:     "argb1555",
			Aliases:  []string{"rgb555", "1555"},
			Category: CategoryARGB,
			Aligned:  true,
			Planes:   []PlaneDescriptor{{BytesPerUnit: 2, SubsampleX: 1, SubsampleY: 1}},
		},
		unpack: unpackARGB1555,
	})
	register(&packed16Renderer{
		format: &ImageFormat{
			Name:     "argb4444",
			Aliases:  []string{"rgb444", "4444"},
			Category: CategoryARGB,
			Aligned:  true,
			Planes:   []PlaneDescriptor{{BytesPerUnit: 2, SubsampleX: 1, SubsampleY: 1}},
		},
		unpack: unpackARGB4444,
	})
	register(&packed16Renderer{
		format: &ImageFormat{
			Name:     "rgb565",
			Aliases:  []string{"565"},
			Category: CategoryARGB,
			Aligned:  true,
			Planes:   []PlaneDescriptor{{BytesPerUnit: 2, SubsampleX: 1, SubsampleY: 1}},
		},
		unpack: unpackRGB565,
	})
}

func (p *packed16Renderer) Format() *ImageFormat        { return p.format }
func (p *packed16Renderer) RenderedFormat() PixelFormat { return BGRA32 }

func (p *packed16Renderer) Render(ctx context.Context, src io.Reader, dst *Bitmap, opts *RenderOptions) (RenderResult, error) {
	if opts == nil {
		opts = defaultRenderOptions()
	}

	if err := checkBitmap(dst, BGRA32); err != nil {
		return RenderResult{}, err
	}

	planes, err := resolvePlaneOptions(p.format, dst.width, opts)
	if err != nil {
		return RenderResult{}, err
	}

	po := planes[0]

	pix, unpin, err := dst.Pin()
	if err != nil {
		return RenderResult{}, err
	}
	defer unpin()

	rows := newRowReader(src, po.RowStride)

	for y := 0; y < dst.height; y++ {
		if ctx.Err() != nil {
			return RenderResult{Complete: false}, nil
		}

		row := rows.next()
		out := pix[y*dst.rowBytes:]

		for x := 0; x < dst.width; x++ {
			v := composeUint16(row[x*po.PixelStride], row[x*po.PixelStride+1], opts.ByteOrder)
			b, g, r, a := p.unpack(v)

			o := x * 4
			out[o], out[o+1], out[o+2], out[o+3] = b, g, r, a
		}
	}

	return RenderResult{Complete: true}, nil
}

// unpackARGB1555 expands 1/5/5/5 A/R/G/B bit fields. Five-bit channels are
// widened by a left shift into the high bits, one-bit alpha maps to 0/255.
func unpackARGB1555(v uint16) (b, g, r, a uint8) {
	if v&0x8000 != 0 {
		a = 0xFF
	}

	r = uint8(v>>10&0x1F) << 3
	g = uint8(v>>5&0x1F) << 3
	b = uint8(v&0x1F) << 3

	return b, g, r, a
}

// unpackARGB4444 expands 4/4/4/4 A/R/G/B nibbles by bit replication
// (n*17 maps 0x0..0xF onto 0x00..0xFF).
func unpackARGB4444(v uint16) (b, g, r, a uint8) {
	a = uint8(v>>12&0xF) * 17
	r = uint8(v>>8&0xF) * 17
	g = uint8(v>>4&0xF) * 17
	b = uint8(v&0xF) * 17

	return b, g, r, a
}

// unpackRGB565 expands 5/6/5 R/G/B bit fields; the format has no alpha,
// pixels decode opaque.
func unpackRGB565(v uint16) (b, g, r, a uint8) {
	r = uint8(v>>11&0x1F) << 3
	g = uint8(v>>5&0x3F) << 2
	b = uint8(v&0x1F) << 3
	a = 0xFF

	return b, g, r, a
}
