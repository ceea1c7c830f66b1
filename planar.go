package rawpix

import (
	"context"
	"io"
)

// samplePlane holds one decoded plane at its native subsampled resolution.
type samplePlane struct {
	w       int
	h       int
	samples []uint16
}

func (p samplePlane) at(x, y, subX, subY int) uint16 {
	return p.samples[(y/subY)*p.w+x/subX]
}

// planarRenderer decodes planar YUV formats: a luma plane followed by two
// chroma planes, each with independent strides and subsampling. selectUV
// maps the decoded chroma planes to U and V, since formats differ in plane
// order.
type planarRenderer struct {
	format   *ImageFormat
	depth    int // bits per sample, 8 or 16
	selectUV func(c1, c2 samplePlane) (u, v samplePlane)
}

func uvInOrder(c1, c2 samplePlane) (samplePlane, samplePlane) { return c1, c2 }
func uvSwapped(c1, c2 samplePlane) (samplePlane, samplePlane) { return c2, c1 }

func init() {
	yuv420p8 := []PlaneDescriptor{
		{BytesPerUnit: 1, SubsampleX: 1, SubsampleY: 1},
		{BytesPerUnit: 1, SubsampleX: 2, SubsampleY: 2},
		{BytesPerUnit: 1, SubsampleX: 2, SubsampleY: 2},
	}
	yuv444p8 := []PlaneDescriptor{
		{BytesPerUnit: 1, SubsampleX: 1, SubsampleY: 1},
		{BytesPerUnit: 1, SubsampleX: 1, SubsampleY: 1},
		{BytesPerUnit: 1, SubsampleX: 1, SubsampleY: 1},
	}
	yuv444p16 := []PlaneDescriptor{
		{BytesPerUnit: 2, SubsampleX: 1, SubsampleY: 1},
		{BytesPerUnit: 2, SubsampleX: 1, SubsampleY: 1},
		{BytesPerUnit: 2, SubsampleX: 1, SubsampleY: 1},
	}

	register(&planarRenderer{
		format: &ImageFormat{
			Name:     "i420",
			Aliases:  []string{"yuv420p", "iyuv"},
			Category: CategoryYUV,
			Planes:   yuv420p8,
		},
		depth:    8,
		selectUV: uvInOrder,
	})
	register(&planarRenderer{
		format: &ImageFormat{
			Name:     "yv12",
			Category: CategoryYUV,
			Planes:   yuv420p8,
		},
		depth:    8,
		selectUV: uvSwapped,
	})
	register(&planarRenderer{
		format: &ImageFormat{
			Name:     "yuv444p",
			Aliases:  []string{"yuv444"},
			Category: CategoryYUV,
			Planes:   yuv444p8,
		},
		depth:    8,
		selectUV: uvInOrder,
	})
	register(&planarRenderer{
		format: &ImageFormat{
			Name:     "yuv444p16",
			Aliases:  []string{"yuv444-16"},
			Category: CategoryYUV,
			Planes:   yuv444p16,
		},
		depth:    16,
		selectUV: uvInOrder,
	})
}

func (p *planarRenderer) Format() *ImageFormat { return p.format }

func (p *planarRenderer) RenderedFormat() PixelFormat {
	if p.depth == 16 {
		return BGRA64
	}

	return BGRA32
}

func (p *planarRenderer) Render(ctx context.Context, src io.Reader, dst *Bitmap, opts *RenderOptions) (RenderResult, error) {
	if opts == nil {
		opts = defaultRenderOptions()
	}

	if err := checkBitmap(dst, p.RenderedFormat()); err != nil {
		return RenderResult{}, err
	}

	planeOpts, err := resolvePlaneOptions(p.format, dst.width, opts)
	if err != nil {
		return RenderResult{}, err
	}

	pix, unpin, err := dst.Pin()
	if err != nil {
		return RenderResult{}, err
	}
	defer unpin()

	// Planes are read sequentially from the stream, luma first.
	planes := make([]samplePlane, len(p.format.Planes))
	for i := range p.format.Planes {
		plane, ok := p.decodePlane(ctx, src, dst, i, planeOpts[i], opts.ByteOrder)
		if !ok {
			return RenderResult{Complete: false}, nil
		}

		planes[i] = plane
	}

	luma := planes[0]
	u, v := p.selectUV(planes[1], planes[2])
	subX, subY := p.format.Planes[1].SubsampleX, p.format.Planes[1].SubsampleY

	coeffs := yuvStandards[opts.Standard]

	var mid, ceil int64 = 128, 255
	if p.depth == 16 {
		mid, ceil = 32768, 65535
	}

	for y := 0; y < dst.height; y++ {
		if ctx.Err() != nil {
			return RenderResult{Complete: false}, nil
		}

		out := pix[y*dst.rowBytes:]

		for x := 0; x < dst.width; x++ {
			yy := int64(luma.at(x, y, 1, 1))
			uu := int64(u.at(x, y, subX, subY))
			vv := int64(v.at(x, y, subX, subY))

			b, g, r := yuvToBGR(yy, uu, vv, mid, ceil, coeffs)

			if p.depth == 16 {
				putBGRA64(out, x*8, uint16(b), uint16(g), uint16(r), 0xFFFF)
			} else {
				o := x * 4
				out[o], out[o+1], out[o+2], out[o+3] = uint8(b), uint8(g), uint8(r), 0xFF
			}
		}
	}

	return RenderResult{Complete: true}, nil
}

// decodePlane streams one plane row by row. The second return value is
// false when cancellation stopped the read.
func (p *planarRenderer) decodePlane(ctx context.Context, src io.Reader, dst *Bitmap, idx int, po PlaneOptions, order ByteOrder) (samplePlane, bool) {
	pw := p.format.PlaneWidth(idx, dst.width)
	ph := p.format.PlaneHeight(idx, dst.height)

	plane := samplePlane{w: pw, h: ph, samples: make([]uint16, pw*ph)}
	rows := newRowReader(src, po.RowStride)

	for y := 0; y < ph; y++ {
		if ctx.Err() != nil {
			return plane, false
		}

		row := rows.next()

		for x := 0; x < pw; x++ {
			off := x * po.PixelStride

			if p.depth == 16 {
				plane.samples[y*pw+x] = composeUint16(row[off], row[off+1], order)
			} else {
				plane.samples[y*pw+x] = uint16(row[off])
			}
		}
	}

	return plane, true
}

func putBGRA64(out []byte, o int, b, g, r, a uint16) {
	out[o], out[o+1] = uint8(b), uint8(b>>8)
	out[o+2], out[o+3] = uint8(g), uint8(g>>8)
	out[o+4], out[o+5] = uint8(r), uint8(r>>8)
	out[o+6], out[o+7] = uint8(a), uint8(a>>8)
}
