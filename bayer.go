package rawpix

import (
	"context"
	"fmt"
	"io"
)

// bayerChannel identifies which color channel a mosaic position samples.
type bayerChannel uint8

const (
	chanBlue bayerChannel = iota
	chanGreen
	chanRed
)

// byte offset of each channel inside a BGRA64 pixel.
var channelOffset = [3]int{chanBlue: 0, chanGreen: 2, chanRed: 4}

// bayerGrid is a periodic mosaic arrangement. Width and height must be
// powers of two so positions reduce to mask lookups.
type bayerGrid struct {
	w     int
	h     int
	cells []bayerChannel
}

func (g bayerGrid) at(x, y int) bayerChannel {
	return g.cells[(y&(g.h-1))*g.w+x&(g.w-1)]
}

var bayerGrids = map[BayerPattern]bayerGrid{
	PatternRGGB: {w: 2, h: 2, cells: []bayerChannel{chanRed, chanGreen, chanGreen, chanBlue}},
	PatternBGGR: {w: 2, h: 2, cells: []bayerChannel{chanBlue, chanGreen, chanGreen, chanRed}},
	PatternGRBG: {w: 2, h: 2, cells: []bayerChannel{chanGreen, chanRed, chanBlue, chanGreen}},
	PatternGBRG: {w: 2, h: 2, cells: []bayerChannel{chanGreen, chanBlue, chanRed, chanGreen}},
}

// bayerRenderer decodes a single-channel sensor mosaic, writing each sample
// into only its native channel, then optionally reconstructs the two
// missing channels per pixel by averaging same-channel neighbors.
//
// Sensor data commonly exceeds 8 bits and the demosaic averaging benefits
// from headroom, so the output is always 16-bit BGRA.
type bayerRenderer struct {
	format *ImageFormat
	depth  int // bits per sample, 8 or 16
}

func init() {
	register(&bayerRenderer{
		format: &ImageFormat{
			Name:     "bayer8",
			Aliases:  []string{"bayer", "raw8"},
			Category: CategoryBayer,
			Planes:   []PlaneDescriptor{{BytesPerUnit: 1, SubsampleX: 1, SubsampleY: 1}},
		},
		depth: 8,
	})
	register(&bayerRenderer{
		format: &ImageFormat{
			Name:     "bayer16",
			Aliases:  []string{"raw16"},
			Category: CategoryBayer,
			Planes:   []PlaneDescriptor{{BytesPerUnit: 2, SubsampleX: 1, SubsampleY: 1}},
		},
		depth: 16,
	})
}

func (r *bayerRenderer) Format() *ImageFormat        { return r.format }
func (r *bayerRenderer) RenderedFormat() PixelFormat { return BGRA64 }

func (r *bayerRenderer) Render(ctx context.Context, src io.Reader, dst *Bitmap, opts *RenderOptions) (RenderResult, error) {
	if opts == nil {
		opts = defaultRenderOptions()
	}

	if err := checkBitmap(dst, BGRA64); err != nil {
		return RenderResult{}, err
	}

	grid, ok := bayerGrids[opts.Pattern]
	if !ok {
		return RenderResult{}, fmt.Errorf("unknown bayer pattern %d", opts.Pattern)
	}

	planes, err := resolvePlaneOptions(r.format, dst.width, opts)
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
			var v uint16

			if r.depth == 16 {
				v = composeUint16(row[x*po.PixelStride], row[x*po.PixelStride+1], opts.ByteOrder)
			} else {
				// Byte replication widens 8-bit samples to 16 bits.
				v = uint16(row[x*po.PixelStride]) * 257
			}

			o := x * 8
			for i := o; i < o+6; i++ {
				out[i] = 0
			}

			co := o + channelOffset[grid.at(x, y)]
			out[co], out[co+1] = uint8(v), uint8(v>>8)
			out[o+6], out[o+7] = 0xFF, 0xFF
		}
	}

	if !opts.Demosaic {
		return RenderResult{Complete: true}, nil
	}

	// Each row only reads the native channels of its 3x3 neighborhood,
	// which the sweep never writes, so rows are independent.
	complete := parallelRows(ctx, dst.height, opts.MaxWorkers, func(y int) {
		r.demosaicRow(grid, pix, dst, y)
	})

	return RenderResult{Complete: complete}, nil
}

// demosaicRow fills the two channels not natively sampled at each pixel of
// row y with the mean of same-channel values among the up-to-8 immediate
// neighbors. Neighbors outside the buffer and neighbors sharing the
// center's native channel are skipped; with no qualifying neighbors the
// channel stays zero.
func (r *bayerRenderer) demosaicRow(grid bayerGrid, pix []byte, dst *Bitmap, y int) {
	for x := 0; x < dst.width; x++ {
		native := grid.at(x, y)

		var (
			sum [3]uint32
			cnt [3]uint32
		)

		for dy := -1; dy <= 1; dy++ {
			ny := y + dy
			if ny < 0 || ny >= dst.height {
				continue
			}

			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}

				nx := x + dx
				if nx < 0 || nx >= dst.width {
					continue
				}

				ch := grid.at(nx, ny)
				if ch == native {
					continue
				}

				no := ny*dst.rowBytes + nx*8 + channelOffset[ch]
				sum[ch] += uint32(pix[no]) | uint32(pix[no+1])<<8
				cnt[ch]++
			}
		}

		o := y*dst.rowBytes + x*8

		for ch := chanBlue; ch <= chanRed; ch++ {
			if ch == native || cnt[ch] == 0 {
				continue
			}

			v := uint16(sum[ch] / cnt[ch])
			co := o + channelOffset[ch]
			pix[co], pix[co+1] = uint8(v), uint8(v>>8)
		}
	}
}
