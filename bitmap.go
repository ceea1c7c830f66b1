package rawpix

import (
	"image"
	"sync/atomic"
)

// Bitmap is the caller-owned output surface of a render call. Renderers
// write into it in place and never resize or reallocate it.
type Bitmap struct {
	width    int
	height   int
	rowBytes int
	format   PixelFormat
	pix      []byte
	pinned   atomic.Bool
}

// NewBitmap allocates a bitmap with the tight row stride for the format.
func NewBitmap(width, height int, format PixelFormat) (*Bitmap, error) {
	return NewBitmapStride(width, height, width*format.BytesPerPixel(), format)
}

// NewBitmapStride allocates a bitmap with an explicit row byte stride,
// which may exceed width*bytesPerPixel for alignment padding.
func NewBitmapStride(width, height, rowBytes int, format PixelFormat) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	if rowBytes < width*format.BytesPerPixel() {
		return nil, ErrInvalidStride
	}

	return &Bitmap{
		width:    width,
		height:   height,
		rowBytes: rowBytes,
		format:   format,
		pix:      make([]byte, rowBytes*height),
	}, nil
}

func (b *Bitmap) Width() int          { return b.width }
func (b *Bitmap) Height() int         { return b.height }
func (b *Bitmap) RowBytes() int       { return b.rowBytes }
func (b *Bitmap) Format() PixelFormat { return b.format }

// Pin grants temporary exclusive access to the pixel memory. The returned
// release function must be called on every exit path; a second Pin before
// release fails with ErrBufferPinned.
func (b *Bitmap) Pin() ([]byte, func(), error) {
	if !b.pinned.CompareAndSwap(false, true) {
		return nil, nil, ErrBufferPinned
	}

	return b.pix, func() { b.pinned.Store(false) }, nil
}

// Image copies the bitmap into a standard library image. BGRA32 maps to
// *image.NRGBA, BGRA64 to *image.NRGBA64.
func (b *Bitmap) Image() image.Image {
	r := image.Rect(0, 0, b.width, b.height)

	if b.format == BGRA64 {
		img := image.NewNRGBA64(r)

		for y := 0; y < b.height; y++ {
			src := b.pix[y*b.rowBytes:]
			dst := img.Pix[y*img.Stride:]

			for x := 0; x < b.width; x++ {
				si, di := x*8, x*8
				bl := uint16(src[si]) | uint16(src[si+1])<<8
				g := uint16(src[si+2]) | uint16(src[si+3])<<8
				rd := uint16(src[si+4]) | uint16(src[si+5])<<8
				a := uint16(src[si+6]) | uint16(src[si+7])<<8

				// NRGBA64 stores big-endian R,G,B,A.
				dst[di], dst[di+1] = uint8(rd>>8), uint8(rd)
				dst[di+2], dst[di+3] = uint8(g>>8), uint8(g)
				dst[di+4], dst[di+5] = uint8(bl>>8), uint8(bl)
				dst[di+6], dst[di+7] = uint8(a>>8), uint8(a)
			}
		}

		return img
	}

	img := image.NewNRGBA(r)

	for y := 0; y < b.height; y++ {
		src := b.pix[y*b.rowBytes:]
		dst := img.Pix[y*img.Stride:]

		for x := 0; x < b.width; x++ {
			si, di := x*4, x*4
			dst[di], dst[di+1], dst[di+2], dst[di+3] = src[si+2], src[si+1], src[si], src[si+3]
		}
	}

	return img
}
