package rawpix

// FormatCategory groups image formats by their plane semantics.
type FormatCategory int

const (
	CategoryARGB FormatCategory = iota
	CategoryYUV
	CategoryBayer
)

func (c FormatCategory) String() string {
	switch c {
	case CategoryARGB:
		return "argb"
	case CategoryYUV:
		return "yuv"
	case CategoryBayer:
		return "bayer"
	default:
		return "unknown"
	}
}

// ByteOrder selects how multi-byte packed samples are composed.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// PixelFormat identifies the bitmap memory layout.
type PixelFormat int

const (
	// BGRA32 is 8 bits per channel, 4 bytes per pixel, B,G,R,A byte order.
	BGRA32 PixelFormat = iota
	// BGRA64 is 16 bits per channel, 8 bytes per pixel, B,G,R,A channel
	// order with little-endian channel values.
	BGRA64
)

func (f PixelFormat) String() string {
	switch f {
	case BGRA32:
		return "bgra32"
	case BGRA64:
		return "bgra64"
	default:
		return "unknown"
	}
}

// BytesPerPixel returns the pixel size in bytes.
func (f PixelFormat) BytesPerPixel() int {
	if f == BGRA64 {
		return 8
	}

	return 4
}

// BayerPattern selects one of the four canonical 2x2 mosaic arrangements.
type BayerPattern int

const (
	PatternRGGB BayerPattern = iota
	PatternBGGR
	PatternGRBG
	PatternGBRG
)

// YUVStandard selects the coefficients used for YUV to RGB conversion.
type YUVStandard int

const (
	BT601 YUVStandard = iota
	BT709
)

// PlaneDescriptor describes one source plane of a format.
type PlaneDescriptor struct {
	// BytesPerUnit is the byte width of a single sample, used to derive
	// default pixel and row strides.
	BytesPerUnit int
	// SubsampleX and SubsampleY are the horizontal and vertical sampling
	// divisors relative to the image size (1 for full resolution).
	SubsampleX int
	SubsampleY int
}

// ImageFormat is an immutable source format descriptor. Instances are
// created once at registry initialization and never mutated.
type ImageFormat struct {
	Name     string
	Aliases  []string
	Category FormatCategory
	// Aligned rounds default source row strides up to a 4-byte boundary.
	Aligned bool
	Planes  []PlaneDescriptor
}

// PlaneWidth returns the sample count per row of plane i for an image width.
func (f *ImageFormat) PlaneWidth(i, width int) int {
	return subsampled(width, f.Planes[i].SubsampleX)
}

// PlaneHeight returns the row count of plane i for an image height.
func (f *ImageFormat) PlaneHeight(i, height int) int {
	return subsampled(height, f.Planes[i].SubsampleY)
}

func subsampled(v, div int) int {
	return (v + div - 1) / div
}
