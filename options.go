package rawpix

import "fmt"

// PlaneOptions overrides the strides used to read one source plane.
// Zero fields keep the defaults derived from the plane descriptor.
type PlaneOptions struct {
	// PixelStride is the byte distance between consecutive sample starts
	// within a row.
	PixelStride int
	// RowStride is the byte distance between consecutive row starts.
	RowStride int
}

// RenderOptions carries per-call rendering configuration. A fresh value is
// built for every Render call; renderers never retain it.
type RenderOptions struct {
	// ByteOrder composes multi-byte samples. Little-endian by default.
	ByteOrder ByteOrder
	// Pattern selects the Bayer mosaic arrangement.
	Pattern BayerPattern
	// Demosaic reconstructs missing color channels after the mosaic pass.
	Demosaic bool
	// Standard selects YUV to RGB conversion coefficients.
	Standard YUVStandard
	// MaxWorkers caps the demosaic worker count. Zero uses all CPUs.
	MaxWorkers int
	// Planes overrides per-plane strides. Empty keeps format defaults;
	// otherwise the length must match the format's plane count.
	Planes []PlaneOptions
}

func defaultRenderOptions() *RenderOptions {
	return &RenderOptions{Demosaic: true}
}

// resolvePlaneOptions merges caller overrides with descriptor defaults and
// enforces the stride invariants once, before any buffer writes.
func resolvePlaneOptions(f *ImageFormat, width int, opts *RenderOptions) ([]PlaneOptions, error) {
	if len(opts.Planes) != 0 && len(opts.Planes) != len(f.Planes) {
		return nil, fmt.Errorf("%w: format %s has %d planes, options carry %d",
			ErrInvalidStride, f.Name, len(f.Planes), len(opts.Planes))
	}

	out := make([]PlaneOptions, len(f.Planes))

	for i, d := range f.Planes {
		pw := f.PlaneWidth(i, width)
		po := PlaneOptions{PixelStride: d.BytesPerUnit}

		if len(opts.Planes) != 0 && opts.Planes[i].PixelStride != 0 {
			po.PixelStride = opts.Planes[i].PixelStride
		}

		po.RowStride = po.PixelStride * pw

		if f.Aligned {
			po.RowStride = (po.RowStride + 3) &^ 3
		}

		if len(opts.Planes) != 0 && opts.Planes[i].RowStride != 0 {
			po.RowStride = opts.Planes[i].RowStride
		}

		if po.PixelStride < d.BytesPerUnit {
			return nil, fmt.Errorf("%w: plane %d pixel stride %d is below sample size %d",
				ErrInvalidStride, i, po.PixelStride, d.BytesPerUnit)
		}

		if po.PixelStride*pw > po.RowStride {
			return nil, fmt.Errorf("%w: plane %d pixel stride %d times width %d exceeds row stride %d",
				ErrInvalidStride, i, po.PixelStride, pw, po.RowStride)
		}

		out[i] = po
	}

	return out, nil
}
