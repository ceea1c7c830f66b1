package rawpix

// yuvCoeffs holds full-range YUV to RGB conversion factors in 16.16 fixed
// point, applied to chroma offsets from the mid value.
type yuvCoeffs struct {
	rv int64
	gu int64
	gv int64
	bu int64
}

var yuvStandards = map[YUVStandard]yuvCoeffs{
	// Same factors the standard library uses for JPEG-range BT.601.
	BT601: {rv: 91881, gu: 22554, gv: 46802, bu: 116130},
	BT709: {rv: 103206, gu: 12276, gv: 30679, bu: 121608},
}

// yuvToBGR converts one sample triple to clamped B,G,R values. The caller
// passes mid and ceil for the sample depth (128/255 or 32768/65535); the
// int64 intermediates keep full precision for 16-bit samples.
func yuvToBGR(y, u, v int64, mid, ceil int64, c yuvCoeffs) (int64, int64, int64) {
	u -= mid
	v -= mid

	r := y + (c.rv*v >> 16)
	g := y - ((c.gu*u + c.gv*v) >> 16)
	b := y + (c.bu*u >> 16)

	return clampSample(b, ceil), clampSample(g, ceil), clampSample(r, ceil)
}

func clampSample(v, ceil int64) int64 {
	if v < 0 {
		return 0
	}

	if v > ceil {
		return ceil
	}

	return v
}
