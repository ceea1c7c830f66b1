// Package rawpix renders raw pixel data into caller-owned BGRA bitmaps.
//
// It implements a family of stateless decoders for packed ARGB formats
// (ARGB1555, ARGB4444, RGB565), planar YUV formats (I420, YV12, YUV444P,
// YUV444P16) and Bayer sensor mosaics with optional demosaicing. Decoders
// stream the source row by row, tolerate truncated input and support
// cooperative cancellation through a context.
package rawpix
