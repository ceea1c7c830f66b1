package rawpix

import "errors"

var (
	// ErrInvalidDimensions reports a zero or negative image size.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidStride reports plane strides that violate
	// pixelStride*width <= rowStride or undercut the sample size.
	ErrInvalidStride = errors.New("invalid stride")
	// ErrUnknownFormat reports a format name with no registered renderer.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrPixelFormat reports a bitmap whose pixel format does not match
	// what the renderer writes. This is a caller defect, not a data error.
	ErrPixelFormat = errors.New("pixel format mismatch")
	// ErrBufferPinned reports a second Pin on an already pinned bitmap.
	ErrBufferPinned = errors.New("bitmap already pinned")
)
