package rawpix

import (
	"bytes"
	"context"
	"testing"
)

func TestRenderBayerMosaicOnly(t *testing.T) {
	// RGGB 2x2: R=10 G=20 / G=30 B=40.
	data := []byte{10, 20, 30, 40}

	dst := mustBitmap(t, 2, 2, BGRA64)

	renderBytes(t, "bayer8", data, dst, func(opts *RenderOptions) {
		opts.Demosaic = false
	})

	cases := []struct {
		x, y int
		want [4]uint16 // B,G,R,A
	}{
		{0, 0, [4]uint16{0, 0, 10 * 257, 0xFFFF}},
		{1, 0, [4]uint16{0, 20 * 257, 0, 0xFFFF}},
		{0, 1, [4]uint16{0, 30 * 257, 0, 0xFFFF}},
		{1, 1, [4]uint16{40 * 257, 0, 0, 0xFFFF}},
	}

	for _, tc := range cases {
		if got := pixelAt64(dst, tc.x, tc.y); got != tc.want {
			t.Fatalf("pixel (%d,%d): got %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRenderBayerFlatRoundTrip(t *testing.T) {
	// A flat mosaic must demosaic back to the flat color exactly: the mean
	// of identical neighbor values is that value.
	patterns := []struct {
		name    string
		pattern BayerPattern
	}{
		{name: "rggb", pattern: PatternRGGB},
		{name: "bggr", pattern: PatternBGGR},
		{name: "grbg", pattern: PatternGRBG},
		{name: "gbrg", pattern: PatternGBRG},
	}

	for _, tc := range patterns {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			const w, h = 4, 4

			data := bytes.Repeat([]byte{100}, w*h)

			dst := mustBitmap(t, w, h, BGRA64)

			renderBytes(t, "bayer8", data, dst, func(opts *RenderOptions) {
				opts.Pattern = tc.pattern
			})

			want := [4]uint16{100 * 257, 100 * 257, 100 * 257, 0xFFFF}

			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if got := pixelAt64(dst, x, y); got != want {
						t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestRenderBayerNeighborMeans(t *testing.T) {
	// RGGB 2x2: R=10 G=20 / G=30 B=40, all widened by 257.
	data := []byte{10, 20, 30, 40}

	dst := mustBitmap(t, 2, 2, BGRA64)

	renderBytes(t, "bayer8", data, dst)

	cases := []struct {
		x, y int
		want [4]uint16
	}{
		// Red site: G = mean(20,30), B = 40.
		{0, 0, [4]uint16{40 * 257, 25 * 257, 10 * 257, 0xFFFF}},
		// Green site on red row: R = 10, B = 40, same-channel green skipped.
		{1, 0, [4]uint16{40 * 257, 20 * 257, 10 * 257, 0xFFFF}},
		{0, 1, [4]uint16{40 * 257, 30 * 257, 10 * 257, 0xFFFF}},
		// Blue site: G = mean(20,30), R = 10.
		{1, 1, [4]uint16{40 * 257, 25 * 257, 10 * 257, 0xFFFF}},
	}

	for _, tc := range cases {
		if got := pixelAt64(dst, tc.x, tc.y); got != tc.want {
			t.Fatalf("pixel (%d,%d): got %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRenderBayerSinglePixel(t *testing.T) {
	// No qualifying neighbors: the missing channels stay zero.
	dst := mustBitmap(t, 1, 1, BGRA64)

	renderBytes(t, "bayer8", []byte{200}, dst)

	if got, want := pixelAt64(dst, 0, 0), ([4]uint16{0, 0, 200 * 257, 0xFFFF}); got != want {
		t.Fatalf("pixel mismatch: got %v, want %v", got, want)
	}
}

func TestRenderBayer16ByteOrder(t *testing.T) {
	cases := []struct {
		name  string
		data  []byte
		order ByteOrder
	}{
		{name: "le", data: []byte{0x34, 0x12}, order: LittleEndian},
		{name: "be", data: []byte{0x12, 0x34}, order: BigEndian},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			dst := mustBitmap(t, 1, 1, BGRA64)

			renderBytes(t, "bayer16", tc.data, dst, func(opts *RenderOptions) {
				opts.ByteOrder = tc.order
			})

			if got, want := pixelAt64(dst, 0, 0), ([4]uint16{0, 0, 0x1234, 0xFFFF}); got != want {
				t.Fatalf("pixel mismatch: got %v, want %v", got, want)
			}
		})
	}
}

func TestRenderBayerWorkerDeterminism(t *testing.T) {
	const w, h = 16, 16

	data := make([]byte, w*h)
	for i := range data {
		data[i] = byte(i*7 + 13)
	}

	decode := func(workers int) []byte {
		dst := mustBitmap(t, w, h, BGRA64)

		renderBytes(t, "bayer8", data, dst, func(opts *RenderOptions) {
			opts.MaxWorkers = workers
		})

		return dst.pix
	}

	single := decode(1)

	for _, workers := range []int{2, 4, 8} {
		if !bytes.Equal(decode(workers), single) {
			t.Fatalf("output differs with %d workers", workers)
		}
	}
}

func TestRenderBayerCancellation(t *testing.T) {
	const w, h = 4, 8

	data := bytes.Repeat([]byte{100}, w*h)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &cancelAfter{src: bytes.NewReader(data), cancel: cancel, after: 3}

	dst := mustBitmap(t, w, h, BGRA64)

	res, err := Render(ctx, "bayer8", src, dst)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if res.Complete {
		t.Fatalf("cancelled render reported complete")
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < w; x++ {
			if pixelAt64(dst, x, y)[3] != 0xFFFF {
				t.Fatalf("row %d missing mosaic write", y)
			}
		}
	}

	for y := 3; y < h; y++ {
		for x := 0; x < w; x++ {
			if got := pixelAt64(dst, x, y); got != ([4]uint16{}) {
				t.Fatalf("row %d written after cancellation: %v", y, got)
			}
		}
	}
}

func BenchmarkRenderBayerDemosaic(b *testing.B) {
	const w, h = 256, 256

	data := make([]byte, w*h)
	for i := range data {
		data[i] = byte(i)
	}

	dst := mustBitmap(b, w, h, BGRA64)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Render(context.Background(), "bayer8", bytes.NewReader(data), dst); err != nil {
			b.Fatal(err)
		}
	}
}
