package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"

	"github.com/vearutop/rawpix"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "decode":
		if err := runDecode(os.Args[2:]); err != nil {
			fail(err)
		}
	case "formats":
		if err := runFormats(); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: rawpixtool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  decode  -in raw.bin -out out.png -format argb1555 -w 640 -h 480")
	fmt.Fprintln(os.Stderr, "          [-order le|be] [-pattern rggb|bggr|grbg|gbrg] [-no-demosaic]")
	fmt.Fprintln(os.Stderr, "          [-std 601|709] [-pixel-stride n] [-row-stride n] [-workers n] [-max-size n]")
	fmt.Fprintln(os.Stderr, "          (output type by extension: .png or .bmp; zstd-compressed input is detected)")
	fmt.Fprintln(os.Stderr, "  formats")
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	inPath := fs.String("in", "", "input raw pixel dump")
	outPath := fs.String("out", "", "output image (.png or .bmp)")
	format := fs.String("format", "", "source pixel format name")
	width := fs.Int("w", 0, "image width")
	height := fs.Int("h", 0, "image height")
	order := fs.String("order", "le", "sample byte order: le or be")
	pattern := fs.String("pattern", "rggb", "bayer pattern: rggb, bggr, grbg or gbrg")
	noDemosaic := fs.Bool("no-demosaic", false, "skip the demosaic pass for bayer formats")
	std := fs.String("std", "601", "yuv conversion standard: 601 or 709")
	pixelStride := fs.Int("pixel-stride", 0, "plane 0 pixel stride override, bytes")
	rowStride := fs.Int("row-stride", 0, "plane 0 row stride override, bytes")
	workers := fs.Int("workers", 0, "max demosaic workers, 0 for all CPUs")
	maxSize := fs.Int("max-size", 0, "downscale output to fit this size")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" || *format == "" || *width <= 0 || *height <= 0 {
		return errors.New("missing required arguments")
	}

	r, err := rawpix.LookupRenderer(*format)
	if err != nil {
		return err
	}

	byteOrder, err := parseOrder(*order)
	if err != nil {
		return err
	}
	bayerPattern, err := parsePattern(*pattern)
	if err != nil {
		return err
	}
	standard, err := parseStandard(*std)
	if err != nil {
		return err
	}

	f, err := os.Open(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := rawpix.NewSource(f)
	if err != nil {
		return err
	}

	buf, err := rawpix.NewBitmap(*width, *height, r.RenderedFormat())
	if err != nil {
		return err
	}

	res, err := rawpix.Render(context.Background(), *format, src, buf, func(opts *rawpix.RenderOptions) {
		opts.ByteOrder = byteOrder
		opts.Pattern = bayerPattern
		opts.Demosaic = !*noDemosaic
		opts.Standard = standard
		opts.MaxWorkers = *workers
		if *pixelStride != 0 || *rowStride != 0 {
			opts.Planes = make([]rawpix.PlaneOptions, len(r.Format().Planes))
			opts.Planes[0] = rawpix.PlaneOptions{PixelStride: *pixelStride, RowStride: *rowStride}
		}
	})
	if err != nil {
		return err
	}
	if !res.Complete {
		return errors.New("render incomplete")
	}

	var img image.Image
	if *maxSize > 0 {
		img = resize.Thumbnail(uint(*maxSize), uint(*maxSize), buf.Image(), resize.Bilinear)
	} else {
		img = buf.Image()
	}

	out, err := os.Create(filepath.Clean(*outPath))
	if err != nil {
		return err
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(*outPath)) {
	case ".bmp":
		return bmp.Encode(out, img)
	default:
		return png.Encode(out, img)
	}
}

func runFormats() error {
	type formatInfo struct {
		Name     string   `json:"name"`
		Aliases  []string `json:"aliases,omitempty"`
		Category string   `json:"category"`
		Planes   int      `json:"planes"`
		Output   string   `json:"output"`
	}

	infos := make([]formatInfo, 0)
	for _, name := range rawpix.Formats() {
		r, err := rawpix.LookupRenderer(name)
		if err != nil {
			return err
		}
		f := r.Format()
		infos = append(infos, formatInfo{
			Name:     f.Name,
			Aliases:  f.Aliases,
			Category: f.Category.String(),
			Planes:   len(f.Planes),
			Output:   r.RenderedFormat().String(),
		})
	}

	payload, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}

func parseOrder(s string) (rawpix.ByteOrder, error) {
	switch strings.ToLower(s) {
	case "le", "little":
		return rawpix.LittleEndian, nil
	case "be", "big":
		return rawpix.BigEndian, nil
	}
	return 0, fmt.Errorf("unknown byte order %q", s)
}

func parsePattern(s string) (rawpix.BayerPattern, error) {
	switch strings.ToLower(s) {
	case "rggb":
		return rawpix.PatternRGGB, nil
	case "bggr":
		return rawpix.PatternBGGR, nil
	case "grbg":
		return rawpix.PatternGRBG, nil
	case "gbrg":
		return rawpix.PatternGBRG, nil
	}
	return 0, fmt.Errorf("unknown bayer pattern %q", s)
}

func parseStandard(s string) (rawpix.YUVStandard, error) {
	switch s {
	case "601", "bt601":
		return rawpix.BT601, nil
	case "709", "bt709":
		return rawpix.BT709, nil
	}
	return 0, fmt.Errorf("unknown yuv standard %q", s)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
