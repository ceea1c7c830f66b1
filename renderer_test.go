package rawpix

import (
	"errors"
	"sort"
	"testing"
)

func TestFormats(t *testing.T) {
	names := Formats()

	if !sort.StringsAreSorted(names) {
		t.Fatalf("formats not sorted: %v", names)
	}

	want := []string{"argb1555", "argb4444", "bayer16", "bayer8", "i420", "rgb565", "yuv444p", "yuv444p16", "yv12"}

	if len(names) != len(want) {
		t.Fatalf("formats: got %v, want %v", names, want)
	}

	for i, name := range want {
		if names[i] != name {
			t.Fatalf("formats: got %v, want %v", names, want)
		}
	}
}

func TestLookupRenderer(t *testing.T) {
	t.Run("alias", func(t *testing.T) {
		r, err := LookupRenderer("rgb555")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}

		if r.Format().Name != "argb1555" {
			t.Fatalf("alias resolved to %s", r.Format().Name)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		r, err := LookupRenderer("ARGB4444")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}

		if r.Format().Name != "argb4444" {
			t.Fatalf("lookup resolved to %s", r.Format().Name)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := LookupRenderer("nv12"); !errors.Is(err, ErrUnknownFormat) {
			t.Fatalf("got %v, want ErrUnknownFormat", err)
		}
	})
}

func TestRenderedFormats(t *testing.T) {
	cases := map[string]PixelFormat{
		"argb1555":  BGRA32,
		"argb4444":  BGRA32,
		"rgb565":    BGRA32,
		"i420":      BGRA32,
		"yuv444p16": BGRA64,
		"bayer8":    BGRA64,
		"bayer16":   BGRA64,
	}

	for name, want := range cases {
		r, err := LookupRenderer(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}

		if got := r.RenderedFormat(); got != want {
			t.Fatalf("%s renders %s, want %s", name, got, want)
		}
	}
}
