package probe

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"media-catalog/internal/mediatypes"
)

func writeImage(t *testing.T, path string, w, h int, encode func(*os.File, image.Image) error) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
}

func TestImageProber(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "a.png")
	bmpPath := filepath.Join(dir, "b.bmp")

	writeImage(t, pngPath, 40, 30, func(f *os.File, img image.Image) error { return png.Encode(f, img) })
	writeImage(t, bmpPath, 12, 8, func(f *os.File, img image.Image) error { return bmp.Encode(f, img) })

	tests := []struct {
		name   string
		path   string
		width  int
		height int
	}{
		{"png", pngPath, 40, 30},
		{"bmp", bmpPath, 12, 8},
	}

	p := NewImageProber()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := p.Probe(tt.path, mediatypes.FileTypeImage)
			if err != nil {
				t.Fatalf("Probe() failed: %v", err)
			}
			if md.Width == nil || md.Height == nil {
				t.Fatal("expected dimensions")
			}
			if *md.Width != tt.width || *md.Height != tt.height {
				t.Errorf("got %dx%d, want %dx%d", *md.Width, *md.Height, tt.width, tt.height)
			}
			if md.Duration != nil {
				t.Error("images have no duration")
			}
		})
	}
}

func TestImageProberUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	p := NewImageProber()
	if _, err := p.Probe(path, mediatypes.FileTypeImage); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Probe(garbage) error = %v, want ErrUnsupported", err)
	}
	if _, err := p.Probe(path, mediatypes.FileTypeVideo); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Probe(video) error = %v, want ErrUnsupported", err)
	}
	if _, err := p.Probe(filepath.Join(dir, "missing.png"), mediatypes.FileTypeImage); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Probe(missing) error = %v, want ErrNotExist", err)
	}
}
