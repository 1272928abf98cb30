package probe

import (
	"errors"
	"fmt"
	"image"
	"os"

	// Register decoders used by image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"media-catalog/internal/mediatypes"
)

// ErrUnsupported is returned when a prober cannot read the given type.
var ErrUnsupported = errors.New("unsupported media type")

// Metadata holds the properties a prober could determine. Nil fields were
// not found.
type Metadata struct {
	Width    *int
	Height   *int
	Duration *float64
}

// Prober extracts media metadata from a file on disk.
type Prober interface {
	Probe(path string, fileType mediatypes.FileType) (Metadata, error)
}

// ImageProber reads image dimensions from the file header without decoding
// pixel data.
type ImageProber struct{}

// NewImageProber returns a prober for the image formats with a registered
// decoder.
func NewImageProber() *ImageProber {
	return &ImageProber{}
}

// Probe returns the width and height of an image. Other types yield
// ErrUnsupported.
func (p *ImageProber) Probe(path string, fileType mediatypes.FileType) (Metadata, error) {
	if fileType != mediatypes.FileTypeImage {
		return Metadata{}, ErrUnsupported
	}

	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Metadata{}, fmt.Errorf("%s: %w", path, ErrUnsupported)
		}
		return Metadata{}, fmt.Errorf("failed to read %s header: %w", format, err)
	}

	width, height := cfg.Width, cfg.Height
	return Metadata{Width: &width, Height: &height}, nil
}
