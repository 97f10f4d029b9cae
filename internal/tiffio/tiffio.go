// Package tiffio reads and writes TIFF files as in-memory images.
// It is a thin facade over the golang.org/x/image/tiff codec: decode and
// encode failures surface to the caller unchanged, wrapped only for context.
package tiffio

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
)

// WriteOptions controls the optional pre-processing steps of Write.
// The zero value writes the image as-is to an existing directory.
type WriteOptions struct {
	// CreateParentDir creates all missing directories in the destination's
	// parent path before writing. Already-existing directories are fine.
	CreateParentDir bool
	// Transpose flips the image over its top-left to bottom-right diagonal
	// before encoding, so rows become columns.
	Transpose bool
}

// Read decodes the TIFF file at path into an image.
func Read(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Write encodes img as TIFF at path, overwriting any existing file.
// A nil opt is equivalent to the zero WriteOptions.
func Write(img image.Image, path string, opt *WriteOptions) error {
	if opt == nil {
		opt = &WriteOptions{}
	}

	if opt.Transpose {
		img = imaging.Transpose(img)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	if opt.CreateParentDir {
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	f, err := os.Create(abs)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := tiff.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
