package tiffio

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"path/filepath"
	"testing"
)

// testImage builds a deterministic opaque gradient.
func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func samePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	wb, gb := want.Bounds(), got.Bounds()
	if wb.Dx() != gb.Dx() || wb.Dy() != gb.Dy() {
		t.Fatalf("dimensions: got %dx%d, want %dx%d", gb.Dx(), gb.Dy(), wb.Dx(), wb.Dy())
	}
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			wr, wg, wbl, wa := want.At(wb.Min.X+x, wb.Min.Y+y).RGBA()
			gr, gg, gbl, ga := got.At(gb.Min.X+x, gb.Min.Y+y).RGBA()
			if wr != gr || wg != gg || wbl != gbl || wa != ga {
				t.Fatalf("pixel (%d,%d): got %v,%v,%v,%v want %v,%v,%v,%v",
					x, y, gr, gg, gbl, ga, wr, wg, wbl, wa)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	src := testImage(40, 30)
	path := filepath.Join(t.TempDir(), "img.tiff")

	if err := Write(src, path, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	samePixels(t, src, back)
}

func TestWriteTranspose(t *testing.T) {
	src := testImage(40, 30)
	path := filepath.Join(t.TempDir(), "img.tiff")

	if err := Write(src, path, &WriteOptions{Transpose: true}); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	b := back.Bounds()
	if b.Dx() != 30 || b.Dy() != 40 {
		t.Fatalf("transposed dimensions: got %dx%d, want 30x40", b.Dx(), b.Dy())
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			wr, wg, wb, wa := src.At(x, y).RGBA()
			gr, gg, gb, ga := back.At(y, x).RGBA()
			if wr != gr || wg != gg || wb != gb || wa != ga {
				t.Fatalf("pixel (%d,%d) not transposed", x, y)
			}
		}
	}
}

func TestWriteCreateParentDir(t *testing.T) {
	src := testImage(8, 8)
	path := filepath.Join(t.TempDir(), "a", "b", "c", "img.tiff")
	opt := &WriteOptions{CreateParentDir: true}

	if err := Write(src, path, opt); err != nil {
		t.Fatalf("first write: %v", err)
	}
	// Parent already exists now; creation must stay a no-op.
	if err := Write(src, path, opt); err != nil {
		t.Fatalf("second write: %v", err)
	}
	if _, err := Read(path); err != nil {
		t.Fatalf("read back: %v", err)
	}
}

func TestWriteMissingParentFails(t *testing.T) {
	src := testImage(8, 8)
	path := filepath.Join(t.TempDir(), "missing", "img.tiff")

	err := Write(src, path, nil)
	if err == nil {
		t.Fatal("expected error for missing parent directory")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.tiff"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestWriteOverwrites(t *testing.T) {
	first := testImage(16, 16)
	second := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			second.SetNRGBA(x, y, color.NRGBA{R: 200, G: 10, B: 30, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "img.tiff")

	if err := Write(first, path, nil); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := Write(second, path, nil); err != nil {
		t.Fatalf("second write: %v", err)
	}
	back, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	samePixels(t, second, back)
}
