package cmd

import (
	"fmt"
	"image"
	"os"

	"github.com/AnyUserName/tiffio-cli/internal/hasher"
	"github.com/AnyUserName/tiffio-cli/internal/tiffio"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <tiff_path>",
	Short: "Display dimensions, size, and content hash of a TIFF file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	path := args[0]

	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	img, err := tiffio.Read(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	hash, err := hasher.ContentHashReader(f, 0)
	if err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}

	b := img.Bounds()
	opaque := "yes"
	if hasAlpha(img) {
		opaque = "no"
	}

	fmt.Println()
	fmt.Printf("  File:         %s\n", path)
	fmt.Printf("  Size:         %s\n", formatBytes(fi.Size()))
	fmt.Printf("  Dimensions:   %d × %d\n", b.Dx(), b.Dy())
	fmt.Printf("  Aspect ratio: %.4f\n", float64(b.Dx())/float64(b.Dy()))
	fmt.Printf("  Opaque:       %s\n", opaque)
	fmt.Printf("  xxHash64:     %s\n", hash)
	fmt.Println()
	return nil
}

// hasAlpha reports whether any pixel is not fully opaque.
func hasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.RGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.Gray, *image.Gray16:
		return false
	default:
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if a < 65535 {
					return true
				}
			}
		}
		return false
	}
}
