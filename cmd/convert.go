package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/tiffio-cli/internal/scan"
	"github.com/AnyUserName/tiffio-cli/internal/tiffio"
	"github.com/spf13/cobra"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	convertTranspose bool
	convertParents   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert an image or a directory of images to TIFF",
	Long: `Decodes the input (tiff, png, jpg, jpeg, gif, bmp, webp) and writes
it as TIFF at the output path.

If input is a directory, every recognized image under it is converted,
mirroring the relative directory tree under the output directory.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVarP(&convertTranspose, "transpose", "t", false, "transpose pixels (rows become columns)")
	convertCmd.Flags().BoolVarP(&convertParents, "parents", "p", false, "create missing parent directories of the output")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	input, output := args[0], args[1]
	start := time.Now()

	absInput, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	info, err := os.Stat(absInput)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	opt := &tiffio.WriteOptions{
		CreateParentDir: convertParents,
		Transpose:       convertTranspose,
	}

	if !info.IsDir() {
		img, err := decodeImage(absInput)
		if err != nil {
			return err
		}
		if err := tiffio.Write(img, output, opt); err != nil {
			return err
		}
		logVerbose("wrote %s (%s)", output, time.Since(start).Round(time.Millisecond))
		return nil
	}

	sources, err := scan.Images(absInput)
	if err != nil {
		return fmt.Errorf("scan %s: %w", input, err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no images found in %s", input)
	}

	// Mirroring the tree means output subdirectories may not exist yet.
	treeOpt := &tiffio.WriteOptions{
		CreateParentDir: true,
		Transpose:       convertTranspose,
	}

	var inBytes, outBytes int64
	for _, src := range sources {
		logVerbose("converting: %s", src.RelPath)

		img, err := decodeImage(src.AbsPath)
		if err != nil {
			return err
		}
		outPath := filepath.Join(output, filepath.FromSlash(src.Key)+".tiff")
		if err := tiffio.Write(img, outPath, treeOpt); err != nil {
			return err
		}

		inBytes += src.Size
		if fi, err := os.Stat(outPath); err == nil {
			outBytes += fi.Size()
		}
	}

	fmt.Printf("  Converted:   %d images\n", len(sources))
	fmt.Printf("  Input size:  %s\n", formatBytes(inBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(outBytes))
	fmt.Printf("  Time:        %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// decodeImage opens and decodes any registered raster format.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
