// Package scan discovers raster images under a directory tree.
package scan

import (
	"os"
	"path/filepath"
	"strings"
)

// Source is a discovered input image.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the scanned root.
	RelPath string
	// Key is the relative path without extension, forward-slashed.
	Key string
	// Size is the file size in bytes.
	Size int64
}

// rasterExtensions lists file extensions the converter accepts as input.
var rasterExtensions = map[string]bool{
	".tiff": true,
	".tif":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// Images walks root and returns every recognized raster image, in walk
// order. Hidden directories are skipped.
func Images(root string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !rasterExtensions[ext] {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Key:     filepath.ToSlash(strings.TrimSuffix(relPath, ext)),
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}
