package icon

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/webp" // Register WebP format
)

// Load validates that a path points at a usable icon file. Raster formats
// (PNG, JPEG, GIF, WebP, BMP) are validated by decoding their header; SVG
// files pass on extension since the launcher renders them itself.
func Load(path string) error {
	if path == "" {
		return fmt.Errorf("icon path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("icon file does not exist: %s", path)
		}
		return fmt.Errorf("failed to stat icon file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("icon path is a directory: %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return nil
	}

	f, err := os.Open(path) // #nosec G304 - Icon path supplied by the user on purpose
	if err != nil {
		return fmt.Errorf("failed to open icon file: %w", err)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return fmt.Errorf("unsupported icon format: %w", err)
	}
	return nil
}
