// Package compression provides utilities for extracting and decompressing plugin archives.
package compression

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxDecompressedSize caps decompressed output to prevent decompression bombs.
const maxDecompressedSize = 100 * 1024 * 1024

// ExtractResult contains the result of an extraction operation.
type ExtractResult struct {
	// Path to the extracted plugin file
	Path string
	// Whether the input was an archive (true) or a direct file (false)
	WasArchive bool
}

// InstallPlugin detects format and installs a plugin from file data.
// It handles:
// - Tar archives (.tar.gz, .tar.xz, .tar.bz2)
// - Zip archives (.zip)
// - Standalone compressed files (.gz, .xz, .bz2)
// - Raw uncompressed files (.py, .sh, binaries)
//
// Parameters:
//   - data: The plugin file data
//   - filename: Base filename (used for format detection and naming output)
//   - destDir: Destination directory for extracted files
//   - verbose: Whether to print extraction progress
//
// Returns the path to the installed plugin file.
func InstallPlugin(data []byte, filename, destDir string, verbose bool) (*ExtractResult, error) {
	archiveName := ArchiveBaseName(filename)

	switch {
	case strings.HasSuffix(filename, ".tar.gz"), strings.HasSuffix(filename, ".tgz"):
		return extractFromTar(data, newGzReader, archiveName, destDir, verbose)
	case strings.HasSuffix(filename, ".tar.xz"), strings.HasSuffix(filename, ".txz"):
		return extractFromTar(data, newXzReader, archiveName, destDir, verbose)
	case strings.HasSuffix(filename, ".tar.bz2"), strings.HasSuffix(filename, ".tbz"), strings.HasSuffix(filename, ".tbz2"):
		return extractFromTar(data, newBz2Reader, archiveName, destDir, verbose)
	case strings.HasSuffix(filename, ".zip"):
		return extractFromZip(data, archiveName, destDir, verbose)
	}

	// Check for standalone compressed files
	if before, ok := strings.CutSuffix(filename, ".gz"); ok {
		return decompress(data, newGzReader, before, destDir, verbose)
	}
	if before, ok := strings.CutSuffix(filename, ".xz"); ok {
		return decompress(data, newXzReader, before, destDir, verbose)
	}
	if before, ok := strings.CutSuffix(filename, ".bz2"); ok {
		return decompress(data, newBz2Reader, before, destDir, verbose)
	}

	// Not an archive - treat as direct plugin file
	destPath := filepath.Join(destDir, filename)

	// #nosec G306 -- Plugin executable needs exec permissions
	if err := os.WriteFile(destPath, data, 0o755); err != nil {
		return nil, fmt.Errorf("failed to write plugin file: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Saved plugin to: %s\n", destPath)
	}

	return &ExtractResult{
		Path:       destPath,
		WasArchive: false,
	}, nil
}

// ArchiveBaseName extracts the base name from an archive filename.
// For example: "lumen-plugin-calc_0.0.1_Linux_x86_64.tar.gz" -> "lumen-plugin-calc".
func ArchiveBaseName(filename string) string {
	// Remove extension
	base := filename
	for _, ext := range []string{".tar.gz", ".tgz", ".tar.xz", ".txz", ".tar.bz2", ".tbz", ".tbz2", ".zip", ".gz", ".xz", ".bz2"} {
		if before, ok := strings.CutSuffix(base, ext); ok {
			base = before
			break
		}
	}

	// Find the part before the first underscore
	if idx := strings.Index(base, "_"); idx > 0 {
		return base[:idx]
	}

	return base
}

// selectPriority ranks archive members when picking the plugin binary.
func selectPriority(name string, mode os.FileMode, archiveName string) int {
	// Priority 1: File matching archive name
	if filepath.Base(name) == archiveName {
		return 90
	}

	// Priority 2: Executable file
	if mode&0o111 != 0 {
		return 80
	}

	// Priority 3: Any regular file (fallback)
	return 10
}
