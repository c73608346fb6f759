package compression

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mobock/lumen/internal/security"
)

// extractFromTar extracts a plugin from a compressed tar archive. The open
// function supplies the decompression layer (gzip, xz or bzip2).
func extractFromTar(data []byte, open func([]byte) (io.Reader, error), archiveName, destDir string, verbose bool) (*ExtractResult, error) {
	r, err := open(data)
	if err != nil {
		return nil, err
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	tr := tar.NewReader(r)

	type candidate struct {
		path     string
		priority int
	}

	var best *candidate
	var foundFiles []string

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}

		if header.Typeflag == tar.TypeDir {
			continue
		}

		if err := security.ValidateFilePath(header.Name, destDir); err != nil {
			return nil, fmt.Errorf("unsafe path in archive: %w", err)
		}

		foundFiles = append(foundFiles, header.Name)
		priority := selectPriority(header.Name, header.FileInfo().Mode(), archiveName)

		if best == nil || priority > best.priority {
			best = &candidate{path: header.Name, priority: priority}
			// Archive-name match is exact, stop searching
			if priority >= 90 {
				break
			}
		}
	}

	targetPath := ""
	if best != nil {
		targetPath = best.path
	} else if len(foundFiles) == 0 {
		return nil, fmt.Errorf("no files found in archive")
	} else if len(foundFiles) > 1 {
		return nil, fmt.Errorf("multiple files in archive but none match expected plugin name '%s' (found: %v)", archiveName, foundFiles)
	} else {
		targetPath = foundFiles[0]
	}

	// Reset readers to extract the target file
	r, err = open(data)
	if err != nil {
		return nil, err
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	tr = tar.NewReader(r)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file not found in archive")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}

		if header.Name != targetPath {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(targetPath))

		out, err := os.Create(destPath) // #nosec G304 - Plugin destination path controlled by application
		if err != nil {
			return nil, fmt.Errorf("failed to create plugin file: %w", err)
		}

		limitedReader := security.NewLimitedReader(tr, maxDecompressedSize)
		_, copyErr := io.Copy(out, limitedReader)
		closeErr := out.Close()

		if copyErr != nil {
			return nil, fmt.Errorf("failed to extract plugin: %w", copyErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close plugin file: %w", closeErr)
		}

		// Make executable
		if err := os.Chmod(destPath, 0o755); err != nil { // #nosec G302 - Plugin executable needs execute permission
			return nil, fmt.Errorf("failed to make plugin executable: %w", err)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "Extracted plugin to: %s\n", destPath)
		}

		return &ExtractResult{
			Path:       destPath,
			WasArchive: true,
		}, nil
	}
}
