package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mobock/lumen/internal/security"
	"github.com/ulikunitz/xz"
)

// newGzReader opens a gzip decompression stream.
func newGzReader(data []byte) (io.Reader, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return gzr, nil
}

// newXzReader opens an xz decompression stream.
func newXzReader(data []byte) (io.Reader, error) {
	xzr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	return xzr, nil
}

// newBz2Reader opens a bzip2 decompression stream.
func newBz2Reader(data []byte) (io.Reader, error) {
	return bzip2.NewReader(bytes.NewReader(data)), nil
}

// decompress writes a single compressed file to destDir as an executable.
func decompress(data []byte, open func([]byte) (io.Reader, error), filename, destDir string, verbose bool) (*ExtractResult, error) {
	r, err := open(data)
	if err != nil {
		return nil, err
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	destPath := filepath.Join(destDir, filename)
	out, err := os.Create(destPath) // #nosec G304 - Plugin destination path controlled by application
	if err != nil {
		return nil, fmt.Errorf("failed to create plugin file: %w", err)
	}

	limitedReader := security.NewLimitedReader(r, maxDecompressedSize)
	_, copyErr := io.Copy(out, limitedReader)
	closeErr := out.Close()

	if copyErr != nil {
		return nil, fmt.Errorf("failed to decompress plugin: %w", copyErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close plugin file: %w", closeErr)
	}

	if err := os.Chmod(destPath, 0o755); err != nil { // #nosec G302 - Plugin executable needs execute permission
		return nil, fmt.Errorf("failed to make plugin executable: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Decompressed plugin to: %s\n", destPath)
	}

	return &ExtractResult{
		Path:       destPath,
		WasArchive: false,
	}, nil
}
