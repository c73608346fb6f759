// Package swatch renders single-colour square image payloads and manages
// the transient file they are written to.
package swatch

import (
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// template is the scalable one-rect swatch; the format field takes the fill
// colour as a hex string.
const template = `<svg viewBox="0 0 1 1"><rect width="1" height="1" fill="%s" /></svg>`

// Payload returns the SVG bytes for a single-colour square swatch.
func Payload(c colorful.Color) []byte {
	return []byte(fmt.Sprintf(template, c.Clamped().Hex()))
}

// Slot holds at most one live swatch file. Each Write replaces the previous
// file, so a rapid sequence of queries never accumulates temp files. A Slot
// is owned by a single plugin instance and is not safe for concurrent use;
// the host invokes handlers one at a time.
type Slot struct {
	// Dir is the directory swatch files are created in. Empty means the
	// system temp directory.
	Dir string

	path string
}

// Write renders the swatch for c into a fresh temp file, removing the
// previously written file first. Returns the path of the new file.
func (s *Slot) Write(c colorful.Color) (string, error) {
	s.remove()

	f, err := os.CreateTemp(s.Dir, "lumen-swatch-*.svg")
	if err != nil {
		return "", fmt.Errorf("failed to create swatch file: %w", err)
	}
	_, writeErr := f.Write(Payload(c))
	closeErr := f.Close()
	if writeErr != nil {
		return "", fmt.Errorf("failed to write swatch file: %w", writeErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close swatch file: %w", closeErr)
	}

	s.path = f.Name()
	return s.path, nil
}

// Path returns the current swatch file path, or empty if none is live.
func (s *Slot) Path() string {
	return s.path
}

// Close removes the current swatch file, if any.
func (s *Slot) Close() {
	s.remove()
}

func (s *Slot) remove() {
	if s.path == "" {
		return
	}
	// Best effort: the file may already be gone if the temp dir was
	// cleaned externally.
	_ = os.Remove(s.path)
	s.path = ""
}
