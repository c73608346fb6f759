package executor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mobock/lumen/internal/plugin/protocol"
)

// writeFakePlugin writes a shell script that speaks the json-stdio protocol:
// it answers --plugin-info with metadata and otherwise echoes a fixed item
// list for any query on stdin.
func writeFakePlugin(t *testing.T, itemsJSON string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake plugin script requires a POSIX shell")
	}

	script := `#!/bin/sh
if [ "$1" = "--plugin-info" ]; then
  echo '{"name":"fake","type":"query","version":"1.0.0","protocol_version":"0.0.1","description":"fake plugin","plugin_protocol":"json-stdio"}'
  exit 0
fi
cat > /dev/null
echo '` + itemsJSON + `'
`
	path := filepath.Join(t.TempDir(), "fake-plugin")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDetectsJSONProtocol(t *testing.T) {
	path := writeFakePlugin(t, `[]`)

	exec, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer exec.Close()

	if exec.Protocol() != protocol.PluginTypeJSON {
		t.Errorf("Protocol() = %q, want json-stdio", exec.Protocol())
	}
	if exec.Path() != path {
		t.Errorf("Path() = %q, want %q", exec.Path(), path)
	}
}

func TestNewRejectsMissingBinary(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("New() error = nil, want detection failure")
	}
}

func TestHandleJSONStdio(t *testing.T) {
	path := writeFakePlugin(t, `[{"completion":"~/x","text":"~/x","subtext":"Open file x","actions":[{"kind":"exec","text":"Open file x","payload":["xdg-open","/home/u/x"]}]}]`)

	exec, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer exec.Close()

	items, err := exec.Handle(context.Background(), protocol.Query{Raw: "~/x"}, protocol.HandleOptions{})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Handle() returned %d items, want 1", len(items))
	}
	if items[0].Text != "~/x" {
		t.Errorf("item text = %q", items[0].Text)
	}
	if len(items[0].Actions) != 1 || items[0].Actions[0].Kind != "exec" {
		t.Errorf("item actions = %+v", items[0].Actions)
	}
}

func TestHandleJSONStdioBadOutput(t *testing.T) {
	path := writeFakePlugin(t, `this is not json`)

	exec, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer exec.Close()

	if _, err := exec.Handle(context.Background(), protocol.Query{Raw: "~/x"}, protocol.HandleOptions{}); err == nil {
		t.Fatal("Handle() error = nil, want parse failure")
	}
}

func TestGetMetadataJSONStdio(t *testing.T) {
	path := writeFakePlugin(t, `[]`)

	exec, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer exec.Close()

	info, err := exec.GetMetadata(context.Background())
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if info.Name != "fake" {
		t.Errorf("GetMetadata().Name = %q, want fake", info.Name)
	}
}
