package security

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestValidatePluginPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		baseDir string
		wantErr bool
	}{
		{"valid path inside base", "/home/user/plugins/my-plugin", "/home/user/plugins", false},
		{"path equal to base", "/home/user/plugins", "/home/user/plugins", false},
		{"traversal escapes base", "/home/user/plugins/../secrets", "/home/user/plugins", true},
		{"unrelated path", "/tmp/elsewhere", "/home/user/plugins", true},
		{"empty path", "", "/home/user/plugins", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePluginPath(tt.path, tt.baseDir)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePluginPath(%q, %q) error = %v, wantErr %v", tt.path, tt.baseDir, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple file", "plugin", false},
		{"nested file", "bin/plugin", false},
		{"parent traversal", "../evil", true},
		{"embedded traversal", "bin/../../evil", true},
		{"absolute path", "/etc/passwd", true},
		{"empty path", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.path, "/home/user/plugins")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestLimitedReader(t *testing.T) {
	src := strings.NewReader("0123456789")
	lr := NewLimitedReader(src, 4)

	var out bytes.Buffer
	_, err := io.Copy(&out, lr)
	if err == nil {
		t.Fatal("expected size limit error")
	}
	if out.String() != "0123" {
		t.Errorf("read %q, want %q", out.String(), "0123")
	}
}

func TestLimitedReaderWithinLimit(t *testing.T) {
	src := strings.NewReader("abc")
	lr := NewLimitedReader(src, 100)

	data, err := io.ReadAll(lr)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "abc" {
		t.Errorf("read %q, want %q", data, "abc")
	}
}
