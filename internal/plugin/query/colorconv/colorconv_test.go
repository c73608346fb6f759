package colorconv

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/mobock/lumen/internal/plugin/query"
	pub "github.com/mobock/lumen/pkg/plugin"
)

func newTestPlugin(t *testing.T) *Plugin {
	t.Helper()
	p := New()
	p.swatchDir = t.TempDir()
	t.Cleanup(p.Close)
	return p
}

func handle(t *testing.T, p *Plugin, raw string) []pub.Item {
	t.Helper()
	items, err := p.Handle(context.Background(), pub.Query{Raw: raw}, query.HandleOptions{})
	if err != nil {
		t.Fatalf("Handle(%q) error = %v", raw, err)
	}
	return items
}

func TestHandleRGBFanOut(t *testing.T) {
	p := newTestPlugin(t)
	items := handle(t, p, "rgb100,60,20")

	if len(items) != 5 {
		t.Fatalf("Handle() returned %d items, want 5", len(items))
	}

	// Destination order follows the system enumeration with the source
	// omitted.
	wantPrefixes := []string{"#", "yiq(", "hls(", "hsl(", "hsv("}
	for i, item := range items {
		if !strings.HasPrefix(item.Text, wantPrefixes[i]) {
			t.Errorf("item %d text = %q, want prefix %q", i, item.Text, wantPrefixes[i])
		}
		if strings.HasPrefix(item.Text, "rgb(") {
			t.Errorf("item %d converts back to the source system", i)
		}
		if item.Completion != "rgb100,60,20" {
			t.Errorf("item %d completion = %q, want raw query", i, item.Completion)
		}
		if !strings.HasPrefix(item.Subtext, "Converting rgb(100, 60, 20) to ") {
			t.Errorf("item %d subtext = %q", i, item.Subtext)
		}
	}

	if items[0].Text != "#643c14" {
		t.Errorf("hex item text = %q, want %q", items[0].Text, "#643c14")
	}
}

func TestHandleClipboardAction(t *testing.T) {
	p := newTestPlugin(t)
	items := handle(t, p, "rgb100,60,20")

	for _, item := range items {
		if len(item.Actions) != 1 {
			t.Fatalf("item %q has %d actions, want 1", item.Text, len(item.Actions))
		}
		action := item.Actions[0]
		if action.Kind != pub.ActionClipboard {
			t.Errorf("action kind = %q, want clipboard", action.Kind)
		}
		if len(action.Payload) != 1 || action.Payload[0] != item.Text {
			t.Errorf("action payload = %v, want display text %q", action.Payload, item.Text)
		}
	}
}

func TestHandleSwatchIcon(t *testing.T) {
	p := newTestPlugin(t)
	items := handle(t, p, "hex#fff")

	icon := items[0].IconPath
	if icon == "" {
		t.Fatal("item has no icon path")
	}
	for _, item := range items {
		if item.IconPath != icon {
			t.Error("items do not share the swatch icon")
		}
	}

	data, err := os.ReadFile(icon)
	if err != nil {
		t.Fatalf("reading swatch icon: %v", err)
	}
	if !strings.Contains(string(data), `fill="#ffffff"`) {
		t.Errorf("swatch content = %q, want white fill", data)
	}

	// The next recognized query replaces the swatch file.
	handle(t, p, "rgb0,0,0")
	if _, err := os.Stat(icon); !os.IsNotExist(err) {
		t.Errorf("previous swatch %q still exists after new query", icon)
	}
}

func TestHandleNotMyQuery(t *testing.T) {
	p := newTestPlugin(t)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "unknown tag", raw: "xyz1,2,3"},
		{name: "known tag bad arity", raw: "rgb1,2"},
		{name: "known tag non numeric", raw: "rgb1,2,three"},
		{name: "invalid hex token", raw: "hex#ff"},
		{name: "too short", raw: "rg"},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if items := handle(t, p, tt.raw); len(items) != 0 {
				t.Errorf("Handle(%q) returned %d items, want none", tt.raw, len(items))
			}
		})
	}
}

func TestHandleFractionalHSV(t *testing.T) {
	p := newTestPlugin(t)
	items := handle(t, p, "hsv0.5,0.4,0.3")

	if len(items) != 5 {
		t.Fatalf("Handle() returned %d items, want 5", len(items))
	}
	for _, item := range items {
		if strings.HasPrefix(item.Text, "hsv(") {
			t.Errorf("item %q converts back to the source system", item.Text)
		}
	}
}

func TestHandleHLSAndHSLAreDistinctDestinations(t *testing.T) {
	p := newTestPlugin(t)
	items := handle(t, p, "rgb100,60,20")

	var hls, hsl string
	for _, item := range items {
		if strings.HasPrefix(item.Text, "hls(") {
			hls = item.Text
		}
		if strings.HasPrefix(item.Text, "hsl(") {
			hsl = item.Text
		}
	}
	if hls == "" || hsl == "" {
		t.Fatal("missing hls or hsl destination")
	}

	// Same math, swapped second and third fields.
	trim := func(s string) []string {
		s = s[strings.Index(s, "(")+1 : len(s)-1]
		return strings.Split(s, ", ")
	}
	h, l := trim(hls), trim(hsl)
	if h[0] != l[0] || h[1] != l[2] || h[2] != l[1] {
		t.Errorf("field order mismatch: hls=%q hsl=%q", hls, hsl)
	}
}

func TestMetadata(t *testing.T) {
	p := New()
	if p.Name() != "colorconv" {
		t.Errorf("Name() = %q", p.Name())
	}
	if p.Validate() != nil {
		t.Errorf("Validate() = %v, want nil", p.Validate())
	}
	if len(p.GetFlagHelp()) == 0 {
		t.Error("GetFlagHelp() is empty")
	}
}
