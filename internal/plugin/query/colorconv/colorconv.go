// Package colorconv provides a query plugin that converts colours between
// the rgb, hex, yiq, hls, hsl and hsv systems.
//
// A query selects its source system with a 3-letter tag ("rgb100,60,20",
// "hex#643c14"); the payload is converted into every other system and each
// conversion becomes one result item with a copyable display string and a
// swatch icon showing the colour.
package colorconv

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mobock/lumen/internal/colour"
	"github.com/mobock/lumen/internal/plugin/query"
	"github.com/mobock/lumen/internal/swatch"
	pub "github.com/mobock/lumen/pkg/plugin"
)

// Plugin implements the query.Plugin interface for colour conversion.
type Plugin struct {
	swatchDir string
	slot      swatch.Slot
}

// New creates a new colour converter plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "colorconv"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Convert colours between rgb, hex, yiq, hls, hsl and hsv"
}

// Version returns the plugin version.
func (p *Plugin) Version() string {
	return "1.0.0"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.swatchDir, "colorconv.swatch-dir", "", "Directory for transient swatch files (default: system temp dir)")
}

// Validate checks if the plugin has all required inputs configured.
func (p *Plugin) Validate() error {
	return nil
}

// GetFlagHelp returns help information for all plugin flags.
func (p *Plugin) GetFlagHelp() []pub.FlagHelp {
	return []pub.FlagHelp{
		{Name: "colorconv.swatch-dir", Type: "string", Default: "", Description: "Directory for transient swatch files (default: system temp dir)", Required: false},
	}
}

// Close releases the swatch file held by the plugin, if any.
func (p *Plugin) Close() {
	p.slot.Close()
}

// Handle converts a recognized colour query into one result item per
// destination system. Unrecognized tags and unparsable payloads yield no
// items and no error.
func (p *Plugin) Handle(_ context.Context, q pub.Query, _ query.HandleOptions) ([]pub.Item, error) {
	source, ok, err := colour.ParseQuery(q.Raw)
	if !ok {
		return nil, nil
	}
	if errors.Is(err, colour.ErrUnparsable) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parsing colour query: %w", err)
	}

	p.slot.Dir = p.swatchDir
	pivot := colour.ToRGB(source)
	iconPath, err := p.slot.Write(pivot)
	if err != nil {
		return nil, fmt.Errorf("writing swatch: %w", err)
	}

	// Fan out to every other system in enumeration order.
	items := make([]pub.Item, 0, len(colour.Systems)-1)
	for _, destination := range colour.Systems {
		if destination == source.System {
			continue
		}
		converted := colour.FromRGB(destination, pivot)
		items = append(items, buildItem(q.Raw, source, destination, converted, iconPath))
	}
	return items, nil
}

// buildItem assembles one result entry for a converted colour.
func buildItem(completion string, source colour.Value, destination colour.System, converted colour.Value, iconPath string) pub.Item {
	text := converted.String()
	return pub.Item{
		Completion: completion,
		Text:       text,
		Subtext:    fmt.Sprintf("Converting %s to %s", source.String(), destination.Tag()),
		IconPath:   iconPath,
		Actions: []pub.Action{
			{
				Kind:    pub.ActionClipboard,
				Text:    "Copy to clipboard",
				Payload: []string{text},
			},
		},
	}
}
