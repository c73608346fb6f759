// colorconv - Colour Conversion Query Plugin (Lumen Query Plugin)
//
// Standalone build of the built-in colour converter, for hosts that load
// every plugin as an external binary. Converts a typed colour between rgb,
// hex, yiq, hls, hsl and hsv, and attaches a swatch icon to each result.
// Uses the go-plugin RPC protocol for process reuse across invocations.
//
// Build:
//   go build -o lumen-plugin-colorconv
//
// Usage:
//   lumen plugins add ./lumen-plugin-colorconv
//   lumen query "rgb(100, 60, 20)"
//
// Author: Lumen Contributors
// License: MIT
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	goplugin "github.com/hashicorp/go-plugin"

	"github.com/mobock/lumen/internal/plugin/protocol"
	"github.com/mobock/lumen/internal/plugin/query"
	"github.com/mobock/lumen/internal/plugin/query/colorconv"
	pub "github.com/mobock/lumen/pkg/plugin"
)

// ColorconvPlugin adapts the in-process colorconv plugin to the RPC protocol.
type ColorconvPlugin struct {
	impl *colorconv.Plugin
}

// Handle converts one colour query into result items.
func (p *ColorconvPlugin) Handle(ctx context.Context, q pub.Query, opts pub.HandleOptions) ([]pub.Item, error) {
	return p.impl.Handle(ctx, q, query.HandleOptions{
		Verbose:    opts.Verbose,
		PluginArgs: opts.PluginArgs,
	})
}

// GetMetadata returns plugin metadata.
func (p *ColorconvPlugin) GetMetadata() pub.PluginInfo {
	return pub.PluginInfo{
		Name:            p.impl.Name(),
		Type:            "query",
		Version:         p.impl.Version(),
		ProtocolVersion: protocol.ProtocolVersion,
		Description:     p.impl.Description(),
		PluginProtocol:  "go-plugin",
	}
}

// GetFlagHelp returns help information for plugin flags.
func (p *ColorconvPlugin) GetFlagHelp() []pub.FlagHelp {
	return p.impl.GetFlagHelp()
}

func main() {
	impl := colorconv.New()
	defer impl.Close()

	p := &ColorconvPlugin{impl: impl}

	// Handle --plugin-info flag
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(p.GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Serve the plugin using go-plugin
	goplugin.Serve(&goplugin.ServeConfig{
		HandshakeConfig: pub.Handshake,
		Plugins: map[string]goplugin.Plugin{
			"query": &pub.QueryPluginRPC{
				Impl: p,
			},
		},
	})
}
