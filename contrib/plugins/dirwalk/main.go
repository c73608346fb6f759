// dirwalk - Directory Walker Query Plugin (Lumen Query Plugin)
//
// Standalone build of the built-in directory walker, for hosts that load
// every plugin as an external binary. Lists filesystem entries matching the
// typed path and describes an open action for each.
// Uses the go-plugin RPC protocol for process reuse across invocations.
//
// Build:
//   go build -o lumen-plugin-dirwalk
//
// Usage:
//   lumen plugins add ./lumen-plugin-dirwalk
//   lumen query "~/Doc"
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
	"github.com/mobock/lumen/internal/plugin/query/dirwalk"
	pub "github.com/mobock/lumen/pkg/plugin"
)

// DirwalkPlugin adapts the in-process dirwalk plugin to the RPC protocol.
type DirwalkPlugin struct {
	impl *dirwalk.Plugin
}

// Handle lists filesystem entries for one path query.
func (p *DirwalkPlugin) Handle(ctx context.Context, q pub.Query, opts pub.HandleOptions) ([]pub.Item, error) {
	return p.impl.Handle(ctx, q, query.HandleOptions{
		Verbose:    opts.Verbose,
		PluginArgs: opts.PluginArgs,
	})
}

// GetMetadata returns plugin metadata.
func (p *DirwalkPlugin) GetMetadata() pub.PluginInfo {
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
func (p *DirwalkPlugin) GetFlagHelp() []pub.FlagHelp {
	return p.impl.GetFlagHelp()
}

func main() {
	p := &DirwalkPlugin{impl: dirwalk.New()}

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
