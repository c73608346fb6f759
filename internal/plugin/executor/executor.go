// Package executor provides a unified interface for executing query plugins
// regardless of their underlying protocol (go-plugin RPC or JSON-stdio).
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/mobock/lumen/internal/plugin/protocol"
)

// PluginExecutor provides a unified interface for executing query plugins.
type PluginExecutor struct {
	path         string
	protocolType protocol.PluginType
	client       *plugin.Client
	rpcClient    *protocol.QueryPluginRPCClient
	verbose      bool
}

// New creates a new PluginExecutor by detecting the plugin's protocol.
func New(pluginPath string) (*PluginExecutor, error) {
	return NewWithVerbose(pluginPath, false)
}

// NewWithVerbose creates a new PluginExecutor with verbose logging control.
func NewWithVerbose(pluginPath string, verbose bool) (*PluginExecutor, error) {
	// Detect protocol.
	result, err := protocol.DetectProtocol(pluginPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}

	// The go-plugin client is initialized lazily on first use so that a
	// plugin binary is only kept running while queries flow.
	return &PluginExecutor{
		path:         pluginPath,
		protocolType: result.Type,
		verbose:      verbose,
	}, nil
}

// Path returns the plugin binary path.
func (e *PluginExecutor) Path() string {
	return e.path
}

// Protocol returns the detected plugin protocol.
func (e *PluginExecutor) Protocol() protocol.PluginType {
	return e.protocolType
}

// Handle runs the plugin against one query and returns its items.
func (e *PluginExecutor) Handle(ctx context.Context, query protocol.Query, opts protocol.HandleOptions) ([]protocol.Item, error) {
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		return e.handleGoPlugin(ctx, query, opts)
	case protocol.PluginTypeJSON:
		return e.handleJSON(ctx, query, opts)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// GetMetadata fetches plugin metadata over the detected protocol.
func (e *PluginExecutor) GetMetadata(ctx context.Context) (protocol.PluginInfo, error) {
	if e.protocolType == protocol.PluginTypeGoPlugin {
		client, err := e.getRPCClient(ctx)
		if err != nil {
			return protocol.PluginInfo{}, err
		}
		return client.GetMetadata()
	}
	result, err := protocol.DetectProtocol(e.path)
	if err != nil {
		return protocol.PluginInfo{}, err
	}
	return result.PluginInfo, nil
}

// Close cleans up any resources held by the executor.
func (e *PluginExecutor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
}

// --- Go-Plugin RPC implementation ---

func (e *PluginExecutor) getRPCClient(ctx context.Context) (*protocol.QueryPluginRPCClient, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	// Configure logger based on verbose flag.
	var logger hclog.Logger
	if e.verbose {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "plugin",
			Output: log.Writer(),
			Level:  hclog.Debug,
		})
	} else {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "plugin",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	}

	// Initialize go-plugin client.
	e.client = plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: protocol.Handshake,
		Plugins: map[string]plugin.Plugin{
			"query": &protocol.QueryPluginRPC{},
		},
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           logger,
	})

	// Connect via RPC.
	rpcClient, err := e.client.Client()
	if err != nil {
		e.client.Kill()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	// Request the plugin.
	raw, err := rpcClient.Dispense("query")
	if err != nil {
		e.client.Kill()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client := raw.(*protocol.QueryPluginRPCClient)
	e.rpcClient = client

	return client, nil
}

func (e *PluginExecutor) handleGoPlugin(ctx context.Context, query protocol.Query, opts protocol.HandleOptions) ([]protocol.Item, error) {
	client, err := e.getRPCClient(ctx)
	if err != nil {
		return nil, err
	}

	return client.Handle(ctx, query, opts)
}

// --- JSON-stdio implementation ---

func (e *PluginExecutor) handleJSON(ctx context.Context, query protocol.Query, opts protocol.HandleOptions) ([]protocol.Item, error) {
	args := protocol.HandleArgs{Query: query, Options: opts}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	// One process per query; json-stdio plugins are stateless.
	cmd := exec.CommandContext(ctx, e.path)
	cmd.Stdin = bytes.NewReader(argsJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w\nStderr: %s", err, stderr.String())
	}

	var items []protocol.Item
	if err := json.Unmarshal(stdout.Bytes(), &items); err != nil {
		return nil, fmt.Errorf("failed to parse plugin output: %w\nOutput: %s", err, stdout.String())
	}

	return items, nil
}
