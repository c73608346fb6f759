// Package plugin provides the public API for lumen query plugins.
package plugin

import (
	"context"
	"encoding/json"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// HandleArgs bundles the arguments of a Handle RPC call.
type HandleArgs struct {
	Query   Query
	Options HandleOptions
}

// QueryPluginRPC implements the go-plugin Plugin interface for query plugins.
type QueryPluginRPC struct {
	plugin.Plugin
	Impl QueryPlugin
}

// Server returns an RPC server for this plugin.
func (p *QueryPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &QueryPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *QueryPluginRPC) Client(b *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &QueryPluginRPCClient{client: c}, nil
}

// QueryPluginRPCServer is the RPC server implementation for query plugins.
type QueryPluginRPCServer struct {
	Impl QueryPlugin
}

// Handle implements the RPC method for query handling. Items travel as a
// JSON blob so the wire format stays independent of net/rpc encoding.
func (s *QueryPluginRPCServer) Handle(args HandleArgs, resp *[]byte) error {
	items, err := s.Impl.Handle(context.Background(), args.Query, args.Options)
	if err != nil {
		return err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	*resp = data
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *QueryPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// GetFlagHelp implements the RPC method for fetching flag help.
func (s *QueryPluginRPCServer) GetFlagHelp(_ any, resp *[]FlagHelp) error {
	*resp = s.Impl.GetFlagHelp()
	return nil
}

// QueryPluginRPCClient is the RPC client implementation for query plugins.
type QueryPluginRPCClient struct {
	client *rpc.Client
}

// Handle calls the remote Handle method.
func (c *QueryPluginRPCClient) Handle(_ context.Context, query Query, opts HandleOptions) ([]Item, error) {
	var respBytes []byte
	err := c.client.Call("Plugin.Handle", HandleArgs{Query: query, Options: opts}, &respBytes)
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(respBytes, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *QueryPluginRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// GetFlagHelp calls the remote GetFlagHelp method.
func (c *QueryPluginRPCClient) GetFlagHelp() []FlagHelp {
	var help []FlagHelp
	err := c.client.Call("Plugin.GetFlagHelp", new(any), &help)
	if err != nil {
		return []FlagHelp{}
	}
	return help
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
