// Package protocol defines the plugin protocol version and compatibility checking.
package protocol

import (
	pub "github.com/mobock/lumen/pkg/plugin"
)

// Type aliases to the public plugin API. Internal packages use these so the
// wire types live in exactly one place; external plugins should import
// github.com/mobock/lumen/pkg/plugin directly.
type (
	Query          = pub.Query
	Item           = pub.Item
	Action         = pub.Action
	HandleOptions  = pub.HandleOptions
	HandleArgs     = pub.HandleArgs
	FlagHelp       = pub.FlagHelp
	PluginInfo     = pub.PluginInfo
	QueryPlugin    = pub.QueryPlugin
	QueryPluginRPC = pub.QueryPluginRPC

	QueryPluginRPCClient = pub.QueryPluginRPCClient
	QueryPluginRPCServer = pub.QueryPluginRPCServer
)
