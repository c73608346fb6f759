package plugin

import (
	"context"
	"errors"
	"testing"
)

// Mock implementation for testing.
type mockQueryPlugin struct {
	items     []Item
	metadata  PluginInfo
	flagHelp  []FlagHelp
	handleErr error

	gotQuery Query
	gotOpts  HandleOptions
}

func (m *mockQueryPlugin) Handle(_ context.Context, query Query, opts HandleOptions) ([]Item, error) {
	m.gotQuery = query
	m.gotOpts = opts
	if m.handleErr != nil {
		return nil, m.handleErr
	}
	return m.items, nil
}

func (m *mockQueryPlugin) GetMetadata() PluginInfo {
	return m.metadata
}

func (m *mockQueryPlugin) GetFlagHelp() []FlagHelp {
	return m.flagHelp
}

// TestQueryPluginRPC tests the query plugin RPC wrapper.
func TestQueryPluginRPC(t *testing.T) {
	mock := &mockQueryPlugin{
		items: []Item{
			{
				Completion: "rgb100,60,20",
				Text:       "#643c14",
				Subtext:    "Converting rgb(100, 60, 20) to hex",
				IconPath:   "/tmp/lumen-swatch-1.svg",
				Actions: []Action{
					{Kind: ActionClipboard, Text: "Copy to clipboard", Payload: []string{"#643c14"}},
				},
			},
		},
		metadata: PluginInfo{
			Name:            "test-query",
			Type:            "query",
			Version:         "1.0.0",
			ProtocolVersion: ProtocolVersion,
			Description:     "Test query plugin",
			PluginProtocol:  string(PluginTypeGoPlugin),
		},
		flagHelp: []FlagHelp{
			{Name: "test-flag", Type: "string", Default: "default", Description: "Test flag", Required: false},
		},
	}

	rpc := &QueryPluginRPC{Impl: mock}

	t.Run("Server", func(t *testing.T) {
		server, err := rpc.Server(nil)
		if err != nil {
			t.Fatalf("Server() error = %v", err)
		}
		if server == nil {
			t.Fatal("Server() returned nil server")
		}

		rpcServer, ok := server.(*QueryPluginRPCServer)
		if !ok {
			t.Fatal("Server() returned wrong type")
		}
		if rpcServer.Impl != mock {
			t.Fatal("Server() impl not set correctly")
		}
	})

	t.Run("Client", func(t *testing.T) {
		client, err := rpc.Client(nil, nil)
		if err != nil {
			t.Fatalf("Client() error = %v", err)
		}
		if client == nil {
			t.Fatal("Client() returned nil client")
		}
		if _, ok := client.(*QueryPluginRPCClient); !ok {
			t.Fatal("Client() returned wrong type")
		}
	})
}

func TestQueryPluginRPCServerHandle(t *testing.T) {
	t.Run("items serialized as JSON", func(t *testing.T) {
		mock := &mockQueryPlugin{
			items: []Item{
				{Completion: "~/Pictures", Text: "~/Pictures/", Subtext: "Open directory ~/Pictures/"},
				{Completion: "~/Pictures", Text: "~/Pictures/cat.png", Subtext: "Open file cat.png"},
			},
		}
		server := &QueryPluginRPCServer{Impl: mock}

		var resp []byte
		args := HandleArgs{
			Query:   Query{Raw: "~/Pictures"},
			Options: HandleOptions{Verbose: true},
		}
		if err := server.Handle(args, &resp); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(resp) == 0 {
			t.Fatal("Handle() returned empty response")
		}
		if mock.gotQuery.Raw != "~/Pictures" {
			t.Errorf("query passed to impl = %q, want %q", mock.gotQuery.Raw, "~/Pictures")
		}
		if !mock.gotOpts.Verbose {
			t.Error("options not passed to impl")
		}
	})

	t.Run("no results is valid", func(t *testing.T) {
		server := &QueryPluginRPCServer{Impl: &mockQueryPlugin{}}

		var resp []byte
		if err := server.Handle(HandleArgs{Query: Query{Raw: "xyz1,2,3"}}, &resp); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if string(resp) != "null" {
			t.Errorf("Handle() response = %q, want JSON null", resp)
		}
	})

	t.Run("impl error propagates", func(t *testing.T) {
		server := &QueryPluginRPCServer{Impl: &mockQueryPlugin{handleErr: errors.New("boom")}}

		var resp []byte
		if err := server.Handle(HandleArgs{}, &resp); err == nil {
			t.Fatal("Handle() error = nil, want boom")
		}
	})
}

func TestQueryPluginRPCServerMetadata(t *testing.T) {
	mock := &mockQueryPlugin{
		metadata: PluginInfo{Name: "dirwalk", Type: "query", PluginProtocol: string(PluginTypeGoPlugin)},
		flagHelp: []FlagHelp{{Name: "dirwalk.opener", Type: "string", Default: "xdg-open"}},
	}
	server := &QueryPluginRPCServer{Impl: mock}

	var info PluginInfo
	if err := server.GetMetadata(nil, &info); err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if info.Name != "dirwalk" {
		t.Errorf("GetMetadata().Name = %q, want %q", info.Name, "dirwalk")
	}

	var help []FlagHelp
	if err := server.GetFlagHelp(nil, &help); err != nil {
		t.Fatalf("GetFlagHelp() error = %v", err)
	}
	if len(help) != 1 || help[0].Name != "dirwalk.opener" {
		t.Errorf("GetFlagHelp() = %+v", help)
	}
}

func TestRPCError(t *testing.T) {
	err := &RPCError{Message: "plugin exploded"}
	if err.Error() != "plugin exploded" {
		t.Errorf("Error() = %q", err.Error())
	}
}
