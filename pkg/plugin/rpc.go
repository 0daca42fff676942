package plugin

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ExporterPluginRPC implements the go-plugin Plugin interface for exporter plugins.
type ExporterPluginRPC struct {
	plugin.Plugin
	Impl ExporterPlugin
}

// Server returns an RPC server for this plugin.
func (p *ExporterPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ExporterPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ExporterPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ExporterPluginRPCClient{client: c}, nil
}

// ExporterPluginRPCServer is the RPC server implementation for exporter plugins.
type ExporterPluginRPCServer struct {
	Impl ExporterPlugin
}

// Generate implements the RPC method for token export.
func (s *ExporterPluginRPCServer) Generate(data TokenData, resp *map[string][]byte) error {
	result, err := s.Impl.Generate(context.Background(), data)
	if err != nil {
		return err
	}
	*resp = result
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *ExporterPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// ExporterPluginRPCClient is the RPC client implementation for exporter plugins.
type ExporterPluginRPCClient struct {
	client *rpc.Client
}

// Generate calls the remote Generate method. The call is abandoned when ctx
// is done; the plugin process is expected to be killed by the caller.
func (c *ExporterPluginRPCClient) Generate(ctx context.Context, data TokenData) (map[string][]byte, error) {
	var result map[string][]byte
	call := c.client.Go("Plugin.Generate", data, &result, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-call.Done:
		if call.Error != nil {
			return nil, &RPCError{Message: call.Error.Error()}
		}
		return result, nil
	}
}

// GetMetadata calls the remote GetMetadata method.
func (c *ExporterPluginRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
