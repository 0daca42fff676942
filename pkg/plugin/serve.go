package plugin

import (
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/hashicorp/go-plugin"
)

// Serve runs impl as a go-plugin exporter. When the process is started with
// InfoFlag it prints the plugin metadata instead, which is how tonal
// discovers the protocol to use.
func Serve(impl ExporterPlugin) {
	if slices.Contains(os.Args[1:], InfoFlag) {
		if err := WriteInfo(os.Stdout, impl); err != nil {
			os.Exit(1)
		}
		return
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &ExporterPluginRPC{Impl: impl},
		},
	})
}

// WriteInfo writes impl's metadata as JSON, filling in the protocol fields
// when the plugin leaves them empty.
func WriteInfo(w io.Writer, impl ExporterPlugin) error {
	info := impl.GetMetadata()
	if info.ProtocolVersion == "" {
		info.ProtocolVersion = ProtocolVersion
	}
	if info.PluginProtocol == "" {
		info.PluginProtocol = string(PluginTypeGoPlugin)
	}
	return json.NewEncoder(w).Encode(info)
}
