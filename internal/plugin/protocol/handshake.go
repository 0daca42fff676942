package protocol

import (
	"github.com/jmylchreest/tonal/pkg/plugin"
)

// Handshake is the go-plugin handshake shared with plugins.
//
// NOTE: go-plugin's ProtocolVersion is a single uint that must match exactly,
// so only the major version takes part in the handshake. Full semantic
// version checking happens via the --plugin-info query and IsCompatible.
var Handshake = plugin.Handshake

// PluginType defines the type of plugin communication protocol.
type PluginType = plugin.PluginType

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin = plugin.PluginTypeGoPlugin

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON = plugin.PluginTypeJSON
)
