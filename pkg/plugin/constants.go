// Package plugin provides the public API for tonal exporter plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "0.1.0"

	// MinCompatibleVersion is the oldest protocol version this tonal version can work with.
	MinCompatibleVersion = "0.1.0"

	// PluginName is the key plugins are dispensed under by go-plugin.
	PluginName = "exporter"

	// InfoFlag makes a plugin print its PluginInfo as JSON and exit.
	InfoFlag = "--plugin-info"
)

// Handshake is the handshake configuration for go-plugin protocol.
// This ensures that plugins using go-plugin can only connect to compatible hosts.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0, // Major version from ProtocolVersion
	MagicCookieKey:   "TONAL_PLUGIN",
	MagicCookieValue: "tonal_design_tokens",
}

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON PluginType = "json-stdio"
)
