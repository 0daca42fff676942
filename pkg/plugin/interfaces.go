package plugin

import (
	"context"
)

// ExporterPlugin is the interface that exporter plugins must implement for go-plugin RPC.
type ExporterPlugin interface {
	// Generate renders the token data. Returns map of filename -> content.
	Generate(ctx context.Context, data TokenData) (map[string][]byte, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
