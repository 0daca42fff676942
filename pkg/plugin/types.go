// Package plugin provides the public API for tonal exporter plugins.
// External plugins should import this package instead of internal packages.
package plugin

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}

// TokenData is the token set sent to exporter plugins.
type TokenData struct {
	Colors     []TokenColor   `json:"colors"`
	Typography TokenTypeScale `json:"typography"`
	PluginArgs map[string]any `json:"plugin_args,omitempty"`
	DryRun     bool           `json:"dry_run"`
}

// TokenColor is one step of the tonal scale.
type TokenColor struct {
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

// TokenTypeScale carries the typography settings and the derived type scale.
type TokenTypeScale struct {
	FontFamily string      `json:"font_family"`
	BaseSize   float64     `json:"base_size"`
	Ratio      float64     `json:"ratio"`
	Scale      []TokenSize `json:"scale"`
}

// TokenSize is one step of the type scale.
type TokenSize struct {
	Label string  `json:"label"`
	PX    float64 `json:"px"`
	Rem   string  `json:"rem"`
}

// JSONResponse is what a json-stdio plugin writes to stdout.
type JSONResponse struct {
	Files map[string]string `json:"files"`
}
