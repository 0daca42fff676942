package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/jmylchreest/tonal/pkg/plugin"
)

// DetectTimeout bounds the --plugin-info query.
const DetectTimeout = 5 * time.Second

// DetectorResult contains information about a detected plugin protocol.
type DetectorResult struct {
	// Type indicates which protocol the plugin uses.
	Type PluginType

	// PluginInfo contains metadata from --plugin-info.
	PluginInfo PluginInfo
}

// PluginInfo is a type alias to the public plugin.PluginInfo type.
// External plugins should import github.com/jmylchreest/tonal/pkg/plugin directly.
type PluginInfo = plugin.PluginInfo

// DetectProtocol detects which protocol a plugin uses by querying it.
func DetectProtocol(ctx context.Context, pluginPath string) (*DetectorResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DetectTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, pluginPath, plugin.InfoFlag).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin: %w", err)
	}
	return ParseInfo(output)
}

// ParseInfo interprets a plugin's --plugin-info output.
func ParseInfo(output []byte) (*DetectorResult, error) {
	var info PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	if info.ProtocolVersion != "" {
		if _, err := IsCompatible(info.ProtocolVersion); err != nil {
			return nil, err
		}
	}

	result := &DetectorResult{PluginInfo: info}
	switch PluginType(info.PluginProtocol) {
	case PluginTypeGoPlugin:
		result.Type = PluginTypeGoPlugin
	case PluginTypeJSON, "":
		// Empty defaults to json-stdio.
		result.Type = PluginTypeJSON
	default:
		return nil, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	return result, nil
}
