package main

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/tonal/pkg/plugin"
)

const (
	Version = "0.1.0"
	Name    = "scss"

	// OutputFile is the partial written by the plugin.
	OutputFile = "_tokens.scss"

	defaultPrefix = "tonal"
)

var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// ScssPlugin implements plugin.ExporterPlugin.
type ScssPlugin struct{}

// GetMetadata returns the plugin metadata.
func (p *ScssPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            Name,
		Version:         Version,
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Sass variables and maps for the colour and type scales",
		PluginProtocol:  string(plugin.PluginTypeGoPlugin),
	}
}

// Generate renders the token data as a Sass partial.
//
// Recognised arguments:
//
//	prefix  variable prefix (default "tonal")
//	maps    "false" to omit the $<prefix>-colors and $<prefix>-font-sizes maps
func (p *ScssPlugin) Generate(ctx context.Context, data plugin.TokenData) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix, withMaps, err := parseArgs(data.PluginArgs)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("// Generated by tonal-scss. Do not edit.\n\n")

	for _, c := range data.Colors {
		fmt.Fprintf(&b, "$%s-color-%s: %s;\n", prefix, c.Label, c.Hex)
	}
	if withMaps && len(data.Colors) > 0 {
		fmt.Fprintf(&b, "\n$%s-colors: (\n", prefix)
		for _, c := range data.Colors {
			fmt.Fprintf(&b, "  %s: $%s-color-%s,\n", quoteKey(c.Label), prefix, c.Label)
		}
		b.WriteString(");\n")
	}

	t := data.Typography
	if t.FontFamily != "" || len(t.Scale) > 0 {
		b.WriteString("\n")
	}
	if t.FontFamily != "" {
		fmt.Fprintf(&b, "$%s-font-family: %s;\n", prefix, fontStack(t.FontFamily))
	}
	for _, s := range t.Scale {
		fmt.Fprintf(&b, "$%s-font-size-%s: %s;\n", prefix, s.Label, s.Rem)
	}
	if withMaps && len(t.Scale) > 0 {
		fmt.Fprintf(&b, "\n$%s-font-sizes: (\n", prefix)
		for _, s := range t.Scale {
			fmt.Fprintf(&b, "  %s: $%s-font-size-%s,\n", quoteKey(s.Label), prefix, s.Label)
		}
		b.WriteString(");\n")
	}

	return map[string][]byte{OutputFile: []byte(b.String())}, nil
}

func parseArgs(args map[string]any) (prefix string, withMaps bool, err error) {
	prefix, withMaps = defaultPrefix, true

	if v, ok := args["prefix"]; ok {
		s, _ := v.(string)
		if !identRe.MatchString(s) {
			return "", false, fmt.Errorf("invalid prefix %q", s)
		}
		prefix = s
	}
	if v, ok := args["maps"]; ok {
		s, _ := v.(string)
		withMaps, err = strconv.ParseBool(s)
		if err != nil {
			return "", false, fmt.Errorf("invalid maps value %q: %w", s, err)
		}
	}
	return prefix, withMaps, nil
}

// quoteKey quotes map keys that Sass would otherwise read as numbers.
func quoteKey(label string) string {
	if identRe.MatchString(label) {
		return label
	}
	return strconv.Quote(label)
}

// fontStack quotes the first family when it contains spaces and appends a
// generic fallback.
func fontStack(family string) string {
	if strings.Contains(family, ",") {
		return family
	}
	if strings.ContainsAny(family, " ") {
		family = strconv.Quote(family)
	}
	return family + ", sans-serif"
}
