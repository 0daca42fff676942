// Command tonal-scss is an external tonal exporter that writes the colour
// scale and type scale as Sass variables and maps.
//
// Build it and point tonal at the binary:
//
//	go build -o ~/.local/bin/tonal-scss .
//	TONAL_PLUGINS=scss=~/.local/bin/tonal-scss tonal export -f scss --scss.arg prefix=brand
package main

import (
	"github.com/jmylchreest/tonal/pkg/plugin"
)

func main() {
	plugin.Serve(&ScssPlugin{})
}
