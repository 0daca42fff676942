// Tonal - A design-token colour engine
//
// Tonal generates perceptual colour ramps from a seed colour, checks WCAG
// contrast and exports the result as design tokens.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/tonal/internal/cli"

func main() {
	cli.Execute()
}
