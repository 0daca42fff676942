// Package common provides shared utilities for output plugins.
package common

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/jmylchreest/tonal/internal/typography"
)

// TemplateFuncs returns the functions available to every exporter template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Formatting.
		"json":     jsonFunc,
		"jsKey":    jsKeyFunc,
		"num":      typography.FormatNumber,
		"remFixed": remFixedFunc,
		"toUpper":  strings.ToUpper,
		"toLower":  strings.ToLower,

		// List helpers.
		"last": lastFunc,
	}
}

// jsonFunc quotes a string as a JSON (and JavaScript) string literal.
func jsonFunc(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

var (
	identPattern   = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	integerPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
)

// jsKeyFunc renders an object key, bare when JavaScript allows it and
// quoted otherwise ("2xl").
func jsKeyFunc(s string) string {
	if identPattern.MatchString(s) || integerPattern.MatchString(s) {
		return s
	}
	return jsonFunc(s)
}

// remFixedFunc converts pixels to rem rounded to at most three decimals,
// ties rounding up, with no trailing zeros ("0.64", "1").
func remFixedFunc(px float64) string {
	rem := math.Floor(px/typography.RootFontSize*1000+0.5) / 1000
	return strconv.FormatFloat(rem, 'f', -1, 64)
}

// lastFunc reports whether i is the final index of a list of length n.
func lastFunc(i, n int) bool {
	return i == n-1
}
