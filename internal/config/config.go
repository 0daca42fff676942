// Package config loads tonal project files.
//
// A project file is tonal.yaml, tonal.yml, tonal.toml or tonal.json. Every
// field is optional; unset fields leave the stored state alone.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tonal/internal/colour"
)

// ErrNoConfig is returned by Discover when no project file exists.
var ErrNoConfig = errors.New("no project file found")

// FileNames are the project file names searched for, in priority order.
var FileNames = []string{"tonal.yaml", "tonal.yml", "tonal.toml", "tonal.json"}

// Config is the content of a project file.
type Config struct {
	Seed          string   `yaml:"seed" toml:"seed" json:"seed" validate:"omitempty,colour"`
	HueShift      *float64 `yaml:"hueShift" toml:"hueShift" json:"hueShift" validate:"omitempty,gte=-360,lte=360"`
	ChromaScale   *float64 `yaml:"chromaScale" toml:"chromaScale" json:"chromaScale" validate:"omitempty,gte=0,lte=4"`
	LightnessBias *float64 `yaml:"lightnessBias" toml:"lightnessBias" json:"lightnessBias" validate:"omitempty,gte=-1,lte=1"`
	Template      string   `yaml:"template" toml:"template" json:"template" validate:"omitempty,template_id"`

	Locks     []int             `yaml:"locks" toml:"locks" json:"locks" validate:"dive,gte=0,lte=9"`
	Overrides map[string]string `yaml:"overrides" toml:"overrides" json:"overrides" validate:"dive,keys,step_ref,endkeys,colour"`

	Typography *Typography `yaml:"typography" toml:"typography" json:"typography"`
	Contrast   *Contrast   `yaml:"contrast" toml:"contrast" json:"contrast"`

	Gradients map[string]colour.GradientDef `yaml:"gradients" toml:"gradients" json:"gradients" validate:"dive"`
	Variables map[string]string             `yaml:"variables" toml:"variables" json:"variables" validate:"dive,keys,startswith=--,endkeys,colour"`
	Samples   int                           `yaml:"samples" toml:"samples" json:"samples" validate:"omitempty,gte=2,lte=1024"`
	Theme     string                        `yaml:"theme" toml:"theme" json:"theme" validate:"omitempty,oneof=light dark"`

	StateDir string            `yaml:"stateDir" toml:"stateDir" json:"stateDir"`
	Plugins  map[string]string `yaml:"plugins" toml:"plugins" json:"plugins" validate:"dive,keys,plugin_name,endkeys,required"`

	// Path is the file the config was read from.
	Path string `yaml:"-" toml:"-" json:"-"`
}

// Typography overrides the type scale parameters.
type Typography struct {
	Font     string  `yaml:"font" toml:"font" json:"font"`
	BaseSize float64 `yaml:"baseSize" toml:"baseSize" json:"baseSize" validate:"omitempty,gt=0,lte=256"`
	Ratio    float64 `yaml:"ratio" toml:"ratio" json:"ratio" validate:"omitempty,gt=1,lte=4"`
}

// Contrast selects the foreground and background under evaluation. Values
// are colours or step labels such as "700".
type Contrast struct {
	Foreground string `yaml:"foreground" toml:"foreground" json:"foreground" validate:"omitempty,colour_or_step"`
	Background string `yaml:"background" toml:"background" json:"background" validate:"omitempty,colour_or_step"`
}

// Discover looks for a project file in dir.
func Discover(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrNoConfig
}

// Load reads, decodes and validates the project file at path. The decoder
// is chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewParseError(path, 0, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes and validates project file content. ext selects the format
// and includes the leading dot.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, NewParseError("", extractLine(err), err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			line := 0
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				line, _ = derr.Position()
			}
			return nil, NewParseError("", line, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, NewParseError("", 0, err)
		}
	default:
		return nil, NewParseError("", 0, fmt.Errorf("unsupported config format %q", ext))
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

func extractLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}

// LockedIDs returns the configured locks as a set.
func (c *Config) LockedIDs() colour.LockSet {
	locks := make(colour.LockSet, len(c.Locks))
	for _, id := range c.Locks {
		locks[id] = true
	}
	return locks
}

// StepID resolves a step reference, either an id ("7") or a label ("700"),
// to a step id. Labels win when a value is both.
func StepID(ref string) (int, bool) {
	ref = strings.TrimSpace(ref)
	for i, label := range colour.StepLabels() {
		if label == ref {
			return i, true
		}
	}
	id, err := strconv.Atoi(ref)
	if err != nil || id < 0 || id >= colour.ScaleSize {
		return 0, false
	}
	return id, true
}
