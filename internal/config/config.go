package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/format"
)

// Unlimited marks max_depth or max_string_length as unset.
const Unlimited = -1

// ColorChoice decides when output is coloured.
type ColorChoice string

const (
	ColorAuto   ColorChoice = "auto"
	ColorAlways ColorChoice = "always"
	ColorNever  ColorChoice = "never"
)

// Valid reports whether c is one of the known choices.
func (c ColorChoice) Valid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// Enabled resolves the choice. In auto mode output is coloured only on a
// terminal and only when NO_COLOR is not set.
func (c ColorChoice) Enabled(isTerminal, noColor bool) bool {
	switch c {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal && !noColor
	}
}

// Config represents the complete configuration for jsonfizz
type Config struct {
	Indent          int         `yaml:"indent"`
	SortKeys        bool        `yaml:"sort_keys"`
	Compact         bool        `yaml:"compact"`
	MaxDepth        *int        `yaml:"max_depth"`
	MaxStringLength *int        `yaml:"max_string_length"`
	Get             string      `yaml:"get"`
	Theme           string      `yaml:"theme"`
	Raw             bool        `yaml:"raw"`
	Format          string      `yaml:"format"`
	InputFormat     string      `yaml:"input_format"`
	Color           ColorChoice `yaml:"color"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Indent:      2,
		SortKeys:    false,
		Compact:     false,
		Theme:       "default",
		Raw:         false,
		Format:      format.JSONFormat.String(),
		InputFormat: "",
		Color:       ColorAuto,
	}
}

// Partial holds the settings one source provides. Nil fields leave the
// current value alone. For the limits, Unlimited clears them.
type Partial struct {
	Indent          *int         `yaml:"indent"`
	SortKeys        *bool        `yaml:"sort_keys"`
	Compact         *bool        `yaml:"compact"`
	MaxDepth        *int         `yaml:"max_depth"`
	MaxStringLength *int         `yaml:"max_string_length"`
	Get             *string      `yaml:"get"`
	Theme           *string      `yaml:"theme"`
	Raw             *bool        `yaml:"raw"`
	Format          *string      `yaml:"format"`
	InputFormat     *string      `yaml:"input_format"`
	Color           *ColorChoice `yaml:"color"`

	// Unknown lists keys of a config file that matched no setting.
	Unknown []string `yaml:"-"`
}

var knownKeys = map[string]bool{
	"indent": true, "sort_keys": true, "compact": true, "max_depth": true,
	"max_string_length": true, "get": true, "theme": true, "raw": true,
	"format": true, "input_format": true, "color": true,
}

// LoadConfig reads a TOML config file, or a YAML one when the extension says
// so. Keys may be written in snake, kebab or camel case. A limit of 0 in a
// file means unset.
func LoadConfig(path string) (*Partial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	normalized := make(map[string]any, len(raw))
	var unknown []string
	for k, v := range raw {
		key := strcase.ToSnake(k)
		if !knownKeys[key] {
			unknown = append(unknown, k)
			continue
		}
		normalized[key] = v
	}
	sort.Strings(unknown)

	// Round-trip through YAML so that type mismatches are reported per key.
	buf, err := yaml.Marshal(normalized)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read settings from '%s'", path), err)
	}
	p := &Partial{}
	if err := yaml.Unmarshal(buf, p); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("invalid setting in '%s'", path), err)
	}
	p.Unknown = unknown

	zeroMeansUnset(p.MaxDepth)
	zeroMeansUnset(p.MaxStringLength)
	return p, nil
}

func zeroMeansUnset(v *int) {
	if v != nil && *v == 0 {
		*v = Unlimited
	}
}

// FindConfigFile searches for .jsonfizz.toml (or .yaml/.yml) in the current
// directory and its parents, then in the user config locations. It returns
// "" when nothing is found.
func FindConfigFile() string {
	configNames := []string{".jsonfizz.toml", ".jsonfizz.yaml", ".jsonfizz.yml"}

	if currentDir, err := os.Getwd(); err == nil {
		for {
			for _, name := range configNames {
				configPath := filepath.Join(currentDir, name)
				if isFile(configPath) {
					return configPath
				}
			}

			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				break
			}
			currentDir = parentDir
		}
	}

	var candidates []string
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(dir, "jsonfizz", "config.toml"),
			filepath.Join(dir, "jsonfizz", "config.yaml"),
		)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "jsonfizz", "config.toml"),
			filepath.Join(home, ".jsonfizz.toml"),
		)
	}
	for _, c := range candidates {
		if isFile(c) {
			return c
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Apply copies every setting p provides onto c.
func (c *Config) Apply(p *Partial) {
	if p == nil {
		return
	}
	if p.Indent != nil {
		c.Indent = *p.Indent
	}
	if p.SortKeys != nil {
		c.SortKeys = *p.SortKeys
	}
	if p.Compact != nil {
		c.Compact = *p.Compact
	}
	if p.MaxDepth != nil {
		c.MaxDepth = limit(*p.MaxDepth)
	}
	if p.MaxStringLength != nil {
		c.MaxStringLength = limit(*p.MaxStringLength)
	}
	if p.Get != nil {
		c.Get = *p.Get
	}
	if p.Theme != nil {
		c.Theme = *p.Theme
	}
	if p.Raw != nil {
		c.Raw = *p.Raw
	}
	if p.Format != nil {
		c.Format = *p.Format
	}
	if p.InputFormat != nil {
		c.InputFormat = *p.InputFormat
	}
	if p.Color != nil {
		c.Color = ColorChoice(strings.ToLower(string(*p.Color)))
	}
}

func limit(v int) *int {
	if v == Unlimited {
		return nil
	}
	return &v
}

// LoadConfigWithCLI builds the effective configuration: defaults, then the
// config file, then the flags given on the command line. An explicitly named
// file must load; a discovered one that fails is skipped with a warning.
func LoadConfigWithCLI(configPath string, cli *Partial, log *zap.Logger) (*Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := NewConfig()

	path := configPath
	if path == "" {
		path = FindConfigFile()
	}
	if path != "" {
		fileConfig, err := LoadConfig(path)
		switch {
		case err != nil && configPath != "":
			return nil, err
		case err != nil:
			log.Warn("ignoring config file", zap.String("path", path), zap.Error(err))
		default:
			if len(fileConfig.Unknown) > 0 {
				log.Warn("unknown config keys", zap.String("path", path), zap.Strings("keys", fileConfig.Unknown))
			}
			cfg.Apply(fileConfig)
			log.Debug("loaded config file", zap.String("path", path))
		}
	}

	cfg.Apply(cli)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting holds a usable value.
func (c *Config) Validate() error {
	if c.Indent < 0 {
		return errors.NewConfigError(fmt.Sprintf("indent must not be negative, got %d", c.Indent), nil)
	}
	if c.MaxDepth != nil && *c.MaxDepth < 0 {
		return errors.NewConfigError(fmt.Sprintf("max_depth must not be negative, got %d", *c.MaxDepth), nil)
	}
	if c.MaxStringLength != nil && *c.MaxStringLength < 0 {
		return errors.NewConfigError(fmt.Sprintf("max_string_length must not be negative, got %d", *c.MaxStringLength), nil)
	}
	if _, err := format.Parse(c.Format); err != nil {
		return errors.NewConfigError("invalid output format", err)
	}
	if c.InputFormat != "" {
		f, err := format.Parse(c.InputFormat)
		if err != nil {
			return errors.NewConfigError("invalid input format", err)
		}
		if !f.CanRead() {
			return errors.NewConfigError(fmt.Sprintf("%s cannot be used as an input format", f), errors.ErrUnsupportedFormat)
		}
	}
	if !c.Color.Valid() {
		return errors.NewConfigError(fmt.Sprintf("invalid color choice %q (use auto, always or never)", c.Color), nil)
	}
	return nil
}

// OutputFormat returns the configured output format, JSON if it is invalid.
func (c *Config) OutputFormat() format.Format {
	f, err := format.Parse(c.Format)
	if err != nil {
		return format.JSONFormat
	}
	return f
}

// ReadFormat returns the forced input format, if any.
func (c *Config) ReadFormat() (format.Format, bool) {
	if c.InputFormat == "" {
		return 0, false
	}
	f, err := format.Parse(c.InputFormat)
	if err != nil {
		return 0, false
	}
	return f, true
}
