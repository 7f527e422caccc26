package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	appName    = "accordion"
	configFile = "accordion.yaml"
)

// Format is a configuration document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

//go:embed demo.yaml
var demoDocument []byte

// FormatForPath picks the document format from a file extension.
// Anything that is not .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// GetConfigDir returns the OS-appropriate configuration directory.
//   - Linux: $XDG_CONFIG_HOME/accordion or $HOME/.config/accordion
//   - macOS: $HOME/.config/accordion
//   - Windows: %LOCALAPPDATA%\accordion
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, appName), nil
		}
		profile := os.Getenv("USERPROFILE")
		if profile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(profile, "AppData", "Local", appName), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", appName), nil
	}
}

// GetConfigPath returns the default document path.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Parse decodes and validates a document.
func Parse(data []byte, format Format) (*AccordionConfig, error) {
	var cfg AccordionConfig
	switch format {
	case FormatTOML:
		if err := decodeTOML(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatYAML, "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, Validate(nil)
			}
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// tomlProps mirrors the layer list so componentProps tables can be decoded
// into plain maps and converted afterwards.
type tomlProps struct {
	Layers []struct {
		ComponentProps map[string]any `toml:"componentProps"`
	} `toml:"layers"`
}

func decodeTOML(data []byte, cfg *AccordionConfig) error {
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	if err != nil {
		return err
	}
	if unknown := undecodedTOML(md); len(unknown) > 0 {
		return fmt.Errorf("unknown field(s): %s", strings.Join(unknown, ", "))
	}

	var raw tomlProps
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return err
	}
	order := tomlPropOrder(md)
	for i := range raw.Layers {
		if i >= len(cfg.Layers) || raw.Layers[i].ComponentProps == nil {
			continue
		}
		var names []string
		if i < len(order) {
			names = order[i]
		}
		props, err := propsFromTOML(raw.Layers[i].ComponentProps, names)
		if err != nil {
			return fmt.Errorf("layers[%d].%w", i, err)
		}
		cfg.Layers[i].ComponentProps = props
	}
	return nil
}

// isComponentPropsKey reports whether key lies under layers.componentProps,
// which the typed decode skips on purpose.
func isComponentPropsKey(key toml.Key) bool {
	return len(key) >= 2 && key[0] == "layers" && key[1] == "componentProps"
}

// undecodedTOML lists keys that match no field, like yaml's KnownFields.
func undecodedTOML(md toml.MetaData) []string {
	var unknown []string
	for _, key := range md.Undecoded() {
		if isComponentPropsKey(key) {
			continue
		}
		unknown = append(unknown, key.String())
	}
	return unknown
}

// tomlPropOrder returns, per [[layers]] entry, the componentProps names in
// document order. Keys lists each array table header once per element.
func tomlPropOrder(md toml.MetaData) [][]string {
	var order [][]string
	for _, key := range md.Keys() {
		switch {
		case len(key) == 1 && key[0] == "layers":
			order = append(order, nil)
		case len(key) == 3 && isComponentPropsKey(key) && len(order) > 0:
			last := len(order) - 1
			order[last] = append(order[last], key[2])
		}
	}
	return order
}

// Load reads, decodes and validates the document at path. An empty path
// means the default location.
func Load(path string) (*AccordionConfig, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Demo returns the built-in demonstration document.
func Demo() *AccordionConfig {
	cfg, err := Parse(demoDocument, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded demo config is invalid: %v", err))
	}
	return cfg
}

// DemoDocument returns the raw bytes of the built-in document.
func DemoDocument() []byte {
	return bytes.Clone(demoDocument)
}

// WriteDefault writes the demo document to path (default location when
// empty) unless a file already exists there. The write is atomic.
func WriteDefault(path string) (string, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return "", fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if FormatForPath(path) != FormatYAML {
		return path, fmt.Errorf("default config can only be written as YAML: %s", path)
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return path, fmt.Errorf("failed to create config directory: %w", err)
	}

	header := []byte("# Accordion configuration\n# Location: " + path + "\n\n")
	data := append(header, demoDocument...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return path, fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return path, fmt.Errorf("failed to save config file: %w", err)
	}
	return path, nil
}
