// Package config loads the otb YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceBOM/internal/logging"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/bom"
)

// Config controls BOM layout, which attributes may be edited and logging.
type Config struct {
	// BoardExtension replaces the schematic's extension to find its board.
	BoardExtension string `yaml:"board_extension"`

	// Columns of the BOM table, in order.
	Columns []bom.Column `yaml:"columns"`

	// Editable lists the attribute names set and apply may write. Empty
	// allows every name.
	Editable []string `yaml:"editable"`

	Log logging.Config `yaml:"log"`
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		BoardExtension: ".brd",
		Columns:        bom.DefaultColumns(),
		Editable:       []string{"value", "MANUFACTURER", "MPN", "OC_FARNELL", "OC_MOUSER", "OC_DIGIKEY"},
		Log:            logging.DefaultConfig(),
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
// Keys not present in the file keep their defaults; unknown keys are an
// error.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads YAML from r on top of DefaultConfig and validates the result.
func Parse(r io.Reader) (*Config, error) {
	c := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration and normalises the board extension to
// start with a dot.
func (c *Config) Validate() error {
	if c.BoardExtension == "" || c.BoardExtension == "." {
		return fmt.Errorf("config: board_extension must not be empty")
	}
	if !strings.HasPrefix(c.BoardExtension, ".") {
		c.BoardExtension = "." + c.BoardExtension
	}

	if len(c.Columns) == 0 {
		return fmt.Errorf("config: at least one BOM column is required")
	}
	for i, col := range c.Columns {
		if col.Header == "" || col.Attribute == "" {
			return fmt.Errorf("config: column %d needs both header and attribute", i+1)
		}
	}

	for _, name := range c.Editable {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("config: editable attribute names must not be empty")
		}
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// IsEditable reports whether set and apply may write the named attribute.
func (c *Config) IsEditable(name string) bool {
	return len(c.Editable) == 0 || slices.Contains(c.Editable, name)
}
