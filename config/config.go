/*
Package config loads the optional YAML configuration file used by the
hexpix command.
*/
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bodgit/hexpix"
	"gopkg.in/yaml.v2"
)

// Filename is the configuration file looked for when none is given.
const Filename = "hexpix.yml"

// Config holds the defaults for each command. Flags given on the command
// line take precedence.
type Config struct {
	// Database is the path to the catalog, empty disables it
	Database string `yaml:"database"`
	Workers  int    `yaml:"workers"`
	Colors   int    `yaml:"colors"`
	Format   string `yaml:"format"`
	Scale    int    `yaml:"scale"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{
		Workers: hexpix.DefaultWorkers,
		Format:  hexpix.FormatPNG,
		Scale:   1,
	}
}

// Validate checks every value is in range.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return errors.New("workers must be at least 1")
	case c.Colors < 0 || c.Colors > 256:
		return errors.New("colors must be between 0 and 256")
	case c.Scale < 1:
		return errors.New("scale must be at least 1")
	}
	switch c.Format {
	case hexpix.FormatPNG, hexpix.FormatBMP:
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	return nil
}

// Load reads the configuration in file over the defaults. A missing file
// is not an error.
func Load(file string) (Config, error) {
	c := Default()

	b, err := ioutil.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return Config{}, fmt.Errorf("failed to read configuration file '%s': %w", file, err)
	}

	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration file '%s': %w", file, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration file '%s': %w", file, err)
	}

	return c, nil
}
