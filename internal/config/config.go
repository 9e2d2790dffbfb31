package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// FileNames are the configuration files searched for, in order of preference
var FileNames = []string{"modelgen.yaml", "modelgen.yml", "modelgen.json"}

// Config represents the modelgen configuration file
type Config struct {
	Name         string            `json:"name" yaml:"name"`
	Language     string            `json:"language" yaml:"language"`
	Schema       string            `json:"schema" yaml:"schema"`
	Package      string            `json:"package,omitempty" yaml:"package,omitempty"`
	RegistryName string            `json:"registryName,omitempty" yaml:"registryName,omitempty"`
	Scalars      map[string]string `json:"scalars,omitempty" yaml:"scalars,omitempty"`
	Models       []string          `json:"models,omitempty" yaml:"models,omitempty"`
	Enums        []string          `json:"enums,omitempty" yaml:"enums,omitempty"`
	Modes        []string          `json:"modes,omitempty" yaml:"modes,omitempty"`
	BestEffort   bool              `json:"bestEffort,omitempty" yaml:"bestEffort,omitempty"`
	Output       OutputConfig      `json:"output" yaml:"output"`
	Watch        WatchConfig       `json:"watch" yaml:"watch,omitempty"`
}

// OutputConfig contains output-specific configuration
type OutputConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Exclude  []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

const (
	DefaultSchema    = "./schema.graphql"
	DefaultOutputDir = "./generated"
)

// LoadConfig loads the configuration from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to get current directory")
	}

	return LoadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific path. Files
// ending in .json are decoded as JSON, everything else as YAML.
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var config Config
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &config)
	} else {
		err = yaml.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	config.setDefaults()
	return &config, nil
}

func (c *Config) setDefaults() {
	if c.Schema == "" {
		c.Schema = DefaultSchema
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if len(c.Watch.Patterns) == 0 {
		c.Watch.Patterns = []string{"*.graphql", "**/*.graphql", "*.gql", "**/*.gql"}
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{".git", "node_modules", "build", filepath.Base(c.Output.Dir)}
	}
}

// Validate checks the configuration against the supported target languages
func (c *Config) Validate(languages []string) error {
	if c.Language == "" {
		return errors.WithHint(errors.New("language is required"),
			"set language to one of: "+strings.Join(languages, ", "))
	}
	if !slices.Contains(languages, c.Language) {
		return errors.WithHint(errors.Newf("unsupported language %q", c.Language),
			"set language to one of: "+strings.Join(languages, ", "))
	}
	for scalar, target := range c.Scalars {
		if target == "" {
			return errors.Newf("scalar %q has an empty target type", scalar)
		}
	}
	return nil
}

// LoadConfigFromDir searches for a configuration file in the given directory and its parents
func LoadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				config, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return config, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", errors.Newf("no %s found in %s or any parent directory", strings.Join(FileNames, " or "), startDir)
}

// Encode renders the configuration as YAML
func (c *Config) Encode() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return data, nil
}
