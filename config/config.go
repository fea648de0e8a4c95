package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete converter configuration.
type Config struct {
	Paths  PathsConfig  `json:"paths" yaml:"paths"`
	Output OutputConfig `json:"output" yaml:"output"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}

// PathsConfig contains the directories and collaborator documents a run
// reads from.
type PathsConfig struct {
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	LogDir    string `json:"log_dir" yaml:"log_dir"`
	PartsFile string `json:"parts_file" yaml:"parts_file"`
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`
}

// OutputConfig contains the artifact names a run writes.
type OutputConfig struct {
	MasterName  string `json:"master_name" yaml:"master_name"`
	WorkbookDir string `json:"workbook_dir" yaml:"workbook_dir"`
}

// StoreConfig contains the optional SQLite master store parameters.
type StoreConfig struct {
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Paths.DataDir == "" {
		return fmt.Errorf("paths.data_dir is required")
	}
	if c.Paths.LogDir == "" {
		return fmt.Errorf("paths.log_dir is required")
	}
	if c.Paths.PartsFile == "" {
		return fmt.Errorf("paths.parts_file is required")
	}
	if c.Output.MasterName == "" {
		return fmt.Errorf("output.master_name is required")
	}
	if c.Output.WorkbookDir == "" {
		return fmt.Errorf("output.workbook_dir is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:   "./data",
			LogDir:    "./logs",
			PartsFile: "./configs/report_parts.json",
		},
		Output: OutputConfig{
			MasterName:  "master.csv",
			WorkbookDir: "./out",
		},
		Store: StoreConfig{
			DBPath: "./reportsmith.sqlite",
		},
	}
}

// PartsConfig maps a report group key to the ordered list of export file
// names that make up that group's sequential parts.
type PartsConfig map[string][]string

// LoadParts reads the multi-part grouping document (JSON).
func LoadParts(path string) (PartsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parts config: %w", err)
	}

	var parts PartsConfig
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, fmt.Errorf("parse parts config: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("parts config %s defines no groups", path)
	}
	return parts, nil
}

// Keys returns the group keys in sorted order; groups are always assembled
// in key order so later parts extend earlier ones.
func (p PartsConfig) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
