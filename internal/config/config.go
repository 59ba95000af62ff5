package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/dmelnich/roster"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDirName  = ".roster"
	defaultConfigFileName = "roster.yaml"
	defaultPrompt         = "> "
)

// FieldSpec declares one record field in the config file.
type FieldSpec struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional,omitempty"`
	Min      *int   `yaml:"min,omitempty"`
	Max      *int   `yaml:"max,omitempty"`
}

// Config holds the console binary configuration: the prompt and the
// record schema. Without a config file the original student schema is
// used.
type Config struct {
	Prompt string      `yaml:"prompt,omitempty" env:"ROSTER_PROMPT"`
	Fields []FieldSpec `yaml:"fields,omitempty"`
}

// Load reads configuration from path when given, otherwise from
// ./roster.yaml, then ~/.roster/roster.yaml, then defaults. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	cfg, err := resolve(path)
	if err != nil {
		return nil, err
	}

	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "could not parse environment")
	}

	return cfg, nil
}

func resolve(path string) (*Config, error) {
	if path != "" {
		return loadFromFile(path)
	}

	cfg, err := loadFromFile(defaultConfigFileName)
	if err == nil {
		return cfg, nil
	}

	if !os.IsNotExist(errors.Cause(err)) {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		cfg, err := loadFromFile(filepath.Join(homeDir, defaultConfigDirName, defaultConfigFileName))
		if err == nil {
			return cfg, nil
		}

		if !os.IsNotExist(errors.Cause(err)) {
			return nil, err
		}
	}

	return &Config{}, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config from %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "could not parse config from %s", path)
	}

	return &cfg, nil
}

// BuildSchema turns the configured field specs into a store schema.
func (cfg *Config) BuildSchema() (*roster.Schema, error) {
	if len(cfg.Fields) == 0 {
		return roster.DefaultSchema(), nil
	}

	fields := make([]roster.Field, 0, len(cfg.Fields))
	for _, fs := range cfg.Fields {
		var opts []roster.FieldOption
		if fs.Optional {
			opts = append(opts, roster.Optional)
		}

		if fs.Min != nil {
			opts = append(opts, roster.WithMin(*fs.Min))
		}

		if fs.Max != nil {
			opts = append(opts, roster.WithMax(*fs.Max))
		}

		switch strings.ToLower(fs.Type) {
		case "", "string":
			fields = append(fields, roster.StrField(fs.Name, opts...))
		case "int", "integer":
			fields = append(fields, roster.IntField(fs.Name, opts...))
		default:
			return nil, errors.Errorf("unsupported type %q for field %s", fs.Type, fs.Name)
		}
	}

	return roster.NewSchema(fields...)
}
