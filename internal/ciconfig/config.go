// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ciconfig loads scriptcheck settings and the CI trigger context.
//
// Sources, highest precedence first:
//  1. command-line flags
//  2. environment (SCRIPTCHECK_FORMAT, SCRIPTCHECK_LOG_LEVEL, ...; the CI
//     trigger is read from the GITHUB_* variables)
//  3. .scriptcheck.yaml in the working directory, or the file given by --config
//  4. built-in defaults
package ciconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/scriptcheck/internal/linescan"
	"github.com/bartekus/scriptcheck/internal/scanner"
)

// EnvPrefix prefixes every tool setting read from the environment.
const EnvPrefix = "SCRIPTCHECK"

// Env describes the CI event that triggered the run.
type Env struct {
	EventName string `mapstructure:"event_name" yaml:"event_name"`
	BaseRef   string `mapstructure:"base_ref" yaml:"base_ref"`
	Before    string `mapstructure:"before" yaml:"before"`
	SHA       string `mapstructure:"sha" yaml:"sha"`
}

// ciEnvVars maps Env keys to the variables GitHub Actions exports.
var ciEnvVars = map[string]string{
	"ci.event_name": "GITHUB_EVENT_NAME",
	"ci.base_ref":   "GITHUB_BASE_REF",
	"ci.before":     "GITHUB_EVENT_BEFORE",
	"ci.sha":        "GITHUB_SHA",
}

// Config is the effective configuration of one run.
type Config struct {
	Format      string        `mapstructure:"format"`
	Out         string        `mapstructure:"out"`
	Range       string        `mapstructure:"range"`
	Extensions  []string      `mapstructure:"extensions"`
	ExcludeDirs []string      `mapstructure:"exclude_dirs"`
	MaxPreview  int           `mapstructure:"max_preview"`
	GitTimeout  time.Duration `mapstructure:"git_timeout"`
	Log         LogConfig     `mapstructure:"log"`
	CI          Env           `mapstructure:"ci"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // console or json
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"format":       "format",
	"out":          "out",
	"range":        "range",
	"extensions":   "ext",
	"exclude_dirs": "exclude-dir",
}

var validFormats = map[string]bool{"text": true, "json": true, "sarif": true, "github": true}

// Load reads configuration. configFile may be empty; flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".scriptcheck")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range ciEnvVars {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	setDefaults(v)

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// The config file is optional unless named explicitly.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Extensions = scanner.NormalizeExtensions(c.Extensions)
	if len(c.Extensions) == 0 {
		c.Extensions = scanner.DefaultExtensions()
	}
	dirs := c.ExcludeDirs[:0]
	for _, d := range c.ExcludeDirs {
		if d = strings.Trim(strings.TrimSpace(d), "/"); d != "" {
			dirs = append(dirs, d)
		}
	}
	c.ExcludeDirs = dirs
	c.Range = strings.TrimSpace(c.Range)
}

// Validate checks for configuration errors.
func (c *Config) Validate() error {
	if !validFormats[c.Format] {
		return fmt.Errorf("format must be one of text, json, sarif, github (got %q)", c.Format)
	}
	if c.MaxPreview <= 3 {
		return fmt.Errorf("max_preview must be greater than 3 (got %d)", c.MaxPreview)
	}
	if c.GitTimeout < 0 {
		return fmt.Errorf("git_timeout must not be negative (got %s)", c.GitTimeout)
	}
	return nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	view := struct {
		Format      string    `yaml:"format"`
		Out         string    `yaml:"out"`
		Range       string    `yaml:"range"`
		Extensions  []string  `yaml:"extensions"`
		ExcludeDirs []string  `yaml:"exclude_dirs"`
		MaxPreview  int       `yaml:"max_preview"`
		GitTimeout  string    `yaml:"git_timeout"`
		Log         LogConfig `yaml:"log"`
		CI          Env       `yaml:"ci"`
	}{
		Format:      c.Format,
		Out:         c.Out,
		Range:       c.Range,
		Extensions:  c.Extensions,
		ExcludeDirs: c.ExcludeDirs,
		MaxPreview:  c.MaxPreview,
		GitTimeout:  c.GitTimeout.String(),
		Log:         c.Log,
		CI:          c.CI,
	}
	if view.ExcludeDirs == nil {
		view.ExcludeDirs = []string{}
	}
	return yaml.Marshal(view)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "text")
	v.SetDefault("out", "")
	v.SetDefault("range", "")
	v.SetDefault("extensions", scanner.DefaultExtensions())
	v.SetDefault("exclude_dirs", []string{})
	v.SetDefault("max_preview", linescan.DefaultMaxPreview)
	v.SetDefault("git_timeout", "0s")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("ci.event_name", "")
	v.SetDefault("ci.base_ref", "")
	v.SetDefault("ci.before", "")
	v.SetDefault("ci.sha", "")
}
