// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/scopecheck/internal/errors"
	"github.com/kraklabs/scopecheck/pkg/analyzer"
)

const (
	defaultConfigFile = ".scopecheck.yaml"
	configVersion     = "1"
)

// Config represents the .scopecheck.yaml configuration file.
type Config struct {
	Version  string         `yaml:"version"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Files    FilesConfig    `yaml:"files"`
}

// AnalyzerConfig contains the analyzer thresholds and declaration set.
type AnalyzerConfig struct {
	DeepNestingThreshold int      `yaml:"deep_nesting_threshold"` // depth above which DeepNesting fires
	EarlyCloseLookahead  int      `yaml:"early_close_lookahead"`  // lines scanned after a scope close
	MaxDiagnostics       int      `yaml:"max_diagnostics"`        // presentation cap
	ContextLines         int      `yaml:"context_lines"`          // context radius around diagnostics
	DeclarationKeywords  []string `yaml:"declaration_keywords"`   // tracked declaration keywords
}

// FilesConfig contains file selection settings for directory walks.
type FilesConfig struct {
	Extensions  []string `yaml:"extensions"`    // file extensions picked up by directory walks
	MaxFileSize int64    `yaml:"max_file_size"` // bytes; larger files are skipped with a warning
	Exclude     []string `yaml:"exclude"`       // glob patterns
}

// DefaultConfig returns a config with the documented defaults.
func DefaultConfig() *Config {
	opts := analyzer.DefaultOptions()
	return &Config{
		Version: configVersion,
		Analyzer: AnalyzerConfig{
			DeepNestingThreshold: opts.DeepNestingThreshold,
			EarlyCloseLookahead:  opts.EarlyCloseLookahead,
			MaxDiagnostics:       opts.MaxDiagnostics,
			ContextLines:         opts.ContextLines,
			DeclarationKeywords:  opts.DeclarationKeywords,
		},
		Files: FilesConfig{
			Extensions:  []string{".swift", ".go", ".java", ".kt", ".c", ".cpp", ".h", ".m", ".js", ".ts"},
			MaxFileSize: 4 * 1024 * 1024, // 4MB
			Exclude: []string{
				".git/**",
				"node_modules/**",
				"vendor/**",
				"build/**",
				"dist/**",
			},
		},
	}
}

// AnalyzerOptions maps the config onto analyzer options.
func (c *Config) AnalyzerOptions() analyzer.Options {
	return analyzer.Options{
		DeepNestingThreshold: c.Analyzer.DeepNestingThreshold,
		EarlyCloseLookahead:  c.Analyzer.EarlyCloseLookahead,
		MaxDiagnostics:       c.Analyzer.MaxDiagnostics,
		ContextLines:         c.Analyzer.ContextLines,
		DeclarationKeywords:  c.Analyzer.DeclarationKeywords,
	}
}

// LoadConfig loads configuration from the specified path or finds it
// automatically.
//
// If configPath is empty, SCOPECHECK_CONFIG_PATH is consulted, then
// .scopecheck.yaml is searched for in the current directory and parent
// directories. Environment variable overrides are applied after loading.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv("SCOPECHECK_CONFIG_PATH")
	}
	if configPath == "" {
		var err error
		configPath, err = findConfigFile()
		if err != nil {
			return nil, err // findConfigFile returns UserError
		}
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // G304: Path comes from user config or discovery
	if err != nil {
		return nil, errors.NewConfigError(
			"Cannot read configuration file",
			fmt.Sprintf("Failed to read %s", configPath),
			"Check file permissions and ensure the file exists",
			err,
		)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigError(
			"Invalid configuration format",
			"YAML parsing failed - the config file contains syntax errors",
			fmt.Sprintf("Edit %s to fix syntax errors, or run 'scopecheck init --force' to recreate", configPath),
			err,
		)
	}

	if cfg.Version != configVersion {
		return nil, errors.NewConfigError(
			"Unsupported configuration version",
			fmt.Sprintf("Config version '%s' is not supported (expected '%s')", cfg.Version, configVersion),
			"Run 'scopecheck init --force' to regenerate the configuration file",
			nil,
		)
	}

	cfg.fillDefaults()
	cfg.applyEnvOverrides()

	return &cfg, nil
}

// LoadConfigOrDefault loads the configuration, falling back to defaults
// when no config file exists. The check command works out of the box in
// repositories that never ran 'scopecheck init'.
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg = DefaultConfig()
		cfg.applyEnvOverrides()
	}
	return cfg
}

// SaveConfig writes the configuration to the specified path as YAML.
func SaveConfig(cfg *Config, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewInternalError(
			"Cannot encode configuration",
			"YAML marshaling failed unexpectedly",
			"This is a bug. Please report it with your configuration details",
			err,
		)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return errors.NewPermissionError(
			"Cannot create configuration directory",
			fmt.Sprintf("Permission denied creating %s", dir),
			"Check directory permissions or run with appropriate privileges",
			err,
		)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return errors.NewPermissionError(
			"Cannot write configuration file",
			fmt.Sprintf("Permission denied writing to %s", configPath),
			"Check file permissions and ensure sufficient disk space",
			err,
		)
	}

	return nil
}

// ConfigPath returns the path to the config file in the given directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, defaultConfigFile)
}

// findConfigFile searches for .scopecheck.yaml in current and parent
// directories, returning the first match walking up to the filesystem
// root.
func findConfigFile() (string, error) {
	if configPath := os.Getenv("SCOPECHECK_CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
		return "", errors.NewConfigError(
			"Configuration file not found",
			fmt.Sprintf("SCOPECHECK_CONFIG_PATH is set to '%s' but the file does not exist", configPath),
			"Fix the SCOPECHECK_CONFIG_PATH environment variable or run 'scopecheck init' to create a config",
			nil,
		)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", errors.NewInternalError(
			"Cannot access working directory",
			"Failed to determine current directory path",
			"Check system permissions and try again",
			err,
		)
	}

	for {
		configPath := ConfigPath(dir)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", errors.NewConfigError(
		"Configuration not found",
		"No .scopecheck.yaml file found in current directory or any parent directory",
		"Run 'scopecheck init' to create a new configuration",
		nil,
	)
}

// fillDefaults replaces unset fields with defaults so a sparse config
// file behaves sensibly.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Analyzer.DeepNestingThreshold <= 0 {
		c.Analyzer.DeepNestingThreshold = def.Analyzer.DeepNestingThreshold
	}
	if c.Analyzer.EarlyCloseLookahead <= 0 {
		c.Analyzer.EarlyCloseLookahead = def.Analyzer.EarlyCloseLookahead
	}
	if c.Analyzer.MaxDiagnostics <= 0 {
		c.Analyzer.MaxDiagnostics = def.Analyzer.MaxDiagnostics
	}
	if c.Analyzer.ContextLines <= 0 {
		c.Analyzer.ContextLines = def.Analyzer.ContextLines
	}
	if len(c.Analyzer.DeclarationKeywords) == 0 {
		c.Analyzer.DeclarationKeywords = def.Analyzer.DeclarationKeywords
	}
	if len(c.Files.Extensions) == 0 {
		c.Files.Extensions = def.Files.Extensions
	}
	if c.Files.MaxFileSize <= 0 {
		c.Files.MaxFileSize = def.Files.MaxFileSize
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables take precedence over file-based
// configuration.
//
// Supported environment variables:
//   - SCOPECHECK_DEEP_NESTING_THRESHOLD
//   - SCOPECHECK_EARLY_CLOSE_LOOKAHEAD
//   - SCOPECHECK_MAX_DIAGNOSTICS
func (c *Config) applyEnvOverrides() {
	if v := envInt("SCOPECHECK_DEEP_NESTING_THRESHOLD"); v > 0 {
		c.Analyzer.DeepNestingThreshold = v
	}
	if v := envInt("SCOPECHECK_EARLY_CLOSE_LOOKAHEAD"); v > 0 {
		c.Analyzer.EarlyCloseLookahead = v
	}
	if v := envInt("SCOPECHECK_MAX_DIAGNOSTICS"); v > 0 {
		c.Analyzer.MaxDiagnostics = v
	}
}

// envInt parses an integer environment variable, returning 0 when unset
// or malformed.
func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
