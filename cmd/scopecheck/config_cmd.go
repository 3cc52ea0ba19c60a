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
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/scopecheck/internal/errors"
	"github.com/kraklabs/scopecheck/internal/output"
	"github.com/kraklabs/scopecheck/internal/ui"
)

// ConfigOutput represents the effective configuration for JSON output.
type ConfigOutput struct {
	ConfigPath string               `json:"config_path"`
	Version    string               `json:"version"`
	Analyzer   AnalyzerConfigOutput `json:"analyzer"`
	Files      FilesConfigOutput    `json:"files"`
}

// AnalyzerConfigOutput represents analyzer settings for JSON output.
type AnalyzerConfigOutput struct {
	DeepNestingThreshold int      `json:"deep_nesting_threshold"`
	EarlyCloseLookahead  int      `json:"early_close_lookahead"`
	MaxDiagnostics       int      `json:"max_diagnostics"`
	ContextLines         int      `json:"context_lines"`
	DeclarationKeywords  []string `json:"declaration_keywords"`
}

// FilesConfigOutput represents file selection settings for JSON output.
type FilesConfigOutput struct {
	Extensions  []string `json:"extensions"`
	MaxFileSize int64    `json:"max_file_size"`
	Exclude     []string `json:"exclude"`
}

// runConfigCmd executes the 'config' CLI command, displaying the
// effective configuration after defaults and environment overrides.
//
// Examples:
//
//	scopecheck config           Display formatted configuration
//	scopecheck config --json    Output as JSON for programmatic use
func runConfigCmd(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scopecheck config [options]

Description:
  Display the effective scopecheck configuration: analyzer thresholds,
  tracked declaration keywords, and file selection settings.

  This reads the .scopecheck.yaml configuration file (found in the
  current directory or a parent) and applies environment variable
  overrides. When no config file exists, the built-in defaults are
  shown.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Show human-readable configuration
  scopecheck config

  # Output as JSON for programmatic use
  scopecheck config --json

  # Extract a specific field
  scopecheck config --json | jq '.analyzer.deep_nesting_threshold'

Environment Overrides:
  SCOPECHECK_CONFIG_PATH              Path to config file
  SCOPECHECK_DEEP_NESTING_THRESHOLD   Depth above which DeepNesting fires
  SCOPECHECK_EARLY_CLOSE_LOOKAHEAD    Lines scanned after a scope close
  SCOPECHECK_MAX_DIAGNOSTICS          Diagnostic presentation cap

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = findConfigFile()
		if err != nil {
			cfgPath = "(defaults)"
		}
	}
	if cfgPath != "(defaults)" && !filepath.IsAbs(cfgPath) {
		if abs, absErr := filepath.Abs(cfgPath); absErr == nil {
			cfgPath = abs
		}
	}

	cfg := LoadConfigOrDefault(configPath)

	result := &ConfigOutput{
		ConfigPath: cfgPath,
		Version:    cfg.Version,
		Analyzer: AnalyzerConfigOutput{
			DeepNestingThreshold: cfg.Analyzer.DeepNestingThreshold,
			EarlyCloseLookahead:  cfg.Analyzer.EarlyCloseLookahead,
			MaxDiagnostics:       cfg.Analyzer.MaxDiagnostics,
			ContextLines:         cfg.Analyzer.ContextLines,
			DeclarationKeywords:  cfg.Analyzer.DeclarationKeywords,
		},
		Files: FilesConfigOutput{
			Extensions:  cfg.Files.Extensions,
			MaxFileSize: cfg.Files.MaxFileSize,
			Exclude:     cfg.Files.Exclude,
		},
	}

	if globals.JSON {
		if err := output.JSON(result); err != nil {
			errors.FatalError(errors.NewInternalError(
				"Cannot encode configuration as JSON",
				"JSON encoding failed unexpectedly",
				"This is a bug. Please report it",
				err,
			), globals.JSON)
		}
		return
	}

	printConfigHuman(result)
}

// printConfigHuman prints the configuration in human-readable format.
func printConfigHuman(cfg *ConfigOutput) {
	ui.Header("scopecheck Configuration")
	fmt.Printf("%s  %s\n", ui.Label("Config File:"), ui.DimText(cfg.ConfigPath))
	fmt.Printf("%s      %s\n", ui.Label("Version:"), cfg.Version)
	fmt.Println()

	ui.SubHeader("Analyzer:")
	fmt.Printf("  Deep Nesting Threshold:  %d\n", cfg.Analyzer.DeepNestingThreshold)
	fmt.Printf("  Early Close Lookahead:   %d lines\n", cfg.Analyzer.EarlyCloseLookahead)
	fmt.Printf("  Max Diagnostics:         %d\n", cfg.Analyzer.MaxDiagnostics)
	fmt.Printf("  Context Lines:           %d\n", cfg.Analyzer.ContextLines)
	fmt.Printf("  Declaration Keywords:    %s\n", strings.Join(cfg.Analyzer.DeclarationKeywords, ", "))
	fmt.Println()

	ui.SubHeader("Files:")
	fmt.Printf("  Extensions:    %s\n", strings.Join(cfg.Files.Extensions, ", "))
	fmt.Printf("  Max File Size: %d bytes\n", cfg.Files.MaxFileSize)
	if len(cfg.Files.Exclude) > 0 {
		fmt.Printf("  Exclude:       %d patterns\n", len(cfg.Files.Exclude))
		for _, pattern := range cfg.Files.Exclude {
			fmt.Printf("                 - %s\n", ui.DimText(pattern))
		}
	}
}
