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
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/scopecheck/internal/errors"
	"github.com/kraklabs/scopecheck/internal/ui"
)

// runInit executes the 'init' CLI command, creating a .scopecheck.yaml
// configuration file in the current directory.
//
// Flags:
//   - --force: Overwrite existing configuration (default: false)
//   - --keywords: Comma-separated declaration keywords to track
//
// Examples:
//
//	scopecheck init                          Write defaults
//	scopecheck init --keywords class,func    Track only classes and functions
//	scopecheck init --force                  Overwrite an existing config
func runInit(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite existing configuration")
	keywords := fs.String("keywords", "", "Comma-separated declaration keywords to track (default: class,struct,enum,func)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scopecheck init [options]

Description:
  Create a .scopecheck.yaml configuration file in the current directory.

  The configuration defines:
  - Analyzer thresholds (deep nesting, lookahead, diagnostic cap)
  - Declaration keywords to associate with scopes
  - File selection for directory walks (extensions, excludes, size cap)

  The check command works without a configuration file; init is only
  needed to change the defaults.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Write default configuration
  scopecheck init

  # Track custom declaration keywords
  scopecheck init --keywords class,struct,enum,func,actor

  # Recreate after editing it into a broken state
  scopecheck init --force

Notes:
  Configuration is stored in .scopecheck.yaml in the directory where
  init is run. The check command searches the current directory and
  its parents for it.

`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Cannot access working directory",
			"Failed to determine current directory path",
			"This is unexpected. Please report this issue if it persists",
			err,
		), globals.JSON)
	}

	configPath := ConfigPath(cwd)
	if _, err := os.Stat(configPath); err == nil && !*force {
		errors.FatalError(errors.NewInputError(
			"Configuration already exists",
			fmt.Sprintf("%s already exists in this directory", configPath),
			"Use 'scopecheck init --force' to overwrite the existing configuration",
		), globals.JSON)
	}

	cfg := DefaultConfig()
	if *keywords != "" {
		cfg.Analyzer.DeclarationKeywords = splitKeywords(*keywords)
	}

	if err := SaveConfig(cfg, configPath); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	ui.Successf("Created %s", configPath)
	fmt.Println()
	ui.SubHeader("Next steps:")
	fmt.Printf("  1. Review and edit %s if needed\n", ui.DimText(defaultConfigFile))
	fmt.Printf("  2. Run '%s' to analyze your sources\n", ui.Cyan.Sprint("scopecheck check <path>"))
	fmt.Printf("  3. Run '%s' to inspect the effective settings\n", ui.Cyan.Sprint("scopecheck config"))
}

// splitKeywords parses a comma-separated keyword list, dropping empties.
func splitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
