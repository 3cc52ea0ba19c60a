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

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/scopecheck/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// GlobalFlags holds the global CLI flags that apply to all commands.
type GlobalFlags struct {
	JSON    bool // Output in JSON format (for applicable commands)
	NoColor bool // Disable color output
	Verbose int  // Verbosity level: 0=normal, 1=-v (info), 2=-vv (debug)
	Quiet   bool // Suppress non-essential output (progress, info messages)
}

// main is the entry point for the scopecheck CLI.
//
// It parses global flags and dispatches to command handlers.
//
// Commands:
//   - init: Create .scopecheck.yaml configuration
//   - check: Analyze files for brace/scope mismatches
//   - config: Show effective configuration
func main() {
	// Global flags with short forms
	var (
		showVersion = flag.BoolP("version", "V", false, "Show version and exit")
		configPath  = flag.StringP("config", "c", "", "Path to .scopecheck.yaml (default: found in current or parent directories)")
		jsonOutput  = flag.Bool("json", false, "Output in JSON format (for applicable commands)")
		noColor     = flag.Bool("no-color", false, "Disable color output")
		verbose     = flag.CountP("verbose", "v", "Increase verbosity (-v for info, -vv for debug)")
		quiet       = flag.BoolP("quiet", "q", false, "Suppress non-essential output (progress, info messages)")
	)

	// Stop parsing at the first non-flag argument (the command name), so
	// subcommand flags like "check --scopes" reach the subcommand parser
	// instead of being rejected here.
	flag.SetInterspersed(false)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `scopecheck - Structural Balance Analyzer

scopecheck scans brace-delimited source files and diagnoses scope
mismatches: extra closing braces, unclosed braces, classes that close
earlier than their methods suggest, trailing code after the last
top-level declaration, and suspiciously deep nesting. Braces inside
string literals and comments never count.

It is built for files too broken for a real parser to help with — it
locates and characterizes the malformation instead of guessing a fix.

Usage:
  scopecheck <command> [options]

Commands:
  init     Create .scopecheck.yaml configuration
  check    Analyze files or directories
  config   Show effective configuration

Global Options:
  --json            Output in JSON format (for applicable commands)
  --no-color        Disable color output (respects NO_COLOR env var)
  -v, --verbose     Increase verbosity (-v for info, -vv for debug)
  -q, --quiet       Suppress non-essential output (progress, info messages)
  -c, --config      Path to .scopecheck.yaml
  -V, --version     Show version and exit

Examples:
  scopecheck init                      Write default configuration
  scopecheck check Sources/App.swift   Analyze one file
  scopecheck check Sources/            Analyze a directory tree
  scopecheck check --scopes App.swift  Also print the resolved scope table
  scopecheck check --json App.swift    Machine-readable report

Exit Codes:
  0  No structural defects found
  1  Extra closing brace or unclosed brace present
  2  Invalid input (unreadable file, bad configuration)

For detailed command help: scopecheck <command> --help

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("scopecheck version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	// Check NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		*noColor = true
	}

	// Validate conflicting flags
	if *quiet && *verbose > 0 {
		fmt.Fprintf(os.Stderr, "Error: cannot use --quiet and --verbose together\n")
		os.Exit(2)
	}

	// JSON mode auto-enables quiet to prevent progress bars corrupting JSON output
	if *jsonOutput {
		*quiet = true
	}

	globals := GlobalFlags{
		JSON:    *jsonOutput,
		NoColor: *noColor,
		Verbose: *verbose,
		Quiet:   *quiet,
	}

	ui.InitColors(globals.NoColor)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "init":
		runInit(cmdArgs, globals)
	case "check":
		runCheck(cmdArgs, *configPath, globals)
	case "config":
		runConfigCmd(cmdArgs, *configPath, globals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(2)
	}
}
