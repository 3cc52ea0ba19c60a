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
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/scopecheck/internal/errors"
	"github.com/kraklabs/scopecheck/internal/output"
	"github.com/kraklabs/scopecheck/internal/ui"
	"github.com/kraklabs/scopecheck/pkg/analyzer"
)

// runCheck executes the 'check' CLI command, analyzing files or
// directories for brace and scope mismatches.
//
// Flags:
//   - --scopes: Include the resolved scope table in the output
//   - --deep-nesting: Override the deep nesting threshold
//   - --lookahead: Override the early-close lookahead window
//   - --max-diagnostics: Override the diagnostic presentation cap
//   - --context: Override the context line radius
//   - --debug: Enable debug logging
//   - --metrics-addr: HTTP address for Prometheus metrics (default: disabled)
//
// Examples:
//
//	scopecheck check Sources/App.swift
//	scopecheck check Sources/
//	scopecheck check --scopes --json App.swift
func runCheck(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	withScopes := fs.Bool("scopes", false, "Include the resolved scope table in the output")
	deepNesting := fs.Int("deep-nesting", 0, "Depth above which deep nesting is reported (overrides config)")
	lookahead := fs.Int("lookahead", 0, "Lines scanned after a scope close for the early-close heuristic (overrides config)")
	maxDiagnostics := fs.Int("max-diagnostics", 0, "Maximum diagnostics shown per file (overrides config)")
	contextRadius := fs.Int("context", 0, "Source lines of context around each diagnostic (overrides config)")
	debug := fs.Bool("debug", false, "Enable debug logging")
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scopecheck check [options] <path>...

Description:
  Scan brace-delimited source files for structural defects. Each file is
  read line by line; braces inside string literals and comments never
  count. The scan reports:

  - extra_closing_brace        A '}' with no matching '{' (fatal)
  - unclosed_brace             A '{' never closed by end of file (fatal)
  - early_scope_close          A class/struct/enum that closes while its
                               methods appear to follow (heuristic)
  - trailing_code_after_scope  Code after the last top-level scope ends
                               (heuristic)
  - deep_nesting               Depth beyond the configured threshold
                               (heuristic)

  Directories are walked recursively; only files matching the configured
  extensions are analyzed, and excluded patterns and oversized files are
  skipped.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Analyze one file
  scopecheck check Sources/App.swift

  # Analyze a directory tree
  scopecheck check Sources/

  # Print where each class, struct, enum, and func begins and ends
  scopecheck check --scopes Sources/App.swift

  # Machine-readable output
  scopecheck check --json Sources/ | jq '.[] | select(.fatal)'

  # Tighten the nesting threshold
  scopecheck check --deep-nesting 3 Sources/

Exit Codes:
  0  No structural defects found
  1  At least one extra_closing_brace or unclosed_brace finding
  2  Invalid input (unreadable path, bad configuration)

  Heuristic findings never affect the exit code.

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() == 0 {
		errors.FatalError(errors.NewInputError(
			"No input files",
			"The check command requires at least one file or directory argument",
			"Run 'scopecheck check <path>' with a source file or directory",
		), globals.JSON)
	}

	cfg := LoadConfigOrDefault(configPath)
	opts := cfg.AnalyzerOptions()
	if *deepNesting > 0 {
		opts.DeepNestingThreshold = *deepNesting
	}
	if *lookahead > 0 {
		opts.EarlyCloseLookahead = *lookahead
	}
	if *maxDiagnostics > 0 {
		opts.MaxDiagnostics = *maxDiagnostics
	}
	if *contextRadius > 0 {
		opts.ContextLines = *contextRadius
	}

	// Setup logging
	logLevel := slog.LevelWarn
	if globals.Verbose >= 1 {
		logLevel = slog.LevelInfo
	}
	if *debug || globals.Verbose >= 2 {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Start Prometheus metrics endpoint (optional)
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			srv := &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
			logger.Info("metrics.http.start", "addr", *metricsAddr, "path", "/metrics")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics.http.error", "err", err)
			}
		}()
	}

	files := collectFiles(fs.Args(), cfg, logger, globals)
	if len(files) == 0 {
		errors.FatalError(errors.NewInputError(
			"No files to analyze",
			"The given paths matched no files with the configured extensions",
			"Check the paths, or adjust files.extensions in .scopecheck.yaml",
		), globals.JSON)
	}

	a := analyzer.New(opts, logger)

	progressCfg := NewProgressConfig(globals)
	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = NewProgressBar(progressCfg, int64(len(files)), "Analyzing files")
	}

	results := make([]FileResult, 0, len(files))
	anyFatal := false
	for _, path := range files {
		data, err := os.ReadFile(path) //nolint:gosec // G304: paths come from CLI args and directory walk
		if err != nil {
			if bar != nil {
				_ = bar.Finish()
			}
			errors.FatalError(errors.NewPermissionError(
				"Cannot read input file",
				fmt.Sprintf("Failed to read %s", path),
				"Check that the file exists and is readable",
				err,
			), globals.JSON)
		}

		rep := a.Analyze(string(data))
		res := buildFileResult(path, rep, *withScopes)
		if res.Fatal {
			anyFatal = true
		}
		results = append(results, res)

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if globals.JSON {
		if err := output.JSON(results); err != nil {
			errors.FatalError(errors.NewInternalError(
				"Cannot encode results as JSON",
				"JSON encoding failed unexpectedly",
				"This is a bug. Please report it",
				err,
			), globals.JSON)
		}
	} else {
		for _, res := range results {
			printFileResult(res, globals.Quiet)
		}
		printRunSummary(results, globals)
	}

	if anyFatal {
		os.Exit(1)
	}
}

// printRunSummary prints the cross-file totals after a multi-file run.
func printRunSummary(results []FileResult, globals GlobalFlags) {
	if len(results) < 2 || globals.Quiet {
		return
	}
	totals := make(map[string]int)
	fatalFiles := 0
	for _, res := range results {
		for kind, n := range res.Summary {
			totals[kind] += n
		}
		if res.Fatal {
			fatalFiles++
		}
	}

	fmt.Println()
	ui.SubHeader("Summary:")
	fmt.Printf("  Files analyzed:  %s\n", ui.CountText(len(results)))
	if fatalFiles > 0 {
		fmt.Printf("  Files with structural defects: %s\n", ui.Red(fmt.Sprintf("%d", fatalFiles)))
	}
	for _, kind := range []string{"extra_closing_brace", "unclosed_brace", "early_scope_close", "trailing_code_after_scope", "deep_nesting"} {
		if n := totals[kind]; n > 0 {
			fmt.Printf("  %-26s %s\n", kind+":", ui.CountText(n))
		}
	}
}

// collectFiles expands the CLI path arguments into the list of files to
// analyze. File arguments are taken as-is; directory arguments are walked
// recursively, filtered by extension, exclusion patterns, and size.
func collectFiles(paths []string, cfg *Config, logger *slog.Logger, globals GlobalFlags) []string {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			errors.FatalError(errors.NewInputError(
				"Path not found",
				fmt.Sprintf("Cannot access %s", path),
				"Check the path for typos and ensure it exists",
			), globals.JSON)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		root := path
		walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn("walk.error", "path", p, "err", err)
				return nil
			}
			if d.IsDir() {
				if excluded(root, p, cfg.Files.Exclude) {
					return filepath.SkipDir
				}
				return nil
			}
			if !hasExtension(p, cfg.Files.Extensions) {
				return nil
			}
			if excluded(root, p, cfg.Files.Exclude) {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				logger.Warn("walk.stat.error", "path", p, "err", err)
				return nil
			}
			if fi.Size() > cfg.Files.MaxFileSize {
				if !globals.Quiet {
					ui.Warningf("skipping %s: %d bytes exceeds max_file_size %d", p, fi.Size(), cfg.Files.MaxFileSize)
				}
				return nil
			}
			files = append(files, p)
			return nil
		})
		if walkErr != nil {
			errors.FatalError(errors.NewPermissionError(
				"Cannot walk directory",
				fmt.Sprintf("Failed while walking %s", root),
				"Check directory permissions",
				walkErr,
			), globals.JSON)
		}
	}
	return files
}

// hasExtension reports whether path ends with one of the configured
// extensions.
func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// excluded reports whether the path, relative to the walk root, matches
// an exclusion pattern. Patterns with a "/**" suffix match the directory
// itself and everything under it.
func excluded(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if prefix, found := strings.CutSuffix(pattern, "/**"); found {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
			continue
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
