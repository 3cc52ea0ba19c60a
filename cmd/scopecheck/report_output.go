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

	"github.com/kraklabs/scopecheck/internal/ui"
	"github.com/kraklabs/scopecheck/pkg/analyzer"
)

// FileResult is the per-file analysis result for JSON output.
type FileResult struct {
	Path        string                 `json:"path"`
	Summary     map[string]int         `json:"summary"`
	Diagnostics []analyzer.Diagnostic  `json:"diagnostics"`
	Truncated   int                    `json:"truncated,omitempty"`
	Scopes      []analyzer.ScopeRecord `json:"scopes,omitempty"`
	Notes       []string               `json:"notes,omitempty"`
	FinalDepth  int                    `json:"final_depth"`
	Fatal       bool                   `json:"fatal"`
}

// buildFileResult flattens a report into the output shape. Scope records
// are included only when requested via --scopes.
func buildFileResult(path string, rep *analyzer.Report, withScopes bool) FileResult {
	res := FileResult{
		Path:        path,
		Summary:     rep.Summary(),
		Diagnostics: rep.Detailed(),
		Truncated:   rep.TruncatedCount(),
		Notes:       rep.Notes,
		FinalDepth:  rep.FinalDepth,
		Fatal:       rep.HasFatalIssues(),
	}
	if withScopes {
		res.Scopes = rep.Scopes
	}
	return res
}

// printFileResult renders one file's result in human-readable form.
func printFileResult(res FileResult, quiet bool) {
	if len(res.Diagnostics) == 0 && !res.Fatal {
		if !quiet {
			ui.Successf("%s: no structural defects (final depth %d)", res.Path, res.FinalDepth)
		}
		printScopeTable(res.Scopes)
		return
	}

	ui.Header(res.Path)
	for _, d := range res.Diagnostics {
		printDiagnostic(d)
	}
	if res.Truncated > 0 {
		fmt.Printf("  %s\n", ui.DimText(fmt.Sprintf("... and %d more diagnostic(s) not shown", res.Truncated)))
	}

	if len(res.Notes) > 0 && !quiet {
		fmt.Println()
		ui.SubHeader("Notes:")
		for _, n := range res.Notes {
			fmt.Printf("  %s\n", ui.DimText(n))
		}
	}

	if res.FinalDepth != 0 {
		fmt.Printf("\n  %s %s\n", ui.Label("Final depth:"), ui.Red(fmt.Sprintf("%d", res.FinalDepth)))
	}

	printScopeTable(res.Scopes)
	fmt.Println()
}

// printDiagnostic renders one finding with its location, severity tag,
// and context window.
func printDiagnostic(d analyzer.Diagnostic) {
	loc := fmt.Sprintf("line %d", d.Line)
	if d.Column > 0 {
		loc = fmt.Sprintf("line %d, col %d", d.Line, d.Column)
	}

	tag := ui.Red(d.Kind.String())
	if d.Heuristic {
		tag = ui.Yellow(d.Kind.String() + " (heuristic)")
	}

	fmt.Printf("  %s  %s\n", tag, ui.DimText(loc))
	fmt.Printf("    %s\n", d.Message)
	for _, line := range d.Context {
		fmt.Printf("    %s %s\n", ui.DimText("|"), line)
	}
}

// printScopeTable renders the resolved scope table when --scopes was given.
func printScopeTable(scopes []analyzer.ScopeRecord) {
	if len(scopes) == 0 {
		return
	}
	fmt.Println()
	ui.SubHeader("Scopes:")
	for _, s := range scopes {
		span := fmt.Sprintf("lines %d-%d", s.StartLine, s.EndLine)
		if !s.Resolved() {
			span = fmt.Sprintf("lines %d-EOF %s", s.StartLine, ui.Red("(unresolved)"))
		}
		fmt.Printf("  %-10s %-24s depth %d  %s\n", s.Kind, s.Name, s.StartDepth, ui.DimText(span))
	}
}
