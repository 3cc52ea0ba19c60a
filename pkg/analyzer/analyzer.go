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

package analyzer

import (
	"fmt"
	"strings"

	"log/slog"
)

// Options controls the analyzer's thresholds and declaration matching.
// Zero values fall back to the defaults at construction time.
type Options struct {
	// DeepNestingThreshold is the depth above which a DeepNesting finding
	// is emitted, once per threshold crossing. Default 5.
	DeepNestingThreshold int

	// EarlyCloseLookahead is the number of lines scanned after a scope
	// close for the early-close heuristic, and the window within which a
	// pending declaration must see its opening brace. Default 10.
	EarlyCloseLookahead int

	// MaxDiagnostics caps the presentation list returned by
	// Report.Detailed. Discovery is never capped. Default 20.
	MaxDiagnostics int

	// ContextLines is the radius of source-line context attached to
	// diagnostics. Default 3.
	ContextLines int

	// DeclarationKeywords are the keywords that start a tracked
	// declaration. Default: class, struct, enum, func.
	DeclarationKeywords []string
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		DeepNestingThreshold: 5,
		EarlyCloseLookahead:  10,
		MaxDiagnostics:       20,
		ContextLines:         3,
		DeclarationKeywords:  []string{"class", "struct", "enum", "func"},
	}
}

// normalize fills in defaults for unset fields.
func (o Options) normalize() Options {
	def := DefaultOptions()
	if o.DeepNestingThreshold <= 0 {
		o.DeepNestingThreshold = def.DeepNestingThreshold
	}
	if o.EarlyCloseLookahead <= 0 {
		o.EarlyCloseLookahead = def.EarlyCloseLookahead
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = def.MaxDiagnostics
	}
	if o.ContextLines <= 0 {
		o.ContextLines = def.ContextLines
	}
	if len(o.DeclarationKeywords) == 0 {
		o.DeclarationKeywords = def.DeclarationKeywords
	}
	return o
}

// Analyzer runs structural balance scans. It is stateless across runs;
// each scan builds its own classifier, matcher, and tracker.
type Analyzer struct {
	opts   Options
	logger *slog.Logger
}

// New creates an analyzer with the given options.
func New(opts Options, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		opts:   opts.normalize(),
		logger: logger,
	}
}

// Analyze scans source text and returns the diagnostic report. Input is
// UTF-8 text with \n-delimited lines; empty input is a valid
// zero-diagnostic scan. The scan is a single deterministic pass and never
// fails: inconsistencies become diagnostics, not errors.
func (a *Analyzer) Analyze(source string) *Report {
	return a.AnalyzeLines(strings.Split(source, "\n"))
}

// AnalyzeLines is Analyze for callers that already hold the line split.
func (a *Analyzer) AnalyzeLines(lines []string) *Report {
	a.logger.Debug("analyze.start", "lines", len(lines))

	rep := newReport(a.opts.MaxDiagnostics)
	cls := NewClassifier()
	m := NewMatcher()
	tr := newTracker(a.opts, lines)

	hasCode := make([]bool, len(lines))
	inStringCarry := false

	for i, line := range lines {
		lineNum := i + 1
		states := cls.ClassifyLine(line)
		masked := maskNonCode(line, states)
		// Brace-only lines don't count as code for the trailing-code check:
		// a stray brace is the matcher's finding, not orphaned content.
		hasCode[i] = strings.TrimSpace(strings.Trim(masked, " \t{}")) != ""

		tr.ObserveLine(lineNum, masked, rep)

		for col := 0; col < len(line); col++ {
			if states[col] != StateCode {
				continue
			}
			switch line[col] {
			case '{':
				depthBefore := m.Depth()
				m.Push(lineNum, col+1, strings.TrimSpace(line))
				tr.OnPush(lineNum, depthBefore)
				if m.Depth() == a.opts.DeepNestingThreshold+1 {
					rep.add(Diagnostic{
						Kind:   DeepNesting,
						Line:   lineNum,
						Column: col + 1,
						Message: fmt.Sprintf("nesting depth %d exceeds threshold %d",
							m.Depth(), a.opts.DeepNestingThreshold),
						Context: contextLines(lines, i, a.opts.ContextLines),
					})
				}
			case '}':
				if _, ok := m.Pop(); ok {
					tr.OnPop(lineNum, m.Depth(), rep)
				} else {
					rep.add(Diagnostic{
						Kind:    ExtraClosingBrace,
						Line:    lineNum,
						Column:  col + 1,
						Message: "closing brace with no matching opening brace",
						Context: contextLines(lines, i, a.opts.ContextLines),
					})
				}
			}
		}

		// An unterminated string degrades the rest of the scan to string
		// state; worth a note, since the downstream symptom is only a
		// stack-count mismatch.
		if carry := cls.CarryState() == StateString; carry != inStringCarry {
			if carry {
				rep.note(fmt.Sprintf("string literal on line %d not terminated at end of line; following text treated as string", lineNum))
			}
			inStringCarry = carry
		}
	}

	for _, entry := range m.Remaining() {
		rep.add(Diagnostic{
			Kind:   UnclosedBrace,
			Line:   entry.Line,
			Column: entry.Column,
			Message: fmt.Sprintf("opening brace never closed: %s",
				entry.Snippet),
			Context: contextLines(lines, entry.Line-1, a.opts.ContextLines),
		})
	}

	tr.Finalize(rep, hasCode)
	rep.Scopes = tr.Records()
	rep.FinalDepth = m.Depth()

	observeScan(len(lines), rep)
	a.logger.Debug("analyze.done",
		"diagnostics", len(rep.Diagnostics),
		"scopes", len(rep.Scopes),
		"final_depth", rep.FinalDepth,
	)
	return rep
}
