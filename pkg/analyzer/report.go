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

// DiagnosticKind identifies the class of a finding.
type DiagnosticKind int

const (
	// ExtraClosingBrace is a closing brace with no matching opener.
	// Certain defect, derived from pure counting.
	ExtraClosingBrace DiagnosticKind = iota
	// UnclosedBrace is an opening brace never closed by end of input.
	// Certain defect.
	UnclosedBrace
	// EarlyScopeClose is a heuristic: a container scope closed, but method
	// declarations follow within the lookahead window, suggesting the
	// closing brace is misplaced.
	EarlyScopeClose
	// TrailingCodeAfterScope is a heuristic: code lines remain after the
	// last top-level scope resolved.
	TrailingCodeAfterScope
	// DeepNesting is a heuristic: depth exceeded the configured threshold.
	DeepNesting
)

// String returns the stable identifier used in JSON output and summaries.
func (k DiagnosticKind) String() string {
	switch k {
	case ExtraClosingBrace:
		return "extra_closing_brace"
	case UnclosedBrace:
		return "unclosed_brace"
	case EarlyScopeClose:
		return "early_scope_close"
	case TrailingCodeAfterScope:
		return "trailing_code_after_scope"
	case DeepNesting:
		return "deep_nesting"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind as its stable string form.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Heuristic reports whether findings of this kind are best-effort signals
// that may be false positives, as opposed to structural defects derived
// from pure counting.
func (k DiagnosticKind) Heuristic() bool {
	switch k {
	case ExtraClosingBrace, UnclosedBrace:
		return false
	default:
		return true
	}
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Kind      DiagnosticKind `json:"kind"`
	Line      int            `json:"line"`
	Column    int            `json:"column,omitempty"` // 0 when not applicable
	Message   string         `json:"message"`
	Heuristic bool           `json:"heuristic"`
	Context   []string       `json:"context,omitempty"` // nearby source lines
}

// Report is the result of one scan.
//
// Diagnostics holds findings in discovery order; Detailed re-orders them
// for presentation. Scopes holds every declaration the tracker recognized,
// resolved or not. Notes are non-fatal observations (unterminated string
// literals, discarded pending declarations) that are not diagnostics.
type Report struct {
	Diagnostics []Diagnostic  `json:"diagnostics"`
	Scopes      []ScopeRecord `json:"scopes,omitempty"`
	Notes       []string      `json:"notes,omitempty"`
	FinalDepth  int           `json:"final_depth"`

	maxDiagnostics int
}

func newReport(maxDiagnostics int) *Report {
	return &Report{maxDiagnostics: maxDiagnostics}
}

// add appends a diagnostic in discovery order, deriving the heuristic flag
// from the kind. Nothing is ever suppressed here; the presentation cap is
// applied only in Detailed.
func (r *Report) add(d Diagnostic) {
	d.Heuristic = d.Kind.Heuristic()
	r.Diagnostics = append(r.Diagnostics, d)
}

// note appends a non-fatal observation.
func (r *Report) note(msg string) {
	r.Notes = append(r.Notes, msg)
}

// HasFatalIssues reports whether any certain structural defect exists.
func (r *Report) HasFatalIssues() bool {
	for _, d := range r.Diagnostics {
		if !d.Heuristic {
			return true
		}
	}
	return false
}

// Summary returns per-kind counts over all diagnostics, uncapped.
func (r *Report) Summary() map[string]int {
	counts := make(map[string]int)
	for _, d := range r.Diagnostics {
		counts[d.Kind.String()]++
	}
	return counts
}

// Detailed returns diagnostics ordered for presentation and capped at the
// configured maximum: ExtraClosingBrace first (concrete, certain defects),
// then UnclosedBrace, then heuristic findings. Within each group discovery
// order is preserved.
func (r *Report) Detailed() []Diagnostic {
	ordered := r.ordered()
	if r.maxDiagnostics > 0 && len(ordered) > r.maxDiagnostics {
		ordered = ordered[:r.maxDiagnostics]
	}
	return ordered
}

// TruncatedCount returns how many diagnostics the cap hid from Detailed.
func (r *Report) TruncatedCount() int {
	if r.maxDiagnostics > 0 && len(r.Diagnostics) > r.maxDiagnostics {
		return len(r.Diagnostics) - r.maxDiagnostics
	}
	return 0
}

func (r *Report) ordered() []Diagnostic {
	ordered := make([]Diagnostic, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		if d.Kind == ExtraClosingBrace {
			ordered = append(ordered, d)
		}
	}
	for _, d := range r.Diagnostics {
		if d.Kind == UnclosedBrace {
			ordered = append(ordered, d)
		}
	}
	for _, d := range r.Diagnostics {
		if d.Heuristic {
			ordered = append(ordered, d)
		}
	}
	return ordered
}

// ScopeAt returns the innermost scope containing the given 1-indexed line,
// or nil when the line is outside every tracked scope. Unresolved scopes
// extend to end of input.
func (r *Report) ScopeAt(line int) *ScopeRecord {
	var best *ScopeRecord
	for i := range r.Scopes {
		s := &r.Scopes[i]
		if line < s.StartLine {
			continue
		}
		if s.EndLine > 0 && line > s.EndLine {
			continue
		}
		if best == nil || s.StartDepth > best.StartDepth {
			best = s
		}
	}
	return best
}

// contextLines returns a window of source lines around the 0-indexed line
// idx, radius lines in each direction.
func contextLines(lines []string, idx, radius int) []string {
	if radius <= 0 {
		return nil
	}
	lo := idx - radius
	if lo < 0 {
		lo = 0
	}
	hi := idx + radius + 1
	if hi > len(lines) {
		hi = len(lines)
	}
	out := make([]string, hi-lo)
	copy(out, lines[lo:hi])
	return out
}
