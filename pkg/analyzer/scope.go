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
)

// ScopeKind classifies a tracked declaration.
type ScopeKind int

const (
	// KindClass is a class declaration, or any configured container
	// keyword without a more specific kind (extension, protocol, ...).
	KindClass ScopeKind = iota
	// KindStruct is a struct declaration.
	KindStruct
	// KindEnum is an enum declaration.
	KindEnum
	// KindFunction is a function or method declaration.
	KindFunction
)

// String returns the stable identifier used in JSON output.
func (k ScopeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind as its stable string form.
func (k ScopeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Container reports whether the kind is a type-like container rather than
// a function body.
func (k ScopeKind) Container() bool {
	return k != KindFunction
}

// scopeState is the lifecycle of a ScopeRecord. Records never transition
// backward.
type scopeState int

const (
	scopePending scopeState = iota // keyword seen, brace not yet observed
	scopeOpen                      // brace observed, start depth recorded
	scopeResolved                  // depth returned to start depth
)

// ScopeRecord is one named, brace-delimited declaration.
//
// EndLine is zero until the scope resolves and is set at most once.
// Re-entrant declarations of the same name produce independent records.
type ScopeRecord struct {
	Name       string    `json:"name"`
	Kind       ScopeKind `json:"kind"`
	StartLine  int       `json:"start_line"`
	StartDepth int       `json:"start_depth"`
	EndLine    int       `json:"end_line,omitempty"`

	state scopeState
}

// Resolved reports whether the scope's end line has been determined.
func (s *ScopeRecord) Resolved() bool {
	return s.state == scopeResolved
}

// Tracker observes declaration keywords and the matcher's depth signal to
// compute where named scopes start and end.
//
// It mirrors the brace stack with an independent stack of open records: a
// declaration becomes Pending when its line is seen, Open at the next
// brace push, and Resolved when depth returns to its start depth. A
// Pending record that sees no brace within the lookahead window is
// discarded with a note, not a diagnostic.
type Tracker struct {
	keywords  map[string]ScopeKind
	lookahead int
	context   int
	lines     []string // full source, for lookahead and context windows

	pending     *ScopeRecord
	pendingLine int
	open        []*ScopeRecord
	all         []*ScopeRecord
}

func newTracker(opts Options, lines []string) *Tracker {
	keywords := make(map[string]ScopeKind, len(opts.DeclarationKeywords))
	for _, kw := range opts.DeclarationKeywords {
		keywords[kw] = kindForKeyword(kw)
	}
	return &Tracker{
		keywords:  keywords,
		lookahead: opts.EarlyCloseLookahead,
		context:   opts.ContextLines,
		lines:     lines,
	}
}

// kindForKeyword maps a declaration keyword to a ScopeKind. Keywords
// beyond the four defaults (extension, protocol, actor, ...) are treated
// as class-like containers.
func kindForKeyword(kw string) ScopeKind {
	switch kw {
	case "class":
		return KindClass
	case "struct":
		return KindStruct
	case "enum":
		return KindEnum
	case "func":
		return KindFunction
	default:
		return KindClass
	}
}

// ObserveLine inspects one masked source line (non-code characters blanked
// out) for a declaration statement. Called before the braces of the line
// are fed to the matcher, so a brace on the same line binds to the
// declaration it belongs to.
func (t *Tracker) ObserveLine(lineNum int, masked string, rep *Report) {
	// A pending declaration that outlived the lookahead window never had
	// a body to track. Logged, not diagnosed.
	if t.pending != nil && lineNum-t.pendingLine > t.lookahead {
		rep.note(fmt.Sprintf("declaration %q at line %d never saw an opening brace within %d lines; discarded",
			t.pending.Name, t.pending.StartLine, t.lookahead))
		t.pending = nil
	}

	name, kind, ok := t.matchDeclaration(masked)
	if !ok {
		return
	}
	if t.pending != nil {
		rep.note(fmt.Sprintf("declaration %q at line %d superseded by %q at line %d before its opening brace",
			t.pending.Name, t.pending.StartLine, name, lineNum))
	}
	t.pending = &ScopeRecord{
		Name:      name,
		Kind:      kind,
		StartLine: lineNum,
		state:     scopePending,
	}
	t.pendingLine = lineNum
}

// OnPush binds the pending declaration, if any, to the brace just pushed.
// depthBefore is the depth prior to the push; it becomes the record's
// start depth, so the record resolves when depth returns to it.
func (t *Tracker) OnPush(lineNum, depthBefore int) {
	if t.pending == nil {
		return
	}
	rec := t.pending
	t.pending = nil
	rec.StartDepth = depthBefore
	rec.state = scopeOpen
	t.open = append(t.open, rec)
	t.all = append(t.all, rec)
}

// OnPop resolves the innermost open record when depth has returned to its
// start depth, then applies the early-close heuristic for containers.
func (t *Tracker) OnPop(lineNum, depthAfter int, rep *Report) {
	if len(t.open) == 0 {
		return
	}
	rec := t.open[len(t.open)-1]
	if rec.StartDepth != depthAfter {
		return
	}
	t.open = t.open[:len(t.open)-1]
	rec.EndLine = lineNum
	rec.state = scopeResolved

	if rec.Kind.Container() && t.methodFollows(lineNum) {
		rep.add(Diagnostic{
			Kind: EarlyScopeClose,
			Line: lineNum,
			Message: fmt.Sprintf("%s %q appears to close at line %d, but method declarations follow within %d lines; the closing brace may be misplaced",
				rec.Kind, rec.Name, lineNum, t.lookahead),
			Context: contextLines(t.lines, lineNum-1, t.context),
		})
	}
}

// methodFollows reports whether the first declaration in the lookahead
// window after the given 1-indexed line is a function. A method right
// after a container closes suggests the closing brace cut the container
// short; a sibling container declaration is the expected case and stops
// the scan. Best-effort: it scans raw lines, the same way the heuristic
// originated.
func (t *Tracker) methodFollows(lineNum int) bool {
	end := lineNum + t.lookahead
	if end > len(t.lines) {
		end = len(t.lines)
	}
	for i := lineNum; i < end; i++ {
		if _, kind, ok := t.matchDeclaration(t.lines[i]); ok {
			return kind == KindFunction
		}
	}
	return false
}

// Finalize discards any leftover pending declaration and runs the
// trailing-code check against the last resolved top-level scope.
// hasCode flags, per 0-indexed line, whether the line contains any
// code-state character beyond whitespace and braces.
func (t *Tracker) Finalize(rep *Report, hasCode []bool) {
	if t.pending != nil {
		rep.note(fmt.Sprintf("declaration %q at line %d never saw an opening brace; discarded at end of input",
			t.pending.Name, t.pending.StartLine))
		t.pending = nil
	}

	last := t.lastTopLevelResolved()
	if last == nil {
		return
	}

	var trailing []int
	for i := last.EndLine; i < len(t.lines); i++ {
		if hasCode[i] {
			trailing = append(trailing, i+1)
		}
	}
	if len(trailing) == 0 {
		return
	}

	verbatim := make([]string, 0, len(trailing))
	for _, ln := range trailing {
		if len(verbatim) >= t.lookahead {
			break
		}
		verbatim = append(verbatim, t.lines[ln-1])
	}
	rep.add(Diagnostic{
		Kind: TrailingCodeAfterScope,
		Line: trailing[0],
		Message: fmt.Sprintf("%d code line(s) remain after %s %q closes at line %d; sibling declaration or orphaned body content",
			len(trailing), last.Kind, last.Name, last.EndLine),
		Context: verbatim,
	})
}

// lastTopLevelResolved returns the latest-resolving record opened at depth
// zero, or nil. Using the last top-level scope keeps sibling declarations
// that are themselves tracked from being flagged as trailing code.
func (t *Tracker) lastTopLevelResolved() *ScopeRecord {
	var last *ScopeRecord
	for _, rec := range t.all {
		if rec.StartDepth != 0 || !rec.Resolved() {
			continue
		}
		if last == nil || rec.EndLine > last.EndLine {
			last = rec
		}
	}
	return last
}

// Records returns copies of every tracked record in declaration order.
func (t *Tracker) Records() []ScopeRecord {
	out := make([]ScopeRecord, len(t.all))
	for i, rec := range t.all {
		out[i] = *rec
	}
	return out
}

// matchDeclaration recognizes a declaration statement: optional visibility
// or attribute qualifiers, a configured keyword, then an identifier. Only
// statement starts match; a keyword buried mid-line is not a declaration.
func (t *Tracker) matchDeclaration(line string) (name string, kind ScopeKind, ok bool) {
	fields := strings.Fields(line)
	for len(fields) > 0 && isQualifier(fields[0]) {
		fields = fields[1:]
	}
	if len(fields) < 2 {
		return "", 0, false
	}
	kind, found := t.keywords[fields[0]]
	if !found {
		return "", 0, false
	}
	name = leadingIdentifier(fields[1])
	if name == "" {
		return "", 0, false
	}
	return name, kind, true
}

// isQualifier reports whether tok is a declaration modifier that may
// precede the keyword.
func isQualifier(tok string) bool {
	if strings.HasPrefix(tok, "@") {
		return true
	}
	switch tok {
	case "public", "private", "internal", "fileprivate", "open",
		"final", "static", "override", "indirect", "required",
		"convenience", "dynamic", "mutating", "nonmutating":
		return true
	}
	return false
}

// leadingIdentifier returns the identifier prefix of tok ("f()" → "f").
func leadingIdentifier(tok string) string {
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' ||
			(i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return tok[:i]
	}
	return tok
}
