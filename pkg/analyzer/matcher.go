// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyzer

// StackEntry records where an opening brace was seen.
//
// Entries are owned by the matcher's stack for the duration of a scan;
// copies are handed out on pop, underflow, or leftover inspection.
type StackEntry struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Snippet string `json:"snippet"` // trimmed text of the source line
}

// Matcher maintains the stack of open-brace positions during a scan.
//
// It holds no state outside the current scan and never reports an error:
// popping an empty stack returns ok=false, which the caller turns into an
// ExtraClosingBrace diagnostic, and depth never goes negative.
type Matcher struct {
	stack []StackEntry
}

// NewMatcher returns an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Push records an opening brace at the given 1-indexed position.
func (m *Matcher) Push(line, column int, snippet string) {
	m.stack = append(m.stack, StackEntry{Line: line, Column: column, Snippet: snippet})
}

// Pop removes and returns the most recently opened brace. ok is false when
// the stack is empty — the extra-closing-brace condition, never a crash.
func (m *Matcher) Pop() (StackEntry, bool) {
	if len(m.stack) == 0 {
		return StackEntry{}, false
	}
	entry := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return entry, true
}

// Depth returns the number of currently open braces.
func (m *Matcher) Depth() int {
	return len(m.stack)
}

// Remaining returns the unclosed braces left at end of input, ordered from
// most recently opened to least. Innermost braces are the most actionable
// leads, so they come first.
func (m *Matcher) Remaining() []StackEntry {
	out := make([]StackEntry, 0, len(m.stack))
	for i := len(m.stack) - 1; i >= 0; i-- {
		out = append(out, m.stack[i])
	}
	return out
}
