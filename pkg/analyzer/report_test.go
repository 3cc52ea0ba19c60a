// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyzer

import (
	"testing"
)

func TestDiagnosticKind_String(t *testing.T) {
	tests := []struct {
		kind DiagnosticKind
		want string
	}{
		{ExtraClosingBrace, "extra_closing_brace"},
		{UnclosedBrace, "unclosed_brace"},
		{EarlyScopeClose, "early_scope_close"},
		{TrailingCodeAfterScope, "trailing_code_after_scope"},
		{DeepNesting, "deep_nesting"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDiagnosticKind_Heuristic(t *testing.T) {
	if ExtraClosingBrace.Heuristic() || UnclosedBrace.Heuristic() {
		t.Error("counting-based kinds must not be heuristic")
	}
	for _, k := range []DiagnosticKind{EarlyScopeClose, TrailingCodeAfterScope, DeepNesting} {
		if !k.Heuristic() {
			t.Errorf("%s must be heuristic", k)
		}
	}
}

func TestReport_DetailedOrdering(t *testing.T) {
	rep := newReport(20)
	rep.add(Diagnostic{Kind: DeepNesting, Line: 2})
	rep.add(Diagnostic{Kind: UnclosedBrace, Line: 1})
	rep.add(Diagnostic{Kind: ExtraClosingBrace, Line: 9})
	rep.add(Diagnostic{Kind: ExtraClosingBrace, Line: 12})
	rep.add(Diagnostic{Kind: EarlyScopeClose, Line: 5})

	got := rep.Detailed()
	wantKinds := []DiagnosticKind{ExtraClosingBrace, ExtraClosingBrace, UnclosedBrace, DeepNesting, EarlyScopeClose}
	if len(got) != len(wantKinds) {
		t.Fatalf("len = %d, want %d", len(got), len(wantKinds))
	}
	for i, d := range got {
		if d.Kind != wantKinds[i] {
			t.Errorf("position %d: kind = %s, want %s", i, d.Kind, wantKinds[i])
		}
	}
	// Discovery order preserved within each group.
	if got[0].Line != 9 || got[1].Line != 12 {
		t.Errorf("extra braces out of discovery order: lines %d, %d", got[0].Line, got[1].Line)
	}
}

func TestReport_DetailedCapAndTruncation(t *testing.T) {
	rep := newReport(3)
	for i := 1; i <= 5; i++ {
		rep.add(Diagnostic{Kind: ExtraClosingBrace, Line: i})
	}

	if got := len(rep.Detailed()); got != 3 {
		t.Errorf("Detailed() len = %d, want 3", got)
	}
	if got := rep.TruncatedCount(); got != 2 {
		t.Errorf("TruncatedCount() = %d, want 2", got)
	}
	// Discovery is never capped.
	if got := len(rep.Diagnostics); got != 5 {
		t.Errorf("Diagnostics len = %d, want 5", got)
	}
	if got := rep.Summary()["extra_closing_brace"]; got != 5 {
		t.Errorf("Summary() count = %d, want 5", got)
	}
}

func TestReport_HasFatalIssues(t *testing.T) {
	rep := newReport(20)
	if rep.HasFatalIssues() {
		t.Error("empty report must not be fatal")
	}
	rep.add(Diagnostic{Kind: DeepNesting, Line: 1})
	if rep.HasFatalIssues() {
		t.Error("heuristic-only report must not be fatal")
	}
	rep.add(Diagnostic{Kind: UnclosedBrace, Line: 1})
	if !rep.HasFatalIssues() {
		t.Error("unclosed brace must be fatal")
	}
}

func TestReport_ScopeAt(t *testing.T) {
	rep := newReport(20)
	rep.Scopes = []ScopeRecord{
		{Name: "A", Kind: KindClass, StartLine: 1, StartDepth: 0, EndLine: 10, state: scopeResolved},
		{Name: "f", Kind: KindFunction, StartLine: 2, StartDepth: 1, EndLine: 5, state: scopeResolved},
		{Name: "g", Kind: KindFunction, StartLine: 7, StartDepth: 1, state: scopeOpen},
	}

	tests := []struct {
		line int
		want string // "" means nil
	}{
		{1, "A"},
		{3, "f"},  // innermost wins
		{6, "A"},  // between the methods
		{8, "g"},  // unresolved extends to EOF
		{12, "g"}, // past A's end, still inside the unresolved g
		{0, ""},
	}
	for _, tt := range tests {
		got := rep.ScopeAt(tt.line)
		switch {
		case tt.want == "" && got != nil:
			t.Errorf("ScopeAt(%d) = %q, want nil", tt.line, got.Name)
		case tt.want != "" && (got == nil || got.Name != tt.want):
			t.Errorf("ScopeAt(%d) = %v, want %q", tt.line, got, tt.want)
		}
	}
}

func TestContextLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}

	got := contextLines(lines, 2, 1)
	if len(got) != 3 || got[0] != "b" || got[2] != "d" {
		t.Errorf("contextLines mid = %v", got)
	}
	got = contextLines(lines, 0, 2)
	if len(got) != 3 || got[0] != "a" {
		t.Errorf("contextLines start = %v", got)
	}
	got = contextLines(lines, 4, 2)
	if len(got) != 3 || got[2] != "e" {
		t.Errorf("contextLines end = %v", got)
	}
	if got := contextLines(lines, 2, 0); got != nil {
		t.Errorf("radius 0 = %v, want nil", got)
	}
}
