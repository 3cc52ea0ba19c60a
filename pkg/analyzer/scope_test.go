// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(lines []string) *Tracker {
	return newTracker(DefaultOptions(), lines)
}

func TestMatchDeclaration(t *testing.T) {
	tr := newTestTracker(nil)

	tests := []struct {
		name     string
		line     string
		wantName string
		wantKind ScopeKind
		wantOK   bool
	}{
		{"class", "class Foo {", "Foo", KindClass, true},
		{"struct", "struct Point {", "Point", KindStruct, true},
		{"enum", "enum Direction {", "Direction", KindEnum, true},
		{"func with params", "func doThing(x: Int) {", "doThing", KindFunction, true},
		{"qualified", "public final class Foo {", "Foo", KindClass, true},
		{"attribute qualifier", "@objc private func tap() {", "tap", KindFunction, true},
		{"indented", "    func inner() {", "inner", KindFunction, true},
		{"keyword mid line", "let x = class Foo", "", 0, false},
		{"keyword without name", "class {", "", 0, false},
		{"not a keyword", "let class_count = 1", "", 0, false},
		{"empty", "", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, kind, ok := tr.matchDeclaration(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, name)
				assert.Equal(t, tt.wantKind, kind)
			}
		})
	}
}

func TestKindForKeyword(t *testing.T) {
	assert.Equal(t, KindClass, kindForKeyword("class"))
	assert.Equal(t, KindStruct, kindForKeyword("struct"))
	assert.Equal(t, KindEnum, kindForKeyword("enum"))
	assert.Equal(t, KindFunction, kindForKeyword("func"))
	// Extra configured keywords are container-like.
	assert.Equal(t, KindClass, kindForKeyword("extension"))
	assert.Equal(t, KindClass, kindForKeyword("protocol"))
}

func TestScopeKind_Container(t *testing.T) {
	assert.True(t, KindClass.Container())
	assert.True(t, KindStruct.Container())
	assert.True(t, KindEnum.Container())
	assert.False(t, KindFunction.Container())
}

func TestTracker_PendingDiscardedAfterLookahead(t *testing.T) {
	lines := make([]string, 15)
	lines[0] = "class Ghost"
	tr := newTestTracker(lines)
	rep := newReport(20)

	tr.ObserveLine(1, lines[0], rep)
	// No brace arrives within the lookahead window.
	for i := 2; i <= 13; i++ {
		tr.ObserveLine(i, "", rep)
	}

	tr.OnPush(14, 0)
	require.Empty(t, tr.Records(), "discarded declaration must not bind to a later brace")
	require.Len(t, rep.Notes, 1)
	assert.Contains(t, rep.Notes[0], "Ghost")
}

func TestTracker_PendingSuperseded(t *testing.T) {
	lines := []string{"class First", "class Second {"}
	tr := newTestTracker(lines)
	rep := newReport(20)

	tr.ObserveLine(1, lines[0], rep)
	tr.ObserveLine(2, lines[1], rep)
	tr.OnPush(2, 0)

	records := tr.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Second", records[0].Name)
	require.Len(t, rep.Notes, 1)
	assert.Contains(t, rep.Notes[0], "First")
}

func TestTracker_ResolveOnMatchingDepth(t *testing.T) {
	lines := []string{
		"class A {",
		"    func f() {",
		"    }",
		"}",
	}
	tr := newTestTracker(lines)
	rep := newReport(20)

	tr.ObserveLine(1, lines[0], rep)
	tr.OnPush(1, 0) // depth 0 -> 1
	tr.ObserveLine(2, lines[1], rep)
	tr.OnPush(2, 1) // depth 1 -> 2
	tr.OnPop(3, 1, rep)
	tr.OnPop(4, 0, rep)

	records := tr.Records()
	require.Len(t, records, 2)

	assert.Equal(t, "A", records[0].Name)
	assert.Equal(t, 1, records[0].StartLine)
	assert.Equal(t, 4, records[0].EndLine)
	assert.Equal(t, 0, records[0].StartDepth)
	assert.True(t, records[0].Resolved())

	assert.Equal(t, "f", records[1].Name)
	assert.Equal(t, 2, records[1].StartLine)
	assert.Equal(t, 3, records[1].EndLine)
	assert.Equal(t, 1, records[1].StartDepth)
}

func TestMethodFollows(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{
			name:  "function right after close",
			lines: []string{"}", "    func orphan() {"},
			want:  true,
		},
		{
			name:  "sibling container stops the scan",
			lines: []string{"}", "class Next {", "    func f() {"},
			want:  false,
		},
		{
			name:  "nothing follows",
			lines: []string{"}", "let x = 1", ""},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTracker(tt.lines)
			assert.Equal(t, tt.want, tr.methodFollows(1))
		})
	}
}
