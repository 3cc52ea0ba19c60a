// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_PushPop(t *testing.T) {
	m := NewMatcher()
	assert.Equal(t, 0, m.Depth())

	m.Push(1, 9, "class A {")
	m.Push(2, 12, "func f() {")
	assert.Equal(t, 2, m.Depth())

	entry, ok := m.Pop()
	assert.True(t, ok)
	assert.Equal(t, StackEntry{Line: 2, Column: 12, Snippet: "func f() {"}, entry)
	assert.Equal(t, 1, m.Depth())

	entry, ok = m.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, entry.Line)
	assert.Equal(t, 0, m.Depth())
}

func TestMatcher_PopEmpty(t *testing.T) {
	m := NewMatcher()

	entry, ok := m.Pop()
	assert.False(t, ok)
	assert.Equal(t, StackEntry{}, entry)

	// Depth never goes negative, even after repeated underflow.
	_, _ = m.Pop()
	assert.Equal(t, 0, m.Depth())

	m.Push(5, 1, "{")
	assert.Equal(t, 1, m.Depth())
}

func TestMatcher_RemainingInnermostFirst(t *testing.T) {
	m := NewMatcher()
	m.Push(1, 9, "class A {")
	m.Push(3, 12, "func f() {")
	m.Push(4, 10, "if x {")

	remaining := m.Remaining()
	assert.Len(t, remaining, 3)
	assert.Equal(t, 4, remaining[0].Line)
	assert.Equal(t, 3, remaining[1].Line)
	assert.Equal(t, 1, remaining[2].Line)
}
