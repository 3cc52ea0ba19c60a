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

// LexState is the lexical classification of a single character.
//
// Exactly one state is active per character. Only StateCode characters are
// structurally significant; everything else is lexical noise as far as
// brace depth is concerned.
type LexState int

const (
	// StateCode marks a character outside any literal or comment.
	StateCode LexState = iota
	// StateString marks a character inside a double-quoted string literal,
	// including the delimiting quotes themselves.
	StateString
	// StateLineComment marks a character from "//" to the end of the line.
	StateLineComment
	// StateBlockComment marks a character inside "/* ... */", including the
	// marker characters.
	StateBlockComment
	// StateEscaped marks the single character following a backslash inside
	// a string literal. It reverts to StateString immediately after.
	StateEscaped
)

// String returns a short name for the state, used in notes and tests.
func (s LexState) String() string {
	switch s {
	case StateCode:
		return "code"
	case StateString:
		return "string"
	case StateLineComment:
		return "line_comment"
	case StateBlockComment:
		return "block_comment"
	case StateEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// Classifier assigns a LexState to every character of a line, carrying
// state across line boundaries where the lexical grammar requires it.
//
// Block comments legitimately span lines. A string literal that reaches the
// end of a line without a closing quote also keeps its state — the rest of
// the scan degrades to "treated as string" — but the condition is surfaced
// as a soft note by the caller, since single-line literals are the common
// case. Line comments always terminate at the line end, and an escape
// cannot cross a line boundary.
//
// The classifier never fails; malformed input only changes what it reports
// as the carried-over state.
type Classifier struct {
	carry LexState
}

// NewClassifier returns a classifier starting in StateCode.
func NewClassifier() *Classifier {
	return &Classifier{carry: StateCode}
}

// CarryState reports the state that will be carried into the next line.
func (c *Classifier) CarryState() LexState {
	return c.carry
}

// ClassifyLine assigns a state to every byte of line and advances the
// carried-over state.
//
// Scanning is byte-wise: every marker character (brace, quote, slash,
// backslash) is ASCII, so multi-byte UTF-8 sequences simply inherit the
// current state byte by byte.
func (c *Classifier) ClassifyLine(line string) []LexState {
	states := make([]LexState, len(line))
	st := c.carry

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch st {
		case StateEscaped:
			// One-character override: consume and revert to the literal.
			states[i] = StateEscaped
			st = StateString

		case StateLineComment:
			states[i] = StateLineComment

		case StateBlockComment:
			states[i] = StateBlockComment
			if ch == '*' && i+1 < len(line) && line[i+1] == '/' {
				// Terminator characters belong to the comment.
				states[i+1] = StateBlockComment
				i++
				st = StateCode
			}

		case StateString:
			states[i] = StateString
			switch ch {
			case '\\':
				st = StateEscaped
			case '"':
				st = StateCode
			}

		default: // StateCode
			switch {
			case ch == '/' && i+1 < len(line) && line[i+1] == '/':
				states[i] = StateLineComment
				states[i+1] = StateLineComment
				i++
				st = StateLineComment
			case ch == '/' && i+1 < len(line) && line[i+1] == '*':
				states[i] = StateBlockComment
				states[i+1] = StateBlockComment
				i++
				st = StateBlockComment
			case ch == '"':
				states[i] = StateString
				st = StateString
			default:
				states[i] = StateCode
			}
		}
	}

	// Line boundary: line comments end here, and a trailing backslash in a
	// string cannot escape the newline — the literal just continues.
	switch st {
	case StateLineComment:
		st = StateCode
	case StateEscaped:
		st = StateString
	}
	c.carry = st

	return states
}

// maskNonCode replaces every non-code character of line with a space,
// keeping columns aligned. The masked line is what declaration matching
// operates on, so keywords inside strings or comments never match.
func maskNonCode(line string, states []LexState) string {
	masked := []byte(line)
	for i := range masked {
		if states[i] != StateCode {
			masked[i] = ' '
		}
	}
	return string(masked)
}
