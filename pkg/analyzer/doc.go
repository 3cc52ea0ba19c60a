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

// Package analyzer implements a lexically-aware structural balance scanner
// for brace-delimited source text.
//
// The analyzer computes brace nesting depth while suppressing braces that
// occur inside string literals or comments, tracks named declarations
// (classes, structs, enums, functions) against the depth signal, and emits
// an ordered diagnostic report: certain structural defects (extra closing
// braces, unclosed braces) followed by heuristic findings (suspicious early
// scope closure, trailing code after the last top-level scope, deep
// nesting).
//
// It is deliberately NOT a language parser. No AST is built and no grammar
// is understood beyond brace, quote, and comment tokens. The goal is to
// locate and characterize scope malformations in a file too broken for a
// real parser to be helpful, not to fix them.
//
// The pipeline is strictly forward and single-pass:
//
//	Classifier → Matcher → Tracker → Report
//
// A scan is deterministic and idempotent: identical input always yields an
// identical report. The analyzer reads text supplied by the caller and
// holds no external resources; file I/O belongs to the caller.
package analyzer
