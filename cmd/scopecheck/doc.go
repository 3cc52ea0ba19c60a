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

// Package main implements the scopecheck CLI.
//
// scopecheck is a structural balance analyzer for brace-delimited source
// files. It scans text character by character, suppressing braces inside
// string literals and comments, and reports where scope structure breaks:
// extra closing braces, unclosed braces, containers that close before
// their methods, trailing code after the last top-level declaration, and
// deep nesting.
//
// # Quick Start
//
// Write a default configuration (optional — check works without one):
//
//	cd /path/to/your/project
//	scopecheck init
//
// Analyze a file or a directory tree:
//
//	scopecheck check Sources/App.swift
//	scopecheck check Sources/
//
// Print the resolved scope table alongside the diagnostics:
//
//	scopecheck check --scopes Sources/App.swift
//
// Machine-readable output:
//
//	scopecheck check --json Sources/App.swift | jq '.[0].summary'
//
// # Commands
//
//	init     Create .scopecheck.yaml configuration
//	check    Analyze files or directories
//	config   Show effective configuration
//
// # Exit Codes
//
// The check command exits 0 when no structural defect was found, 1 when
// an extra closing brace or unclosed brace is present, and 2 when input
// could not be read. Heuristic findings (early scope close, trailing
// code, deep nesting) never affect the exit code — they may be false
// positives and are labeled as heuristic in the report.
package main
