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

// Package ui provides colored terminal output helpers for the CLI.
//
// Colors are disabled when --no-color is passed, NO_COLOR is set, or
// stdout is not a terminal.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	subColor     = color.New(color.Bold)
	labelColor   = color.New(color.Bold)
	dimColor     = color.New(color.Faint)
	countColor   = color.New(color.FgCyan)
	infoColor    = color.New(color.FgBlue)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed, color.Bold)

	// Cyan and Dim are exported for callers that compose their own lines.
	Cyan = color.New(color.FgCyan)
	Dim  = color.New(color.Faint)
)

// InitColors enables or disables color output. Call once at startup,
// after global flags are parsed.
func InitColors(noColor bool) {
	if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// Header prints a bold section header.
func Header(text string) {
	headerColor.Println(text)
}

// SubHeader prints a bold sub-section header.
func SubHeader(text string) {
	subColor.Println(text)
}

// Label returns text styled as a field label.
func Label(text string) string {
	return labelColor.Sprint(text)
}

// DimText returns de-emphasized text.
func DimText(text string) string {
	return dimColor.Sprint(text)
}

// CountText returns a highlighted count.
func CountText(n int) string {
	return countColor.Sprintf("%d", n)
}

// Red returns text styled as a fatal finding.
func Red(text string) string {
	return errorColor.Sprint(text)
}

// Yellow returns text styled as a warning.
func Yellow(text string) string {
	return warnColor.Sprint(text)
}

// Info prints an informational line.
func Info(text string) {
	fmt.Printf("%s %s\n", infoColor.Sprint("ℹ"), text)
}

// Infof prints a formatted informational line.
func Infof(format string, args ...interface{}) {
	Info(fmt.Sprintf(format, args...))
}

// Warning prints a warning line.
func Warning(text string) {
	fmt.Printf("%s %s\n", warnColor.Sprint("⚠"), text)
}

// Warningf prints a formatted warning line.
func Warningf(format string, args ...interface{}) {
	Warning(fmt.Sprintf(format, args...))
}

// Success prints a success line.
func Success(text string) {
	fmt.Printf("%s %s\n", successColor.Sprint("✓"), text)
}

// Successf prints a formatted success line.
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error line to stderr.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorColor.Sprint("✗"), fmt.Sprintf(format, args...))
}
