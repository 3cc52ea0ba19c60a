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

// Package errors provides structured user-facing errors for the CLI.
//
// A UserError carries a short title, a detail line explaining what went
// wrong, and a suggestion telling the user what to do about it. FatalError
// renders one (as text or JSON) and exits with code 2, the CLI's
// invalid-input exit code. Findings in analyzed source are never errors;
// they are diagnostics and drive exit code 1 in the check command.
package errors

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kraklabs/scopecheck/internal/ui"
)

// Category classifies a UserError for JSON consumers.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryInput      Category = "input"
	CategoryPermission Category = "permission"
	CategoryInternal   Category = "internal"
)

// UserError is an error with enough structure to be rendered helpfully.
type UserError struct {
	Category   Category `json:"category"`
	Title      string   `json:"error"`
	Detail     string   `json:"detail,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Err        error    `json:"-"`
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Title, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

// Unwrap returns the wrapped cause.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewConfigError reports a problem with the configuration file.
func NewConfigError(title, detail, suggestion string, err error) *UserError {
	return &UserError{Category: CategoryConfig, Title: title, Detail: detail, Suggestion: suggestion, Err: err}
}

// NewInputError reports invalid user input (bad flags, missing files).
func NewInputError(title, detail, suggestion string) *UserError {
	return &UserError{Category: CategoryInput, Title: title, Detail: detail, Suggestion: suggestion}
}

// NewPermissionError reports a filesystem permission problem.
func NewPermissionError(title, detail, suggestion string, err error) *UserError {
	return &UserError{Category: CategoryPermission, Title: title, Detail: detail, Suggestion: suggestion, Err: err}
}

// NewInternalError reports an unexpected internal failure.
func NewInternalError(title, detail, suggestion string, err error) *UserError {
	return &UserError{Category: CategoryInternal, Title: title, Detail: detail, Suggestion: suggestion, Err: err}
}

// FatalError renders err and exits with code 2. When jsonOutput is set the
// error is emitted as a JSON object on stdout so callers piping --json
// never have to parse free text.
func FatalError(err error, jsonOutput bool) {
	ue, ok := err.(*UserError)
	if !ok {
		ue = &UserError{Category: CategoryInternal, Title: "Unexpected error", Detail: err.Error()}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(ue)
	} else {
		ui.Errorf("%s", ue.Title)
		if ue.Detail != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", ue.Detail)
		}
		if ue.Err != nil {
			fmt.Fprintf(os.Stderr, "  cause: %v\n", ue.Err)
		}
		if ue.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  → %s\n", ue.Suggestion)
		}
	}
	os.Exit(2)
}
