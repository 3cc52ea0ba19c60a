// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, 5, cfg.Analyzer.DeepNestingThreshold)
	assert.Equal(t, 10, cfg.Analyzer.EarlyCloseLookahead)
	assert.Equal(t, 20, cfg.Analyzer.MaxDiagnostics)
	assert.Equal(t, []string{"class", "struct", "enum", "func"}, cfg.Analyzer.DeclarationKeywords)
	assert.Contains(t, cfg.Files.Extensions, ".swift")
	assert.Greater(t, cfg.Files.MaxFileSize, int64(0))
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir)

	cfg := DefaultConfig()
	cfg.Analyzer.DeepNestingThreshold = 7
	cfg.Analyzer.DeclarationKeywords = []string{"class", "actor"}
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Analyzer.DeepNestingThreshold)
	assert.Equal(t, []string{"class", "actor"}, loaded.Analyzer.DeclarationKeywords)
	// Unset fields are backfilled.
	assert.Equal(t, 20, loaded.Analyzer.MaxDiagnostics)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), ".scopecheck.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir)
	require.NoError(t, os.WriteFile(path, []byte("version: [unclosed"), 0600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_WrongVersion(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir)
	require.NoError(t, os.WriteFile(path, []byte("version: \"99\"\n"), 0600))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestLoadConfig_SparseFileBackfilled(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir)
	content := "version: \"1\"\nanalyzer:\n  deep_nesting_threshold: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Analyzer.DeepNestingThreshold)
	assert.Equal(t, 10, cfg.Analyzer.EarlyCloseLookahead)
	assert.NotEmpty(t, cfg.Files.Extensions)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir)
	require.NoError(t, SaveConfig(DefaultConfig(), path))

	t.Setenv("SCOPECHECK_DEEP_NESTING_THRESHOLD", "9")
	t.Setenv("SCOPECHECK_MAX_DIAGNOSTICS", "50")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Analyzer.DeepNestingThreshold)
	assert.Equal(t, 50, cfg.Analyzer.MaxDiagnostics)
	assert.Equal(t, 10, cfg.Analyzer.EarlyCloseLookahead, "untouched settings keep file values")
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	t.Setenv("SCOPECHECK_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	cfg := LoadConfigOrDefault("")
	assert.Equal(t, DefaultConfig().Analyzer, cfg.Analyzer)
}

func TestAnalyzerOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analyzer.DeepNestingThreshold = 4
	opts := cfg.AnalyzerOptions()
	assert.Equal(t, 4, opts.DeepNestingThreshold)
	assert.Equal(t, cfg.Analyzer.DeclarationKeywords, opts.DeclarationKeywords)
}

func TestEnvInt(t *testing.T) {
	t.Setenv("SCOPECHECK_TEST_INT", "42")
	assert.Equal(t, 42, envInt("SCOPECHECK_TEST_INT"))

	t.Setenv("SCOPECHECK_TEST_INT", "not-a-number")
	assert.Equal(t, 0, envInt("SCOPECHECK_TEST_INT"))

	assert.Equal(t, 0, envInt("SCOPECHECK_TEST_INT_UNSET"))
}
