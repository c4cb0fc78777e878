package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against a scratch directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cellfill.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("locale: en\ndisplay:\n  color: false\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", cfgPath, "--dir", dir))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cellfill version 0.1.0")
}

func TestTagsCommand(t *testing.T) {
	out, err := execute(t, "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "alive")
	assert.Contains(t, out, "#FFF176")
	assert.Contains(t, out, "Cuckoo!")
}

func TestReplayCommand(t *testing.T) {
	out, err := execute(t, "replay", "AAA", "DDD")
	require.NoError(t, err)
	assert.Contains(t, out, "LIFE")
	assert.Contains(t, out, "DEAD")
}

func TestReplayCommand_BadDraw(t *testing.T) {
	_, err := execute(t, "replay", "AXZ")
	assert.Error(t, err)
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", "AAA")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "c3{{")
}

func TestSessionLsCommand_Empty(t *testing.T) {
	out, err := execute(t, "session", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found.")
}

func TestSessionInspectCommand_Missing(t *testing.T) {
	_, err := execute(t, "session", "inspect", "ghost")
	assert.Error(t, err)
}
