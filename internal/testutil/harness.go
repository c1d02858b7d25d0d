// Package testutil provides shared helpers for tests that drive the
// application end to end against model files in a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/specialistvlad/psmgen/internal/app"
	"github.com/specialistvlad/psmgen/internal/firmware"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Fixture returns the smart-farm model in the given format ("xml", "hcl" or
// "yaml"). Every format describes the same system.
func Fixture(t *testing.T, format string) string {
	t.Helper()
	_, self, _, ok := runtime.Caller(0)
	require.True(t, ok)
	path := filepath.Join(filepath.Dir(self), "..", format+"model", "testdata", "smart_farm."+format)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// WriteFiles writes files (relative path -> content) under a fresh temporary
// directory and returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// HarnessResult holds the outcomes of a harness run.
type HarnessResult struct {
	Output    string
	LogOutput string
	OutputDir string
	Units     []*firmware.Unit
	Err       error
	App       *app.App
}

// Run writes modelName with content to a temporary directory and runs
// generation against it. configure may adjust the configuration first.
func Run(t *testing.T, modelName, content string, configure func(*app.Config)) *HarnessResult {
	t.Helper()
	return RunWithContext(context.Background(), t, modelName, content, configure)
}

// RunWithContext is Run with a caller-provided context.
func RunWithContext(ctx context.Context, t *testing.T, modelName, content string, configure func(*app.Config)) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, map[string]string{modelName: content})
	cfg := app.DefaultConfig()
	cfg.ModelPath = filepath.Join(dir, modelName)
	cfg.OutputDir = filepath.Join(dir, "output")
	cfg.LogLevel = "debug"
	if configure != nil {
		configure(&cfg)
	}
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	a := app.New(out, logs, validated)
	units, runErr := a.Generate(ctx)

	if os.Getenv("PSMGEN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		OutputDir: validated.OutputDir,
		Units:     units,
		Err:       runErr,
		App:       a,
	}
}

// ReadOutput returns a generated file, relative to the output directory.
func (r *HarnessResult) ReadOutput(t *testing.T, rel ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{r.OutputDir}, rel...)...))
	require.NoError(t, err)
	return string(data)
}
