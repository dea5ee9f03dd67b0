package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureSource = `
component "Greeting" {
  template {
    element "p" {
      interpolation { value = "Hello ${name}" }
    }
  }
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestRun_Help(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}
	require.NoError(t, run(out, &bytes.Buffer{}, []string{"help"}))
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_CompileHelp(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}
	require.NoError(t, run(out, &bytes.Buffer{}, []string{"compile", "-h"}))
	require.Contains(t, out.String(), "ngc-go compile [options] PATH...")
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"watch"})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, `unknown command "watch"`)
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"compile", "--this-is-not-a-valid-flag"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"compile", "-log-level", "loud", "x.hcl"})
	require.EqualError(t, err, "invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
}

func TestRun_CompileToStdout(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app", "greeting.hcl"), fixtureSource)

	out := &bytes.Buffer{}
	require.NoError(t, run(out, &bytes.Buffer{}, []string{"compile", dir}))
	require.Contains(t, out.String(), "// Greeting\n// source: app/greeting.hcl\n")
	require.Contains(t, out.String(), "function Greeting_Template(")
	require.Contains(t, out.String(), "Compilation complete: 1/1 components compiled")
}

func TestRun_CompileToDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "src", "greeting.hcl")
	writeFile(t, fixturePath, fixtureSource)
	outDir := filepath.Join(dir, "dist")
	configPath := filepath.Join(dir, "ngc.hcl")
	writeFile(t, configPath, "compatibility = \"legacy\"\nworkers = 2\noutput_dir = \""+filepath.ToSlash(outDir)+"\"\n")

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	require.NoError(t, run(out, logs, []string{"compile", "-config", configPath, "-log-level", "debug", fixturePath}))
	require.Contains(t, out.String(), "Compilation complete: 1/1 components compiled")
	require.Contains(t, logs.String(), "Writing listings.")

	content, err := os.ReadFile(filepath.Join(outDir, "Greeting.ivy.txt"))
	require.NoError(t, err)
	require.Contains(t, string(content), "// source: greeting.hcl")
}

func TestRun_InvalidFixture(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.hcl"), "component \"A\" {\n  template {\n")

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"compile", dir})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse HCL file")
}
