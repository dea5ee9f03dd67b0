package driver

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ngc-ir/packages/compiler/src/config"
	"ngc-ir/packages/compiler/src/ctxlog"
	"ngc-ir/packages/compiler/src/template/fixture"
)

const components = `
component "Greeting" {
  template {
    element "div" {
      text "Hello" {}
    }
  }
}

component "Badge" {
  host {
    properties = { "class.active" = active }
  }
}
`

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func parseRequests(t *testing.T) []Request {
	t.Helper()
	parsed, err := fixture.Parse([]byte(components), "components.hcl")
	require.NoError(t, err)
	return FixtureRequests("components.hcl", parsed)
}

func TestCompileAll(t *testing.T) {
	t.Run("should compile every request in order", func(t *testing.T) {
		results, err := CompileAll(testContext(), parseRequests(t), config.NewOptions(config.WithWorkers(2)))
		require.NoError(t, err)
		require.Len(t, results, 2)

		greeting := results[0]
		require.Equal(t, "Greeting", greeting.Name)
		require.Equal(t, "components.hcl", greeting.Path)
		require.NoError(t, greeting.Err)
		require.NotNil(t, greeting.Template)
		require.Nil(t, greeting.Host)
		require.Equal(t, 2, greeting.Template.Decls)
		require.Equal(t, 0, greeting.Template.Vars)

		badge := results[1]
		require.Equal(t, "Badge", badge.Name)
		require.NoError(t, badge.Err)
		require.Nil(t, badge.Template)
		require.NotNil(t, badge.Host)
		require.NotNil(t, badge.Host.HostBindingsFn)
	})

	t.Run("should keep failures local to their request", func(t *testing.T) {
		requests := append(parseRequests(t), Request{Name: "Empty", HostBindingsOnly: true})
		results, err := CompileAll(testContext(), requests, config.NewOptions(config.WithWorkers(1)))
		require.NoError(t, err)
		require.Len(t, results, 3)
		require.NoError(t, results[0].Err)
		require.NoError(t, results[1].Err)
		require.ErrorContains(t, results[2].Err, "nothing to compile")
	})

	t.Run("should stop when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testContext())
		cancel()
		_, err := CompileAll(ctx, parseRequests(t), config.NewOptions())
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRender(t *testing.T) {
	results, err := CompileAll(testContext(), parseRequests(t), config.NewOptions())
	require.NoError(t, err)

	t.Run("should list the template function", func(t *testing.T) {
		out := Render(results[0])
		require.True(t, strings.HasPrefix(out, "// Greeting\n// source: components.hcl\n"))
		require.Contains(t, out, "// decls: 2, vars: 0")
		require.Contains(t, out, "function Greeting_Template(")
		require.Contains(t, out, "// slots:")
	})

	t.Run("should list the host bindings function", func(t *testing.T) {
		out := Render(results[1])
		require.Contains(t, out, "// host vars:")
		require.Contains(t, out, "function Badge_HostBindings(")
	})

	t.Run("should report a failed compilation", func(t *testing.T) {
		out := Render(Result{Name: "Broken", Err: os.ErrInvalid})
		require.Equal(t, "// Broken\n// error: invalid argument\n", out)
	})
}

func TestWriter(t *testing.T) {
	t.Run("should write listings below the output directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		w := NewWriter(dir)

		path, err := w.Write(testContext(), "Greeting", "listing\n")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "Greeting.ivy.txt"), path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "listing\n", string(content))
	})

	t.Run("should serialize concurrent writes to one path", func(t *testing.T) {
		w := NewWriter(t.TempDir())
		done := make(chan error)
		for i := 0; i < 8; i++ {
			go func() {
				_, err := w.Write(testContext(), "Same", "same content\n")
				done <- err
			}()
		}
		for i := 0; i < 8; i++ {
			require.NoError(t, <-done)
		}
		content, err := os.ReadFile(w.Path("Same"))
		require.NoError(t, err)
		require.Equal(t, "same content\n", string(content))
	})
}
