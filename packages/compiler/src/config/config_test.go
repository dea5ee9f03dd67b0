package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ngc-ir/packages/compiler/src/ctxlog"
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewOptions(t *testing.T) {
	t.Run("should apply the defaults", func(t *testing.T) {
		options := NewOptions()
		require.Equal(t, ir.CompatibilityModeNormal, options.Compatibility)
		require.Equal(t, compilation.TemplateCompilationModeFull, options.Mode)
		require.Equal(t, i18n.MissingTranslationStrategyWarning, options.MissingTranslation)
		require.Equal(t, DefaultWorkers, options.Workers)
		require.False(t, options.EnableDebugLocations)
		require.Nil(t, options.Translations)
	})

	t.Run("should keep the default worker count for non-positive values", func(t *testing.T) {
		require.Equal(t, DefaultWorkers, NewOptions(WithWorkers(0)).Workers)
		require.Equal(t, 8, NewOptions(WithWorkers(8)).Workers)
	})
}

func TestComponentMetadata(t *testing.T) {
	t.Run("should copy the options into the metadata", func(t *testing.T) {
		options := NewOptions(
			WithCompatibility(ir.CompatibilityModeTemplateDefinitionBuilder),
			WithMode(compilation.TemplateCompilationModeDomOnly),
			WithDebugLocations(true),
			WithI18nUseExternalIds(true),
		)
		meta := options.ComponentMetadata("App", "app.hcl")
		require.Equal(t, "App", meta.Name)
		require.Equal(t, "app.hcl", meta.RelativeTemplatePath)
		require.True(t, meta.EnableDebugLocations)
		require.True(t, meta.I18nUseExternalIds)
		require.Equal(t, ir.CompatibilityModeTemplateDefinitionBuilder, meta.Compatibility)
		require.Equal(t, compilation.TemplateCompilationModeDomOnly, meta.Mode)
		require.Nil(t, meta.Translations)
	})

	t.Run("should build a translation bundle with the strategy", func(t *testing.T) {
		options := NewOptions(
			WithTranslations(map[string]string{"42": "Bonjour"}),
			WithMissingTranslation(i18n.MissingTranslationStrategyError),
		)
		meta := options.ComponentMetadata("App", "")
		require.NotNil(t, meta.Translations)
		require.Equal(t, i18n.MissingTranslationStrategyError, meta.Translations.Strategy)
	})
}

func TestLoad(t *testing.T) {
	t.Run("should decode every setting", func(t *testing.T) {
		path := writeFile(t, `
compatibility          = "legacy"
mode                   = "dom_only"
enable_debug_locations = true
i18n_use_external_ids  = true
missing_translation    = "error"
workers                = 2
output_dir             = "out"

translations {
  messages = {
    "123" = "Bonjour {$INTERPOLATION}"
  }
}
`)
		options, err := Load(testContext(), path)
		require.NoError(t, err)
		require.Equal(t, ir.CompatibilityModeTemplateDefinitionBuilder, options.Compatibility)
		require.Equal(t, compilation.TemplateCompilationModeDomOnly, options.Mode)
		require.True(t, options.EnableDebugLocations)
		require.True(t, options.I18nUseExternalIds)
		require.Equal(t, i18n.MissingTranslationStrategyError, options.MissingTranslation)
		require.Equal(t, 2, options.Workers)
		require.Equal(t, "out", options.OutputDir)
		require.Equal(t, map[string]string{"123": "Bonjour {$INTERPOLATION}"}, options.Translations)
	})

	t.Run("should keep defaults for missing settings and let extra options win", func(t *testing.T) {
		path := writeFile(t, `workers = 3`)
		options, err := Load(testContext(), path, WithOutputDir("dist"))
		require.NoError(t, err)
		require.Equal(t, 3, options.Workers)
		require.Equal(t, "dist", options.OutputDir)
		require.Equal(t, compilation.TemplateCompilationModeFull, options.Mode)
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		path := writeFile(t, `
compatibility = "ancient"
workers       = 0
`)
		_, err := Load(testContext(), path)
		require.ErrorContains(t, err, "unknown compatibility mode")
		require.ErrorContains(t, err, "workers must be at least 1")
	})

	t.Run("should reject unknown arguments", func(t *testing.T) {
		path := writeFile(t, `colour = "blue"`)
		_, err := Load(testContext(), path)
		require.ErrorContains(t, err, "failed to decode HCL file")
	})

	t.Run("should report syntax errors", func(t *testing.T) {
		path := writeFile(t, `workers = `)
		_, err := Load(testContext(), path)
		require.ErrorContains(t, err, "failed to parse HCL file")
	})
}
