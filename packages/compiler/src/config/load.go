package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"ngc-ir/packages/compiler/src/ctxlog"
	"ngc-ir/packages/compiler/src/i18n"
)

// fileRoot is the shape of an options file. Every setting is optional.
type fileRoot struct {
	Compatibility        *string            `hcl:"compatibility,optional"`
	Mode                 *string            `hcl:"mode,optional"`
	EnableDebugLocations *bool              `hcl:"enable_debug_locations,optional"`
	I18nUseExternalIds   *bool              `hcl:"i18n_use_external_ids,optional"`
	MissingTranslation   *string            `hcl:"missing_translation,optional"`
	Workers              *int               `hcl:"workers,optional"`
	OutputDir            *string            `hcl:"output_dir,optional"`
	Translations         *translationsBlock `hcl:"translations,block"`
}

type translationsBlock struct {
	Messages map[string]string `hcl:"messages"`
}

// Load reads an options file. Settings it leaves out keep their defaults; extra options are
// applied last and win over the file.
func Load(ctx context.Context, path string, extra ...Option) (*Options, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading options.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	opts, err := root.options()
	if err != nil {
		return nil, fmt.Errorf("invalid options in %s: %w", path, err)
	}
	options := NewOptions(append(opts, extra...)...)
	logger.Debug("Options loaded.", "workers", options.Workers, "translations", len(options.Translations))
	return options, nil
}

func (r *fileRoot) options() ([]Option, error) {
	var opts []Option
	var errs []error
	if r.Compatibility != nil {
		mode, err := ParseCompatibility(*r.Compatibility)
		errs = append(errs, err)
		opts = append(opts, WithCompatibility(mode))
	}
	if r.Mode != nil {
		mode, err := ParseMode(*r.Mode)
		errs = append(errs, err)
		opts = append(opts, WithMode(mode))
	}
	if r.EnableDebugLocations != nil {
		opts = append(opts, WithDebugLocations(*r.EnableDebugLocations))
	}
	if r.I18nUseExternalIds != nil {
		opts = append(opts, WithI18nUseExternalIds(*r.I18nUseExternalIds))
	}
	if r.MissingTranslation != nil {
		strategy, err := i18n.ParseMissingTranslationStrategy(*r.MissingTranslation)
		errs = append(errs, err)
		opts = append(opts, WithMissingTranslation(strategy))
	}
	if r.Workers != nil {
		if *r.Workers < 1 {
			errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", *r.Workers))
		}
		opts = append(opts, WithWorkers(*r.Workers))
	}
	if r.OutputDir != nil {
		opts = append(opts, WithOutputDir(*r.OutputDir))
	}
	if r.Translations != nil {
		opts = append(opts, WithTranslations(r.Translations.Messages))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return opts, nil
}
