package config

import (
	"fmt"
	"strings"

	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/template/pipeline"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// DefaultWorkers is the number of components compiled in parallel by default
const DefaultWorkers = 4

// Options represents the compile options shared by every component of a run
type Options struct {
	Compatibility        ir.CompatibilityMode
	Mode                 compilation.TemplateCompilationMode
	EnableDebugLocations bool
	I18nUseExternalIds   bool
	MissingTranslation   i18n.MissingTranslationStrategy
	Workers              int
	OutputDir            string

	// Translations maps message ids to translated text using `{$NAME}` placeholders. No
	// translation happens when it is nil.
	Translations map[string]string
}

// NewOptions creates Options with the defaults, then applies opts in order
func NewOptions(opts ...Option) *Options {
	options := &Options{
		Compatibility:      ir.CompatibilityModeNormal,
		Mode:               compilation.TemplateCompilationModeFull,
		MissingTranslation: i18n.MissingTranslationStrategyWarning,
		Workers:            DefaultWorkers,
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// Option is a function that modifies Options
type Option func(*Options)

// WithCompatibility sets the compatibility mode
func WithCompatibility(mode ir.CompatibilityMode) Option {
	return func(o *Options) {
		o.Compatibility = mode
	}
}

// WithMode sets the template compilation mode
func WithMode(mode compilation.TemplateCompilationMode) Option {
	return func(o *Options) {
		o.Mode = mode
	}
}

// WithDebugLocations sets whether element source locations are attached
func WithDebugLocations(enable bool) Option {
	return func(o *Options) {
		o.EnableDebugLocations = enable
	}
}

// WithI18nUseExternalIds sets whether messages use external ids
func WithI18nUseExternalIds(use bool) Option {
	return func(o *Options) {
		o.I18nUseExternalIds = use
	}
}

// WithMissingTranslation sets the strategy for messages without translation
func WithMissingTranslation(strategy i18n.MissingTranslationStrategy) Option {
	return func(o *Options) {
		o.MissingTranslation = strategy
	}
}

// WithWorkers sets the parallelism of the driver. Values below one keep the default.
func WithWorkers(workers int) Option {
	return func(o *Options) {
		if workers > 0 {
			o.Workers = workers
		}
	}
}

// WithOutputDir sets the directory compiled output is written to
func WithOutputDir(dir string) Option {
	return func(o *Options) {
		o.OutputDir = dir
	}
}

// WithTranslations sets the translated texts of messages
func WithTranslations(translations map[string]string) Option {
	return func(o *Options) {
		o.Translations = translations
	}
}

// ComponentMetadata builds the compile metadata of one component
func (o *Options) ComponentMetadata(name, relativePath string) pipeline.ComponentMetadata {
	meta := pipeline.ComponentMetadata{
		Name:                 name,
		RelativeTemplatePath: relativePath,
		EnableDebugLocations: o.EnableDebugLocations,
		Compatibility:        o.Compatibility,
		Mode:                 o.Mode,
		I18nUseExternalIds:   o.I18nUseExternalIds,
	}
	if o.Translations != nil {
		meta.Translations = i18n.NewTranslationBundle(o.Translations, o.MissingTranslation)
	}
	return meta
}

// ParseCompatibility parses "normal" or "legacy"
func ParseCompatibility(s string) (ir.CompatibilityMode, error) {
	switch strings.ToLower(s) {
	case "normal", "":
		return ir.CompatibilityModeNormal, nil
	case "legacy":
		return ir.CompatibilityModeTemplateDefinitionBuilder, nil
	}
	return 0, fmt.Errorf("unknown compatibility mode %q: must be 'normal' or 'legacy'", s)
}

// ParseMode parses "full" or "dom_only"
func ParseMode(s string) (compilation.TemplateCompilationMode, error) {
	switch strings.ToLower(s) {
	case "full", "":
		return compilation.TemplateCompilationModeFull, nil
	case "dom_only":
		return compilation.TemplateCompilationModeDomOnly, nil
	}
	return 0, fmt.Errorf("unknown compilation mode %q: must be 'full' or 'dom_only'", s)
}
