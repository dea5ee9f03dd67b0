package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ngc-ir/packages/compiler/src/config"
	"ngc-ir/packages/compiler/src/ctxlog"
	"ngc-ir/packages/compiler/src/driver"
	"ngc-ir/packages/compiler/src/template/fixture"
)

// compileProject compiles every component of the fixtures below cfg.paths. Listings are
// written to the output directory, or to outW when there is none.
func compileProject(ctx context.Context, outW io.Writer, cfg *compileConfig) error {
	logger := ctxlog.FromContext(ctx)

	options, err := loadOptions(ctx, cfg)
	if err != nil {
		return err
	}

	var requests []driver.Request
	for _, root := range cfg.paths {
		files, err := findFixtures(root)
		if err != nil {
			return fmt.Errorf("error finding fixtures in %s: %w", root, err)
		}
		for _, file := range files {
			components, err := fixture.Load(file)
			if err != nil {
				return err
			}
			logger.Debug("Loaded fixture.", "path", file, "components", len(components))
			requests = append(requests, driver.FixtureRequests(relativePath(root, file), components)...)
		}
	}
	if len(requests) == 0 {
		logger.Warn("No components found.", "paths", cfg.paths)
		return nil
	}

	results, err := driver.CompileAll(ctx, requests, options)
	if err != nil {
		return err
	}

	var writer *driver.Writer
	if options.OutputDir != "" {
		writer = driver.NewWriter(options.OutputDir)
		logger.Info("Writing listings.", "dir", options.OutputDir)
	}

	successCount := 0
	for _, result := range results {
		if result.Err == nil {
			successCount++
		}
		if writer == nil {
			fmt.Fprintln(outW, driver.Render(result))
			continue
		}
		if _, err := writer.WriteResult(ctx, result); err != nil {
			return err
		}
	}

	fmt.Fprintf(outW, "Compilation complete: %d/%d components compiled\n", successCount, len(results))
	if successCount != len(results) {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%d component(s) failed to compile", len(results)-successCount)}
	}
	return nil
}

// loadOptions reads the options file when one is given. Flags override the file.
func loadOptions(ctx context.Context, cfg *compileConfig) (*config.Options, error) {
	var overrides []config.Option
	if cfg.compat != "" {
		compat, err := config.ParseCompatibility(cfg.compat)
		if err != nil {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
		overrides = append(overrides, config.WithCompatibility(compat))
	}
	if cfg.mode != "" {
		mode, err := config.ParseMode(cfg.mode)
		if err != nil {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
		overrides = append(overrides, config.WithMode(mode))
	}
	if cfg.workers > 0 {
		overrides = append(overrides, config.WithWorkers(cfg.workers))
	}
	if cfg.outputDir != "" {
		overrides = append(overrides, config.WithOutputDir(cfg.outputDir))
	}

	if cfg.configPath == "" {
		return config.NewOptions(overrides...), nil
	}
	return config.Load(ctx, cfg.configPath, overrides...)
}

// findFixtures returns root when it is a file, or every .hcl file below it, sorted
func findFixtures(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func relativePath(root, file string) string {
	if rel, err := filepath.Rel(root, file); err == nil && rel != "." {
		return filepath.ToSlash(rel)
	}
	return filepath.Base(file)
}
