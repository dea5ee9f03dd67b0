// Package driver compiles many components concurrently and writes their debug output.
package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ngc-ir/packages/compiler/src/config"
	"ngc-ir/packages/compiler/src/ctxlog"
	"ngc-ir/packages/compiler/src/render3"
	"ngc-ir/packages/compiler/src/template/fixture"
	"ngc-ir/packages/compiler/src/template/pipeline"
)

// Request is one component to compile
type Request struct {
	Name string
	// Path is the source file of the component, relative to the project
	Path     string
	Template []render3.Node

	// Host is compiled into a host binding function when set
	Host             *pipeline.HostBindingInput
	HostBindingsOnly bool
}

// Result is the outcome of one request. Err is set when the component failed to compile;
// other components are unaffected.
type Result struct {
	Name     string
	Path     string
	Template *pipeline.CompileResult
	Host     *pipeline.CompileResult
	Err      error
}

// FixtureRequests turns the components of the fixture at path into requests
func FixtureRequests(path string, components []*fixture.Component) []Request {
	requests := make([]Request, 0, len(components))
	for _, component := range components {
		requests = append(requests, Request{
			Name:             component.Name,
			Path:             path,
			Template:         component.Template,
			Host:             component.Host,
			HostBindingsOnly: component.HostBindingsOnly,
		})
	}
	return requests
}

// CompileAll compiles every request, at most options.Workers at a time. Results keep the
// order of requests. The returned error is only set when ctx is cancelled.
func CompileAll(ctx context.Context, requests []Request, options *config.Options) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compiling components.", "count", len(requests), "workers", options.Workers)

	// Per-job inputs are fixed before any job starts.
	metas := make([]pipeline.ComponentMetadata, len(requests))
	for i, req := range requests {
		metas[i] = options.ComponentMetadata(req.Name, req.Path)
		metas[i].HostBindingsOnly = req.HostBindingsOnly
	}

	results := make([]Result, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(options.Workers)
	for i := range requests {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = compileOne(gctx, requests[i], metas[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	logger.Debug("Compilation finished.", "count", len(results), "failed", failed)
	return results, nil
}

func compileOne(ctx context.Context, req Request, meta pipeline.ComponentMetadata) Result {
	logger := ctxlog.FromContext(ctx).With("component", req.Name)
	result := Result{Name: req.Name, Path: req.Path}

	compiled, err := pipeline.Compile(req.Template, meta)
	if err != nil {
		logger.Error("Template compilation failed.", "error", err)
		result.Err = err
		return result
	}
	if compiled.TemplateFn != nil {
		result.Template = compiled
		logger.Debug("Template compiled.",
			"decls", compiled.Decls,
			"vars", compiled.Vars,
			"consts", len(compiled.Consts),
			"statements", len(compiled.Statements),
		)
		logWarnings(ctx, req.Name, compiled)
	}

	if req.Host != nil {
		compiled, err := pipeline.CompileHostBindings(req.Host, meta)
		if err != nil {
			logger.Error("Host binding compilation failed.", "error", err)
			result.Err = err
			return result
		}
		result.Host = compiled
		logger.Debug("Host bindings compiled.", "vars", compiled.Vars)
		logWarnings(ctx, req.Name, compiled)
	}

	if result.Template == nil && result.Host == nil {
		result.Err = fmt.Errorf("compiling %s: nothing to compile", req.Name)
	}
	return result
}

func logWarnings(ctx context.Context, name string, result *pipeline.CompileResult) {
	logger := ctxlog.FromContext(ctx)
	for _, warning := range result.Warnings {
		location := ""
		if warning.Span != nil && warning.Span.Start != nil {
			location = warning.Span.Start.String()
		}
		logger.Warn(warning.Msg, "component", name, "location", location)
	}
}
