package phases

import (
	"slices"
	"strings"

	"ngc-ir/packages/compiler/src/core"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/render3/r3_identifiers"
	"ngc-ir/packages/compiler/src/schema"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

var sanitizerFns = map[core.SecurityContext]*output.ExternalReference{
	core.SecurityContextHTML:         r3_identifiers.SanitizeHtml,
	core.SecurityContextRESOURCE_URL: r3_identifiers.SanitizeResourceUrl,
	core.SecurityContextSCRIPT:       r3_identifiers.SanitizeScript,
	core.SecurityContextSTYLE:        r3_identifiers.SanitizeStyle,
	core.SecurityContextURL:          r3_identifiers.SanitizeUrl,
}

var trustedValueFns = map[core.SecurityContext]*output.ExternalReference{
	core.SecurityContextHTML:         r3_identifiers.TrustConstantHtml,
	core.SecurityContextRESOURCE_URL: r3_identifiers.TrustConstantResourceUrl,
}

// ResolveSanitizers attaches sanitizer functions to property and attribute bindings, and trusted
// value functions to security-sensitive constant attributes.
func ResolveSanitizers(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		elements := createOpXrefMap(unit)

		// Constant host attributes are not wrapped in trusted values.
		if job.GetKind() != compilation.CompilationJobKindHost {
			for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
				attr, ok := op.(*ir.ExtractedAttributeOp)
				if !ok {
					continue
				}
				attr.TrustedValueFn = nil
				if fn, ok := trustedValueFns[onlySecurityContext(attr.SecurityContext)]; ok {
					attr.TrustedValueFn = output.ImportExpr(fn)
				}
			}
		}

		for op := unit.GetUpdate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			var (
				name      string
				contexts  []core.SecurityContext
				sanitizer *output.OutputExpression
				target    = ir.NoXref
			)
			switch o := op.(type) {
			case *ir.PropertyOp:
				name, contexts, sanitizer, target = o.Name, o.SecurityContext, &o.Sanitizer, o.Target
			case *ir.AttributeOp:
				name, contexts, sanitizer, target = o.Name, o.SecurityContext, &o.Sanitizer, o.Target
			case *ir.DomPropertyOp:
				name, contexts, sanitizer = o.Name, o.SecurityContext, &o.Sanitizer
			default:
				continue
			}

			var fn *output.ExternalReference
			if len(contexts) == 2 && slices.Contains(contexts, core.SecurityContextURL) && slices.Contains(contexts, core.SecurityContextRESOURCE_URL) {
				// `src` and `href` on an unknown element may be either. The runtime picks the
				// sanitizer by tag name.
				fn = r3_identifiers.SanitizeUrlOrResourceUrl
			} else {
				fn = sanitizerFns[onlySecurityContext(contexts)]
			}
			*sanitizer = nil
			if fn != nil {
				*sanitizer = output.ImportExpr(fn)
				continue
			}

			// Security-sensitive <iframe> attributes are validated at runtime. A host binding or
			// DOM property may land on an <iframe> we cannot see, so those are always validated.
			isIframe := true
			if job.GetKind() != compilation.CompilationJobKindHost && op.GetKind() != ir.OpKindDomProperty {
				isIframe = isIframeElement(lookupElement(elements, target))
			}
			if isIframe && schema.IsIframeSecuritySensitiveAttr(name) {
				*sanitizer = output.ImportExpr(r3_identifiers.ValidateIframeAttribute)
			}
		}
	}
}

func isIframeElement(op ir.ElementOrContainerOp) bool {
	element, ok := op.(*ir.ElementStartOp)
	return ok && strings.ToLower(element.Tag) == "iframe"
}

// onlySecurityContext returns the single security context of a binding. More than one context is
// only supported for the URL and resource URL pair.
func onlySecurityContext(contexts []core.SecurityContext) core.SecurityContext {
	if len(contexts) > 1 {
		ir.Assertf("ambiguous security context %v", contexts)
	}
	if len(contexts) == 0 {
		return core.SecurityContextNONE
	}
	return contexts[0]
}
