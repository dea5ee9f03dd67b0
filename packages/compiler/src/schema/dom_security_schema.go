package schema

import (
	"sort"
	"strings"
	"sync"

	"ngc-ir/packages/compiler/src/core"
)

var (
	securitySchemaOnce sync.Once
	securitySchema     map[string]core.SecurityContext
)

// SecuritySchema maps lower-cased `tag|property` keys to the security context of writes to
// that property. `*` matches every tag. The map is built once and is read-only afterwards.
func SecuritySchema() map[string]core.SecurityContext {
	securitySchemaOnce.Do(func() {
		securitySchema = make(map[string]core.SecurityContext)
		registerContext(core.SecurityContextHTML, "iframe|srcdoc", "*|innerHTML", "*|outerHTML")
		registerContext(core.SecurityContextSTYLE, "*|style")
		// No SCRIPT contexts: script tags never survive template parsing.
		registerContext(core.SecurityContextURL,
			"*|formAction", "area|href", "area|ping", "audio|src", "a|href", "a|ping",
			"blockquote|cite", "body|background", "del|cite", "form|action", "img|src",
			"input|src", "ins|cite", "q|cite", "source|src", "track|src", "video|poster",
			"video|src",
		)
		registerContext(core.SecurityContextRESOURCE_URL,
			"applet|code", "applet|codebase", "base|href", "embed|src", "frame|src",
			"head|profile", "html|manifest", "iframe|src", "link|href", "media|src",
			"object|codebase", "object|data", "script|src",
		)
	})
	return securitySchema
}

func registerContext(ctx core.SecurityContext, specs ...string) {
	for _, spec := range specs {
		securitySchema[strings.ToLower(spec)] = ctx
	}
}

// attrToPropMap maps attribute names to the DOM property they reflect
var attrToPropMap = map[string]string{
	"class":      "className",
	"for":        "htmlFor",
	"formaction": "formAction",
	"innerhtml":  "innerHTML",
	"readonly":   "readOnly",
	"tabindex":   "tabIndex",
}

// SecurityContextFor returns the security context of a property (or attribute) written on
// an element with the given tag.
func SecurityContextFor(tagName, propName string, isAttribute bool) core.SecurityContext {
	if isAttribute {
		if mapped, ok := attrToPropMap[strings.ToLower(propName)]; ok {
			propName = mapped
		}
	}
	tagName = strings.ToLower(tagName)
	propName = strings.ToLower(propName)
	schema := SecuritySchema()
	if ctx, ok := schema[tagName+"|"+propName]; ok {
		return ctx
	}
	if ctx, ok := schema["*|"+propName]; ok {
		return ctx
	}
	return core.SecurityContextNONE
}

// PossibleSecurityContexts returns every security context a property may have on any element.
// Host bindings use it because the host element tag is not known at compile time.
func PossibleSecurityContexts(propName string, isAttribute bool) []core.SecurityContext {
	if isAttribute {
		if mapped, ok := attrToPropMap[strings.ToLower(propName)]; ok {
			propName = mapped
		}
	}
	suffix := "|" + strings.ToLower(propName)
	seen := map[core.SecurityContext]bool{}
	for key, ctx := range SecuritySchema() {
		if strings.HasSuffix(key, suffix) {
			seen[ctx] = true
		}
	}
	if len(seen) == 0 {
		return []core.SecurityContext{core.SecurityContextNONE}
	}
	result := make([]core.SecurityContext, 0, len(seen))
	for ctx := range seen {
		result = append(result, ctx)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// iframeSecuritySensitiveAttrs must only be applied to an `<iframe>` as static attributes
var iframeSecuritySensitiveAttrs = map[string]bool{
	"sandbox":         true,
	"allow":           true,
	"allowfullscreen": true,
	"referrerpolicy":  true,
	"csp":             true,
	"fetchpriority":   true,
}

// IsIframeSecuritySensitiveAttr checks whether an attribute name is security-sensitive on an
// `<iframe>`. The DOM attribute API is case-insensitive, so the check is too.
func IsIframeSecuritySensitiveAttr(attrName string) bool {
	return iframeSecuritySensitiveAttrs[strings.ToLower(attrName)]
}

// trustedTypesSinks is the set of lower-cased `tag|property` Trusted Types sinks
var trustedTypesSinks = map[string]bool{
	"iframe|srcdoc":   true,
	"*|innerhtml":     true,
	"*|outerhtml":     true,
	"embed|src":       true,
	"object|codebase": true,
	"object|data":     true,
}

// IsTrustedTypesSink reports whether a static value written to the property must be wrapped
// in a trusted constant.
func IsTrustedTypesSink(tagName, propName string) bool {
	tagName = strings.ToLower(tagName)
	propName = strings.ToLower(propName)
	return trustedTypesSinks[tagName+"|"+propName] || trustedTypesSinks["*|"+propName]
}
