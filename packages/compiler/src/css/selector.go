package css

import (
	"fmt"
	"regexp"
	"strings"
)

// selectorRegexp group indices
const (
	selectorRegexpNot             = 1 // ":not("
	selectorRegexpTag             = 2 // tag with prefix
	selectorRegexpPrefix          = 3 // "." or "#"
	selectorRegexpAttribute       = 4 // attribute name
	selectorRegexpAttributeValue  = 5 // double quoted value
	selectorRegexpAttributeValue2 = 6 // single quoted value
	selectorRegexpAttributeValue3 = 7 // unquoted value
	selectorRegexpNotEnd          = 8 // ")"
	selectorRegexpSeparator       = 9 // ","
)

// Go regexps have no backreferences, so each quote style gets its own group.
var selectorRegexp = regexp.MustCompile(
	`(\:not\()|` +
		`(([\.\#]?)[-\w]+)|` +
		`(?:\[([-.\w*\\$]+)(?:=(?:"([^"]*)"|'([^']*)'|([^\]\s]+)))?\])|` +
		`(\))|` +
		`(\s*,\s*)`,
)

// CssSelector is a simple selector as used for content projection: an element, classes,
// attributes and `:not()` selectors.
type CssSelector struct {
	Element      string
	ClassNames   []string
	Attrs        []string // name/value pairs
	NotSelectors []*CssSelector
}

// ParseCssSelector parses a comma separated selector list
func ParseCssSelector(selector string) ([]*CssSelector, error) {
	var results []*CssSelector
	addResult := func(cssSel *CssSelector) {
		if len(cssSel.NotSelectors) > 0 && cssSel.Element == "" && len(cssSel.ClassNames) == 0 && len(cssSel.Attrs) == 0 {
			cssSel.Element = "*"
		}
		results = append(results, cssSel)
	}

	cssSelector := &CssSelector{}
	current := cssSelector
	inNot := false
	for _, match := range selectorRegexp.FindAllStringSubmatch(selector, -1) {
		if match[selectorRegexpNot] != "" {
			if inNot {
				return nil, fmt.Errorf("nesting :not in a selector is not allowed")
			}
			inNot = true
			current = &CssSelector{}
			cssSelector.NotSelectors = append(cssSelector.NotSelectors, current)
		}

		if tag := match[selectorRegexpTag]; tag != "" {
			switch match[selectorRegexpPrefix] {
			case "#":
				current.AddAttribute("id", tag[1:])
			case ".":
				current.AddClassName(tag[1:])
			default:
				current.Element = tag
			}
		}

		if attribute := match[selectorRegexpAttribute]; attribute != "" {
			value := match[selectorRegexpAttributeValue]
			if value == "" {
				value = match[selectorRegexpAttributeValue2]
			}
			if value == "" {
				value = match[selectorRegexpAttributeValue3]
			}
			name, err := unescapeAttribute(attribute)
			if err != nil {
				return nil, err
			}
			current.AddAttribute(name, value)
		}

		if match[selectorRegexpNotEnd] != "" {
			inNot = false
			current = cssSelector
		}

		if match[selectorRegexpSeparator] != "" {
			if inNot {
				return nil, fmt.Errorf("multiple selectors in :not are not supported")
			}
			addResult(cssSelector)
			cssSelector = &CssSelector{}
			current = cssSelector
		}
	}
	addResult(cssSelector)
	return results, nil
}

// unescapeAttribute unescapes `\$` sequences of an attribute selector
func unescapeAttribute(attr string) (string, error) {
	var result strings.Builder
	escaping := false
	for i := 0; i < len(attr); i++ {
		char := attr[i]
		if char == '\\' {
			escaping = true
			continue
		}
		if char == '$' && !escaping {
			return "", fmt.Errorf(`error in attribute selector "%s": unescaped "$" is not supported, please escape with "\$"`, attr)
		}
		escaping = false
		result.WriteByte(char)
	}
	return result.String(), nil
}

// AddAttribute adds an attribute; values are lowercased
func (cs *CssSelector) AddAttribute(name, value string) {
	cs.Attrs = append(cs.Attrs, name, strings.ToLower(value))
}

// AddClassName adds a lowercased class name
func (cs *CssSelector) AddClassName(name string) {
	cs.ClassNames = append(cs.ClassNames, strings.ToLower(name))
}

func (cs *CssSelector) String() string {
	var res strings.Builder
	res.WriteString(cs.Element)
	for _, klass := range cs.ClassNames {
		res.WriteString("." + klass)
	}
	for i := 0; i < len(cs.Attrs); i += 2 {
		name := strings.ReplaceAll(strings.ReplaceAll(cs.Attrs[i], `\`, `\\`), "$", `\$`)
		if value := cs.Attrs[i+1]; value != "" {
			fmt.Fprintf(&res, "[%s=%s]", name, value)
		} else {
			fmt.Fprintf(&res, "[%s]", name)
		}
	}
	for _, notSelector := range cs.NotSelectors {
		fmt.Fprintf(&res, ":not(%s)", notSelector)
	}
	return res.String()
}

// SelectorFlags mark the parts of a runtime selector
type SelectorFlags int

const (
	SelectorFlagsNot       SelectorFlags = 0b0001
	SelectorFlagsAttribute SelectorFlags = 0b0010
	SelectorFlagsElement   SelectorFlags = 0b0100
	SelectorFlagsClass     SelectorFlags = 0b1000
)

// ParseSelectorToR3Selector converts a selector list into the flat array form the runtime
// matches against, e.g. `a.b:not([c])` becomes `[["a", 8, "b", 3, "c", ""]]`.
func ParseSelectorToR3Selector(selector string) ([]interface{}, error) {
	if selector == "" {
		return []interface{}{}, nil
	}
	selectors, err := ParseCssSelector(selector)
	if err != nil {
		return nil, err
	}
	result := make([]interface{}, len(selectors))
	for i, sel := range selectors {
		result[i] = toR3Selector(sel)
	}
	return result, nil
}

func classesOf(selector *CssSelector) []interface{} {
	if len(selector.ClassNames) == 0 {
		return nil
	}
	classes := []interface{}{int(SelectorFlagsClass)}
	for _, name := range selector.ClassNames {
		classes = append(classes, name)
	}
	return classes
}

func attrsOf(selector *CssSelector) []interface{} {
	attrs := make([]interface{}, len(selector.Attrs))
	for i, attr := range selector.Attrs {
		attrs[i] = attr
	}
	return attrs
}

func toR3Selector(selector *CssSelector) []interface{} {
	elementName := selector.Element
	if elementName == "*" {
		elementName = ""
	}
	result := []interface{}{elementName}
	result = append(result, attrsOf(selector)...)
	result = append(result, classesOf(selector)...)
	for _, notSelector := range selector.NotSelectors {
		result = append(result, toNegativeR3Selector(notSelector)...)
	}
	return result
}

func toNegativeR3Selector(selector *CssSelector) []interface{} {
	switch {
	case selector.Element != "":
		result := []interface{}{int(SelectorFlagsNot | SelectorFlagsElement), selector.Element}
		result = append(result, attrsOf(selector)...)
		return append(result, classesOf(selector)...)
	case len(selector.Attrs) > 0:
		result := []interface{}{int(SelectorFlagsNot | SelectorFlagsAttribute)}
		result = append(result, attrsOf(selector)...)
		return append(result, classesOf(selector)...)
	case len(selector.ClassNames) > 0:
		result := []interface{}{int(SelectorFlagsNot | SelectorFlagsClass)}
		for _, name := range selector.ClassNames {
			result = append(result, name)
		}
		return result
	}
	return nil
}
