package render3

import (
	"ngc-ir/packages/compiler/src/core"
	"ngc-ir/packages/compiler/src/expression_parser"
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/util"
)

// Node is a node of a bound template
type Node interface {
	GetSourceSpan() *util.ParseSourceSpan
}

// Comment is an HTML comment. Comments produce no instructions.
type Comment struct {
	Value      string
	SourceSpan *util.ParseSourceSpan
}

func (n *Comment) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// Text is static text
type Text struct {
	Value      string
	SourceSpan *util.ParseSourceSpan
}

func (n *Text) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// BoundText is text containing interpolations. Value is an *expression_parser.Interpolation.
type BoundText struct {
	Value      expression_parser.AST
	SourceSpan *util.ParseSourceSpan
	I18n       i18n.I18nMeta
}

func (n *BoundText) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// TextAttribute is a static attribute such as `class="a"`
type TextAttribute struct {
	Name       string
	Value      string
	SourceSpan *util.ParseSourceSpan
	ValueSpan  *util.ParseSourceSpan
	I18n       i18n.I18nMeta
}

func (n *TextAttribute) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// BoundAttribute is a property, attribute, class, style or two-way binding
type BoundAttribute struct {
	Name            string
	Type            expression_parser.BindingType
	SecurityContext core.SecurityContext
	Value           expression_parser.AST
	Unit            string
	SourceSpan      *util.ParseSourceSpan
	KeySpan         *util.ParseSourceSpan
	I18n            i18n.I18nMeta
}

func (n *BoundAttribute) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// BoundEvent is an event binding. Target is "window", "document", "body" or empty.
type BoundEvent struct {
	Name        string
	Type        expression_parser.ParsedEventType
	Handler     expression_parser.AST
	Target      string
	SourceSpan  *util.ParseSourceSpan
	HandlerSpan *util.ParseSourceSpan
}

func (n *BoundEvent) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// Reference is a local reference `#name="exportAs"`
type Reference struct {
	Name       string
	Value      string
	SourceSpan *util.ParseSourceSpan
}

func (n *Reference) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// Variable is a template variable `let-name="value"`
type Variable struct {
	Name       string
	Value      string
	SourceSpan *util.ParseSourceSpan
}

func (n *Variable) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// Element is a regular DOM element. Names of namespaced elements carry the
// `:svg:`/`:math:` prefix.
type Element struct {
	Name            string
	Attributes      []*TextAttribute
	Inputs          []*BoundAttribute
	Outputs         []*BoundEvent
	Children        []Node
	References      []*Reference
	I18n            i18n.I18nMeta
	SourceSpan      *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
}

func (n *Element) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// Template is an `<ng-template>` or an element carrying a structural directive. TagName is
// "ng-template" for explicit templates and the host tag for structural ones. TemplateAttrs
// holds the *TextAttribute and *BoundAttribute entries of a structural directive.
type Template struct {
	TagName         string
	Attributes      []*TextAttribute
	Inputs          []*BoundAttribute
	Outputs         []*BoundEvent
	TemplateAttrs   []Node
	Children        []Node
	References      []*Reference
	Variables       []*Variable
	I18n            i18n.I18nMeta
	SourceSpan      *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
}

func (n *Template) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// Content is an `<ng-content>` projection slot. Children are the fallback content.
type Content struct {
	Selector   string
	Attributes []*TextAttribute
	Children   []Node
	I18n       i18n.I18nMeta
	SourceSpan *util.ParseSourceSpan
}

func (n *Content) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// IcuEntry is a named ICU variable or placeholder. Node is *BoundText or *Text.
type IcuEntry struct {
	Name string
	Node Node
}

// Icu is an ICU expression inside a template
type Icu struct {
	Vars         []IcuEntry
	Placeholders []IcuEntry
	I18n         i18n.I18nMeta
	SourceSpan   *util.ParseSourceSpan
}

func (n *Icu) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// LetDeclaration is `@let name = value;`
type LetDeclaration struct {
	Name       string
	Value      expression_parser.AST
	SourceSpan *util.ParseSourceSpan
}

func (n *LetDeclaration) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// IfBlockBranch is one `@if`/`@else if`/`@else` branch. Expression is nil for `@else`.
type IfBlockBranch struct {
	Expression      expression_parser.AST
	Children        []Node
	ExpressionAlias *Variable
	I18n            i18n.I18nMeta
	SourceSpan      *util.ParseSourceSpan
}

func (n *IfBlockBranch) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// IfBlock is an `@if` chain
type IfBlock struct {
	Branches   []*IfBlockBranch
	SourceSpan *util.ParseSourceSpan
}

func (n *IfBlock) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// SwitchBlockCase is one `@case`. Expression is nil for `@default`.
type SwitchBlockCase struct {
	Expression expression_parser.AST
	Children   []Node
	I18n       i18n.I18nMeta
	SourceSpan *util.ParseSourceSpan
}

func (n *SwitchBlockCase) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// SwitchBlock is a `@switch` block
type SwitchBlock struct {
	Expression expression_parser.AST
	Cases      []*SwitchBlockCase
	SourceSpan *util.ParseSourceSpan
}

func (n *SwitchBlock) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// ForLoopBlockEmpty is the `@empty` part of a `@for` block
type ForLoopBlockEmpty struct {
	Children   []Node
	I18n       i18n.I18nMeta
	SourceSpan *util.ParseSourceSpan
}

func (n *ForLoopBlockEmpty) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }

// ForLoopBlock is `@for (item of items; track item.id)`. ContextVariables are the
// `$index`-style variables, possibly aliased.
type ForLoopBlock struct {
	Item             *Variable
	Expression       expression_parser.AST
	TrackBy          expression_parser.AST
	ContextVariables []*Variable
	Children         []Node
	Empty            *ForLoopBlockEmpty
	I18n             i18n.I18nMeta
	SourceSpan       *util.ParseSourceSpan
}

func (n *ForLoopBlock) GetSourceSpan() *util.ParseSourceSpan { return n.SourceSpan }
