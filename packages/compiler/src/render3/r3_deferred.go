package render3

import (
	"ngc-ir/packages/compiler/src/expression_parser"
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/util"
)

// DeferredTrigger is a trigger of a `@defer` block
type DeferredTrigger interface {
	GetSourceSpan() *util.ParseSourceSpan
}

// BoundDeferredTrigger is `when cond`
type BoundDeferredTrigger struct {
	Value      expression_parser.AST
	SourceSpan *util.ParseSourceSpan
}

func (t *BoundDeferredTrigger) GetSourceSpan() *util.ParseSourceSpan { return t.SourceSpan }

// NeverDeferredTrigger is `hydrate never`
type NeverDeferredTrigger struct{ SourceSpan *util.ParseSourceSpan }

func (t *NeverDeferredTrigger) GetSourceSpan() *util.ParseSourceSpan { return t.SourceSpan }

// IdleDeferredTrigger is `on idle`
type IdleDeferredTrigger struct{ SourceSpan *util.ParseSourceSpan }

func (t *IdleDeferredTrigger) GetSourceSpan() *util.ParseSourceSpan { return t.SourceSpan }

// ImmediateDeferredTrigger is `on immediate`
type ImmediateDeferredTrigger struct{ SourceSpan *util.ParseSourceSpan }

func (t *ImmediateDeferredTrigger) GetSourceSpan() *util.ParseSourceSpan { return t.SourceSpan }

// TimerDeferredTrigger is `on timer(500ms)`
type TimerDeferredTrigger struct {
	Delay      int
	SourceSpan *util.ParseSourceSpan
}

func (t *TimerDeferredTrigger) GetSourceSpan() *util.ParseSourceSpan { return t.SourceSpan }

// HoverDeferredTrigger is `on hover(ref)`. An empty Reference targets the placeholder.
type HoverDeferredTrigger struct {
	Reference  string
	SourceSpan *util.ParseSourceSpan
}

func (t *HoverDeferredTrigger) GetSourceSpan() *util.ParseSourceSpan { return t.SourceSpan }

// InteractionDeferredTrigger is `on interaction(ref)`
type InteractionDeferredTrigger struct {
	Reference  string
	SourceSpan *util.ParseSourceSpan
}

func (t *InteractionDeferredTrigger) GetSourceSpan() *util.ParseSourceSpan { return t.SourceSpan }

// ViewportDeferredTrigger is `on viewport(ref)`
type ViewportDeferredTrigger struct {
	Reference  string
	SourceSpan *util.ParseSourceSpan
}

func (t *ViewportDeferredTrigger) GetSourceSpan() *util.ParseSourceSpan { return t.SourceSpan }

// DeferredBlockTriggers is the set of triggers of one modifier (plain, prefetch or hydrate)
type DeferredBlockTriggers struct {
	When        *BoundDeferredTrigger
	Idle        *IdleDeferredTrigger
	Immediate   *ImmediateDeferredTrigger
	Hover       *HoverDeferredTrigger
	Timer       *TimerDeferredTrigger
	Interaction *InteractionDeferredTrigger
	Viewport    *ViewportDeferredTrigger
	Never       *NeverDeferredTrigger
}

// DeferredBlockPlaceholder is `@placeholder (minimum 500ms)`
type DeferredBlockPlaceholder struct {
	Children    []Node
	MinimumTime *int
	I18n        i18n.I18nMeta
	SourceSpan  *util.ParseSourceSpan
}

func (b *DeferredBlockPlaceholder) GetSourceSpan() *util.ParseSourceSpan { return b.SourceSpan }

// DeferredBlockLoading is `@loading (after 100ms; minimum 1s)`
type DeferredBlockLoading struct {
	Children    []Node
	AfterTime   *int
	MinimumTime *int
	I18n        i18n.I18nMeta
	SourceSpan  *util.ParseSourceSpan
}

func (b *DeferredBlockLoading) GetSourceSpan() *util.ParseSourceSpan { return b.SourceSpan }

// DeferredBlockError is `@error`
type DeferredBlockError struct {
	Children   []Node
	I18n       i18n.I18nMeta
	SourceSpan *util.ParseSourceSpan
}

func (b *DeferredBlockError) GetSourceSpan() *util.ParseSourceSpan { return b.SourceSpan }

// DeferredBlock is a `@defer` block with its secondary blocks
type DeferredBlock struct {
	Children         []Node
	Triggers         DeferredBlockTriggers
	PrefetchTriggers DeferredBlockTriggers
	HydrateTriggers  DeferredBlockTriggers
	Placeholder      *DeferredBlockPlaceholder
	Loading          *DeferredBlockLoading
	Error            *DeferredBlockError
	I18n             i18n.I18nMeta
	SourceSpan       *util.ParseSourceSpan
}

func (b *DeferredBlock) GetSourceSpan() *util.ParseSourceSpan { return b.SourceSpan }
