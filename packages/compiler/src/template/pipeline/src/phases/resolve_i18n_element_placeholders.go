package phases

import (
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ResolveI18nElementPlaceholders records the slots of elements and templates that stand for
// placeholders in i18n messages.
func ResolveI18nElementPlaceholders(job *compilation.ComponentCompilationJob) {
	r := &elementPlaceholderResolver{
		job:      job,
		contexts: make(map[ir.XrefId]*ir.I18nContextOp),
		elements: make(map[ir.XrefId]*ir.ElementStartOp),
	}
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			switch o := op.(type) {
			case *ir.I18nContextOp:
				r.contexts[o.Xref] = o
			case *ir.ElementStartOp:
				r.elements[o.Xref] = o
			}
		}
	}
	r.resolveView(job.Root, nil)
}

type elementPlaceholderResolver struct {
	job      *compilation.ComponentCompilationJob
	contexts map[ir.XrefId]*ir.I18nContextOp
	elements map[ir.XrefId]*ir.ElementStartOp
}

type i18nCursor struct {
	block   *ir.I18nStartOp
	context *ir.I18nContextOp
}

// resolveView walks a view. pending is the structural directive template whose single child
// element is being visited.
func (r *elementPlaceholderResolver) resolveView(view *compilation.ViewCompilationUnit, pending *ir.TemplateOp) {
	var cur *i18nCursor
	pendingCloses := make(map[ir.XrefId]*ir.TemplateOp)

	inBlock := func() *i18nCursor {
		if cur == nil {
			ir.Assertf("i18n tag placeholder should only occur inside an i18n block")
		}
		return cur
	}

	for op := view.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		switch o := op.(type) {
		case *ir.I18nStartOp:
			if o.Context == ir.NoXref {
				ir.Assertf("could not find i18n context for i18n op")
			}
			cur = &i18nCursor{block: o, context: r.contexts[o.Context]}
		case *ir.I18nEndOp:
			cur = nil
		case *ir.ElementStartOp:
			if o.I18nPlaceholder == nil {
				continue
			}
			c := inBlock()
			recordElementStart(o.Handle, o.I18nPlaceholder, c, pending)
			if pending != nil && o.I18nPlaceholder.CloseName != "" {
				pendingCloses[o.Xref] = pending
			}
			pending = nil
		case *ir.ElementEndOp:
			start, ok := r.elements[o.Xref]
			if !ok || start.I18nPlaceholder == nil {
				continue
			}
			recordElementClose(start.Handle, start.I18nPlaceholder, inBlock(), pendingCloses[o.Xref])
			delete(pendingCloses, o.Xref)
		case *ir.ProjectionOp:
			if o.I18nPlaceholder != nil {
				c := inBlock()
				recordElementStart(o.Handle, o.I18nPlaceholder, c, pending)
				recordElementClose(o.Handle, o.I18nPlaceholder, c, pending)
				pending = nil
			}
			if o.FallbackView != ir.NoXref {
				fallback := r.job.View(o.FallbackView)
				if o.FallbackViewI18nPlaceholder == nil {
					r.resolveView(fallback, nil)
				} else {
					r.resolveTemplate(fallback, o.Handle.Slot(), o.FallbackViewI18nPlaceholder.StartName, o.FallbackViewI18nPlaceholder.CloseName, inBlock(), pending)
					pending = nil
				}
			}
		case *ir.TemplateOp:
			embedded := r.job.View(o.Xref)
			if o.I18nPlaceholder == nil {
				r.resolveView(embedded, nil)
				continue
			}
			c := inBlock()
			if o.TemplateKind == ir.TemplateKindStructural {
				r.resolveView(embedded, o)
				continue
			}
			start, closing := placeholderNames(o.I18nPlaceholder)
			r.resolveTemplate(embedded, o.Handle.Slot(), start, closing, c, pending)
			pending = nil
		case *ir.RepeaterCreateOp:
			if pending != nil {
				ir.Assertf("unexpected structural directive associated with @for block")
			}
			// The item view lives one slot after the repeater, the empty view two.
			forView := r.job.View(o.Xref)
			if o.I18nPlaceholder == nil {
				r.resolveView(forView, nil)
			} else {
				r.resolveTemplate(forView, o.Handle.Slot()+1, o.I18nPlaceholder.StartName, o.I18nPlaceholder.CloseName, inBlock(), nil)
			}
			if o.EmptyView != ir.NoXref {
				emptyView := r.job.View(o.EmptyView)
				if o.EmptyI18nPlaceholder == nil {
					r.resolveView(emptyView, nil)
				} else {
					r.resolveTemplate(emptyView, o.Handle.Slot()+2, o.EmptyI18nPlaceholder.StartName, o.EmptyI18nPlaceholder.CloseName, inBlock(), nil)
				}
			}
		}
	}
}

// resolveTemplate records the open and close placeholders of an embedded view around its
// own resolution.
func (r *elementPlaceholderResolver) resolveTemplate(view *compilation.ViewCompilationUnit, slot int, startName, closeName string, c *i18nCursor, structural *ir.TemplateOp) {
	subTemplateIndex := subTemplateIndexForTemplateTag(c.block, view)

	flags := ir.I18nParamValueFlagsTemplateTag | ir.I18nParamValueFlagsOpenTag
	if closeName == "" {
		flags |= ir.I18nParamValueFlagsCloseTag
	}
	if structural != nil {
		addI18nParam(c.context.Params, startName, structural.Handle.Slot(), c.block.SubTemplateIndex, flags)
	}
	addI18nParam(c.context.Params, startName, slot, subTemplateIndex, flags)

	r.resolveView(view, nil)

	if closeName == "" {
		return
	}
	flags = ir.I18nParamValueFlagsTemplateTag | ir.I18nParamValueFlagsCloseTag
	addI18nParam(c.context.Params, closeName, slot, subTemplateIndex, flags)
	if structural != nil {
		addI18nParam(c.context.Params, closeName, structural.Handle.Slot(), c.block.SubTemplateIndex, flags)
	}
}

func recordElementStart(handle *ir.SlotHandle, placeholder *i18n.TagPlaceholder, c *i18nCursor, structural *ir.TemplateOp) {
	flags := ir.I18nParamValueFlagsElementTag | ir.I18nParamValueFlagsOpenTag
	var value interface{} = handle.Slot()
	if structural != nil {
		flags |= ir.I18nParamValueFlagsTemplateTag
		value = ir.I18nElementTemplateValue{Element: handle.Slot(), Template: structural.Handle.Slot()}
	}
	if placeholder.CloseName == "" {
		flags |= ir.I18nParamValueFlagsCloseTag
	}
	addI18nParam(c.context.Params, placeholder.StartName, value, c.block.SubTemplateIndex, flags)
}

func recordElementClose(handle *ir.SlotHandle, placeholder *i18n.TagPlaceholder, c *i18nCursor, structural *ir.TemplateOp) {
	if placeholder.CloseName == "" {
		return
	}
	flags := ir.I18nParamValueFlagsElementTag | ir.I18nParamValueFlagsCloseTag
	var value interface{} = handle.Slot()
	if structural != nil {
		flags |= ir.I18nParamValueFlagsTemplateTag
		value = ir.I18nElementTemplateValue{Element: handle.Slot(), Template: structural.Handle.Slot()}
	}
	addI18nParam(c.context.Params, placeholder.CloseName, value, c.block.SubTemplateIndex, flags)
}

// subTemplateIndexForTemplateTag is the sub-template index of the i18n block opened by view, or
// that of the enclosing block when the view opens none.
func subTemplateIndexForTemplateTag(block *ir.I18nStartOp, view *compilation.ViewCompilationUnit) *int {
	for op := view.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		if start, ok := op.(*ir.I18nStartOp); ok {
			return start.SubTemplateIndex
		}
	}
	return block.SubTemplateIndex
}

func placeholderNames(node i18n.Node) (string, string) {
	switch p := node.(type) {
	case *i18n.TagPlaceholder:
		return p.StartName, p.CloseName
	case *i18n.BlockPlaceholder:
		return p.StartName, p.CloseName
	}
	ir.Assertf("unexpected i18n placeholder %T on template", node)
	return "", ""
}

func addI18nParam(params *ir.I18nParamMap, placeholder string, value interface{}, subTemplateIndex *int, flags ir.I18nParamValueFlags) {
	params.Add(placeholder, ir.I18nParamValue{Value: value, SubTemplateIndex: subTemplateIndex, Flags: flags})
}
