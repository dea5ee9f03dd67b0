package phases

import (
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// PropagateI18nBlocks propagates i18n blocks down through child templates that act as
// placeholders in the root i18n message. Each such template gets its own i18n block, tied to
// the root block and numbered with a sub-template index.
func PropagateI18nBlocks(job *compilation.ComponentCompilationJob) {
	propagateI18nBlocksToTemplates(job, job.Root, 0)
}

// propagateI18nBlocksToTemplates walks the create list of a view, recursing into the views it
// declares, and returns the next free sub-template index.
func propagateI18nBlocksToTemplates(job *compilation.ComponentCompilationJob, unit *compilation.ViewCompilationUnit, subTemplateIndex int) int {
	var i18nBlock *ir.I18nStartOp
	for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		switch o := op.(type) {
		case *ir.I18nStartOp:
			o.SubTemplateIndex = nil
			if subTemplateIndex != 0 {
				index := subTemplateIndex
				o.SubTemplateIndex = &index
			}
			i18nBlock = o
		case *ir.I18nEndOp:
			// When we exit a root-level i18n block, reset the sub-template index counter.
			if i18nBlock != nil && i18nBlock.SubTemplateIndex == nil {
				subTemplateIndex = 0
			}
			i18nBlock = nil
		case *ir.TemplateOp:
			subTemplateIndex = propagateI18nBlocksForView(job, job.View(o.Xref), i18nBlock, o.I18nPlaceholder, subTemplateIndex)
		case *ir.RepeaterCreateOp:
			// Propagate i18n blocks to the @for template.
			subTemplateIndex = propagateI18nBlocksForView(job, job.View(o.Xref), i18nBlock, blockPlaceholderNode(o.I18nPlaceholder), subTemplateIndex)
			// Then if there's an @empty template, propagate the i18n blocks for it as well.
			if o.EmptyView != ir.NoXref {
				subTemplateIndex = propagateI18nBlocksForView(job, job.View(o.EmptyView), i18nBlock, blockPlaceholderNode(o.EmptyI18nPlaceholder), subTemplateIndex)
			}
		case *ir.ProjectionOp:
			if o.FallbackView != ir.NoXref {
				subTemplateIndex = propagateI18nBlocksForView(job, job.View(o.FallbackView), i18nBlock, blockPlaceholderNode(o.FallbackViewI18nPlaceholder), subTemplateIndex)
			}
		}
	}
	return subTemplateIndex
}

// blockPlaceholderNode keeps a nil placeholder a nil interface.
func blockPlaceholderNode(placeholder *i18n.BlockPlaceholder) i18n.Node {
	if placeholder == nil {
		return nil
	}
	return placeholder
}

// propagateI18nBlocksForView wraps a view in an i18n block when it is a placeholder of the
// enclosing message, then recurses into it.
func propagateI18nBlocksForView(job *compilation.ComponentCompilationJob, view *compilation.ViewCompilationUnit, i18nBlock *ir.I18nStartOp, i18nPlaceholder i18n.Node, subTemplateIndex int) int {
	// We found an <ng-template> inside an i18n block; increment the sub-template counter and
	// wrap the template's view in a child i18n block.
	if i18nPlaceholder != nil {
		if i18nBlock == nil {
			ir.Assertf("expected template with i18n placeholder to be in an i18n block")
		}
		subTemplateIndex++
		wrapTemplateWithI18n(job, view, i18nBlock)
	}

	// Continue traversing inside the template's view.
	return propagateI18nBlocksToTemplates(job, view, subTemplateIndex)
}

// wrapTemplateWithI18n wraps a template view with i18n start and end ops.
func wrapTemplateWithI18n(job *compilation.ComponentCompilationJob, unit *compilation.ViewCompilationUnit, parentI18n *ir.I18nStartOp) {
	// Only add i18n ops if they have not already been propagated to this template.
	if unit.GetCreate().Head().GetKind() == ir.OpKindI18nStart {
		return
	}
	id := job.AllocateXrefId()
	unit.GetCreate().Prepend([]ir.Op{ir.NewI18nStartOp(id, parentI18n.Message, parentI18n.Root, nil)})
	unit.GetCreate().Push(ir.NewI18nEndOp(id, nil))
}
