package phases

import (
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// CreateI18nContexts creates one helper context op per i18n block (including generate descending blocks).
// Also, if an ICU exists inside an i18n block that also contains other localizable content (such as
// string), create an additional helper context op for the ICU.
// These context ops are later used for generating i18n messages. (Although we generate at least one
// context op per nested view, we will collect them up the tree later, to generate a top-level
// message.)
func CreateI18nContexts(job compilation.CompilationJob) {
	// Create i18n context ops for i18n attrs.
	attrContextByMessage := make(map[*i18n.Message]ir.XrefId)
	for _, unit := range job.GetUnits() {
		for _, op := range unit.Ops() {
			var message *i18n.Message
			var context *ir.XrefId
			switch o := op.(type) {
			case *ir.BindingOp:
				message, context = o.I18nMessage, &o.I18nContext
			case *ir.PropertyOp:
				message, context = o.I18nMessage, &o.I18nContext
			case *ir.AttributeOp:
				message, context = o.I18nMessage, &o.I18nContext
			case *ir.ExtractedAttributeOp:
				message, context = o.I18nMessage, &o.I18nContext
			default:
				continue
			}
			if message == nil {
				continue
			}
			if _, exists := attrContextByMessage[message]; !exists {
				i18nContext := ir.NewI18nContextOp(ir.I18nContextKindAttr, job.AllocateXrefId(), ir.NoXref, message, nil)
				unit.GetCreate().Push(i18nContext)
				attrContextByMessage[message] = i18nContext.Xref
			}
			*context = attrContextByMessage[message]
		}
	}

	// Create i18n context ops for root i18n blocks.
	blockContextByI18nBlock := make(map[ir.XrefId]*ir.I18nContextOp)
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			start, ok := op.(*ir.I18nStartOp)
			if !ok || start.Xref != start.Root {
				continue
			}
			contextOp := ir.NewI18nContextOp(ir.I18nContextKindRootI18n, job.AllocateXrefId(), start.Xref, start.Message, nil)
			unit.GetCreate().Push(contextOp)
			start.Context = contextOp.Xref
			blockContextByI18nBlock[start.Xref] = contextOp
		}
	}

	// Assign i18n contexts for child i18n blocks. These don't need their own conext, instead they
	// should inherit from their root i18n block.
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			start, ok := op.(*ir.I18nStartOp)
			if !ok || start.Xref == start.Root {
				continue
			}
			rootContext, exists := blockContextByI18nBlock[start.Root]
			if !exists {
				ir.Assertf("root i18n block i18n context should have been created")
			}
			start.Context = rootContext.Xref
			blockContextByI18nBlock[start.Xref] = rootContext
		}
	}

	// Create or assign i18n contexts for ICUs.
	var currentI18nOp *ir.I18nStartOp
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			switch o := op.(type) {
			case *ir.I18nStartOp:
				currentI18nOp = o
			case *ir.I18nEndOp:
				currentI18nOp = nil
			case *ir.IcuStartOp:
				if currentI18nOp == nil {
					ir.Assertf("unexpected ICU outside of an i18n block")
				}
				if o.Message.ID != currentI18nOp.Message.ID {
					// This ICU is a sub-message inside its parent i18n block message. We need to give it
					// its own context.
					contextOp := ir.NewI18nContextOp(ir.I18nContextKindIcu, job.AllocateXrefId(), currentI18nOp.Root, o.Message, nil)
					unit.GetCreate().Push(contextOp)
					o.Context = contextOp.Xref
				} else {
					// This ICU is the only translatable content in its parent i18n block. We need to
					// convert it into a simple context.
					o.Context = currentI18nOp.Context
					blockContextByI18nBlock[currentI18nOp.Xref].ContextKind = ir.I18nContextKindIcu
				}
			}
		}
	}
}
