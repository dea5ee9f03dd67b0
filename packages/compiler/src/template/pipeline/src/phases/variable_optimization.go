package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// fence describes what an op or expression does to the view context, limiting how variables
// may be moved across it.
type fence int

const (
	fenceNone             fence = 0b000
	fenceViewContextRead  fence = 0b001
	fenceViewContextWrite fence = 0b010
	fenceSideEffectful    fence = 0b100
)

// opInfo records the variables an op reads and its fences
type opInfo struct {
	variablesUsed map[ir.XrefId]bool
	fences        fence
}

// OptimizeVariables removes unused variables, keeping side-effectful initializers as statements,
// and inlines variables that are read exactly once where no fence forbids it. Variables flagged
// AlwaysInline are inlined at every use.
func OptimizeVariables(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		lists := []*ir.OpList{unit.GetCreate(), unit.GetUpdate()}
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			switch o := op.(type) {
			case *ir.ListenerOp, *ir.TwoWayListenerOp:
				lists = append(lists, listenerHandlerOps(o))
			case *ir.RepeaterCreateOp:
				if o.TrackByOps != nil {
					lists = append(lists, o.TrackByOps)
				}
			}
		}
		for _, ops := range lists {
			inlineAlwaysInlineVariables(ops)
		}
		for _, ops := range lists {
			optimizeVariablesInOpList(ops, job.GetCompatibility())
		}
	}
}

func inlineAlwaysInlineVariables(ops *ir.OpList) {
	vars := make(map[ir.XrefId]*ir.VariableOp)
	var order []*ir.VariableOp
	for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		if variable, ok := op.(*ir.VariableOp); ok && variable.Flags&ir.VariableFlagsAlwaysInline != 0 {
			ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
				if fencesForIrExpression(expr) != fenceNone {
					ir.Assertf("a context-sensitive variable was marked AlwaysInline")
				}
			})
			vars[variable.Xref] = variable
			order = append(order, variable)
		}
		ir.TransformExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
			if read, ok := expr.(*ir.ReadVariableExpr); ok {
				if variable, ok := vars[read.Xref]; ok {
					// Cloned since it may be inlined in several places.
					return variable.Initializer.Clone()
				}
			}
			return expr
		}, ir.VisitorContextFlagNone)
	}
	for _, variable := range order {
		ops.Remove(variable)
	}
}

func optimizeVariablesInOpList(ops *ir.OpList, compatibility ir.CompatibilityMode) {
	varDecls := make(map[ir.XrefId]*ir.VariableOp)
	var declOrder []ir.XrefId
	varUsages := make(map[ir.XrefId]int)
	// Variables read inside nested functions, which cannot be inlined.
	varRemoteUsages := make(map[ir.XrefId]bool)
	infos := make(map[ir.Op]*opInfo)

	for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		if variable, ok := op.(*ir.VariableOp); ok {
			if _, seen := varDecls[variable.Xref]; seen {
				ir.Assertf("should not see two declarations of the same variable: %d", variable.Xref)
			}
			varDecls[variable.Xref] = variable
			declOrder = append(declOrder, variable.Xref)
			varUsages[variable.Xref] = 0
		}
		infos[op] = collectOpInfo(op)
		countVariableUsages(op, varUsages, varRemoteUsages)
	}

	// Remove unused variables. Walking backwards sees every read before its declaration, so
	// removing one variable can make earlier ones unused in the same pass.
	contextIsUsed := false
	for _, op := range ops.Reversed() {
		info := infos[op]
		if variable, ok := op.(*ir.VariableOp); ok && varUsages[variable.Xref] == 0 {
			if (contextIsUsed && info.fences&fenceViewContextWrite != 0) || info.fences&fenceSideEffectful != 0 {
				// A later op depends on the context write, or the initializer is side-effectful.
				stmt := ir.NewStatementOp(output.NewExpressionStatement(variable.Initializer, nil))
				infos[stmt] = info
				ops.Replace(variable, stmt)
			} else {
				uncountVariableUsages(variable, varUsages)
				ops.Remove(variable)
			}
			delete(infos, op)
			delete(varDecls, variable.Xref)
			delete(varUsages, variable.Xref)
			continue
		}
		if info.fences&fenceViewContextRead != 0 {
			contextIsUsed = true
		}
	}

	var toInline []ir.XrefId
	for _, id := range declOrder {
		count, ok := varUsages[id]
		if !ok || count != 1 || varRemoteUsages[id] {
			continue
		}
		if varDecls[id].Flags&ir.VariableFlagsAlwaysInline != 0 {
			continue
		}
		toInline = append(toInline, id)
	}

	for len(toInline) > 0 {
		candidate := toInline[len(toInline)-1]
		toInline = toInline[:len(toInline)-1]

		decl := varDecls[candidate]
		declInfo := infos[decl]

		// Find the single use. A failed attempt can never succeed later.
		for target := decl.Next(); target.GetKind() != ir.OpKindListEnd; target = target.Next() {
			info := infos[target]
			if info.variablesUsed[candidate] {
				if compatibility == ir.CompatibilityModeTemplateDefinitionBuilder && !allowConservativeInlining(decl, target) {
					break
				}
				if tryInlineVariableInitializer(candidate, decl.Initializer, target, declInfo.fences) {
					delete(info.variablesUsed, candidate)
					for id := range declInfo.variablesUsed {
						info.variablesUsed[id] = true
					}
					info.fences |= declInfo.fences

					delete(varDecls, candidate)
					delete(varUsages, candidate)
					delete(infos, decl)
					ops.Remove(decl)
				}
				break
			}
			if !safeToInlinePastFences(info.fences, declInfo.fences) {
				break
			}
		}
	}
}

func fencesForIrExpression(expr output.OutputExpression) fence {
	switch expr.(type) {
	case *ir.NextContextExpr:
		return fenceViewContextRead | fenceViewContextWrite
	case *ir.RestoreViewExpr:
		return fenceViewContextRead | fenceViewContextWrite | fenceSideEffectful
	case *ir.StoreLetExpr:
		return fenceSideEffectful
	case *ir.ReferenceExpr, *ir.ContextLetReferenceExpr:
		return fenceViewContextRead
	}
	return fenceNone
}

func collectOpInfo(op ir.Op) *opInfo {
	info := &opInfo{variablesUsed: make(map[ir.XrefId]bool)}
	ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
		if read, ok := expr.(*ir.ReadVariableExpr); ok {
			info.variablesUsed[read.Xref] = true
			return
		}
		info.fences |= fencesForIrExpression(expr)
	})
	return info
}

func countVariableUsages(op ir.Op, varUsages map[ir.XrefId]int, varRemoteUsages map[ir.XrefId]bool) {
	ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags ir.VisitorContextFlag) {
		read, ok := expr.(*ir.ReadVariableExpr)
		if !ok {
			return
		}
		count, ok := varUsages[read.Xref]
		if !ok {
			// Declared outside this list.
			return
		}
		varUsages[read.Xref] = count + 1
		if flags&ir.VisitorContextFlagInChildOperation != 0 {
			varRemoteUsages[read.Xref] = true
		}
	})
}

func uncountVariableUsages(op ir.Op, varUsages map[ir.XrefId]int) {
	ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
		read, ok := expr.(*ir.ReadVariableExpr)
		if !ok {
			return
		}
		count, ok := varUsages[read.Xref]
		if !ok {
			return
		}
		if count == 0 {
			ir.Assertf("inaccurate variable count: %d - found another read but count is already 0", read.Xref)
		}
		varUsages[read.Xref] = count - 1
	})
}

// safeToInlinePastFences reports whether a declaration with declFences may move past an op with
// fences. Context reads may not cross context writes and vice versa.
func safeToInlinePastFences(fences, declFences fence) bool {
	if fences&fenceViewContextWrite != 0 {
		return declFences&fenceViewContextRead == 0
	} else if fences&fenceViewContextRead != 0 {
		return declFences&fenceViewContextWrite == 0
	}
	return true
}

func tryInlineVariableInitializer(id ir.XrefId, initializer output.OutputExpression, target ir.Op, declFences fence) bool {
	inlined := false
	allowed := true
	ir.TransformExpressionsInOp(target, func(expr output.OutputExpression, flags ir.VisitorContextFlag) output.OutputExpression {
		if !ir.IsIrExpression(expr) || inlined || !allowed {
			return expr
		}
		if flags&ir.VisitorContextFlagInChildOperation != 0 && declFences&fenceViewContextRead != 0 {
			// Context-sensitive initializers stay out of nested functions.
			return expr
		}
		if read, ok := expr.(*ir.ReadVariableExpr); ok {
			if read.Xref == id {
				inlined = true
				return initializer
			}
			return expr
		}
		allowed = safeToInlinePastFences(fencesForIrExpression(expr), declFences)
		return expr
	}, ir.VisitorContextFlagNone)
	return inlined
}

// allowConservativeInlining limits inlining in legacy mode to what the legacy output inlines.
func allowConservativeInlining(decl *ir.VariableOp, target ir.Op) bool {
	switch decl.Variable.GetKind() {
	case ir.SemanticVariableKindIdentifier:
		// Aliases of the context in control flow blocks are inlined.
		read, ok := decl.Initializer.(*output.ReadVarExpr)
		return ok && read.Name == "ctx"
	case ir.SemanticVariableKindContext:
		return target.GetKind() == ir.OpKindVariable
	}
	return true
}
