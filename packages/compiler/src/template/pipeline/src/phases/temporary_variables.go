package phases

import (
	"fmt"
	"slices"

	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateTemporaryVariables names the temporaries linked by AssignTemporaryExpr and
// ReadTemporaryExpr, and declares them at the start of their block. Names are scoped to one op
// and reused once a temporary has been read for the last time.
func GenerateTemporaryVariables(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		unit.GetCreate().Prepend(generateTemporaries(unit.GetCreate()))
		unit.GetUpdate().Prepend(generateTemporaries(unit.GetUpdate()))
	}
}

func generateTemporaries(ops *ir.OpList) []ir.Op {
	var declarations []ir.Op
	for opCount, op := range ops.All() {
		finalReads := make(map[ir.XrefId]*ir.ReadTemporaryExpr)
		ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags ir.VisitorContextFlag) {
			if flags&ir.VisitorContextFlagInChildOperation != 0 {
				return
			}
			if read, ok := expr.(*ir.ReadTemporaryExpr); ok {
				finalReads[read.Xref] = read
			}
		})

		count := 0
		defs := make(map[ir.XrefId]string)
		var names []string
		ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags ir.VisitorContextFlag) {
			if flags&ir.VisitorContextFlagInChildOperation != 0 {
				return
			}
			switch e := expr.(type) {
			case *ir.AssignTemporaryExpr:
				if _, ok := defs[e.Xref]; !ok {
					name := fmt.Sprintf("tmp_%d_%d", opCount, count)
					count++
					defs[e.Xref] = name
					if !slices.Contains(names, name) {
						names = append(names, name)
					}
				}
				e.Name = temporaryName(defs, e.Xref)
			case *ir.ReadTemporaryExpr:
				if finalReads[e.Xref] == e {
					count--
				}
				e.Name = temporaryName(defs, e.Xref)
			}
		})

		for _, name := range names {
			declarations = append(declarations, ir.NewStatementOp(output.NewDeclareVarStmt(name, nil, output.StmtModifierNone, nil)))
		}

		switch o := op.(type) {
		case *ir.ListenerOp, *ir.TwoWayListenerOp:
			handlerOps := listenerHandlerOps(o)
			handlerOps.Prepend(generateTemporaries(handlerOps))
		case *ir.RepeaterCreateOp:
			if o.TrackByOps != nil {
				o.TrackByOps.Prepend(generateTemporaries(o.TrackByOps))
			}
		}
	}
	return declarations
}

func temporaryName(defs map[ir.XrefId]string, xref ir.XrefId) string {
	name, ok := defs[xref]
	if !ok {
		ir.Assertf("found temporary xref %d with unassigned name", xref)
	}
	return name
}
