package ir

import (
	"fmt"
	"io"
)

type loopTarget struct {
	blockID int
	idxVar  int
}

// Dot writes the CFG as a GraphViz digraph. Branch then-edges are
// labelled 1, loop-body edges are red and labelled with the index
// variable.
func Dot(w io.Writer, cfg *CFG) {
	fmt.Fprintf(w, "digraph {\n")
	visited := map[*BasicBlock]bool{}
	worklist := []*BasicBlock{cfg.Entry}
	for len(worklist) > 0 {
		bb := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		visited[bb] = true

		var loops []loopTarget
		fmt.Fprintf(w, "  %d [shape=record,label=\"bb%d", bb.ID, bb.ID)
		for i := range bb.Insts {
			inst := &bb.Insts[i]
			switch inst.Kind {
			case IAssign:
				fmt.Fprintf(w, "\\nlv%d = %s", inst.LVar, inst.RHS)
			case ILoop:
				fmt.Fprintf(w, "\\nfor lv%d in %d", inst.IdxVar, inst.Length)
				worklist = append(worklist, inst.Body)
				loops = append(loops, loopTarget{blockID: inst.Body.ID, idxVar: inst.IdxVar})
			}
		}
		switch bb.Term {
		case TermGoto:
			fmt.Fprintf(w, "\"]\n")
			if !visited[bb.Target] {
				worklist = append(worklist, bb.Target)
			}
			fmt.Fprintf(w, "  %d->%d\n", bb.ID, bb.Target.ID)
		case TermBranch:
			fmt.Fprintf(w, "\\nbr %s\"]\n", bb.Cond)
			if !visited[bb.Then] {
				worklist = append(worklist, bb.Then)
			}
			fmt.Fprintf(w, "  %d->%d [label=\"1\"]\n", bb.ID, bb.Then.ID)
			if !visited[bb.Else] {
				worklist = append(worklist, bb.Else)
			}
			fmt.Fprintf(w, "  %d->%d\n", bb.ID, bb.Else.ID)
		case TermReturn:
			fmt.Fprintf(w, "\\nreturn %s\"]\n", bb.Ret)
		default:
			fmt.Fprintf(w, "\"]\n")
		}
		for _, target := range loops {
			fmt.Fprintf(w, "  %d->%d [color=red,label=\"lv%d\"]\n", bb.ID, target.blockID, target.idxVar)
		}
	}
	fmt.Fprintf(w, "}\n")
}
