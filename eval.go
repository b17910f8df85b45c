package easymath

import (
	"fmt"
)

// EvalFunction is the evaluation closure of one node of the compiled
// expression tree. Arguments are evaluated lazily through CallParams,
// so conditional functions such as 'if' only compute the taken branch.
type EvalFunction func(par *CallParams) float64

type exprNode struct {
	args    []*exprNode
	evalFun EvalFunction
}

// CallParams gives an EvalFunction lazy access to the call arguments
// and carries the state of the enclosing evaluation.
type CallParams struct {
	args []*exprNode
	ctx  *evalContext
}

func (par *CallParams) Arity() int {
	return len(par.args)
}

func (par *CallParams) Arg(n int) float64 {
	return par.args[n].eval(par.ctx)
}

func (n *exprNode) eval(ctx *evalContext) float64 {
	return n.evalFun(&CallParams{args: n.args, ctx: ctx})
}

// MaxCallDepth limits nesting of user function calls. A recursive
// definition which does not terminate panics when the limit is reached
// and the panic surfaces as NaN through the fail-soft evaluation path.
const MaxCallDepth = 1000

// evalContext is the state of one top-level calculation. Every
// Calculate owns a fresh context, so concurrent evaluations on clones
// never share the call depth budget.
type evalContext struct {
	callDepth int
}

func (ctx *evalContext) enterCall() {
	ctx.callDepth++
	if ctx.callDepth > MaxCallDepth {
		panic(fmt.Errorf("user function call depth exceeds %d", MaxCallDepth))
	}
}

func (ctx *evalContext) leaveCall() {
	ctx.callDepth--
}
