package easymath

import (
	"math"
)

type funDescriptor struct {
	sym               string
	requiredNumParams int // -1 means variadic
	evalFun           EvalFunction
}

var theLibrary = make(map[string]*funDescriptor)

// builtin constants are resolved after the expression own constants,
// so a user constant may shadow them
var builtinConstants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func init() {
	embed("sin", 1, eval1(math.Sin))
	embed("cos", 1, eval1(math.Cos))
	embed("tan", 1, eval1(math.Tan))
	embed("asin", 1, eval1(math.Asin))
	embed("acos", 1, eval1(math.Acos))
	embed("atan", 1, eval1(math.Atan))
	embed("ln", 1, eval1(math.Log))
	embed("log2", 1, eval1(math.Log2))
	embed("log10", 1, eval1(math.Log10))
	embed("sqrt", 1, eval1(math.Sqrt))
	embed("exp", 1, eval1(math.Exp))
	embed("abs", 1, eval1(math.Abs))
	embed("floor", 1, eval1(math.Floor))
	embed("ceil", 1, eval1(math.Ceil))
	embed("round", 1, eval1(math.Round))
	embed("sgn", 1, evalSgn)

	embed("mod", 2, eval2(math.Mod))
	embed("atan2", 2, eval2(math.Atan2))

	// 'if' evaluates the taken branch only
	embed("if", 3, evalIf)

	// stateless varargs
	embed("min", -1, evalMin)
	embed("max", -1, evalMax)
	embed("avg", -1, evalAvg)
}

func embed(sym string, requiredNumParams int, evalFun EvalFunction) {
	if _, already := theLibrary[sym]; already {
		panic("repeating symbol '" + sym + "'")
	}
	theLibrary[sym] = &funDescriptor{
		sym:               sym,
		requiredNumParams: requiredNumParams,
		evalFun:           evalFun,
	}
}

func libraryFunction(sym string) (*funDescriptor, bool) {
	fd, found := theLibrary[sym]
	return fd, found
}

// isReservedName tells if the symbol is taken by the built-in library
// or by a built-in constant. Reserved names cannot name user functions
// declared in natural math language.
func isReservedName(sym string) bool {
	if _, found := theLibrary[sym]; found {
		return true
	}
	_, found := builtinConstants[sym]
	return found
}

func eval1(f func(float64) float64) EvalFunction {
	return func(par *CallParams) float64 {
		return f(par.Arg(0))
	}
}

func eval2(f func(float64, float64) float64) EvalFunction {
	return func(par *CallParams) float64 {
		return f(par.Arg(0), par.Arg(1))
	}
}

func evalSgn(par *CallParams) float64 {
	v := par.Arg(0)
	switch {
	case math.IsNaN(v):
		return math.NaN()
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func evalIf(par *CallParams) float64 {
	cond := par.Arg(0)
	if math.IsNaN(cond) {
		return math.NaN()
	}
	if cond != 0 {
		return par.Arg(1)
	}
	return par.Arg(2)
}

func evalMin(par *CallParams) float64 {
	ret := par.Arg(0)
	for i := 1; i < par.Arity(); i++ {
		ret = math.Min(ret, par.Arg(i))
	}
	return ret
}

func evalMax(par *CallParams) float64 {
	ret := par.Arg(0)
	for i := 1; i < par.Arity(); i++ {
		ret = math.Max(ret, par.Arg(i))
	}
	return ret
}

func evalAvg(par *CallParams) float64 {
	sum := 0.0
	for i := 0; i < par.Arity(); i++ {
		sum += par.Arg(i)
	}
	return sum / float64(par.Arity())
}
