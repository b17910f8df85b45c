package easymath

import (
	"math"
)

// Function is a named, parametrized expression which can be invoked by
// other expressions, by itself in recursive mode, or evaluated directly
// with supplied values: f(x,y) = sin(x)+cos(y).
//
// The function exclusively owns its body expression. ParametersNumber
// is derived state: the number of arguments of the body minus the
// number of recursive ones, re-computed after every argument-affecting
// mutation.
type Function struct {
	name             string
	description      string
	parametersNumber int
	expr             *Expression
}

// NewFunction creates a function from its name, body source and
// optional parameter names. Each name becomes a fresh ordinary argument
// of the body, in the order given.
func NewFunction(functionName, functionSource string, argumentNames ...string) *Function {
	ret := &Function{
		name: functionName,
		expr: NewExpression(functionSource),
	}
	ret.expr.SetDescription(functionName)
	for _, name := range argumentNames {
		ret.expr.AddArguments(NewArgument(name))
	}
	ret.refreshParametersNumber()
	return ret
}

// NewFunctionWithArguments creates a function from pre-built argument
// handles, which may already be recursive. The handles are appended in
// order, preserving their kind.
func NewFunctionWithArguments(functionName, functionSource string, arguments ...*Argument) *Function {
	ret := &Function{
		name: functionName,
		expr: NewExpression(functionSource),
	}
	ret.expr.SetDescription(functionName)
	ret.expr.AddArguments(arguments...)
	ret.refreshParametersNumber()
	return ret
}

// ParseFunction creates a function from a definition in natural math
// language, for instance "f(x,y) = sin(x) + cos(y)". On a malformed
// definition the returned function carries a definition error: its
// syntax check fails with a descriptive message, its parameter count is
// 0 and any calculation yields NaN. It never fails hard.
func ParseFunction(definitionString string) *Function {
	ret := &Function{}
	heb := parseHeadEqBody(definitionString)

	if !heb.definitionError {
		ret.name = heb.headTokens[0].str
		ret.expr = NewExpression(heb.bodyStr)
		ret.expr.SetDescription(heb.headStr)
		for _, t := range heb.headTokens[1:] {
			if t.isParserSymbol() {
				continue
			}
			ret.expr.AddArguments(NewArgument(t.str))
		}
		ret.refreshParametersNumber()
	}

	if heb.definitionError || ret.parametersNumber <= 0 {
		if ret.expr == nil {
			ret.expr = NewExpression("")
		}
		ret.parametersNumber = 0
		ret.expr.SetDescription(definitionString)
		msg := "definition error in user function (missing name, missing parameters or malformed definition)"
		if heb.errorMessage != "" {
			msg += ": " + heb.errorMessage
		}
		ret.expr.SetSyntaxStatus(SyntaxError, msg)
	}
	return ret
}

// refreshParametersNumber re-derives the callable parameter count.
// Every argument-affecting mutation goes through here.
func (f *Function) refreshParametersNumber() {
	f.parametersNumber = f.expr.ArgumentsNumber() - f.expr.countRecursiveArguments()
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) SetName(functionName string) {
	f.name = functionName
	f.expr.modified = true
}

func (f *Function) Description() string {
	return f.description
}

func (f *Function) SetDescription(description string) {
	f.description = description
}

func (f *Function) ExpressionString() string {
	return f.expr.ExpressionString()
}

func (f *Function) CheckSyntax() bool {
	return f.expr.CheckSyntax()
}

func (f *Function) ErrorMessage() string {
	return f.expr.ErrorMessage()
}

// Clone returns a deep, independent copy: same name, description and
// parameter count, body expression tree deep-copied together with its
// argument, constant and function tables. Self registrations (recursive
// mode) are rebound to the clone instead of being deep-copied, and any
// other reference cycle among nested functions is copied once, so the
// clone of a cyclic structure is the equivalent cyclic structure.
func (f *Function) Clone() *Function {
	return f.cloneWithSeen(make(map[*Function]*Function))
}

func (f *Function) cloneWithSeen(seen map[*Function]*Function) *Function {
	if cl, ok := seen[f]; ok {
		return cl
	}
	ret := &Function{
		name:             f.name,
		description:      f.description,
		parametersNumber: f.parametersNumber,
	}
	// registered before the body copy, so a cycle back to f resolves
	// to the copy in progress
	seen[f] = ret
	ret.expr = f.expr.cloneWithSeen(seen)
	ret.expr.rebindSelfEntries(ret)
	return ret
}

// Calculate evaluates the function with up to ParametersNumber
// positional values. values[i] is assigned to the i-th ordinary
// argument slot, in declared order; undeclared trailing parameters keep
// their previous value. Supplying more values than callable parameters
// yields NaN, never a hard fault.
func (f *Function) Calculate(values ...float64) float64 {
	return f.calculate(&evalContext{}, values)
}

// CalculateArgs is Calculate with values taken from argument handles.
func (f *Function) CalculateArgs(arguments ...*Argument) float64 {
	values := make([]float64, len(arguments))
	for i, a := range arguments {
		values[i] = a.Value()
	}
	return f.calculate(&evalContext{}, values)
}

// calculate binds the values and evaluates the body within ctx, which
// carries the call depth across nested user function invocations.
func (f *Function) calculate(ctx *evalContext, values []float64) float64 {
	if len(values) > f.parametersNumber {
		return math.NaN()
	}
	f.setOrdinaryArgumentValues(values)
	return f.expr.calculate(ctx)
}

// setOrdinaryArgumentValues binds positional values skipping recursive
// argument slots, which callers never supply.
func (f *Function) setOrdinaryArgumentValues(values []float64) {
	next := 0
	for _, a := range f.expr.arguments {
		if next >= len(values) {
			return
		}
		if a.argType == RecursiveArgument {
			continue
		}
		a.value = values[next]
		next++
	}
}

// SetArgumentValue sets the value of the argument slot at the given raw
// table index, recursive slots included.
func (f *Function) SetArgumentValue(argumentIndex int, argumentValue float64) {
	f.expr.SetArgumentValue(argumentIndex, argumentValue)
}

func (f *Function) ParametersNumber() int {
	return f.parametersNumber
}

// SetParametersNumber overrides the derived parameter count. A smaller
// number restricts how many values a caller may supply.
func (f *Function) SetParametersNumber(parametersNumber int) {
	f.parametersNumber = parametersNumber
	f.expr.modified = true
}

// EnableRecursiveMode marks the body recursive and registers the
// function inside its own function table, so calls to its own name
// resolve without an external lookup.
func (f *Function) EnableRecursiveMode() {
	f.expr.SetRecursiveMode()
	f.expr.addSelfFunction(f)
}

// DisableRecursiveMode reverses EnableRecursiveMode: self-calls inside
// the body become unresolvable again.
func (f *Function) DisableRecursiveMode() {
	f.expr.DisableRecursiveMode()
	f.expr.removeSelfFunction(f)
}

func (f *Function) RecursiveMode() bool {
	return f.expr.RecursiveMode()
}

func (f *Function) ComputingTime() float64 {
	return f.expr.ComputingTime()
}

func (f *Function) SetVerboseMode() {
	f.expr.SetVerboseMode()
}

func (f *Function) SetSilentMode() {
	f.expr.SetSilentMode()
}

func (f *Function) VerboseMode() bool {
	return f.expr.VerboseMode()
}

// ---------------------------------------- argument management

func (f *Function) AddArguments(arguments ...*Argument) {
	f.expr.AddArguments(arguments...)
	f.refreshParametersNumber()
}

func (f *Function) DefineArguments(argumentNames ...string) {
	f.expr.DefineArguments(argumentNames...)
	f.refreshParametersNumber()
}

func (f *Function) DefineArgument(argumentName string, argumentValue float64) {
	f.expr.DefineArgument(argumentName, argumentValue)
	f.refreshParametersNumber()
}

func (f *Function) ArgumentIndex(argumentName string) int {
	return f.expr.ArgumentIndex(argumentName)
}

func (f *Function) ArgumentByName(argumentName string) *Argument {
	return f.expr.ArgumentByName(argumentName)
}

func (f *Function) ArgumentByIndex(argumentIndex int) *Argument {
	return f.expr.ArgumentByIndex(argumentIndex)
}

func (f *Function) ArgumentsNumber() int {
	return f.expr.ArgumentsNumber()
}

func (f *Function) RemoveArguments(argumentNames ...string) {
	f.expr.RemoveArguments(argumentNames...)
	f.refreshParametersNumber()
}

func (f *Function) RemoveAllArguments() {
	f.expr.RemoveAllArguments()
	f.refreshParametersNumber()
}

// ---------------------------------------- constant management

func (f *Function) AddConstants(constants ...*Constant) {
	f.expr.AddConstants(constants...)
}

func (f *Function) DefineConstant(constantName string, constantValue float64) {
	f.expr.DefineConstant(constantName, constantValue)
}

func (f *Function) ConstantIndex(constantName string) int {
	return f.expr.ConstantIndex(constantName)
}

func (f *Function) ConstantByName(constantName string) *Constant {
	return f.expr.ConstantByName(constantName)
}

func (f *Function) ConstantByIndex(constantIndex int) *Constant {
	return f.expr.ConstantByIndex(constantIndex)
}

func (f *Function) ConstantsNumber() int {
	return f.expr.ConstantsNumber()
}

func (f *Function) RemoveConstants(constantNames ...string) {
	f.expr.RemoveConstants(constantNames...)
}

func (f *Function) RemoveAllConstants() {
	f.expr.RemoveAllConstants()
}

// ---------------------------------------- nested function management

func (f *Function) AddFunctions(functions ...*Function) {
	f.expr.AddFunctions(functions...)
}

func (f *Function) DefineFunction(functionName, functionSource string, argumentNames ...string) {
	f.expr.DefineFunction(functionName, functionSource, argumentNames...)
}

func (f *Function) FunctionIndex(functionName string) int {
	return f.expr.FunctionIndex(functionName)
}

func (f *Function) FunctionByName(functionName string) *Function {
	return f.expr.FunctionByName(functionName)
}

func (f *Function) FunctionByIndex(functionIndex int) *Function {
	return f.expr.FunctionByIndex(functionIndex)
}

func (f *Function) FunctionsNumber() int {
	return f.expr.FunctionsNumber()
}

func (f *Function) RemoveFunctions(functionNames ...string) {
	f.expr.RemoveFunctions(functionNames...)
}

func (f *Function) RemoveAllFunctions() {
	f.expr.RemoveAllFunctions()
}
