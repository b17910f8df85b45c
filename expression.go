package easymath

import (
	"math"
	"time"

	"go.uber.org/zap"
)

const (
	// NoSyntaxErrors means the expression compiled successfully.
	NoSyntaxErrors = true
	// SyntaxError means a syntax error was found or the status was
	// forced through SetSyntaxStatus.
	SyntaxError = false

	// NotFound is returned by index lookups when the name is absent.
	NotFound = -1
)

// funcEntry is one slot of the expression function table. A self entry
// is the function own registration inside its own body (recursive
// mode). Self entries are never deep-copied on clone: Function.Clone
// rebinds them to the new owner, which breaks the ownership cycle while
// keeping self-calls resolvable by name.
type funcEntry struct {
	fn   *Function
	self bool
}

// Expression owns the source string of a formula, the symbol tables it
// resolves against and the compiled tree. Structural mutations mark it
// modified, the next syntax check or calculation recompiles.
type Expression struct {
	source      string
	description string

	arguments []*Argument
	constants []*Constant
	functions []*funcEntry

	root     *exprNode
	modified bool

	syntaxStatus bool
	errorMessage string

	recursive     bool
	computingTime float64

	verbose bool
	log     *zap.SugaredLogger
}

func NewExpression(source string) *Expression {
	return &Expression{
		source:       source,
		arguments:    make([]*Argument, 0),
		constants:    make([]*Constant, 0),
		functions:    make([]*funcEntry, 0),
		modified:     true,
		syntaxStatus: SyntaxError,
		log:          zap.NewNop().Sugar(),
	}
}

func (e *Expression) ExpressionString() string {
	return e.source
}

func (e *Expression) SetExpressionString(source string) {
	e.source = source
	e.modified = true
}

func (e *Expression) Description() string {
	return e.description
}

func (e *Expression) SetDescription(description string) {
	e.description = description
}

// CheckSyntax compiles the expression if needed and reports the syntax
// status. A status forced through SetSyntaxStatus holds until the next
// structural mutation.
func (e *Expression) CheckSyntax() bool {
	if e.modified {
		e.compile()
	}
	return e.syntaxStatus
}

func (e *Expression) ErrorMessage() string {
	return e.errorMessage
}

// SetSyntaxStatus forces the syntax status and the error message. Used
// when a definition-level error must be attached to a placeholder body.
func (e *Expression) SetSyntaxStatus(status bool, message string) {
	e.syntaxStatus = status
	e.errorMessage = message
	e.modified = false
	e.root = nil
}

// Calculate evaluates the expression against the current argument
// values. Any fault, syntax or runtime, yields NaN: the numeric result
// is the only error channel of the evaluation path.
func (e *Expression) Calculate() float64 {
	return e.calculate(&evalContext{})
}

func (e *Expression) calculate(ctx *evalContext) float64 {
	start := time.Now()
	defer func() {
		e.computingTime = time.Since(start).Seconds()
	}()

	if !e.CheckSyntax() {
		e.log.Debugf("'%s': not evaluated: %s", e.source, e.errorMessage)
		return math.NaN()
	}
	var ret float64
	err := CatchPanicOrError(func() error {
		ret = e.root.eval(ctx)
		return nil
	})
	if err != nil {
		e.log.Debugf("'%s': evaluation fault: %v", e.source, err)
		return math.NaN()
	}
	e.log.Debugf("'%s' = %v", e.source, ret)
	return ret
}

// ComputingTime returns the duration of the last Calculate in seconds.
func (e *Expression) ComputingTime() float64 {
	return e.computingTime
}

// Clone returns a deep, independent copy: the clone shares no mutable
// state with the original. Self entries of the function table are
// carried over unresolved, the cloning Function rebinds them.
func (e *Expression) Clone() *Expression {
	return e.cloneWithSeen(make(map[*Function]*Function))
}

// cloneWithSeen deep-copies the expression. seen maps originals to
// their copies, so reference cycles in the function table (mutual
// recursion, a function registered in its own table by hand) clone into
// the equivalent finite structure instead of recursing forever.
func (e *Expression) cloneWithSeen(seen map[*Function]*Function) *Expression {
	ret := &Expression{
		source:        e.source,
		description:   e.description,
		arguments:     make([]*Argument, len(e.arguments)),
		constants:     make([]*Constant, len(e.constants)),
		functions:     make([]*funcEntry, len(e.functions)),
		modified:      true,
		syntaxStatus:  e.syntaxStatus,
		errorMessage:  e.errorMessage,
		recursive:     e.recursive,
		verbose:       e.verbose,
		log:           e.log,
		computingTime: 0,
	}
	for i, a := range e.arguments {
		ret.arguments[i] = a.clone()
	}
	for i, c := range e.constants {
		ret.constants[i] = c.clone()
	}
	for i, fe := range e.functions {
		if fe.self {
			ret.functions[i] = &funcEntry{fn: fe.fn, self: true}
		} else {
			ret.functions[i] = &funcEntry{fn: fe.fn.cloneWithSeen(seen)}
		}
	}
	return ret
}

func (e *Expression) SetVerboseMode() {
	e.verbose = true
	e.log = newVerboseLogger()
}

func (e *Expression) SetSilentMode() {
	e.verbose = false
	e.log = zap.NewNop().Sugar()
}

func (e *Expression) VerboseMode() bool {
	return e.verbose
}

func (e *Expression) SetRecursiveMode() {
	e.recursive = true
	e.modified = true
}

func (e *Expression) DisableRecursiveMode() {
	e.recursive = false
	e.modified = true
}

func (e *Expression) RecursiveMode() bool {
	return e.recursive
}

// ---------------------------------------- argument table

func (e *Expression) AddArguments(arguments ...*Argument) {
	e.arguments = append(e.arguments, arguments...)
	e.modified = true
}

func (e *Expression) DefineArguments(argumentNames ...string) {
	for _, name := range argumentNames {
		e.arguments = append(e.arguments, NewArgument(name))
	}
	e.modified = true
}

func (e *Expression) DefineArgument(argumentName string, argumentValue float64) {
	e.arguments = append(e.arguments, NewArgumentWithValue(argumentName, argumentValue))
	e.modified = true
}

func (e *Expression) ArgumentIndex(argumentName string) int {
	for i, a := range e.arguments {
		if a.name == argumentName {
			return i
		}
	}
	return NotFound
}

func (e *Expression) ArgumentByName(argumentName string) *Argument {
	return e.lookupArgument(argumentName)
}

func (e *Expression) ArgumentByIndex(argumentIndex int) *Argument {
	if argumentIndex < 0 || argumentIndex >= len(e.arguments) {
		return nil
	}
	return e.arguments[argumentIndex]
}

func (e *Expression) ArgumentsNumber() int {
	return len(e.arguments)
}

func (e *Expression) SetArgumentValue(argumentIndex int, argumentValue float64) {
	if argumentIndex < 0 || argumentIndex >= len(e.arguments) {
		return
	}
	e.arguments[argumentIndex].value = argumentValue
}

// RemoveArguments removes the first occurrence of each named argument.
func (e *Expression) RemoveArguments(argumentNames ...string) {
	for _, name := range argumentNames {
		if idx := e.ArgumentIndex(name); idx != NotFound {
			e.arguments = append(e.arguments[:idx], e.arguments[idx+1:]...)
		}
	}
	e.modified = true
}

func (e *Expression) RemoveAllArguments() {
	e.arguments = e.arguments[:0]
	e.modified = true
}

func (e *Expression) lookupArgument(name string) *Argument {
	for _, a := range e.arguments {
		if a.name == name {
			return a
		}
	}
	return nil
}

func (e *Expression) countRecursiveArguments() int {
	ret := 0
	for _, a := range e.arguments {
		if a.argType == RecursiveArgument {
			ret++
		}
	}
	return ret
}

// ---------------------------------------- constant table

func (e *Expression) AddConstants(constants ...*Constant) {
	e.constants = append(e.constants, constants...)
	e.modified = true
}

func (e *Expression) DefineConstant(constantName string, constantValue float64) {
	e.constants = append(e.constants, NewConstant(constantName, constantValue))
	e.modified = true
}

func (e *Expression) ConstantIndex(constantName string) int {
	for i, c := range e.constants {
		if c.name == constantName {
			return i
		}
	}
	return NotFound
}

func (e *Expression) ConstantByName(constantName string) *Constant {
	return e.lookupConstant(constantName)
}

func (e *Expression) ConstantByIndex(constantIndex int) *Constant {
	if constantIndex < 0 || constantIndex >= len(e.constants) {
		return nil
	}
	return e.constants[constantIndex]
}

func (e *Expression) ConstantsNumber() int {
	return len(e.constants)
}

func (e *Expression) RemoveConstants(constantNames ...string) {
	for _, name := range constantNames {
		if idx := e.ConstantIndex(name); idx != NotFound {
			e.constants = append(e.constants[:idx], e.constants[idx+1:]...)
		}
	}
	e.modified = true
}

func (e *Expression) RemoveAllConstants() {
	e.constants = e.constants[:0]
	e.modified = true
}

func (e *Expression) lookupConstant(name string) *Constant {
	for _, c := range e.constants {
		if c.name == name {
			return c
		}
	}
	return nil
}

// ---------------------------------------- function table

func (e *Expression) AddFunctions(functions ...*Function) {
	for _, fn := range functions {
		e.functions = append(e.functions, &funcEntry{fn: fn})
	}
	e.modified = true
}

func (e *Expression) DefineFunction(functionName, functionSource string, argumentNames ...string) {
	e.AddFunctions(NewFunction(functionName, functionSource, argumentNames...))
}

func (e *Expression) FunctionIndex(functionName string) int {
	for i, fe := range e.functions {
		if fe.fn != nil && fe.fn.name == functionName {
			return i
		}
	}
	return NotFound
}

func (e *Expression) FunctionByName(functionName string) *Function {
	return e.lookupFunction(functionName)
}

func (e *Expression) FunctionByIndex(functionIndex int) *Function {
	if functionIndex < 0 || functionIndex >= len(e.functions) {
		return nil
	}
	return e.functions[functionIndex].fn
}

func (e *Expression) FunctionsNumber() int {
	return len(e.functions)
}

func (e *Expression) RemoveFunctions(functionNames ...string) {
	for _, name := range functionNames {
		if idx := e.FunctionIndex(name); idx != NotFound {
			e.functions = append(e.functions[:idx], e.functions[idx+1:]...)
		}
	}
	e.modified = true
}

func (e *Expression) RemoveAllFunctions() {
	e.functions = e.functions[:0]
	e.modified = true
}

func (e *Expression) lookupFunction(name string) *Function {
	for _, fe := range e.functions {
		if fe.fn != nil && fe.fn.name == name {
			return fe.fn
		}
	}
	return nil
}

// addSelfFunction registers the function inside its own body function
// table, so self-calls resolve without an external lookup.
func (e *Expression) addSelfFunction(fn *Function) {
	e.functions = append(e.functions, &funcEntry{fn: fn, self: true})
	e.modified = true
}

// removeSelfFunction removes the first self registration of fn.
func (e *Expression) removeSelfFunction(fn *Function) {
	for i, fe := range e.functions {
		if fe.self && fe.fn == fn {
			e.functions = append(e.functions[:i], e.functions[i+1:]...)
			break
		}
	}
	e.modified = true
}

// rebindSelfEntries points all self entries at the new owner. Called by
// Function.Clone right after the body is cloned.
func (e *Expression) rebindSelfEntries(owner *Function) {
	for _, fe := range e.functions {
		if fe.self {
			fe.fn = owner
		}
	}
}
