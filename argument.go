package easymath

// ArgumentType distinguishes ordinary arguments, supplied by the caller
// at evaluation time, from recursive ones. A recursive argument stands
// for the function own name inside its body and is never supplied by
// the caller, so it does not count as a callable parameter.
type ArgumentType byte

const (
	OrdinaryArgument = ArgumentType(iota)
	RecursiveArgument
)

// Argument is a named, settable value slot referenced by compiled
// expression trees. The expression owns its arguments, a Function only
// indexes into them.
type Argument struct {
	name    string
	value   float64
	argType ArgumentType
}

func NewArgument(name string) *Argument {
	return &Argument{name: name}
}

func NewArgumentWithValue(name string, value float64) *Argument {
	return &Argument{name: name, value: value}
}

func NewRecursiveArgument(name string) *Argument {
	return &Argument{name: name, argType: RecursiveArgument}
}

func (a *Argument) Name() string {
	return a.name
}

func (a *Argument) Value() float64 {
	return a.value
}

func (a *Argument) SetValue(value float64) {
	a.value = value
}

func (a *Argument) Type() ArgumentType {
	return a.argType
}

func (a *Argument) clone() *Argument {
	ret := *a
	return &ret
}

// Constant is a named immutable value. Unlike an argument its value is
// fixed at definition time.
type Constant struct {
	name  string
	value float64
}

func NewConstant(name string, value float64) *Constant {
	return &Constant{name: name, value: value}
}

func (c *Constant) Name() string {
	return c.name
}

func (c *Constant) Value() float64 {
	return c.value
}

func (c *Constant) clone() *Constant {
	ret := *c
	return &ret
}
