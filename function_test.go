package easymath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunctionConstructors(t *testing.T) {
	t.Run("name and body only", func(t *testing.T) {
		f := NewFunction("f", "x + y")
		require.EqualValues(t, 0, f.ParametersNumber())
		f.DefineArguments("x", "y")
		require.EqualValues(t, 2, f.ParametersNumber())
		require.EqualValues(t, 5.0, f.Calculate(2, 3))
	})
	t.Run("name, body and parameter names", func(t *testing.T) {
		f := NewFunction("f", "x + y", "x", "y")
		require.EqualValues(t, "f", f.Name())
		require.EqualValues(t, 2, f.ParametersNumber())
		require.EqualValues(t, 5.0, f.Calculate(2, 3))
	})
	t.Run("prebuilt argument handles", func(t *testing.T) {
		f := NewFunctionWithArguments("f", "x*y", NewArgument("x"), NewArgumentWithValue("y", 10))
		require.EqualValues(t, 2, f.ParametersNumber())
		require.EqualValues(t, 30.0, f.Calculate(3, 10))
	})
	t.Run("recursive argument is not callable", func(t *testing.T) {
		f := NewFunctionWithArguments("f", "n+1", NewArgument("n"), NewRecursiveArgument("f"))
		require.EqualValues(t, 2, f.ArgumentsNumber())
		require.EqualValues(t, 1, f.ParametersNumber())
		require.EqualValues(t, 6.0, f.Calculate(5))
	})
	t.Run("natural math language", func(t *testing.T) {
		f := ParseFunction("f(x,y) = sin(x) + cos(y)")
		require.True(t, f.CheckSyntax(), f.ErrorMessage())
		require.EqualValues(t, "f", f.Name())
		require.EqualValues(t, 2, f.ParametersNumber())
		require.InDelta(t, 1.0, f.Calculate(math.Pi/2, math.Pi/2), 1e-12)
	})
}

func TestDefinitionErrors(t *testing.T) {
	expectDefinitionError := func(t *testing.T, definition string) {
		f := ParseFunction(definition)
		require.EqualValues(t, 0, f.ParametersNumber())
		require.False(t, f.CheckSyntax())
		require.Contains(t, f.ErrorMessage(), "definition error")
		require.True(t, math.IsNaN(f.Calculate()))
	}
	t.Run("no parameters", func(t *testing.T) {
		expectDefinitionError(t, "f() = ")
	})
	t.Run("no equality sign", func(t *testing.T) {
		expectDefinitionError(t, "f(x) x + 1")
	})
	t.Run("missing name", func(t *testing.T) {
		expectDefinitionError(t, "(x) = x + 1")
	})
	t.Run("name is not an identifier", func(t *testing.T) {
		expectDefinitionError(t, "2f(x) = x")
	})
	t.Run("reserved name", func(t *testing.T) {
		expectDefinitionError(t, "sin(x) = x")
	})
	t.Run("bare name", func(t *testing.T) {
		expectDefinitionError(t, "f = 1")
	})
	t.Run("calculating a broken definition stays soft", func(t *testing.T) {
		f := ParseFunction("f() = ")
		require.True(t, math.IsNaN(f.Calculate(1)))
		require.True(t, math.IsNaN(f.Calculate()))
	})
}

func TestCalculate(t *testing.T) {
	t.Run("positional binding", func(t *testing.T) {
		f := ParseFunction("f(x,y) = x + y")
		require.EqualValues(t, 5.0, f.Calculate(2, 3))
	})
	t.Run("too many values yield NaN", func(t *testing.T) {
		f := ParseFunction("f(x,y) = x + y")
		require.True(t, math.IsNaN(f.Calculate(2, 3, 4)))
	})
	t.Run("fewer values keep previous ones", func(t *testing.T) {
		f := NewFunctionWithArguments("f", "x + y", NewArgument("x"), NewArgumentWithValue("y", 10))
		require.EqualValues(t, 15.0, f.Calculate(5))
		require.EqualValues(t, 7.0, f.Calculate(3, 4))
		require.EqualValues(t, 5.0, f.Calculate(1))
	})
	t.Run("argument handles as values", func(t *testing.T) {
		f := ParseFunction("f(x,y) = x * y")
		require.EqualValues(t, 12.0, f.CalculateArgs(NewArgumentWithValue("a", 3), NewArgumentWithValue("b", 4)))
		require.True(t, math.IsNaN(f.CalculateArgs(NewArgument("a"), NewArgument("b"), NewArgument("c"))))
	})
	t.Run("no arguments left", func(t *testing.T) {
		f := ParseFunction("f(x,y) = x + y")
		f.RemoveAllArguments()
		require.EqualValues(t, 0, f.ParametersNumber())
		require.True(t, math.IsNaN(f.Calculate(1)))
	})
	t.Run("restricted parameters number", func(t *testing.T) {
		f := ParseFunction("f(x,y) = x + y")
		f.SetParametersNumber(1)
		require.True(t, math.IsNaN(f.Calculate(2, 3)))
	})
	t.Run("computing time is reported", func(t *testing.T) {
		f := ParseFunction("f(x) = sin(x)")
		f.Calculate(1)
		require.GreaterOrEqual(t, f.ComputingTime(), 0.0)
	})
}

func TestFunctionManagement(t *testing.T) {
	t.Run("parameter count invariant", func(t *testing.T) {
		f := NewFunction("f", "a+b+c")
		f.DefineArguments("a", "b")
		require.EqualValues(t, 2, f.ParametersNumber())
		f.AddArguments(NewArgument("c"), NewRecursiveArgument("f"))
		require.EqualValues(t, 4, f.ArgumentsNumber())
		require.EqualValues(t, 3, f.ParametersNumber())
		f.RemoveArguments("b")
		require.EqualValues(t, 2, f.ParametersNumber())
		f.RemoveAllArguments()
		require.EqualValues(t, 0, f.ParametersNumber())
	})
	t.Run("constants", func(t *testing.T) {
		f := NewFunction("f", "x + g0", "x")
		f.AddConstants(NewConstant("g0", 9.81))
		require.EqualValues(t, 1, f.ConstantsNumber())
		require.EqualValues(t, 0, f.ConstantIndex("g0"))
		require.InDelta(t, 10.81, f.Calculate(1), 1e-12)
		f.RemoveConstants("g0")
		require.EqualValues(t, NotFound, f.ConstantIndex("g0"))
		require.False(t, f.CheckSyntax())
	})
	t.Run("nested functions", func(t *testing.T) {
		f := NewFunction("f", "g(x) + 1", "x")
		f.AddFunctions(NewFunction("g", "t*t", "t"))
		require.EqualValues(t, 1, f.FunctionsNumber())
		require.EqualValues(t, 10.0, f.Calculate(3))
		require.EqualValues(t, "g", f.FunctionByIndex(0).Name())
		f.RemoveFunctions("g")
		require.False(t, f.CheckSyntax())
	})
	t.Run("define nested function in place", func(t *testing.T) {
		f := NewFunction("f", "double(x) + 1", "x")
		f.DefineFunction("double", "2*v", "v")
		require.EqualValues(t, 7.0, f.Calculate(3))
	})
	t.Run("nested function arity is checked", func(t *testing.T) {
		f := NewFunction("f", "g(x, x)", "x")
		f.AddFunctions(NewFunction("g", "t", "t"))
		require.False(t, f.CheckSyntax())
		require.Contains(t, f.ErrorMessage(), "g")
	})
	t.Run("raw argument slot access", func(t *testing.T) {
		f := ParseFunction("f(x,y) = x - y")
		f.SetArgumentValue(0, 10)
		f.SetArgumentValue(1, 4)
		require.EqualValues(t, 6.0, f.Calculate())
		require.EqualValues(t, 10.0, f.ArgumentByName("x").Value())
	})
}

func TestFunctionClone(t *testing.T) {
	t.Run("clone evaluates identically", func(t *testing.T) {
		f := ParseFunction("f(x,y) = x^2 + y")
		g := f.Clone()
		require.EqualValues(t, f.Name(), g.Name())
		require.EqualValues(t, f.ParametersNumber(), g.ParametersNumber())
		require.EqualValues(t, f.Calculate(3, 4), g.Calculate(3, 4))
	})
	t.Run("no shared mutable state", func(t *testing.T) {
		f := NewFunctionWithArguments("f", "x + y", NewArgument("x"), NewArgumentWithValue("y", 10))
		g := f.Clone()
		g.ArgumentByName("y").SetValue(100)
		require.EqualValues(t, 11.0, f.Calculate(1))
		require.EqualValues(t, 101.0, g.Calculate(1))
		g.RemoveAllArguments()
		require.EqualValues(t, 2, f.ArgumentsNumber())
	})
	t.Run("clone of a recursive function", func(t *testing.T) {
		fact := ParseFunction("fact(n) = if(n <= 1, 1, n*fact(n-1))")
		fact.EnableRecursiveMode()
		cl := fact.Clone()
		require.EqualValues(t, 120.0, cl.Calculate(5))
		require.EqualValues(t, 120.0, fact.Calculate(5))
	})
	t.Run("clone of a function registered in its own table", func(t *testing.T) {
		fact := ParseFunction("fact(n) = if(n <= 1, 1, n*fact(n-1))")
		fact.AddFunctions(fact)
		cl := fact.Clone()
		require.EqualValues(t, 120.0, cl.Calculate(5))
		require.EqualValues(t, 120.0, fact.Calculate(5))
	})
	t.Run("clone of mutually referencing functions", func(t *testing.T) {
		even := ParseFunction("even(n) = if(n == 0, 1, odd(n-1))")
		odd := ParseFunction("odd(n) = if(n == 0, 0, even(n-1))")
		even.AddFunctions(odd)
		odd.AddFunctions(even)
		cl := even.Clone()
		require.EqualValues(t, 1.0, cl.Calculate(6))
		require.EqualValues(t, 0.0, cl.Calculate(7))
		require.EqualValues(t, 1.0, even.Calculate(6))
	})
}

func TestRecursion(t *testing.T) {
	t.Run("factorial", func(t *testing.T) {
		fact := ParseFunction("fact(n) = if(n <= 1, 1, n*fact(n-1))")
		require.False(t, fact.RecursiveMode())
		fact.EnableRecursiveMode()
		require.True(t, fact.RecursiveMode())
		require.EqualValues(t, 120.0, fact.Calculate(5))
		require.EqualValues(t, 1.0, fact.Calculate(0))
	})
	t.Run("fibonacci", func(t *testing.T) {
		fib := ParseFunction("fib(n) = if(n <= 1, n, fib(n-1) + fib(n-2))")
		fib.EnableRecursiveMode()
		require.EqualValues(t, 55.0, fib.Calculate(10))
	})
	t.Run("disable makes self-reference unresolvable", func(t *testing.T) {
		fact := ParseFunction("fact(n) = if(n <= 1, 1, n*fact(n-1))")
		fact.EnableRecursiveMode()
		require.EqualValues(t, 120.0, fact.Calculate(5))

		fact.DisableRecursiveMode()
		require.False(t, fact.RecursiveMode())
		require.False(t, fact.CheckSyntax())
		require.Contains(t, fact.ErrorMessage(), "fact")
		require.True(t, math.IsNaN(fact.Calculate(5)))
	})
	t.Run("re-enable restores recursion", func(t *testing.T) {
		fact := ParseFunction("fact(n) = if(n <= 1, 1, n*fact(n-1))")
		fact.EnableRecursiveMode()
		fact.DisableRecursiveMode()
		fact.EnableRecursiveMode()
		require.EqualValues(t, 24.0, fact.Calculate(4))
	})
	t.Run("non-terminating recursion yields NaN", func(t *testing.T) {
		loop := ParseFunction("loop(n) = loop(n+1)")
		loop.EnableRecursiveMode()
		require.True(t, math.IsNaN(loop.Calculate(0)))
	})
	t.Run("recursive function used by another function", func(t *testing.T) {
		fact := ParseFunction("fact(n) = if(n <= 1, 1, n*fact(n-1))")
		fact.EnableRecursiveMode()
		f := ParseFunction("f(n) = fact(n) + fact(n+1)")
		f.AddFunctions(fact)
		require.EqualValues(t, 30.0, f.Calculate(3))
	})
	t.Run("mutual recursion through cross registration", func(t *testing.T) {
		even := ParseFunction("even(n) = if(n == 0, 1, odd(n-1))")
		odd := ParseFunction("odd(n) = if(n == 0, 0, even(n-1))")
		even.AddFunctions(odd)
		odd.AddFunctions(even)
		require.EqualValues(t, 1.0, even.Calculate(4))
		require.EqualValues(t, 0.0, even.Calculate(7))
		require.EqualValues(t, 1.0, odd.Calculate(3))
	})
	t.Run("self registration by hand behaves like recursive mode", func(t *testing.T) {
		fact := ParseFunction("fact(n) = if(n <= 1, 1, n*fact(n-1))")
		fact.AddFunctions(fact)
		require.EqualValues(t, 120.0, fact.Calculate(5))
		require.EqualValues(t, 1.0, fact.Calculate(0))
	})
	t.Run("parallel evaluations have independent depth budgets", func(t *testing.T) {
		const workers = 4
		results := make(chan float64, workers)
		for i := 0; i < workers; i++ {
			go func() {
				f := ParseFunction("countdown(n) = if(n <= 0, 0, countdown(n-1))")
				f.EnableRecursiveMode()
				results <- f.Calculate(800)
			}()
		}
		for i := 0; i < workers; i++ {
			require.EqualValues(t, 0.0, <-results)
		}
	})
}

func TestLicense(t *testing.T) {
	require.NotEmpty(t, License())
}
