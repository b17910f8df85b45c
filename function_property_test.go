package easymath

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func sameValue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func TestFunctionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("clone evaluates identically to the original", prop.ForAll(
		func(x, y float64) bool {
			f := ParseFunction("f(x,y) = 2*x + y*y - x/(abs(y)+1)")
			g := f.Clone()
			return sameValue(f.Calculate(x, y), g.Calculate(x, y))
		},
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(-1e3, 1e3),
	))

	properties.Property("mutating the clone never changes the original", prop.ForAll(
		func(x, mut float64) bool {
			f := ParseFunction("f(a,b) = a*b + a")
			want := f.Calculate(x, 2)
			g := f.Clone()
			g.ArgumentByName("a").SetValue(mut)
			g.Calculate(mut, mut)
			return sameValue(want, f.Calculate(x, 2))
		},
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(-1e3, 1e3),
	))

	properties.Property("parameter count is declared minus recursive", prop.ForAll(
		func(ordinary, recursive int) bool {
			args := make([]*Argument, 0, ordinary+recursive)
			for i := 0; i < ordinary; i++ {
				args = append(args, NewArgument(fmt.Sprintf("p%d", i)))
			}
			for i := 0; i < recursive; i++ {
				args = append(args, NewRecursiveArgument("f"))
			}
			f := NewFunctionWithArguments("f", "0", args...)
			return f.ParametersNumber() == ordinary && f.ArgumentsNumber() == ordinary+recursive
		},
		gen.IntRange(0, 8),
		gen.IntRange(0, 3),
	))

	properties.Property("supplying more values than parameters yields NaN", prop.ForAll(
		func(x, y, z float64) bool {
			f := ParseFunction("f(x,y) = x + y")
			return math.IsNaN(f.Calculate(x, y, z))
		},
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(-1e3, 1e3),
	))

	properties.TestingRun(t)
}
