package easymath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefinitions(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		fns, err := ParseDefinitions("f(x) = x*2")
		require.NoError(t, err)
		require.EqualValues(t, 1, len(fns))
		require.EqualValues(t, 6.0, fns[0].Calculate(3))
	})
	t.Run("later definitions use earlier ones", func(t *testing.T) {
		const source = `
			// squared value
			sq(x) = x*x
			hyp(a,b) = sqrt(sq(a) + sq(b))
		`
		fns, err := ParseDefinitions(source)
		require.NoError(t, err)
		require.EqualValues(t, 2, len(fns))
		require.EqualValues(t, "hyp", fns[1].Name())
		require.EqualValues(t, 5.0, fns[1].Calculate(3, 4))
	})
	t.Run("continuation lines", func(t *testing.T) {
		const source = `
			poly(x) = x^3   // cubic term
				+ 1
		`
		fns, err := ParseDefinitions(source)
		require.NoError(t, err)
		require.EqualValues(t, 1, len(fns))
		require.EqualValues(t, 9.0, fns[0].Calculate(2))
	})
	t.Run("comment-only lines are skipped", func(t *testing.T) {
		fns, err := ParseDefinitions("// nothing here\nf(x) = x\n// trailing comment")
		require.NoError(t, err)
		require.EqualValues(t, 1, len(fns))
	})
	t.Run("broken definition is reported", func(t *testing.T) {
		_, err := ParseDefinitions("f(x) = x\nbad() = 1")
		require.Error(t, err)
		require.Contains(t, err.Error(), "definition error")
	})
	t.Run("must variant panics", func(t *testing.T) {
		require.Panics(t, func() {
			MustParseDefinitions("bad() = 1")
		})
	})
	t.Run("definitions stay independent", func(t *testing.T) {
		fns := MustParseDefinitions("inc(x) = x + 1\ntwice(x) = inc(x) + inc(x)")
		require.EqualValues(t, 8.0, fns[1].Calculate(3))
		require.EqualValues(t, 2.0, fns[0].Calculate(1))
		require.False(t, math.IsNaN(fns[1].Calculate(0)))
	})
}
