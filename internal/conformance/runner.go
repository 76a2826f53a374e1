package conformance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tempus-dev/tempus-go/pkg/calendar"
	"github.com/tempus-dev/tempus-go/pkg/duration"
)

// Run executes every case in the suite as subtests of t.
func Run(t *testing.T, s *Suite) {
	t.Helper()

	t.Run(s.Name, func(t *testing.T) {
		for _, c := range s.Parse {
			t.Run(c.Name, func(t *testing.T) { runParse(t, c) })
		}
		for _, c := range s.Arithmetic {
			t.Run(c.Name, func(t *testing.T) { runArithmetic(t, c) })
		}
		for _, c := range s.Compare {
			t.Run(c.Name, func(t *testing.T) { runCompare(t, c) })
		}
		for _, c := range s.Calendar {
			t.Run(c.Name, func(t *testing.T) { runCalendar(t, c) })
		}
	})
}

func runParse(t *testing.T, c ParseCase) {
	d, err := duration.Parse(c.Input)
	if c.Err {
		require.Error(t, err, "input %q should be rejected", c.Input)
		if c.Reason != "" {
			require.Contains(t, err.Error(), c.Reason)
		}
		return
	}
	require.NoError(t, err, "input %q should parse", c.Input)
	require.Equal(t, c.Want, d.String())
}

func runArithmetic(t *testing.T, c ArithmeticCase) {
	lhs, err := duration.Parse(c.LHS)
	require.NoError(t, err, "lhs %q", c.LHS)

	var (
		result duration.Duration
		opErr  error
	)
	switch c.Op {
	case "add", "sub":
		var rhs duration.Duration
		rhs, err = duration.Parse(c.RHS)
		require.NoError(t, err, "rhs %q", c.RHS)
		if c.Op == "add" {
			result, opErr = lhs.Add(rhs)
		} else {
			result, opErr = lhs.Sub(rhs)
		}
	case "scale":
		require.NotNil(t, c.Factor, "scale case needs a factor")
		result, opErr = lhs.Scale(*c.Factor)
	case "normalize":
		result = lhs.Normalize()
	case "negate":
		result = lhs.Negate()
	case "abs":
		result = lhs.Abs()
	default:
		t.Fatalf("unknown arithmetic op %q", c.Op)
	}

	if c.Err {
		require.Error(t, opErr)
		return
	}
	require.NoError(t, opErr)
	require.Equal(t, c.Want, result.String())
}

func runCompare(t *testing.T, c CompareCase) {
	lhs, err := duration.Parse(c.LHS)
	require.NoError(t, err, "lhs %q", c.LHS)
	rhs, err := duration.Parse(c.RHS)
	require.NoError(t, err, "rhs %q", c.RHS)

	require.Equal(t, c.Want, lhs.Compare(rhs))
	if c.Equal != nil {
		require.Equal(t, *c.Equal, lhs.Equal(rhs))
	}
}

func runCalendar(t *testing.T, c CalendarCase) {
	base, err := calendar.ParseDate(c.Base)
	require.NoError(t, err, "base %q", c.Base)

	switch c.Op {
	case "add", "sub":
		span, err := duration.Parse(c.Span)
		require.NoError(t, err, "span %q", c.Span)

		var got time.Time
		if c.Op == "add" {
			got = calendar.Add(base, span)
		} else {
			got = calendar.Sub(base, span)
		}

		want, err := calendar.ParseDate(c.Want)
		require.NoError(t, err, "want %q", c.Want)
		require.True(t, got.Equal(want),
			"got %s, want %s", got.Format(time.RFC3339), want.Format(time.RFC3339))
	case "between":
		to, err := calendar.ParseDate(c.To)
		require.NoError(t, err, "to %q", c.To)

		got := calendar.Between(base, to)
		require.Equal(t, c.Want, got.String())
	default:
		t.Fatalf("unknown calendar op %q", c.Op)
	}
}
