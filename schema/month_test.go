package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	t.Run("valid month", func(t *testing.T) {
		m, err := ParseMonth("2025-02")
		require.NoError(t, err)
		assert.Equal(t, Month("2025-02"), m)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "2025", "2025-13", "02-2025", "2025-2", "not-a-month"} {
			_, err := ParseMonth(s)
			assert.Error(t, err, "input %q should be rejected", s)
		}
	})
}

func TestMonthNavigation(t *testing.T) {
	t.Run("next month", func(t *testing.T) {
		assert.Equal(t, Month("2025-03"), Month("2025-02").Next())
	})

	t.Run("next month across year boundary", func(t *testing.T) {
		assert.Equal(t, Month("2026-01"), Month("2025-12").Next())
	})

	t.Run("lexical order matches chronological order", func(t *testing.T) {
		assert.True(t, Month("2025-02").Before("2025-11"))
		assert.True(t, Month("2025-12").Before("2026-01"))
		assert.False(t, Month("2026-01").Before("2025-12"))
	})
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Feb 2025", Month("2025-02").Label())
	assert.Equal(t, "Jan 2026", Month("2026-01").Label())
}

func TestMonthNumber(t *testing.T) {
	assert.Equal(t, 2, Month("2025-02").MonthNumber())
	assert.Equal(t, 12, Month("2025-12").MonthNumber())
}

func TestMonthsFrom(t *testing.T) {
	months := MonthsFrom("2025-11", 4)
	require.Len(t, months, 4)
	assert.Equal(t, []Month{"2025-11", "2025-12", "2026-01", "2026-02"}, months)
}
