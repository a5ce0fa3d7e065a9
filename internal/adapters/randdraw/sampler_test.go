package randdraw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler_Pick(t *testing.T) {
	ids := []string{"u1", "u2", "u3", "u4", "u5"}

	t.Run("same seed gives the same draw", func(t *testing.T) {
		a := New(42).Pick(ids, 3)
		b := New(42).Pick(ids, 3)
		assert.Equal(t, a, b)
	})

	t.Run("picks are distinct members of the input", func(t *testing.T) {
		picked := New(7).Pick(ids, 4)
		require.Len(t, picked, 4)

		seen := make(map[string]bool)
		for _, id := range picked {
			assert.Contains(t, ids, id)
			assert.False(t, seen[id], "duplicate pick %s", id)
			seen[id] = true
		}
	})

	t.Run("k larger than the pool returns everything", func(t *testing.T) {
		picked := New(1).Pick(ids, 50)
		assert.ElementsMatch(t, ids, picked)
	})

	t.Run("non-positive k returns nothing", func(t *testing.T) {
		assert.Empty(t, New(1).Pick(ids, 0))
		assert.Empty(t, New(1).Pick(ids, -3))
	})

	t.Run("empty pool returns nothing", func(t *testing.T) {
		assert.Empty(t, New(1).Pick(nil, 3))
	})

	t.Run("input slice is not modified", func(t *testing.T) {
		original := []string{"u1", "u2", "u3", "u4", "u5"}
		New(99).Pick(original, 3)
		assert.Equal(t, []string{"u1", "u2", "u3", "u4", "u5"}, original)
	})

	t.Run("every member can win", func(t *testing.T) {
		s := New(3)
		won := make(map[string]bool)
		for i := 0; i < 200; i++ {
			for _, id := range s.Pick(ids, 1) {
				won[id] = true
			}
		}
		assert.Len(t, won, len(ids))
	})
}
