package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeOrderedTraversal(t *testing.T) {
	tr := New(4, func(a, b int) bool { return a < b })
	for _, v := range []int{5, 1, 4, 2, 3} {
		tr.Insert(v)
	}
	require.Equal(t, 5, tr.Len())

	var got []int
	tr.Ascend(func(v int) bool {
		got = append(got, v)
		return true
	})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestTreeFindAndDelete(t *testing.T) {
	tr := New(4, func(a, b int) bool { return a < b })
	tr.Insert(10)

	v, ok := tr.Find(10)
	require.True(t, ok)
	assert.Equal(t, 10, v)

	_, ok = tr.Delete(10)
	require.True(t, ok)
	_, ok = tr.Find(10)
	assert.False(t, ok)
}

func TestTreeMinMaxAndRangeQueries(t *testing.T) {
	tr := New(4, func(a, b int) bool { return a < b })
	for _, v := range []int{10, 20, 30, 40} {
		tr.Insert(v)
	}

	min, _ := tr.Min()
	max, _ := tr.Max()
	assert.Equal(t, 10, min)
	assert.Equal(t, 40, max)

	var first int
	found := false
	tr.AscendGreaterOrEqual(25, func(v int) bool {
		if !found {
			first = v
			found = true
		}
		return false
	})
	assert.True(t, found)
	assert.Equal(t, 30, first)
}
