package pricetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGetContains(t *testing.T) {
	l := New[string]()
	l.Insert(100, "a")
	l.Insert(50, "b")

	v, ok := l.Get(100)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	assert.True(t, l.Contains(50))
	assert.False(t, l.Contains(75))
	assert.Equal(t, 2, l.Len())
}

func TestMinMaxLeaf(t *testing.T) {
	l := New[string]()
	_, _, ok := l.MinLeaf()
	assert.False(t, ok)

	l.Insert(30, "c")
	l.Insert(10, "a")
	l.Insert(20, "b")

	minKey, minVal, ok := l.MinLeaf()
	require.True(t, ok)
	assert.Equal(t, uint64(10), minKey)
	assert.Equal(t, "a", minVal)

	maxKey, maxVal, ok := l.MaxLeaf()
	require.True(t, ok)
	assert.Equal(t, uint64(30), maxKey)
	assert.Equal(t, "c", maxVal)
}

func TestNextLeafSkipsExactMatch(t *testing.T) {
	l := New[int]()
	l.Insert(10, 1)
	l.Insert(20, 2)
	l.Insert(30, 3)

	key, val, ok := l.NextLeaf(10)
	require.True(t, ok)
	assert.Equal(t, uint64(20), key)
	assert.Equal(t, 2, val)

	_, _, ok = l.NextLeaf(30)
	assert.False(t, ok)

	// A key not present seeks to its successor, same as an exact match.
	key, _, ok = l.NextLeaf(15)
	require.True(t, ok)
	assert.Equal(t, uint64(20), key)
}

func TestPreviousLeaf(t *testing.T) {
	l := New[int]()
	l.Insert(10, 1)
	l.Insert(20, 2)
	l.Insert(30, 3)

	key, val, ok := l.PreviousLeaf(30)
	require.True(t, ok)
	assert.Equal(t, uint64(20), key)
	assert.Equal(t, 2, val)

	_, _, ok = l.PreviousLeaf(10)
	assert.False(t, ok)

	// Past the largest key, the predecessor is the max.
	key, _, ok = l.PreviousLeaf(100)
	require.True(t, ok)
	assert.Equal(t, uint64(30), key)
}

func TestRemove(t *testing.T) {
	l := New[string]()
	l.Insert(10, "a")

	v, ok := l.Remove(10)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 0, l.Len())

	_, ok = l.Remove(10)
	assert.False(t, ok)
}

func TestClosestKey(t *testing.T) {
	l := New[int]()
	l.Insert(10, 1)
	l.Insert(20, 2)

	key, ok := l.ClosestKey(15)
	require.True(t, ok)
	assert.Equal(t, uint64(20), key)

	key, ok = l.ClosestKey(10)
	require.True(t, ok)
	assert.Equal(t, uint64(10), key)
}
