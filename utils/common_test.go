package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyThenNil(t *testing.T) {
	assert.Nil(t, EmptyThenNil(""))
	v := EmptyThenNil("dev@example.com")
	assert.NotNil(t, v)
	assert.Equal(t, "dev@example.com", *v)
}

func TestSafeDereference(t *testing.T) {
	assert.Equal(t, "", SafeDereference(nil))
	assert.Equal(t, "x", SafeDereference(Ptr("x")))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 3, OrDefault[int](nil, 3))
	assert.Equal(t, 7, OrDefault(Ptr(7), 3))
}

func TestMap(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(v int) int { return v * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)
}

func TestFilter(t *testing.T) {
	odd := Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 1 })
	assert.Equal(t, []int{1, 3}, odd)
}

func TestFlat(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Flat([][]int{{1}, {2, 3}}))
}
