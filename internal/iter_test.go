package internal

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermutations(t *testing.T) {
	assert := assert.New(t)

	var perms [][]int
	for perm := range Permutations([]int{1, 2, 3}) {
		perms = append(perms, perm)
	}

	assert.Len(perms, 6)
	assert.ElementsMatch([][]int{
		{1, 2, 3}, {1, 3, 2},
		{2, 1, 3}, {2, 3, 1},
		{3, 1, 2}, {3, 2, 1},
	}, perms)
}

func TestPermutations_Count(t *testing.T) {
	assert := assert.New(t)

	seen := map[string]bool{}
	for perm := range Permutations([]byte("abcde")) {
		seen[string(perm)] = true
	}

	assert.Len(seen, 120)
}

func TestPermutations_Small(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([][]int{nil}, slices.Collect(Permutations([]int(nil))))
	assert.Equal([][]int{{7}}, slices.Collect(Permutations([]int{7})))
}

func TestPermutations_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	input := []int{1, 2, 3, 4}
	count := 0
	for perm := range Permutations(input) {
		perm[0] = 99
		count++
		if count == 5 {
			break
		}
	}

	assert.Equal(5, count)
	assert.Equal([]int{1, 2, 3, 4}, input)
}
