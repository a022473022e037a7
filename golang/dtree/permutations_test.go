package dtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermutationsOrder(t *testing.T) {
	perms := NewPermutations(4)
	var got [][3]int
	for perms.HasNext() {
		got = append(got, perms.GetNext())
		if perms.Rank() != len(got) {
			t.Fatalf("rank %d after %d triples", perms.Rank(), len(got))
		}
	}

	var want [][3]int
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			for c := 0; c < 4; c++ {
				if a != b && b != c && a != c {
					want = append(want, [3]int{a, b, c})
				}
			}
		}
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 24, PermutationCount(4))
}

func TestRootPermutationsContinueGlobalRanks(t *testing.T) {
	n := 5
	global := NewPermutations(n)
	for root := 0; root < n; root++ {
		perms := NewRootPermutations(n, root)
		for perms.HasNext() {
			triple := perms.GetNext()
			expected := global.GetNext()
			assert.Equal(t, expected, triple)
			assert.Equal(t, global.Rank(), perms.Rank())
		}
	}
	assert.False(t, global.HasNext())
}

func TestPermutationsOfTooFewIndices(t *testing.T) {
	assert.False(t, NewPermutations(2).HasNext())
	assert.False(t, NewRootPermutations(2, 0).HasNext())
	assert.Equal(t, 0, PermutationCount(1))
}
