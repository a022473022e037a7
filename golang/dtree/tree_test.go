package dtree

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelled(zeros, ones int) []Point {
	points := make([]Point, 0, zeros+ones)
	for ind := 0; ind < zeros; ind++ {
		points = append(points, Point{X: float64(ind), Y: 0, Label: 0})
	}
	for ind := 0; ind < ones; ind++ {
		points = append(points, Point{X: float64(ind), Y: 1, Label: 1})
	}
	return points
}

func TestSplitConservesAndRoutesPoints(t *testing.T) {
	points := []Point{{1, 5, 0}, {3, 2, 1}, {2, 2, 0}, {4, 1, 1}, {2, 9, 1}}
	node := NewSplitNode(points, SplitCandidate{Feature: 0, Threshold: 2})
	left, right := NewEmptyNode(), NewEmptyNode()
	node.Split(left, right)

	require.Equal(t, len(points), len(left.Points)+len(right.Points))
	assert.Same(t, left, node.Left)
	assert.Same(t, right, node.Right)
	assert.Equal(t, []Point{{1, 5, 0}, {2, 2, 0}, {2, 9, 1}}, left.Points)
	assert.Equal(t, []Point{{3, 2, 1}, {4, 1, 1}}, right.Points)
	for _, p := range left.Points {
		assert.LessOrEqual(t, p.X, 2.0)
	}
	for _, p := range right.Points {
		assert.Greater(t, p.X, 2.0)
	}
}

func TestSplitOnSecondFeatureWithEmptySide(t *testing.T) {
	points := []Point{{1, 5, 0}, {3, 2, 1}}
	node := NewSplitNode(points, SplitCandidate{Feature: 1, Threshold: 10})
	left, right := NewLeafNode(), NewLeafNode()
	node.Split(left, right)

	assert.Equal(t, points, left.Points)
	assert.Empty(t, right.Points)
	assert.Equal(t, 0.0, right.ComputeEntropy())
	assert.Equal(t, 1, right.Vote())
	assert.Equal(t, 0, right.ComputeError())
}

func TestEntropyOfEmptyAndPureSets(t *testing.T) {
	for _, points := range [][]Point{nil, labelled(4, 0), labelled(0, 7)} {
		node := &TreeNode{Points: points, Entropy: 0.5}
		if e := node.ComputeEntropy(); e != 0 {
			t.Fatalf("entropy of %v = %f, want 0", points, e)
		}
		assert.Equal(t, 0.0, node.Entropy)
	}
}

func TestEntropyIsSymmetricAndBounded(t *testing.T) {
	a := (&TreeNode{Points: labelled(3, 7)}).ComputeEntropy()
	b := (&TreeNode{Points: labelled(7, 3)}).ComputeEntropy()
	assert.InDelta(t, a, b, 1e-12)
	assert.InDelta(t, 0.8812908992306927, a, 1e-12)

	for zeros := 1; zeros < 10; zeros++ {
		e := (&TreeNode{Points: labelled(zeros, 10-zeros)}).ComputeEntropy()
		if e <= 0 || e > 1 {
			t.Fatalf("entropy %d:%d = %f, want (0, 1]", zeros, 10-zeros, e)
		}
	}
	half := (&TreeNode{Points: labelled(5, 5)}).ComputeEntropy()
	assert.InDelta(t, 1.0, half, 1e-12)
}

func TestVoteBreaksTiesTowardOne(t *testing.T) {
	assert.Equal(t, 1, (&TreeNode{Points: labelled(2, 2)}).Vote())
	assert.Equal(t, 1, (&TreeNode{}).Vote())
	assert.Equal(t, 0, (&TreeNode{Points: labelled(3, 2)}).Vote())
	assert.Equal(t, 1, (&TreeNode{Points: labelled(2, 3)}).Vote())
}

func TestErrorCountsMinorityAfterVote(t *testing.T) {
	node := &TreeNode{Leaf: true, Points: labelled(6, 2)}
	node.Vote()
	assert.Equal(t, 2, node.ComputeError())
	assert.Equal(t, 2, node.Error)

	pure := &TreeNode{Leaf: true, Points: labelled(0, 5)}
	pure.Vote()
	assert.Equal(t, 0, pure.ComputeError())
}

func TestErrorUsesExternallySetLabel(t *testing.T) {
	node := &TreeNode{Leaf: true, Points: labelled(6, 2), Label: 1}
	assert.Equal(t, 6, node.ComputeError())
}

func TestVoteAndErrorAreIdempotent(t *testing.T) {
	node := &TreeNode{Leaf: true, Points: labelled(4, 3)}
	label, nodeError := node.Vote(), node.ComputeError()
	for ind := 0; ind < 3; ind++ {
		if node.Vote() != label || node.ComputeError() != nodeError {
			t.Fatalf("repeated vote/error changed: %d/%d, want %d/%d", node.Label, node.Error, label, nodeError)
		}
	}
}

func TestCandidatesFromPoints(t *testing.T) {
	points := []Point{{2, 1, 0}, {1, 1, 1}, {2, 3, 1}}
	candidates := CandidatesFromPoints(points)
	assert.Equal(t, []SplitCandidate{{0, 1}, {0, 2}, {1, 1}, {1, 3}}, candidates)
}

func TestSortedUnique(t *testing.T) {
	assert.Equal(t, []float64{-1, 0.5, 2, 3}, SortedUnique([]float64{3, 0.5, 2, 3, -1, 0.5}))
	assert.Empty(t, SortedUnique(nil))
}

func TestClassifyAndLeaves(t *testing.T) {
	points := []Point{{0, 0, 0}, {0, 2, 1}, {2, 1, 1}, {2, 3, 0}}
	root := GrowFixedShape(points, CandidatesFromPoints(points), [3]int{0, 2, 3})

	leaves := root.Leaves()
	require.Len(t, leaves, 4)
	assert.Equal(t, 0, root.TotalError())
	for _, p := range points {
		assert.Equal(t, p.Label, root.Classify(p))
	}
}

func TestDraw(t *testing.T) {
	points := []Point{{0, 0, 0}, {1, 1, 1}}
	root := GrowFixedShape(points, CandidatesFromPoints(points), [3]int{0, 1, 2})

	var buf bytes.Buffer
	require.NoError(t, Draw(&buf, root))
	expected := "Node(split_feature=0, split_value=0, points=2)\n" +
		"    Node(split_feature=0, split_value=1, points=1)\n" +
		"        Leaf(label=0, points=1, error=0)\n" +
		"        Leaf(label=1, points=None)\n" +
		"    Node(split_feature=1, split_value=0, points=1)\n" +
		"        Leaf(label=1, points=None)\n" +
		"        Leaf(label=1, points=1, error=0)\n"
	assert.Equal(t, expected, buf.String())
}

func TestEmptyNodeString(t *testing.T) {
	node := NewEmptyNode()
	assert.Equal(t, "Node(split_feature=0, split_value=inf, points=None)", node.String())
	assert.True(t, math.IsInf(node.SplitThreshold, 1))
}
