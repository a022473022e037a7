package dtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func featureOneSeparable() []Point {
	return []Point{{0.5, 1, 0}, {1.5, 1, 0}, {2.5, 1, 0}, {0.5, 2, 1}, {1.5, 2, 1}, {2.5, 2, 1}}
}

func TestFindBestSplitPrefersLowerChildrenEntropy(t *testing.T) {
	candidates := []SplitCandidate{{0, 1.0}, {0, 2.0}, {1, 1.5}}
	root, left, right, err := FindBestSplit(candidates, featureOneSeparable())
	require.NoError(t, err)

	assert.Equal(t, 1, root.SplitFeature)
	assert.Equal(t, 1.5, root.SplitThreshold)
	assert.Same(t, left, root.Left)
	assert.Same(t, right, root.Right)
	assert.Equal(t, 0.0, left.Entropy+right.Entropy)
	assert.InDelta(t, 1.0, root.Entropy, 1e-12)
}

func TestFindBestSplitKeepsFirstOnTies(t *testing.T) {
	candidates := []SplitCandidate{{0, 1.0}, {0, 2.0}}
	root, _, _, err := FindBestSplit(candidates, featureOneSeparable())
	require.NoError(t, err)
	assert.Equal(t, 1.0, root.SplitThreshold)
}

func TestFindBestSplitWithoutCandidates(t *testing.T) {
	_, _, _, err := FindBestSplit(nil, featureOneSeparable())
	assert.Equal(t, ErrNoCandidates, err)
}

func TestBuildGreedyShape(t *testing.T) {
	points := featureOneSeparable()
	result, err := BuildGreedy(GreedyParams{
		Points:     points,
		Candidates: CandidatesFromPoints(points),
		Logger:     zaptest.NewLogger(t).Sugar(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Error)
	root := result.Root
	require.NotNil(t, root.Left)
	require.NotNil(t, root.Right)
	assert.False(t, root.Leaf)
	assert.False(t, root.Left.Leaf)
	assert.False(t, root.Right.Leaf)
	leaves := root.Leaves()
	require.Len(t, leaves, 4)
	total := 0
	for _, leaf := range leaves {
		assert.True(t, leaf.Leaf)
		total += len(leaf.Points)
	}
	assert.Equal(t, len(points), total)
	assert.Equal(t, result.Error, root.TotalError())
}

func TestExhaustiveNeverWorseThanGreedy(t *testing.T) {
	datasets := []struct {
		points             []Point
		exhaustive, greedy int
	}{
		{xorPoints(), 1, 2},
		{featureOneSeparable(), 0, 0},
		{[]Point{{0, 0, 0}, {1, 1, 1}}, 0, 0},
	}
	for _, dataset := range datasets {
		candidates := CandidatesFromPoints(dataset.points)
		exhaustive, err := BuildExhaustive(ExhaustiveParams{Points: dataset.points, Candidates: candidates})
		require.NoError(t, err)
		greedy, err := BuildGreedy(GreedyParams{Points: dataset.points, Candidates: candidates})
		require.NoError(t, err)

		assert.LessOrEqual(t, exhaustive.Error, greedy.Error)
		assert.Equal(t, dataset.exhaustive, exhaustive.Error)
		assert.Equal(t, dataset.greedy, greedy.Error)
	}
}
