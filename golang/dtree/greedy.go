package dtree

import (
	"math"

	"go.uber.org/zap"
)

//GreedyParams collect arguments required to build a greedy tree.
type GreedyParams struct {
	Points     []Point
	Candidates []SplitCandidate
	Logger     *zap.SugaredLogger
}

//GreedyResult is the tree built by BuildGreedy and its total leaf error.
type GreedyResult struct {
	Root  *TreeNode
	Error int
}

//FindBestSplit returns the split of points minimizing the summed entropy of both children,
//together with the two children. The first candidate wins ties. The entropy of the
//returned root is computed over the whole point set.
func FindBestSplit(candidates []SplitCandidate, points []Point) (root, left, right *TreeNode, err error) {
	if len(candidates) == 0 {
		return nil, nil, nil, ErrNoCandidates
	}
	bestEntropy := math.Inf(1)
	for _, candidate := range candidates {
		node := NewSplitNode(points, candidate)
		nodeLeft, nodeRight := NewEmptyNode(), NewEmptyNode()
		node.Split(nodeLeft, nodeRight)
		entropy := nodeLeft.ComputeEntropy() + nodeRight.ComputeEntropy()
		if entropy < bestEntropy {
			bestEntropy = entropy
			root, left, right = node, nodeLeft, nodeRight
		}
	}
	root.ComputeEntropy()
	return root, left, right, nil
}

//BuildGreedy builds the 7-node tree level by level: the root split and then an independent
//best split for each of its two subsets. The four deepest nodes become voted leaves.
func BuildGreedy(params GreedyParams) (*GreedyResult, error) {
	log := params.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if len(params.Points) == 0 {
		return nil, ErrNoPoints
	}

	log.Info("finding best split params for root...")
	root, left, right, err := FindBestSplit(params.Candidates, params.Points)
	if err != nil {
		return nil, err
	}
	log.Info("finding best split params for left...")
	newLeft, leafLL, leafLR, err := FindBestSplit(params.Candidates, left.Points)
	if err != nil {
		return nil, err
	}
	log.Info("finding best split params for right...")
	newRight, leafRL, leafRR, err := FindBestSplit(params.Candidates, right.Points)
	if err != nil {
		return nil, err
	}

	newLeft.Left, newLeft.Right = leafLL, leafLR
	newRight.Left, newRight.Right = leafRL, leafRR
	root.Left, root.Right = newLeft, newRight

	result := &GreedyResult{Root: root}
	log.Info("setting leaf decision labels")
	for _, leaf := range []*TreeNode{leafLL, leafLR, leafRL, leafRR} {
		leaf.Leaf = true
		leaf.Vote()
		result.Error += leaf.ComputeError()
	}
	log.Infof("best tree with error: %d", result.Error)
	return result, nil
}
