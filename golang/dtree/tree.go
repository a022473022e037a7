package dtree

import (
	"fmt"
	"math"
	"strconv"
)

//TreeNode is a node of a binary decision tree. An internal node carries a split rule and
//two children once split; a leaf carries a label and its misclassification error.
type TreeNode struct {
	Points         []Point
	Leaf           bool
	SplitFeature   int
	SplitThreshold float64
	Label          int
	Error          int
	Entropy        float64
	Left, Right    *TreeNode
}

//NewSplitNode creates an internal node seeded with points and governed by the candidate rule.
func NewSplitNode(points []Point, candidate SplitCandidate) *TreeNode {
	return &TreeNode{Points: points, SplitFeature: candidate.Feature, SplitThreshold: candidate.Threshold}
}

//NewLeafNode creates an empty leaf.
func NewLeafNode() *TreeNode {
	return &TreeNode{Leaf: true, SplitThreshold: math.Inf(1)}
}

//NewEmptyNode creates an empty internal node without a meaningful split rule.
func NewEmptyNode() *TreeNode {
	return &TreeNode{SplitThreshold: math.Inf(1)}
}

//IsLeaf returns whether the node is a leaf.
func (node *TreeNode) IsLeaf() bool {
	return node.Leaf
}

//Candidate returns the split rule of an internal node.
func (node *TreeNode) Candidate() SplitCandidate {
	return SplitCandidate{Feature: node.SplitFeature, Threshold: node.SplitThreshold}
}

//Split partitions the points of the node into left and right by the node's rule and
//attaches both as children. The partition is stable; an empty side is legal.
func (node *TreeNode) Split(left, right *TreeNode) {
	node.Left, node.Right = left, right
	for _, p := range node.Points {
		if p.Value(node.SplitFeature) <= node.SplitThreshold {
			left.Points = append(left.Points, p)
		} else {
			right.Points = append(right.Points, p)
		}
	}
}

func (node *TreeNode) labelCounts() (zeros, ones int) {
	for _, p := range node.Points {
		if p.Label == 0 {
			zeros++
		} else {
			ones++
		}
	}
	return
}

//ComputeEntropy stores and returns the binary entropy of the node's labels.
//Empty and pure subsets have entropy 0.
func (node *TreeNode) ComputeEntropy() float64 {
	n := len(node.Points)
	a, b := node.labelCounts()
	if n < 1 || a == 0 || b == 0 {
		node.Entropy = 0
		return 0
	}
	fn, fa, fb := float64(n), float64(a), float64(b)
	node.Entropy = (fa/fn)*math.Log2(fn/fa) + (fb/fn)*math.Log2(fn/fb)
	return node.Entropy
}

//Vote sets the label of the node to the majority class. Ties go to label 1.
func (node *TreeNode) Vote() int {
	zeros, ones := node.labelCounts()
	if zeros > ones {
		node.Label = 0
	} else {
		node.Label = 1
	}
	return node.Label
}

//ComputeError stores and returns the number of points whose label differs from the node label.
func (node *TreeNode) ComputeError() int {
	node.Error = 0
	for _, p := range node.Points {
		if p.Label != node.Label {
			node.Error++
		}
	}
	return node.Error
}

//Leaves returns the leaves of the subtree in depth-first, left-then-right order.
func (node *TreeNode) Leaves() []*TreeNode {
	if node == nil {
		return nil
	}
	if node.Leaf {
		return []*TreeNode{node}
	}
	return append(node.Left.Leaves(), node.Right.Leaves()...)
}

//TotalError sums the errors of all leaves of the subtree.
func (node *TreeNode) TotalError() int {
	total := 0
	for _, leaf := range node.Leaves() {
		total += leaf.Error
	}
	return total
}

//Classify routes a point down to a leaf and returns the leaf label.
func (node *TreeNode) Classify(p Point) int {
	current := node
	for current != nil && !current.IsLeaf() {
		if p.Value(current.SplitFeature) <= current.SplitThreshold {
			current = current.Left
		} else {
			current = current.Right
		}
	}
	if current == nil {
		return 1
	}
	return current.Label
}

func formatThreshold(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (node *TreeNode) String() string {
	if node.Leaf {
		if len(node.Points) == 0 {
			return fmt.Sprintf("Leaf(label=%d, points=None)", node.Label)
		}
		return fmt.Sprintf("Leaf(label=%d, points=%d, error=%d)", node.Label, len(node.Points), node.Error)
	}
	if len(node.Points) == 0 {
		return fmt.Sprintf("Node(split_feature=%d, split_value=%s, points=None)", node.SplitFeature, formatThreshold(node.SplitThreshold))
	}
	return fmt.Sprintf("Node(split_feature=%d, split_value=%s, points=%d)", node.SplitFeature, formatThreshold(node.SplitThreshold), len(node.Points))
}
