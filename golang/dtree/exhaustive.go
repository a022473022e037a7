package dtree

import (
	"math"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	//ErrNotEnoughCandidates is returned when fewer than three split candidates are available.
	ErrNotEnoughCandidates = errors.New("at least three split candidates are required")
	//ErrNoCandidates is returned when a split is requested without candidates.
	ErrNoCandidates = errors.New("no split candidates")
	//ErrNoPoints is returned when a tree is requested for an empty point set.
	ErrNoPoints = errors.New("no points to build a tree from")
)

const defaultLogEvery = 10000

//ExhaustiveParams collect arguments required to run the exhaustive search.
type ExhaustiveParams struct {
	Points     []Point
	Candidates []SplitCandidate
	ThreadsNum int
	LogEvery   int
	Logger     *zap.SugaredLogger
}

//ExhaustiveResult is the best fixed-shape tree with its diagnostics.
//Rank is the 1-based enumeration position of Triple out of Total triples.
type ExhaustiveResult struct {
	Root      *TreeNode
	Error     int
	Triple    [3]int
	Rank      int
	Total     int
	Evaluated int
}

//GrowFixedShape builds the 7-node tree root -> (left, right) -> four leaves for the
//candidate indices in triple. Every call allocates a new node graph. The split nodes get
//their entropy, the leaves are voted and scored.
func GrowFixedShape(points []Point, candidates []SplitCandidate, triple [3]int) *TreeNode {
	root := NewSplitNode(points, candidates[triple[0]])
	left := NewSplitNode(nil, candidates[triple[1]])
	right := NewSplitNode(nil, candidates[triple[2]])

	root.Split(left, right)
	left.Split(NewLeafNode(), NewLeafNode())
	right.Split(NewLeafNode(), NewLeafNode())

	for _, node := range []*TreeNode{root, left, right} {
		node.ComputeEntropy()
	}
	for _, leaf := range root.Leaves() {
		leaf.Vote()
		leaf.ComputeError()
	}
	return root
}

func (params ExhaustiveParams) logger() *zap.SugaredLogger {
	if params.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return params.Logger
}

//BuildExhaustive enumerates every ordered triple of distinct candidates and returns the tree
//with the minimal total leaf error. The first triple in enumeration order wins ties and
//a tree with zero error stops the search.
func BuildExhaustive(params ExhaustiveParams) (*ExhaustiveResult, error) {
	n := len(params.Candidates)
	if n < 3 {
		return nil, errors.Wrapf(ErrNotEnoughCandidates, "got %d", n)
	}
	if len(params.Points) == 0 {
		return nil, ErrNoPoints
	}
	if params.LogEvery <= 0 {
		params.LogEvery = defaultLogEvery
	}
	params.logger().Infof("searching with %d possible params, %d trees", n, PermutationCount(n))
	if params.ThreadsNum > 1 {
		return buildExhaustiveParallel(params)
	}
	return buildExhaustiveSequential(params)
}

func buildExhaustiveSequential(params ExhaustiveParams) (*ExhaustiveResult, error) {
	log := params.logger()
	n := len(params.Candidates)
	result := &ExhaustiveResult{Error: math.MaxInt, Total: PermutationCount(n)}

	var perms TripleIterable = NewPermutations(n)
	for perms.HasNext() {
		triple := perms.GetNext()
		result.Evaluated++
		if result.Evaluated%params.LogEvery == 0 || result.Evaluated == 1 {
			log.Debugf("perm %d / %d: %v", result.Evaluated, result.Total, triple)
		}

		tree := GrowFixedShape(params.Points, params.Candidates, triple)
		treeError := tree.TotalError()
		if treeError < result.Error {
			result.adopt(tree, treeError, triple, perms.Rank())
			log.Infof("best error = %d at try %d", treeError, perms.Rank())
			if treeError == 0 {
				break
			}
		}
	}
	return result, nil
}

//adopt makes the result the owner of a tree grown in the current iteration.
func (result *ExhaustiveResult) adopt(tree *TreeNode, treeError int, triple [3]int, rank int) {
	result.Root = tree
	result.Error = treeError
	result.Triple = triple
	result.Rank = rank
}

//rootScan is the best triple among those that share a root candidate.
type rootScan struct {
	valid     bool
	err       int
	rank      int
	triple    [3]int
	evaluated int
}

//TaskScanRoot scans all triples of one root candidate and stores the result in its slot.
type TaskScanRoot struct {
	results []rootScan
	root    int
	scan    func(root int) rootScan
}

//Execute runs the scan.
func (task *TaskScanRoot) Execute() {
	task.results[task.root] = task.scan(task.root)
}

func buildExhaustiveParallel(params ExhaustiveParams) (*ExhaustiveResult, error) {
	log := params.logger()
	n := len(params.Candidates)

	// smallest root index that reached a zero-error tree
	var zeroRoot int64 = math.MaxInt64

	scan := func(root int) (best rootScan) {
		var perms TripleIterable = NewRootPermutations(n, root)
		for perms.HasNext() {
			if int64(root) > atomic.LoadInt64(&zeroRoot) {
				return
			}
			triple := perms.GetNext()
			best.evaluated++
			treeError := GrowFixedShape(params.Points, params.Candidates, triple).TotalError()
			if !best.valid || treeError < best.err {
				best = rootScan{valid: true, err: treeError, rank: perms.Rank(), triple: triple, evaluated: best.evaluated}
				if treeError == 0 {
					lowerZeroRoot(&zeroRoot, int64(root))
					return
				}
			}
		}
		return
	}

	results := make([]rootScan, n)
	taskPool := NewPool(params.ThreadsNum)
	for root := 0; root < n; root++ {
		taskPool.AddTask(&TaskScanRoot{results, root, scan})
	}
	taskPool.Close()
	taskPool.WaitAll()

	result := &ExhaustiveResult{Error: math.MaxInt, Total: PermutationCount(n)}
	firstTime := true
	var best rootScan
	for _, current := range results {
		result.Evaluated += current.evaluated
		if !current.valid {
			continue
		}
		if firstTime || current.err < best.err || (current.err == best.err && current.rank < best.rank) {
			firstTime = false
			best = current
		}
	}
	if firstTime {
		return nil, errors.New("no tree was evaluated")
	}

	result.adopt(GrowFixedShape(params.Points, params.Candidates, best.triple), best.err, best.triple, best.rank)
	log.Infof("best error = %d at try %d (%d trees evaluated on %d threads)", result.Error, result.Rank, result.Evaluated, params.ThreadsNum)
	return result, nil
}

func lowerZeroRoot(zeroRoot *int64, root int64) {
	for {
		current := atomic.LoadInt64(zeroRoot)
		if root >= current || atomic.CompareAndSwapInt64(zeroRoot, current, root) {
			return
		}
	}
}
