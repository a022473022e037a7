//Package knn estimates the empirical and true error of a k-nearest-neighbour classifier
//over labelled two-feature points.
package knn

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/yed1dya/machine-learning-ex3/golang/dtree"
)

//ErrEmptyPartition is returned when the train or the test partition has no points.
var ErrEmptyPartition = errors.New("empty train or test partition")

//Distance returns the L_p distance between the coordinates of a and b. p = +Inf is the maximum norm.
func Distance(p float64, a, b dtree.Point) float64 {
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, p)
}

//signedLabel maps label 1 to +1 and label 0 to -1.
func signedLabel(label int) int {
	if label == 1 {
		return 1
	}
	return -1
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

//Classify returns the sign of the summed signed labels of the k base points nearest to point.
//Equal distances keep base order. A zero sum yields 0, which never matches a label.
//k is clamped to [0, len(base)].
func Classify(p float64, k int, base []dtree.Point, point dtree.Point) int {
	distances := make([]float64, len(base))
	indices := make([]int, len(base))
	for ind, other := range base {
		distances[ind] = Distance(p, point, other)
		indices[ind] = ind
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return distances[indices[i]] < distances[indices[j]]
	})
	if k > len(indices) {
		k = len(indices)
	}
	if k < 0 {
		k = 0
	}
	sum := 0
	for _, ind := range indices[:k] {
		sum += signedLabel(base[ind].Label)
	}
	return sign(sum)
}

//ErrorRate returns the share of points misclassified by the k nearest neighbours taken from base.
func ErrorRate(p float64, k int, base, points []dtree.Point) (float64, error) {
	if k < 1 {
		return math.NaN(), errors.Errorf("neighbour count must be positive, got %d", k)
	}
	if len(base) == 0 || len(points) == 0 {
		return math.NaN(), ErrEmptyPartition
	}
	misses := 0
	for _, point := range points {
		if Classify(p, k, base, point) != signedLabel(point.Label) {
			misses++
		}
	}
	return float64(misses) / float64(len(points)), nil
}

//Evaluate returns the empirical error (train against itself) and the true error (test against train).
func Evaluate(p float64, k int, train, test []dtree.Point) (empirical, trueError float64, err error) {
	if len(train) == 0 || len(test) == 0 {
		return math.NaN(), math.NaN(), ErrEmptyPartition
	}
	if empirical, err = ErrorRate(p, k, train, train); err != nil {
		return
	}
	trueError, err = ErrorRate(p, k, train, test)
	return
}

//RandomPartition sends every point to train with probability one half and to test otherwise.
func RandomPartition(points []dtree.Point, rng *rand.Rand) (train, test []dtree.Point) {
	for _, point := range points {
		if rng.Float64() < 0.5 {
			train = append(train, point)
		} else {
			test = append(test, point)
		}
	}
	return
}
