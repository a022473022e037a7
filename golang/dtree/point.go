package dtree

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/hashset"
)

//Point is one labelled two-dimensional sample. Label is either 0 or 1.
type Point struct {
	X, Y  float64
	Label int
}

//Value returns the value of the point at the given feature index: X for 0, Y for 1.
func (p Point) Value(feature int) float64 {
	if feature == 0 {
		return p.X
	}
	return p.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %d)", p.X, p.Y, p.Label)
}

//SplitCandidate is a binary routing rule: a point goes left iff its value at Feature is <= Threshold.
type SplitCandidate struct {
	Feature   int
	Threshold float64
}

func (c SplitCandidate) String() string {
	return fmt.Sprintf("f_%d <= %g", c.Feature, c.Threshold)
}

//CandidatesFromValues creates one candidate per x value (feature 0) followed by one per y value (feature 1).
func CandidatesFromValues(xValues, yValues []float64) []SplitCandidate {
	candidates := make([]SplitCandidate, 0, len(xValues)+len(yValues))
	for _, x := range xValues {
		candidates = append(candidates, SplitCandidate{Feature: 0, Threshold: x})
	}
	for _, y := range yValues {
		candidates = append(candidates, SplitCandidate{Feature: 1, Threshold: y})
	}
	return candidates
}

//SortedUnique returns the distinct values in increasing order.
func SortedUnique(values []float64) []float64 {
	set := hashset.New()
	for _, v := range values {
		set.Add(v)
	}
	result := make([]float64, 0, set.Size())
	for _, v := range set.Values() {
		result = append(result, v.(float64))
	}
	sort.Float64s(result)
	return result
}

//DistinctSorted returns the sorted distinct values observed at the given feature.
func DistinctSorted(points []Point, feature int) []float64 {
	values := make([]float64, len(points))
	for ind, p := range points {
		values[ind] = p.Value(feature)
	}
	return SortedUnique(values)
}

//CandidatesFromPoints builds candidates from the distinct observed values of both features.
func CandidatesFromPoints(points []Point) []SplitCandidate {
	return CandidatesFromValues(DistinctSorted(points, 0), DistinctSorted(points, 1))
}
