//Package dataset loads labelled two-feature points for tree building and k-NN evaluation.
//
//Every loader keeps the rows of two selected classes, labelling the first class 1 and
//the second class 0, and collects the sorted distinct values of both features over
//all rows of the source.
package dataset

import (
	"github.com/yed1dya/machine-learning-ex3/golang/dtree"
)

//Dataset is a set of binary labelled points with the distinct observed feature values.
type Dataset struct {
	Points  []dtree.Point
	XValues []float64
	YValues []float64
}

//Candidates returns one split candidate per distinct x value followed by one per distinct y value.
func (d *Dataset) Candidates() []dtree.SplitCandidate {
	return dtree.CandidatesFromValues(d.XValues, d.YValues)
}

//CountLabels returns how many points carry label 0 and label 1.
func (d *Dataset) CountLabels() (zeros, ones int) {
	for _, p := range d.Points {
		if p.Label == 0 {
			zeros++
		} else {
			ones++
		}
	}
	return
}

//Classes selects the two classes kept by a loader.
type Classes struct {
	First, Second string
}

func (c Classes) label(class string) (int, bool) {
	switch class {
	case c.First:
		return 1, true
	case c.Second:
		return 0, true
	}
	return 0, false
}
