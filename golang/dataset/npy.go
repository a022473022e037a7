package dataset

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/yed1dya/machine-learning-ex3/golang/dtree"
)

//ReadNpy reads the content of an npy file into a dense matrix.
func ReadNpy(fileName string) (*mat.Dense, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", fileName)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading npy header of %s", fileName)
	}
	denseMat := &mat.Dense{}
	if err = r.Read(denseMat); err != nil {
		return nil, errors.Wrapf(err, "reading npy data of %s", fileName)
	}
	return denseMat, nil
}

//FromMatrix converts the rows (x, y, label) of a matrix with at least three columns to a dataset.
//Labels must be 0 or 1.
func FromMatrix(m mat.Matrix) (*Dataset, error) {
	h, w := m.Dims()
	if w < 3 {
		return nil, errors.Errorf("matrix has %d columns, want x, y and label", w)
	}
	result := &Dataset{Points: make([]dtree.Point, 0, h)}
	xs, ys := make([]float64, h), make([]float64, h)
	for p := 0; p < h; p++ {
		label := m.At(p, 2)
		if label != 0 && label != 1 {
			return nil, errors.Errorf("row %d: label %g is not binary", p, label)
		}
		xs[p], ys[p] = m.At(p, 0), m.At(p, 1)
		result.Points = append(result.Points, dtree.Point{X: xs[p], Y: ys[p], Label: int(label)})
	}
	result.XValues = dtree.SortedUnique(xs)
	result.YValues = dtree.SortedUnique(ys)
	return result, nil
}

//LoadNpy loads an N x 3 npy matrix of (x, y, label) rows.
func LoadNpy(fileName string) (*Dataset, error) {
	m, err := ReadNpy(fileName)
	if err != nil {
		return nil, err
	}
	d, err := FromMatrix(m)
	return d, errors.Wrap(err, fileName)
}
