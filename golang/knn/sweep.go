package knn

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gorgonia.org/tensor"

	"github.com/yed1dya/machine-learning-ex3/golang/dtree"
)

//SweepParams collect arguments of a parameter sweep over distance orders and neighbour counts.
type SweepParams struct {
	Points  []dtree.Point
	PValues []float64
	KValues []int
	Runs    int
	Seed    int64
	Logger  *zap.SugaredLogger
}

//Best is an extreme average error and the parameters reaching it.
type Best struct {
	Value float64
	P     float64
	K     int
}

//SweepResult holds per-run errors shaped (len(PValues), len(KValues), Runs) and their averages.
type SweepResult struct {
	PValues      []float64
	KValues      []int
	Runs         int
	Empirical    *tensor.Dense
	True         *tensor.Dense
	AvgEmpirical *mat.Dense
	AvgTrue      *mat.Dense
	MinEmpirical Best
	MinTrue      Best
	MinDiff      Best
}

//FormatP renders a distance order, with "inf" for the maximum norm.
func FormatP(p float64) string {
	if math.IsInf(p, 1) {
		return "inf"
	}
	return strconv.FormatFloat(p, 'g', -1, 64)
}

//Sweep averages empirical and true errors over Runs random partitions for every (p, k).
//Partitions with an empty side are redrawn.
func Sweep(params SweepParams) (*SweepResult, error) {
	log := params.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if len(params.Points) < 2 {
		return nil, errors.Errorf("need at least two points, got %d", len(params.Points))
	}
	if params.Runs < 1 || len(params.PValues) == 0 || len(params.KValues) == 0 {
		return nil, errors.New("sweep needs at least one run, one p and one k")
	}
	for _, k := range params.KValues {
		if k < 1 {
			return nil, errors.Errorf("neighbour count must be positive, got %d", k)
		}
	}

	np, nk := len(params.PValues), len(params.KValues)
	result := &SweepResult{
		PValues:      params.PValues,
		KValues:      params.KValues,
		Runs:         params.Runs,
		Empirical:    tensor.New(tensor.WithShape(np, nk, params.Runs), tensor.Of(tensor.Float64)),
		True:         tensor.New(tensor.WithShape(np, nk, params.Runs), tensor.Of(tensor.Float64)),
		AvgEmpirical: mat.NewDense(np, nk, nil),
		AvgTrue:      mat.NewDense(np, nk, nil),
		MinEmpirical: Best{Value: math.Inf(1)},
		MinTrue:      Best{Value: math.Inf(1)},
		MinDiff:      Best{Value: math.Inf(1)},
	}

	rng := rand.New(rand.NewSource(params.Seed))
	empErrors := make([]float64, params.Runs)
	trueErrors := make([]float64, params.Runs)
	for i, p := range params.PValues {
		for j, k := range params.KValues {
			for run := 0; run < params.Runs; run++ {
				train, test := RandomPartition(params.Points, rng)
				for len(train) == 0 || len(test) == 0 {
					train, test = RandomPartition(params.Points, rng)
				}
				e, tr, err := Evaluate(p, k, train, test)
				if err != nil {
					return nil, errors.Wrapf(err, "p=%s k=%d run %d", FormatP(p), k, run)
				}
				empErrors[run], trueErrors[run] = e, tr
				if err = result.Empirical.SetAt(e, i, j, run); err != nil {
					return nil, err
				}
				if err = result.True.SetAt(tr, i, j, run); err != nil {
					return nil, err
				}
			}
			avgEmp, avgTrue := stat.Mean(empErrors, nil), stat.Mean(trueErrors, nil)
			result.AvgEmpirical.Set(i, j, avgEmp)
			result.AvgTrue.Set(i, j, avgTrue)
			log.Infof("p=%s k=%d avg emp=%.4f avg true=%.4f avg diff=%.4f", FormatP(p), k, avgEmp, avgTrue, avgTrue-avgEmp)

			result.MinEmpirical.update(avgEmp, p, k)
			result.MinTrue.update(avgTrue, p, k)
			result.MinDiff.update(math.Abs(avgEmp-avgTrue), p, k)
		}
	}
	log.Infof("min true error: %.4f with p=%s, k=%d", result.MinTrue.Value, FormatP(result.MinTrue.P), result.MinTrue.K)
	return result, nil
}

func (b *Best) update(value, p float64, k int) {
	if value < b.Value {
		*b = Best{Value: value, P: p, K: k}
	}
}

//RunErrors returns the per-run empirical and true errors for the i-th p and the j-th k.
func (r *SweepResult) RunErrors(i, j int) (empirical, trueErrors []float64, err error) {
	empirical = make([]float64, r.Runs)
	trueErrors = make([]float64, r.Runs)
	for run := 0; run < r.Runs; run++ {
		e, err := r.Empirical.At(i, j, run)
		if err != nil {
			return nil, nil, err
		}
		tr, err := r.True.At(i, j, run)
		if err != nil {
			return nil, nil, err
		}
		empirical[run], trueErrors[run] = e.(float64), tr.(float64)
	}
	return empirical, trueErrors, nil
}

//WriteTable writes the averages, one row per (p, k), followed by the minimal true error.
func (r *SweepResult) WriteTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "p    k     avg emp       avg true        avg diff\n\n"); err != nil {
		return err
	}
	for i, p := range r.PValues {
		for j, k := range r.KValues {
			avgEmp, avgTrue := r.AvgEmpirical.At(i, j), r.AvgTrue.At(i, j)
			if _, err := fmt.Fprintf(w, "%-5s%-6d%-14.4f%-16.4f%.4f\n", FormatP(p), k, avgEmp, avgTrue, avgTrue-avgEmp); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "min true error: %.4f with p=%s, k=%d\n", r.MinTrue.Value, FormatP(r.MinTrue.P), r.MinTrue.K)
	return err
}

//SaveTrueErrors writes the average true error grid to filename in npy format.
func (r *SweepResult) SaveTrueErrors(filename string) error {
	dst, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %s", filename)
	}
	if err = npyio.Write(dst, r.AvgTrue); err != nil {
		dst.Close()
		return errors.Wrapf(err, "writing %s", filename)
	}
	return dst.Close()
}
