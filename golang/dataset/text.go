package dataset

import (
	"bufio"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"

	"github.com/yed1dya/machine-learning-ex3/golang/dtree"
)

//TextFormat gives the zero-based token positions of a whitespace separated record.
type TextFormat struct {
	XColumn, YColumn, ClassColumn int
}

//DefaultTextFormat reads the iris records "sl sw pl pw class" using sepal width and petal length.
func DefaultTextFormat() TextFormat {
	return TextFormat{XColumn: 1, YColumn: 2, ClassColumn: 4}
}

func (f TextFormat) width() int {
	w := f.XColumn
	if f.YColumn > w {
		w = f.YColumn
	}
	if f.ClassColumn > w {
		w = f.ClassColumn
	}
	return w + 1
}

func column(df dataframe.DataFrame, ind int) series.Series {
	return df.Col(df.Names()[ind])
}

//ReadText reads whitespace separated records from r.
func ReadText(r io.Reader, classes Classes, format TextFormat) (*Dataset, error) {
	records, err := tokenize(r, format.width())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Dataset{}, nil
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "loading records")
	}

	xs, err := floatColumn(df, format.XColumn)
	if err != nil {
		return nil, err
	}
	ys, err := floatColumn(df, format.YColumn)
	if err != nil {
		return nil, err
	}
	classNames := column(df, format.ClassColumn).Records()

	result := &Dataset{XValues: dtree.SortedUnique(xs), YValues: dtree.SortedUnique(ys)}
	for ind, class := range classNames {
		if label, ok := classes.label(class); ok {
			result.Points = append(result.Points, dtree.Point{X: xs[ind], Y: ys[ind], Label: label})
		}
	}
	return result, nil
}

//LoadText opens filename and reads it with ReadText.
func LoadText(filename string, classes Classes, format TextFormat) (*Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", filename)
	}
	defer f.Close()
	d, err := ReadText(f, classes, format)
	return d, errors.Wrapf(err, "reading %s", filename)
}

func tokenize(r io.Reader, width int) ([][]string, error) {
	var records [][]string
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) < width {
			return nil, errors.Errorf("line %d: %d fields, want at least %d", line, len(tokens), width)
		}
		records = append(records, tokens[:width])
	}
	return records, errors.Wrap(scanner.Err(), "scanning records")
}

func floatColumn(df dataframe.DataFrame, ind int) ([]float64, error) {
	col := column(df, ind)
	if col.Err != nil {
		return nil, errors.Wrapf(col.Err, "column %d", ind)
	}
	values := col.Float()
	for row, v := range values {
		if math.IsNaN(v) {
			return nil, errors.Errorf("row %d: column %d is not a number: %q", row+1, ind, col.Elem(row).String())
		}
	}
	return values, nil
}
