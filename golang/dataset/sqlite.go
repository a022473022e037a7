package dataset

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/yed1dya/machine-learning-ex3/golang/dtree"
)

//Table names the table and columns holding the records in a SQLite database.
type Table struct {
	Name        string
	XColumn     string
	YColumn     string
	ClassColumn string
}

func quoteIdentifier(name string) string {
	return fmt.Sprintf("%q", name)
}

func (t Table) query() string {
	return fmt.Sprintf("SELECT %s, %s, %s FROM %s",
		quoteIdentifier(t.XColumn), quoteIdentifier(t.YColumn), quoteIdentifier(t.ClassColumn), quoteIdentifier(t.Name))
}

//LoadSQLite reads the records of a table in the SQLite database at filename.
func LoadSQLite(filename string, table Table, classes Classes) (*Dataset, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", filename)
	}
	defer db.Close()
	return ReadSQL(db, table, classes)
}

//ReadSQL reads the records of a table through an open database handle.
func ReadSQL(db *sql.DB, table Table, classes Classes) (*Dataset, error) {
	rows, err := db.Query(table.query())
	if err != nil {
		return nil, errors.Wrapf(err, "querying table %s", table.Name)
	}
	defer rows.Close()

	result := &Dataset{}
	var xs, ys []float64
	for rows.Next() {
		var x, y float64
		var class string
		if err = rows.Scan(&x, &y, &class); err != nil {
			return nil, errors.Wrapf(err, "scanning table %s", table.Name)
		}
		xs = append(xs, x)
		ys = append(ys, y)
		if label, ok := classes.label(class); ok {
			result.Points = append(result.Points, dtree.Point{X: x, Y: y, Label: label})
		}
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterating table %s", table.Name)
	}
	result.XValues = dtree.SortedUnique(xs)
	result.YValues = dtree.SortedUnique(ys)
	return result, nil
}
