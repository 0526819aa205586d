// Package report collects named results and prints them in insertion order.
package report

import (
	"fmt"
	"io"

	"github.com/elliotchance/orderedmap/v2"
)

// Report is an ordered set of named integer results.
type Report struct {
	values *orderedmap.OrderedMap[string, int64]
}

// New returns an empty report.
func New() *Report {
	return &Report{values: orderedmap.NewOrderedMap[string, int64]()}
}

// Set stores v under key. Setting an existing key keeps its position.
func (r *Report) Set(key string, v int64) {
	r.values.Set(key, v)
}

// WriteValues prints one bare value per line.
func (r *Report) WriteValues(w io.Writer) error {
	for el := r.values.Front(); el != nil; el = el.Next() {
		if _, err := fmt.Fprintln(w, el.Value); err != nil {
			return err
		}
	}
	return nil
}

// WriteLines prints "key: value" per line.
func (r *Report) WriteLines(w io.Writer) error {
	for el := r.values.Front(); el != nil; el = el.Next() {
		if _, err := fmt.Fprintf(w, "%s: %d\n", el.Key, el.Value); err != nil {
			return err
		}
	}
	return nil
}
