package bench

import (
	"fmt"
	"io"
	"time"
)

// Row summarizes a pairwise measurement.
type Row struct {
	Name         string        `json:"name"`
	Samples      int           `json:"samples"`
	MinA         time.Duration `json:"min_a_ns"`
	MinB         time.Duration `json:"min_b_ns"`
	MinDelta     time.Duration `json:"min_delta_ns"`
	MeanA        time.Duration `json:"mean_a_ns"`
	MeanB        time.Duration `json:"mean_b_ns"`
	MeanDelta    time.Duration `json:"mean_delta_ns"`
	MeanDeltaPct float64       `json:"mean_delta_pct"`
}

// Summarize reduces samples to a Row. Deltas are B minus A, so a negative
// delta means B was faster.
func Summarize(name string, samples []Sample) Row {
	row := Row{Name: name, Samples: len(samples)}
	if len(samples) == 0 {
		return row
	}

	row.MinA, row.MinB = samples[0].A, samples[0].B
	var sumA, sumB time.Duration
	for _, s := range samples {
		row.MinA = min(row.MinA, s.A)
		row.MinB = min(row.MinB, s.B)
		sumA += s.A
		sumB += s.B
	}

	n := time.Duration(len(samples))
	row.MeanA = sumA / n
	row.MeanB = sumB / n
	row.MinDelta = row.MinB - row.MinA
	row.MeanDelta = row.MeanB - row.MeanA
	if row.MeanA > 0 {
		row.MeanDeltaPct = 100 * float64(row.MeanDelta) / float64(row.MeanA)
	}

	return row
}

const (
	headerFormat = "%-40s %10s %10s %10s %10s %10s %10s %10s\n"
	rowFormat    = "%-40s %10d %10d %10d %10d %10d %10d %9.2f%%\n"
)

// WriteTableHeader writes the column header used by WriteRow.
func WriteTableHeader(w io.Writer) error {
	_, err := fmt.Fprintf(w, headerFormat,
		"name", "A min", "B min", "min ∆", "A mean", "B mean", "mean ∆", "mean ∆ (%)")
	return err
}

// WriteRow writes one row, durations in nanoseconds.
func WriteRow(w io.Writer, r Row) error {
	_, err := fmt.Fprintf(w, rowFormat, r.Name,
		r.MinA.Nanoseconds(), r.MinB.Nanoseconds(), r.MinDelta.Nanoseconds(),
		r.MeanA.Nanoseconds(), r.MeanB.Nanoseconds(), r.MeanDelta.Nanoseconds(),
		r.MeanDeltaPct)
	return err
}

// WriteTable writes a header followed by rows.
func WriteTable(w io.Writer, rows []Row) error {
	if err := WriteTableHeader(w); err != nil {
		return err
	}
	for _, r := range rows {
		if err := WriteRow(w, r); err != nil {
			return err
		}
	}
	return nil
}
