package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/liggitt/tabwriter"

	simdbmk "github.com/elafarge/simd-benchmarking"
)

// Factors are the speedups derived from the mean timings.
type Factors struct {
	// Vect is naive / vect.
	Vect float64
	// VectBis is mt_naive / mt_vect.
	VectBis float64
	// MT is naive / mt_naive.
	MT float64
	// MTVect is naive / mt_vect.
	MTVect float64
}

func computeFactors(t [numVariants]Timing) Factors {
	return Factors{
		Vect:    ratio(t[Naive].Mean, t[Vect].Mean),
		VectBis: ratio(t[MTNaive].Mean, t[MTVect].Mean),
		MT:      ratio(t[Naive].Mean, t[MTNaive].Mean),
		MTVect:  ratio(t[Naive].Mean, t[MTVect].Mean),
	}
}

// Report is the outcome of one Run.
type Report struct {
	RunID   uuid.UUID
	Started time.Time
	Size    int
	Lookup  int32
	K       int
	Seed    int64
	Workers int
	ISA     string
	Kernel  string
	Matches int

	Timings [numVariants]Timing
	// Modes holds the scan mode each variant actually used.
	Modes   [numVariants]simdbmk.Mode
	Factors Factors

	LimitChecked bool
	Verified     bool
}

// CSVHeader returns the column names of CSVRecord.
func CSVHeader() []string {
	return []string{
		"T_NAIVE", "T_VECT", "T_MT_NAIVE", "T_MT_VECT",
		"PERF_VECT", "PERF_VECT_BIS", "PERF_MT", "PERF_MT_VECT",
		"RUN_ID", "N",
	}
}

// CSVRecord returns the timings in microseconds followed by the factors,
// the run id and the array size.
func (r *Report) CSVRecord() []string {
	return []string{
		strconv.FormatInt(r.Timings[Naive].Micros(), 10),
		strconv.FormatInt(r.Timings[Vect].Micros(), 10),
		strconv.FormatInt(r.Timings[MTNaive].Micros(), 10),
		strconv.FormatInt(r.Timings[MTVect].Micros(), 10),
		formatFactor(r.Factors.Vect),
		formatFactor(r.Factors.VectBis),
		formatFactor(r.Factors.MT),
		formatFactor(r.Factors.MTVect),
		r.RunID.String(),
		strconv.Itoa(r.Size),
	}
}

func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// NewCSVWriter returns a space separated writer, the layout scripts parse.
func NewCSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ' '
	return cw
}

// WriteCSV writes the record, preceded by the header when header is set.
func (r *Report) WriteCSV(w io.Writer, header bool) error {
	cw := NewCSVWriter(w)
	if header {
		if err := cw.Write(CSVHeader()); err != nil {
			return err
		}
	}
	if err := cw.Write(r.CSVRecord()); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable renders the timings and factors for humans.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 8, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "run\t%s\n", r.RunID)
	fmt.Fprintf(tw, "size\t%d\n", r.Size)
	fmt.Fprintf(tw, "lookup\t%d\n", r.Lookup)
	fmt.Fprintf(tw, "matches\t%d\n", r.Matches)
	fmt.Fprintf(tw, "workers\t%d\n", r.Workers)
	fmt.Fprintf(tw, "kernel\t%s (cpu isa %s)\n", r.Kernel, r.ISA)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "VARIANT\tMODE\tMEAN\tMIN\tMAX\tSTDDEV")
	for _, v := range Variants() {
		t := r.Timings[v]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", v, r.Modes[v], t.Mean, t.Min, t.Max, t.StdDev)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "FACTOR\tVALUE")
	fmt.Fprintf(tw, "vect (naive / vect)\t%.3f\n", r.Factors.Vect)
	fmt.Fprintf(tw, "vect_bis (mt_naive / mt_vect)\t%.3f\n", r.Factors.VectBis)
	fmt.Fprintf(tw, "mt (naive / mt_naive)\t%.3f\n", r.Factors.MT)
	fmt.Fprintf(tw, "mt_vect (naive / mt_vect)\t%.3f\n", r.Factors.MTVect)

	return tw.Flush()
}
