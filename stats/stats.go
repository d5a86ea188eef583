package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// DistanceSummary aggregates the distances of a solved universe.
type DistanceSummary struct {
	Positions int
	Labeled0  int
	Labeled1  int
	Terminal  int
	Passes    int

	// Counts0[d] is the number of positions with dist0 == d.
	Counts0 []int
}

// Add records one position. A negative distance means unlabeled.
func (d *DistanceSummary) Add(dist0, dist1 int) {
	d.Positions++
	if dist1 >= 0 {
		d.Labeled1++
	}
	if dist0 < 0 {
		return
	}
	d.Labeled0++
	if dist0 == 0 {
		d.Terminal++
	}
	for len(d.Counts0) <= dist0 {
		d.Counts0 = append(d.Counts0, 0)
	}
	d.Counts0[dist0]++
}

// MaxDist0 returns the largest dist0, or -1 if nothing is labeled.
func (d *DistanceSummary) MaxDist0() int {
	return len(d.Counts0) - 1
}

// MeanStdev0 returns the mean and sample standard deviation of the
// labeled dist0 values, weighting each distance by its count.
func (d *DistanceSummary) MeanStdev0() (mean, stdev float64) {
	if d.Labeled0 == 0 {
		return 0, 0
	}
	dists := make([]float64, len(d.Counts0))
	weights := make([]float64, len(d.Counts0))
	for dist, ct := range d.Counts0 {
		dists[dist] = float64(dist)
		weights[dist] = float64(ct)
	}
	if d.Labeled0 == 1 {
		return stat.Mean(dists, weights), 0
	}
	return stat.MeanStdDev(dists, weights)
}

func (d *DistanceSummary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "positions: %d\n", d.Positions)
	fmt.Fprintf(&sb, "passes: %d\n", d.Passes)
	fmt.Fprintf(&sb, "terminal: %d\n", d.Terminal)
	fmt.Fprintf(&sb, "labeled (player 0 to move): %d\n", d.Labeled0)
	fmt.Fprintf(&sb, "labeled (player 1 to move): %d\n", d.Labeled1)
	fmt.Fprintf(&sb, "unlabeled (player 0 to move): %d\n", d.Positions-d.Labeled0)
	fmt.Fprintf(&sb, "max dist0: %d\n", d.MaxDist0())
	mean, stdev := d.MeanStdev0()
	fmt.Fprintf(&sb, "mean dist0: %.3f (stdev %.3f)\n", mean, stdev)
	for dist, ct := range d.Counts0 {
		fmt.Fprintf(&sb, "  dist0 %2d: %d\n", dist, ct)
	}
	return sb.String()
}

// WriteHistogram prints a histogram of dist0 values.
func (d *DistanceSummary) WriteHistogram(w io.Writer, bins, width int) error {
	if d.Labeled0 == 0 {
		_, err := io.WriteString(w, "no labeled positions\n")
		return err
	}
	data := make([]float64, 0, d.Labeled0)
	for dist, ct := range d.Counts0 {
		for i := 0; i < ct; i++ {
			data = append(data, float64(dist))
		}
	}
	hist := histogram.Hist(bins, data)
	return histogram.Fprint(w, hist, histogram.Linear(width))
}
