package bench

import (
	"math"
	"time"

	"github.com/viterin/vek"
)

// Timing summarizes the repetitions of one variant.
type Timing struct {
	Mean   time.Duration
	Min    time.Duration
	Max    time.Duration
	StdDev time.Duration
}

// Micros returns the mean in whole microseconds, the unit of the CSV output.
func (t Timing) Micros() int64 {
	return t.Mean.Microseconds()
}

func summarize(samples []time.Duration) Timing {
	if len(samples) == 0 {
		return Timing{}
	}

	ns := make([]float64, len(samples))
	for i, s := range samples {
		ns[i] = float64(s.Nanoseconds())
	}

	mean := vek.Mean(ns)
	dev := vek.SubNumber(ns, mean)
	std := math.Sqrt(vek.Dot(dev, dev) / float64(len(ns)))

	return Timing{
		Mean:   time.Duration(mean),
		Min:    time.Duration(vek.Min(ns)),
		Max:    time.Duration(vek.Max(ns)),
		StdDev: time.Duration(std),
	}
}

// ratio returns num/den, or 0 when den is zero. Very small arrays can
// finish below the clock resolution.
func ratio(num, den time.Duration) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}
