package analysis

import "math"

// Stats holds the descriptive statistics of a set of marks.
type Stats struct {
	Mean   float64
	StdDev float64 // population standard deviation
	Max    int
	Min    int
}

// ComputeStats returns the statistics of values. values must be non-empty.
func ComputeStats(values []int) Stats {
	sum := 0
	hi, lo := values[0], values[0]
	for _, v := range values {
		sum += v
		if v > hi {
			hi = v
		}
		if v < lo {
			lo = v
		}
	}
	n := float64(len(values))
	mean := float64(sum) / n

	variance := 0.0
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= n

	return Stats{
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Max:    hi,
		Min:    lo,
	}
}
