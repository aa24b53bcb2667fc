// Package weights provides the small numeric helpers used for recency weighting and scoring
package weights

// Clip clamps v to the closed interval [lo, hi]
func Clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Linear returns n weights interpolated from start to end inclusive
// n <= 1 yields a single start weight
func Linear(start, end float64, n int) []float64 {
	if n <= 1 {
		return []float64{start}
	}
	step := (end - start) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// WeightedAverage is the weighted mean of values, 0 for empty input
// weights beyond len(values) are ignored and missing weights count as zero
func WeightedAverage(values, weights []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum, total float64
	for i, v := range values {
		w := 0.0
		if i < len(weights) {
			w = weights[i]
		}
		sum += v * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// Mean is the arithmetic mean, 0 for empty input
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
