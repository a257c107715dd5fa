package sim

// rollingMean computes a trailing simple moving average over the given
// window. The first window-1 positions are undefined and left as 0; callers
// drop the warm-up explicitly.
//
// Returned slice is aligned with the input: out[i] is the mean of
// values[i-window+1 .. i] for i >= window-1.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}
