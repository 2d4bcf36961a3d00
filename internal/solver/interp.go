package solver

import "sort"

// interpAt linearly interpolates the series (times, values) at t. Queries
// outside the grid clamp to the nearest endpoint; the integrator only asks
// for times within [times[0], times[len-1]].
func interpAt(times, values []float64, t float64) float64 {
	n := len(times)
	if t <= times[0] {
		return values[0]
	}
	if t >= times[n-1] {
		return values[n-1]
	}
	// index of the first grid time >= t
	j := sort.SearchFloat64s(times, t)
	if times[j] == t {
		return values[j]
	}
	frac := (t - times[j-1]) / (times[j] - times[j-1])
	return values[j-1] + frac*(values[j]-values[j-1])
}
