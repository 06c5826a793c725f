package nasa

import "math"

// MidpointPolicy chooses the breakpoint between the low and high ranges
// from the fitting grid and the sampled Cp/R. Implementations must be
// deterministic.
type MidpointPolicy interface {
	Select(T, CpoR []float64) (float64, error)
}

// Bisect picks the grid temperature at the middle index
type Bisect struct{}

func (Bisect) Select(T, _ []float64) (float64, error) {
	if len(T) == 0 {
		return 0, &InsufficientDataError{Range: "grid"}
	}
	return T[len(T)/2], nil
}

// MinResidual tries every grid temperature that leaves at least five points
// in each range and keeps the one with the smallest total squared Cp/R
// residual. Ties go to the lower temperature.
type MinResidual struct{}

func (MinResidual) Select(T, CpoR []float64) (float64, error) {
	n := len(T)
	best, bestT := math.Inf(1), 0.0
	for k := numCp - 1; k <= n-1-numCp; k++ {
		_, _, sse, err := fitRanges(T, CpoR, T[k])
		if err != nil {
			continue
		}
		if sse < best {
			best, bestT = sse, T[k]
		}
	}
	if math.IsInf(best, 1) {
		return 0, &InsufficientDataError{Range: "midpoint search", Points: n}
	}
	return bestT, nil
}
