package nasa

import "fmt"

// InvalidRangeError reports temperature bounds that are not strictly
// increasing and positive
type InvalidRangeError struct {
	TLow, TMid, THigh float64
	Msg               string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("nasa: invalid temperature range (T_low=%v, T_mid=%v, T_high=%v): %s",
		e.TLow, e.TMid, e.THigh, e.Msg)
}

// NonFiniteSampleError reports a NaN or infinite value from a Sampler
type NonFiniteSampleError struct {
	T        float64
	Quantity string
	Value    float64
}

func (e *NonFiniteSampleError) Error() string {
	return fmt.Sprintf("nasa: sampler returned %s = %v at %v K", e.Quantity, e.Value, e.T)
}

// InsufficientDataError reports a least-squares system without enough
// distinct temperatures to determine the Cp/R coefficients
type InsufficientDataError struct {
	Range  string
	Points int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("nasa: %d points in %s range, need at least %d distinct temperatures",
		e.Points, e.Range, numCp)
}
