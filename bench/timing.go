package bench

import "time"

// Timed pairs the result of an operation with how long it took.
type Timed[T any] struct {
	Value T
	// Elapsed is the mean duration of a run.
	Elapsed time.Duration
	Runs    int
}

// Measure runs fn repeats times (at least once) and returns the last value
// with the mean duration.
func Measure[T any](repeats int, fn func() T) Timed[T] {
	t, _ := MeasureE(repeats, func() (T, error) {
		return fn(), nil
	})
	return t
}

// MeasureE is Measure for operations that can fail. It stops at the first
// error.
func MeasureE[T any](repeats int, fn func() (T, error)) (Timed[T], error) {
	repeats = max(repeats, 1)

	var (
		total time.Duration
		last  T
	)
	for i := 0; i < repeats; i++ {
		start := time.Now()
		v, err := fn()
		total += time.Since(start)
		if err != nil {
			return Timed[T]{}, err
		}
		last = v
	}
	return Timed[T]{Value: last, Elapsed: total / time.Duration(repeats), Runs: repeats}, nil
}
