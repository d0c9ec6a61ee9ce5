package install

// Estimator records per-item install progress. Values are clamped to
// [0,100] and never decrease within a session; Reset starts a new session
// at the given seed.
type Estimator struct {
	values map[int]float64
}

// NewEstimator creates an empty estimator.
func NewEstimator() *Estimator {
	return &Estimator{values: make(map[int]float64)}
}

// Set records a progress value and returns the effective one: the incoming
// value clamped to [0,100] and floored at the previously recorded value.
func (e *Estimator) Set(id int, v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	if prev, ok := e.values[id]; ok && prev > v {
		v = prev
	}
	e.values[id] = v
	return v
}

// Get returns the last recorded value for the item.
func (e *Estimator) Get(id int) float64 {
	return e.values[id]
}

// Reset starts a fresh session for the item at the seed value, discarding
// the monotonicity floor of the previous session.
func (e *Estimator) Reset(id int, seed float64) {
	e.values[id] = seed
}
