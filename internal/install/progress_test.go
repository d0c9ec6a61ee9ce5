package install

import "testing"

func TestEstimatorClamps(t *testing.T) {
	e := NewEstimator()
	if got := e.Set(1, -5); got != 0 {
		t.Errorf("Set(-5) = %v, want 0", got)
	}
	if got := e.Set(1, 150); got != 100 {
		t.Errorf("Set(150) = %v, want 100", got)
	}
}

func TestEstimatorMonotone(t *testing.T) {
	e := NewEstimator()
	e.Set(1, 40)
	if got := e.Set(1, 25); got != 40 {
		t.Errorf("Set(25) after 40 = %v, want 40", got)
	}
	if got := e.Set(1, 60); got != 60 {
		t.Errorf("Set(60) = %v, want 60", got)
	}
}

func TestEstimatorResetDiscardsFloor(t *testing.T) {
	e := NewEstimator()
	e.Set(1, 80)
	e.Reset(1, 1)
	if got := e.Get(1); got != 1 {
		t.Errorf("Get after reset = %v, want 1", got)
	}
	if got := e.Set(1, 10); got != 10 {
		t.Errorf("Set(10) after reset = %v, want 10", got)
	}
}

func TestEstimatorItemsIndependent(t *testing.T) {
	e := NewEstimator()
	e.Set(1, 70)
	if got := e.Set(2, 30); got != 30 {
		t.Errorf("Set on other item = %v, want 30", got)
	}
}
