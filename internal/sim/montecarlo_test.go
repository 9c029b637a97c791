package sim

import "testing"

func TestCalcStats(t *testing.T) {
	s := calcStats([]int{300, 100, 200, 300})
	if s.Mean != 225 {
		t.Fatalf("mean=%f want 225", s.Mean)
	}
	if s.Best != 300 || s.Worst != 100 || s.Perfect != 2 {
		t.Fatalf("best=%d worst=%d perfect=%d", s.Best, s.Worst, s.Perfect)
	}
	if s.P50 != 250 {
		t.Fatalf("p50=%f want 250", s.P50)
	}
	if got := calcStats(nil); got.Mean != 0 || got.Samples != nil {
		t.Fatalf("empty samples should give zero stats: %+v", got)
	}
}

func TestRunMonteCarloPerfectBowler(t *testing.T) {
	s, err := RunMonteCarlo(Profile{StrikeProb: 1, SpareProb: 1}, 50, NewSeededRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean != 300 || s.StdDev != 0 || s.Perfect != 50 {
		t.Fatalf("perfect bowler stats: %+v", s)
	}
}

func TestRunMonteCarloNeverMarks(t *testing.T) {
	s, err := RunMonteCarlo(Profile{}, 500, NewSeededRNG(3))
	if err != nil {
		t.Fatal(err)
	}
	// without strikes or spares every frame is worth at most 9
	if s.Best > 90 || s.Worst < 0 {
		t.Fatalf("best=%d worst=%d outside [0,90]", s.Best, s.Worst)
	}
}

func TestRunMonteCarloSeeded(t *testing.T) {
	p := Profile{StrikeProb: 0.4, SpareProb: 0.6}
	a, err := RunMonteCarlo(p, 200, NewSeededRNG(9))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := RunMonteCarlo(p, 200, NewSeededRNG(9))
	if a.Mean != b.Mean || a.P90 != b.P90 {
		t.Fatalf("same seed gave different runs: %v vs %v", a.Mean, b.Mean)
	}
	if a.Mean <= 0 || a.Mean > 300 {
		t.Fatalf("mean %f out of range", a.Mean)
	}
}

func TestRunMonteCarloRejectsBadProfile(t *testing.T) {
	if _, err := RunMonteCarlo(Profile{StrikeProb: 2}, 10, nil); err == nil {
		t.Fatalf("strike_prob > 1 must error")
	}
	s, err := RunMonteCarlo(Profile{StrikeProb: 0.5}, 0, nil)
	if err != nil || s.Mean != 0 {
		t.Fatalf("zero trials: %+v %v", s, err)
	}
}
