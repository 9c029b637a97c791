package sim

import (
	"math"
	"sort"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// Stats summarizes final scores over many simulated games.
type Stats struct {
	Mean    float64 `json:"mean"`
	Var     float64 `json:"var"`
	StdDev  float64 `json:"stddev"`
	P50     float64 `json:"p50"`
	P90     float64 `json:"p90"`
	P99     float64 `json:"p99"`
	Best    int     `json:"best"`
	Worst   int     `json:"worst"`
	Perfect int     `json:"perfect"`
	// raw samples for histograms/exports
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	perfect := 0
	for i := n - 1; i >= 0 && cp[i] == bowling.PerfectScore; i-- {
		perfect++
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Best:    cp[n-1],
		Worst:   cp[0],
		Perfect: perfect,
		Samples: xs,
	}
}

// RunMonteCarlo bowls trials games with profile p and summarizes the final
// scores. A nil rng uses the crypto source.
func RunMonteCarlo(p Profile, trials int, rng RandomSource) (Stats, error) {
	if err := p.Validate(); err != nil {
		return Stats{}, err
	}
	if trials <= 0 {
		return Stats{}, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		g, err := p.Bowl(rng)
		if err != nil {
			return Stats{}, err
		}
		samples[i] = *g.Final()
	}
	return calcStats(samples), nil
}
