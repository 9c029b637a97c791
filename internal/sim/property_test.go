package sim_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/sim"
)

// Bowls random legal games ball by ball and checks the scoring invariants
// after every ball.
func TestRandomGameInvariants(t *testing.T) {
	profiles := []sim.Profile{
		{StrikeProb: 0.3, SpareProb: 0.5},
		{StrikeProb: 0.9, SpareProb: 0.9},
		{StrikeProb: 0.05, SpareProb: 0.1},
	}
	for _, p := range profiles {
		for seed := uint64(1); seed <= 200; seed++ {
			rng := sim.NewSeededRNG(seed)
			g := bowling.NewGame()
			prevMax := bowling.MaxPossible(g)
			for !g.Complete() {
				pins, err := p.NextBall(g, rng)
				require.NoError(t, err)
				g, err = g.Roll(pins)
				require.NoError(t, err, "seed %d balls %v", seed, g.Balls())

				checkCumulatives(t, g)
				if diff := cmp.Diff(g, bowling.Resolve(g)); diff != "" {
					t.Fatalf("seed %d: Resolve not idempotent:\n%s", seed, diff)
				}

				maxNow := bowling.MaxPossible(g)
				if maxNow > prevMax {
					t.Fatalf("seed %d: max possible rose from %d to %d after %v", seed, prevMax, maxNow, g.Balls())
				}
				if last := lastCumulative(g); maxNow < last || maxNow > bowling.PerfectScore {
					t.Fatalf("seed %d: max possible %d outside [%d, 300]", seed, maxNow, last)
				}
				prevMax = maxNow
			}

			final := g.Final()
			require.NotNil(t, final)
			if *final < 0 || *final > bowling.PerfectScore {
				t.Fatalf("seed %d: final %d out of range", seed, *final)
			}
			if *final != prevMax {
				t.Fatalf("seed %d: final %d != max possible %d", seed, *final, prevMax)
			}
		}
	}
}

// Rebuilding a game from its own running totals must reproduce them.
func TestReconstructReproducesRandomTotals(t *testing.T) {
	p := sim.Profile{StrikeProb: 0.3, SpareProb: 0.5}
	rng := sim.NewSeededRNG(7)
	for i := 0; i < 300; i++ {
		g, err := p.Bowl(rng)
		require.NoError(t, err)

		var totals [bowling.NumFrames]*int
		for f := range g {
			totals[f] = g[f].Cumulative
		}
		rec := bowling.Reconstruct(totals)
		require.NoError(t, rec.Game.Check(), "balls %v", g.Balls())
		require.NotNil(t, rec.Game.Final(), "balls %v", g.Balls())
		require.GreaterOrEqual(t, rec.Overall(), bowling.ConfidenceMedium, "balls %v", g.Balls())
		for f := range g {
			require.Equal(t, *g[f].Cumulative, *rec.Game[f].Cumulative, "frame %d of %v", f+1, g.Balls())
		}
	}
}

func checkCumulatives(t *testing.T, g bowling.Game) {
	t.Helper()
	prev := 0
	resolved := true
	for i, f := range g {
		if f.Cumulative == nil {
			resolved = false
			if f.Score != nil {
				t.Fatalf("frame %d has a score but no running total", i+1)
			}
			continue
		}
		if !resolved {
			t.Fatalf("frame %d resolved after an unresolved frame: %v", i+1, g.Balls())
		}
		if *f.Cumulative < prev || *f.Cumulative != prev+*f.Score {
			t.Fatalf("frame %d cumulative %d inconsistent with previous %d", i+1, *f.Cumulative, prev)
		}
		prev = *f.Cumulative
	}
}

func lastCumulative(g bowling.Game) int {
	last := 0
	for _, f := range g {
		if f.Cumulative == nil {
			break
		}
		last = *f.Cumulative
	}
	return last
}
