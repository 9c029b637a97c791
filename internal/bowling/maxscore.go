package bowling

// FirstIncomplete returns the index of the first frame whose running total is
// not yet known, or NumFrames once the whole game has resolved.
func FirstIncomplete(g Game) int {
	r := Resolve(g)
	for i := range r {
		if r[i].Cumulative == nil {
			return i
		}
	}
	return NumFrames
}

// MaxPossible returns the highest final score still reachable.
//
// Every recorded ball is kept and every missing ball is assumed to knock down
// all pins standing: a strike on a fresh rack, the spare otherwise. From the
// first incomplete frame on that is 30 per unplayed frame, 30 for a tenth
// frame opened with a strike, 20 after a tenth-frame spare or single
// non-strike ball, and nothing more for a finished open tenth. The result
// never exceeds 300, never drops below the last resolved total and equals
// the final score once the game is over.
//
// It takes no first-incomplete-frame index: the index is derived from g
// (FirstIncomplete reports it), so callers cannot pass one that disagrees
// with the rolls.
func MaxPossible(g Game) int {
	best := 0
	for _, f := range Resolve(fillStrikes(g)) {
		if f.Cumulative == nil {
			break
		}
		best = *f.Cumulative
	}
	return best
}

// fillStrikes completes every frame with the largest legal balls, stopping
// at the first frame holding illegal rolls.
func fillStrikes(g Game) Game {
	out := g.Clone()
	for i := range out {
		if checkFrame(out[i].Rolls, i) != nil {
			break
		}
		for Classify(out[i].Rolls, i == LastFrame) == KindIncomplete {
			out[i].Rolls = append(out[i].Rolls, bestBall(i, out[i].Rolls))
		}
	}
	return out
}

func bestBall(frame int, prior []int) int {
	for v := Pins; v > 0; v-- {
		if ValidRoll(v, frame, len(prior)+1, prior) {
			return v
		}
	}
	return 0
}
