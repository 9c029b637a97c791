// resolve.go
package bowling

// Resolve annotates every frame with its score and running total.
//
// Frames are resolved strictly left to right in one pass. A frame resolves
// once its own balls and bonus balls are known and the frame before it has
// resolved; everything after the first unresolved frame stays nil. Frames
// holding illegal rolls end both resolution and bonus lookahead.
func Resolve(g Game) Game {
	out := g.Clone()
	limit := legalPrefix(out)

	running := 0
	resolved := true
	for i := range out {
		out[i].Score, out[i].Cumulative = nil, nil
		if !resolved || i >= limit {
			resolved = false
			continue
		}
		score, ok := frameScore(out, i, limit)
		if !ok {
			resolved = false
			continue
		}
		running += score
		out[i].Score = intPtr(score)
		out[i].Cumulative = intPtr(running)
	}
	return out
}

// frameScore returns frame i's points including bonus balls, if known.
func frameScore(g Game, i, limit int) (int, bool) {
	rolls := g[i].Rolls
	kind := Classify(rolls, i == LastFrame)
	if kind == KindIncomplete {
		return 0, false
	}
	if i == LastFrame || kind == KindOpen {
		return sum(rolls), true
	}

	need := 1
	if kind == KindStrike {
		need = 2
	}
	bonus, ok := nextBalls(g, i, need, limit)
	if !ok {
		return 0, false
	}
	return Pins + sum(bonus), true
}

// nextBalls walks forward from frame i one ball at a time, collecting n balls.
// A frame that is not a strike contributes its recorded balls and then ends
// the walk, since its missing ball comes before anything in later frames.
func nextBalls(g Game, i, n, limit int) ([]int, bool) {
	balls := make([]int, 0, n)
	for j := i + 1; j < limit; j++ {
		for _, r := range g[j].Rolls {
			balls = append(balls, r)
			if len(balls) == n {
				return balls, true
			}
		}
		if j == LastFrame || Classify(g[j].Rolls, false) != KindStrike {
			break
		}
	}
	return balls, false
}

// legalPrefix returns the index of the first frame with illegal rolls.
func legalPrefix(g Game) int {
	for i, f := range g {
		if checkFrame(f.Rolls, i) != nil {
			return i
		}
	}
	return NumFrames
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
