package bowling

import (
	"fmt"
	"sort"
	"strings"
)

// Confidence grades how far a reconstructed frame can be trusted.
type Confidence int

const (
	// ConfidenceNone means no total was available for the frame.
	ConfidenceNone Confidence = iota
	// ConfidenceLow means the guess does not reproduce the total.
	ConfidenceLow
	// ConfidenceMedium means the total is reproduced by one of several splits.
	ConfidenceMedium
	// ConfidenceHigh means the total admits a single split (0 or 30 points).
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return "none"
	}
}

func (c Confidence) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// ParseConfidence parses the String form of a Confidence.
func ParseConfidence(s string) (Confidence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return ConfidenceNone, nil
	case "low":
		return ConfidenceLow, nil
	case "medium":
		return ConfidenceMedium, nil
	case "high":
		return ConfidenceHigh, nil
	}
	return ConfidenceNone, fmt.Errorf("unknown confidence %q", s)
}

// Reconstruction is a best-effort guess of rolls from running totals. Only
// the totals are trustworthy; the rolls are marked Guessed.
type Reconstruction struct {
	Game       Game
	Confidence [NumFrames]Confidence
}

// Overall returns the weakest per-frame confidence.
func (r Reconstruction) Overall() Confidence {
	overall := ConfidenceHigh
	for _, c := range r.Confidence {
		if c < overall {
			overall = c
		}
	}
	return overall
}

// Reconstruct guesses rolls consistent with per-frame running totals.
//
// Each frame's points come from consecutive totals. 20 or more is guessed as
// a strike, 10 to 19 as a spare (5/5 unless an earlier bonus dictates the
// first ball) and less than 10 as an open frame split evenly. Bonus balls
// owed by a guessed spare or strike are pushed into the following frame's
// first ball when its own points allow it. A missing or impossible total
// breaks the chain; later frames are left empty. If that guess fails to
// reproduce a usable total, every legal split of the usable frames is
// searched for one that reproduces them all.
func Reconstruct(totals [NumFrames]*int) Reconstruction {
	deltas, known, present := frameDeltas(totals)

	var g Game
	var owed []int
	for i := range g {
		if !known[i] {
			owed = nil
			continue
		}
		var rolls []int
		if i == LastFrame {
			rolls = guessTenth(deltas[i], owed)
		} else {
			rolls, owed = guessFrame(deltas, known, i, owed)
		}
		g[i] = Frame{Rolls: rolls, Guessed: true}
	}

	rec := grade(Resolve(g), deltas, known, present)
	if rec.misses(known) == 0 {
		return rec
	}
	// The greedy guess broke a total; look for any legal assignment that
	// reproduces them all, preferring splits close to the greedy one.
	search := searcher{deltas: deltas, hint: g, dead: make(map[searchKey]bool)}
	for i := range known {
		if known[i] {
			search.last = i
		}
	}
	var found Game
	if search.solve(&found, 0, nil) {
		if alt := grade(Resolve(found), deltas, known, present); alt.misses(known) < rec.misses(known) {
			return alt
		}
	}
	return rec
}

func grade(g Game, deltas [NumFrames]int, known, present [NumFrames]bool) Reconstruction {
	rec := Reconstruction{Game: g}
	for i, f := range g {
		switch {
		case known[i]:
			c := ConfidenceLow
			if f.Score != nil && *f.Score == deltas[i] {
				c = ConfidenceMedium
				if deltas[i] == 0 || deltas[i] == 3*Pins {
					c = ConfidenceHigh
				}
			}
			rec.Confidence[i] = c
		case present[i]:
			rec.Confidence[i] = ConfidenceLow
		}
	}
	return rec
}

// misses counts frames with a usable total that the guess does not reproduce.
func (r Reconstruction) misses(known [NumFrames]bool) int {
	n := 0
	for i, c := range r.Confidence {
		if known[i] && c == ConfidenceLow {
			n++
		}
	}
	return n
}

// Merge copies reconstructed rolls into frames of recorded that hold no
// recorded rolls (or only an earlier guess). Entered frames are never
// overwritten.
func Merge(recorded Game, rec Reconstruction) Game {
	out := recorded.Clone()
	for i := range out {
		if len(out[i].Rolls) > 0 && !out[i].Guessed {
			continue
		}
		if len(rec.Game[i].Rolls) == 0 {
			continue
		}
		out[i].Rolls = append([]int(nil), rec.Game[i].Rolls...)
		out[i].Guessed = true
	}
	return Resolve(out)
}

func frameDeltas(totals [NumFrames]*int) (deltas [NumFrames]int, known, present [NumFrames]bool) {
	prev := 0
	broken := false
	for i, t := range totals {
		if t == nil {
			broken = true
			continue
		}
		present[i] = true
		d := *t - prev
		prev = *t
		if broken || d < 0 || d > 3*Pins {
			broken = true
			continue
		}
		deltas[i] = d
		known[i] = true
	}
	return deltas, known, present
}

// guessFrame picks rolls for frame i (0-8) and returns the balls the frame
// owes to the frames after it.
func guessFrame(deltas [NumFrames]int, known [NumFrames]bool, i int, owed []int) ([]int, []int) {
	d := deltas[i]
	rolls := splitDelta(d, owed)
	if checkFrame(rolls, i) != nil {
		rolls = splitDelta(d, nil)
	}
	var rest []int
	if len(owed) > len(rolls) {
		rest = owed[len(rolls):]
	}

	switch Classify(rolls, false) {
	case KindSpare:
		return rolls, []int{d - Pins}
	case KindStrike:
		// Two balls worth more than a rack can only start with a strike.
		bonus := d - Pins
		switch {
		case len(rest) > 0:
			return rolls, []int{rest[0], bonus - rest[0]}
		case bonus > Pins, bonus == Pins && known[i+1] && deltas[i+1] >= 2*Pins:
			return rolls, []int{Pins, bonus - Pins}
		}
	}
	return rolls, nil
}

func splitDelta(d int, owed []int) []int {
	first := -1
	if len(owed) > 0 && owed[0] >= 0 && owed[0] <= Pins {
		first = owed[0]
	}
	if first == Pins && d < Pins {
		first = -1
	}
	switch {
	case first == Pins || (first < 0 && d >= 2*Pins):
		return []int{Pins}
	case d >= Pins:
		if first < 0 {
			first = Pins / 2
		}
		return []int{first, Pins - first}
	default:
		if first < 0 || first > d {
			first = (d + 1) / 2
		}
		return []int{first, d - first}
	}
}

// guessTenth picks the tenth-frame balls summing to d, preferring the split
// closest to the default guess among those that honour owed balls.
func guessTenth(d int, owed []int) []int {
	def := tenthDefault(d)
	if matchesOwed(def, owed) {
		return def
	}
	var best []int
	bestDist := 0
	for _, c := range tenthFrames(d) {
		if !matchesOwed(c, owed) {
			continue
		}
		if dist := distance(c, def); best == nil || dist < bestDist {
			best, bestDist = c, dist
		}
	}
	if best == nil {
		return def
	}
	return best
}

func tenthDefault(d int) []int {
	switch {
	case d >= 2*Pins:
		return []int{Pins, Pins, d - 2*Pins}
	case d >= Pins:
		return []int{Pins / 2, Pins / 2, d - Pins}
	default:
		return []int{(d + 1) / 2, d / 2}
	}
}

// tenthFrames enumerates every legal tenth frame worth d points.
func tenthFrames(d int) [][]int {
	var out [][]int
	for a := 0; a <= Pins; a++ {
		for b := 0; b <= Pins; b++ {
			if !ValidRoll(b, LastFrame, 2, []int{a}) {
				continue
			}
			if a != Pins && a+b != Pins {
				if a+b == d {
					out = append(out, []int{a, b})
				}
				continue
			}
			c := d - a - b
			if ValidRoll(c, LastFrame, 3, []int{a, b}) {
				out = append(out, []int{a, b, c})
			}
		}
	}
	return out
}

func matchesOwed(rolls, owed []int) bool {
	for k, o := range owed {
		if k >= len(rolls) || rolls[k] != o {
			return false
		}
	}
	return true
}

func distance(a, b []int) int {
	n := max(len(a), len(b))
	dist := 0
	for k := 0; k < n; k++ {
		var x, y int
		if k < len(a) {
			x = a[k]
		}
		if k < len(b) {
			y = b[k]
		}
		if x > y {
			dist += x - y
		} else {
			dist += y - x
		}
	}
	return dist
}

// searchKey identifies a search state: the frame to fill and the balls it
// owes earlier frames (-1 when unset).
type searchKey struct{ frame, owed0, owed1 int }

func keyOf(frame int, owed []int) searchKey {
	k := searchKey{frame: frame, owed0: -1, owed1: -1}
	if len(owed) > 0 {
		k.owed0 = owed[0]
	}
	if len(owed) > 1 {
		k.owed1 = owed[1]
	}
	return k
}

// searcher is a depth-first search over frame splits. Only the balls owed
// forward link one frame to the next, so failed states are memoized and the
// search stays small.
type searcher struct {
	deltas [NumFrames]int
	last   int // last frame with a usable total
	hint   Game
	dead   map[searchKey]bool
}

type split struct {
	rolls []int
	owed  []int
}

func (s *searcher) solve(g *Game, i int, owed []int) bool {
	if i > s.last {
		return true
	}
	key := keyOf(i, owed)
	if s.dead[key] {
		return false
	}
	for _, c := range s.splits(i, owed) {
		g[i] = Frame{Rolls: c.rolls, Guessed: true}
		if s.solve(g, i+1, c.owed) {
			return true
		}
	}
	g[i] = Frame{}
	s.dead[key] = true
	return false
}

// splits lists every legal frame i worth deltas[i] that starts with the owed
// balls, with the balls it in turn owes the next frames.
func (s *searcher) splits(i int, owed []int) []split {
	d := s.deltas[i]
	var out []split
	if i == LastFrame {
		for _, rolls := range tenthFrames(d) {
			if matchesOwed(rolls, owed) {
				out = append(out, split{rolls: rolls})
			}
		}
		s.order(i, out)
		return out
	}

	for a := 0; a <= Pins; a++ {
		if len(owed) > 0 && owed[0] != a {
			continue
		}
		if a == Pins {
			bonus := d - Pins
			for b1 := 0; b1 <= Pins; b1++ {
				if len(owed) > 1 && owed[1] != b1 {
					continue
				}
				b2 := bonus - b1
				if b2 < 0 || b2 > Pins || (b1 < Pins && b1+b2 > Pins) {
					continue
				}
				out = append(out, split{rolls: []int{Pins}, owed: []int{b1, b2}})
			}
			continue
		}
		for b := 0; a+b <= Pins; b++ {
			if len(owed) > 1 && owed[1] != b {
				continue
			}
			switch {
			case a+b < Pins && a+b == d:
				out = append(out, split{rolls: []int{a, b}})
			case a+b == Pins && d >= Pins && d <= 2*Pins:
				out = append(out, split{rolls: []int{a, b}, owed: []int{d - Pins}})
			}
		}
	}
	s.order(i, out)
	return out
}

// order puts splits of the same kind as the greedy guess first, then those
// closest to the usual split for their kind.
func (s *searcher) order(i int, out []split) {
	tenth := i == LastFrame
	want := Classify(s.hint[i].Rolls, tenth)
	rank := func(c split) (int, int) {
		kind := Classify(c.rolls, tenth)
		same := 1
		if kind == want {
			same = 0
		}
		return same, distance(c.rolls, usualSplit(kind, s.deltas[i], tenth))
	}
	sort.SliceStable(out, func(x, y int) bool {
		sx, dx := rank(out[x])
		sy, dy := rank(out[y])
		if sx != sy {
			return sx < sy
		}
		return dx < dy
	})
}

func usualSplit(kind Kind, d int, tenth bool) []int {
	switch {
	case tenth:
		return tenthDefault(d)
	case kind == KindStrike:
		return []int{Pins}
	case kind == KindSpare:
		return []int{Pins / 2, Pins / 2}
	default:
		return []int{(d + 1) / 2, d / 2}
	}
}
