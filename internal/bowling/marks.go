package bowling

import "strconv"

// Marks renders one frame's rolls the way a scoresheet shows them:
// X for the first ball on a fresh rack clearing it, / for a later ball
// clearing the rack, - for a miss. The rack resets after it is cleared or
// after two balls.
func Marks(rolls []int) []string {
	marks := make([]string, 0, len(rolls))
	standing, thrown := Pins, 0
	for _, r := range rolls {
		switch {
		case r == standing && thrown == 0:
			marks = append(marks, "X")
		case r == standing:
			marks = append(marks, "/")
		case r == 0:
			marks = append(marks, "-")
		default:
			marks = append(marks, strconv.Itoa(r))
		}
		standing -= r
		thrown++
		if standing <= 0 || thrown == 2 {
			standing, thrown = Pins, 0
		}
	}
	return marks
}
