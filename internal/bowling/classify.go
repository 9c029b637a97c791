package bowling

// Classify derives a frame kind from its rolls. Frames 0-8 are complete after
// a strike or two balls. The tenth frame stays Incomplete until it is
// terminal: three balls after a strike or spare, two otherwise.
func Classify(rolls []int, tenth bool) Kind {
	if len(rolls) == 0 {
		return KindIncomplete
	}
	first := rolls[0]
	if first == Pins && !tenth {
		return KindStrike
	}
	if len(rolls) < 2 {
		return KindIncomplete
	}

	kind := KindOpen
	switch {
	case first == Pins:
		kind = KindStrike
	case first+rolls[1] == Pins:
		kind = KindSpare
	}
	if tenth && kind != KindOpen && len(rolls) < 3 {
		return KindIncomplete
	}
	return kind
}

// Standing returns the pins left on the rack after rolls within one frame.
// A cleared rack is reset, which only matters in the tenth frame.
func Standing(rolls []int) int {
	standing := Pins
	for _, r := range rolls {
		standing -= r
		if standing <= 0 {
			standing = Pins
		}
	}
	return standing
}
