package bowling

import "fmt"

// ValidRoll reports whether value may be recorded at the 1-based position of
// the given frame, after the rolls already in prior.
func ValidRoll(value, frame, position int, prior []int) bool {
	return CheckRoll(value, frame, position, prior) == nil
}

// CheckRoll is ValidRoll with the reason for a rejection.
//
// Frames 0-8 take a second ball only after a non-strike and only up to the
// pins left standing. The tenth frame resets the rack after every strike or
// spare, so a ball following a strike is bounded only by the fresh rack,
// while the third ball after strike + non-strike is capped by what the
// second ball left standing.
func CheckRoll(value, frame, position int, prior []int) error {
	if frame < 0 || frame >= NumFrames {
		return ErrBadFrame
	}
	if value < 0 || value > Pins {
		return ErrRollOutOfRange
	}
	if position < 1 || position > maxRolls(frame) || len(prior) < position-1 {
		return ErrNoSuchRoll
	}
	for _, p := range prior[:position-1] {
		if p < 0 || p > Pins {
			return ErrRollOutOfRange
		}
	}

	switch position {
	case 1:
		return nil
	case 2:
		first := prior[0]
		if first == Pins {
			if frame == LastFrame {
				return nil
			}
			return ErrNoSuchRoll
		}
		if value > Pins-first {
			return ErrTooManyPins
		}
		return nil
	default:
		first, second := prior[0], prior[1]
		switch {
		case first == Pins && second == Pins:
			return nil
		case first == Pins:
			if value > Pins-second {
				return ErrTooManyPins
			}
			return nil
		case first+second == Pins:
			return nil
		default:
			return ErrNoSuchRoll
		}
	}
}

// checkFrame validates every recorded roll of a frame in order.
func checkFrame(rolls []int, frame int) error {
	for i, r := range rolls {
		if err := CheckRoll(r, frame, i+1, rolls[:i]); err != nil {
			return fmt.Errorf("ball %d: %w", i+1, err)
		}
	}
	return nil
}

// Check validates every frame of the game.
func (g Game) Check() error {
	for i, f := range g {
		if err := checkFrame(f.Rolls, i); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
	}
	return nil
}

func maxRolls(frame int) int {
	if frame == LastFrame {
		return 3
	}
	return 2
}
