package bowling

import "errors"

// Rejections are expected outcomes of user input. The game passed in is
// always left unchanged when one is returned.
var (
	// ErrRollOutOfRange indicates a pin count outside 0..10.
	ErrRollOutOfRange = errors.New("roll must be between 0 and 10")

	// ErrTooManyPins indicates more pins than are standing on the rack.
	ErrTooManyPins = errors.New("roll exceeds pins left standing")

	// ErrNoSuchRoll indicates the frame does not take a ball at that position.
	ErrNoSuchRoll = errors.New("frame takes no ball at this position")

	// ErrBadFrame indicates a frame index outside 0..9.
	ErrBadFrame = errors.New("frame index must be between 0 and 9")

	// ErrGameOver indicates every frame already has all of its balls.
	ErrGameOver = errors.New("game is complete")
)

// Reason maps a rejection to a short machine-readable label.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRollOutOfRange):
		return "out_of_range"
	case errors.Is(err, ErrTooManyPins):
		return "too_many_pins"
	case errors.Is(err, ErrNoSuchRoll):
		return "no_such_roll"
	case errors.Is(err, ErrBadFrame):
		return "bad_frame"
	case errors.Is(err, ErrGameOver):
		return "game_over"
	default:
		return "invalid"
	}
}
