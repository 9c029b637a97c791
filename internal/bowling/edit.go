package bowling

import "fmt"

// Roll records pins as the next ball of the game and returns the resolved
// result. On error the returned game is g, unchanged.
func (g Game) Roll(pins int) (Game, error) {
	frame, position, ok := g.Next()
	if !ok {
		return g, ErrGameOver
	}
	return g.SetRoll(frame, position, pins)
}

// SetRoll records pins at the 1-based position of frame, replacing whatever
// was there. Later balls of the same frame are kept while they stay legal.
// A frame holding guessed rolls is cleared first, so a correction always
// starts at position 1 and the guess is never mixed with recorded balls.
func (g Game) SetRoll(frame, position, pins int) (Game, error) {
	if frame < 0 || frame >= NumFrames {
		return g, ErrBadFrame
	}
	rolls := g[frame].Rolls
	if g[frame].Guessed {
		rolls = nil
	}
	if position < 1 || position > len(rolls)+1 {
		return g, ErrNoSuchRoll
	}
	if err := CheckRoll(pins, frame, position, rolls[:position-1]); err != nil {
		return g, err
	}

	next := append(append([]int(nil), rolls[:position-1]...), pins)
	for p := position; p < len(rolls); p++ {
		if CheckRoll(rolls[p], frame, p+1, next) != nil {
			break
		}
		next = append(next, rolls[p])
	}

	out := g.Clone()
	out[frame].Rolls = next
	out[frame].Guessed = false
	return Resolve(out), nil
}

// FromRolls bowls a flat ball sequence into a new resolved game.
func FromRolls(rolls []int) (Game, error) {
	g := NewGame()
	for i, pins := range rolls {
		next, err := g.Roll(pins)
		if err != nil {
			return g, fmt.Errorf("ball %d (%d pins): %w", i+1, pins, err)
		}
		g = next
	}
	return Resolve(g), nil
}

// FromFrames builds a resolved game from per-frame rolls. Frames may be left
// empty, e.g. when a scoresheet has unreadable cells.
func FromFrames(frames [][]int) (Game, error) {
	if len(frames) > NumFrames {
		return Game{}, fmt.Errorf("%d frames: %w", len(frames), ErrBadFrame)
	}
	var g Game
	for i, rolls := range frames {
		if len(rolls) == 0 {
			continue
		}
		if err := checkFrame(rolls, i); err != nil {
			return Game{}, fmt.Errorf("frame %d: %w", i+1, err)
		}
		g[i].Rolls = append([]int(nil), rolls...)
	}
	return Resolve(g), nil
}
