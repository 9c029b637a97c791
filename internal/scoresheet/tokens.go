package scoresheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// ErrBadMark indicates a token that is not a scoresheet mark.
var ErrBadMark = errors.New("unrecognized scoresheet mark")

// ParseTokens turns marks of one frame into pin counts. X is a strike,
// / picks up the pins left standing, - G and F are zero, digits are pins.
func ParseTokens(tokens []string) ([]int, error) {
	rolls := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		pins, err := parseToken(tok, rolls)
		if err != nil {
			return nil, err
		}
		rolls = append(rolls, pins)
	}
	return rolls, nil
}

func parseToken(tok string, prior []int) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(tok)) {
	case "X":
		return bowling.Pins, nil
	case "/":
		standing, balls := rack(prior)
		if balls != 1 {
			return 0, fmt.Errorf("spare with no first ball: %w", ErrBadMark)
		}
		return standing, nil
	case "-", "G", "F":
		return 0, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 || n > bowling.Pins {
		return 0, fmt.Errorf("%q: %w", tok, ErrBadMark)
	}
	return n, nil
}

// rack returns the pins standing and the balls thrown on the current rack.
func rack(prior []int) (standing, balls int) {
	standing = bowling.Pins
	for _, r := range prior {
		standing -= r
		balls++
		if standing <= 0 || balls == 2 {
			standing, balls = bowling.Pins, 0
		}
	}
	return standing, balls
}

// ParseCell decodes one frame cell. Marks may be separated by spaces or
// commas ("X 7 /") or written together ("X7/", "9-"); a lone "10" is a
// strike. An empty cell yields no rolls.
func ParseCell(cell string) ([]int, error) {
	fields := strings.FieldsFunc(cell, func(r rune) bool { return unicode.IsSpace(r) || r == ',' })
	switch {
	case len(fields) == 0:
		return nil, nil
	case len(fields) == 1 && fields[0] != "10":
		fields = splitCompact(fields[0])
	}
	return ParseTokens(fields)
}

func splitCompact(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// ParseFrames splits a line into frame cells on "|" or whitespace and
// decodes each one, e.g. "X 7/ 9- X X X X X X XXX".
func ParseFrames(line string) ([][]int, error) {
	sep := func(r rune) bool { return unicode.IsSpace(r) }
	if strings.Contains(line, "|") {
		sep = func(r rune) bool { return r == '|' }
	}
	cells := strings.FieldsFunc(line, sep)
	if len(cells) > bowling.NumFrames {
		return nil, fmt.Errorf("%d frames: %w", len(cells), bowling.ErrBadFrame)
	}
	frames := make([][]int, len(cells))
	for i, c := range cells {
		rolls, err := ParseCell(c)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
		frames[i] = rolls
	}
	return frames, nil
}

// ParseLine decodes a line of frame cells into a resolved game.
func ParseLine(line string) (bowling.Game, error) {
	frames, err := ParseFrames(line)
	if err != nil {
		return bowling.Game{}, err
	}
	return bowling.FromFrames(frames)
}
