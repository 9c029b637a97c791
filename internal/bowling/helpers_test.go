package bowling_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

func ptr(v int) *int { return &v }

func repeat(pins, times int) []int {
	out := make([]int, times)
	for i := range out {
		out[i] = pins
	}
	return out
}

func concat(parts ...[]int) []int {
	var out []int
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func mustRolls(t *testing.T, rolls ...int) bowling.Game {
	t.Helper()
	g, err := bowling.FromRolls(rolls)
	require.NoError(t, err)
	return g
}

func totalsOf(vals ...int) [bowling.NumFrames]*int {
	var out [bowling.NumFrames]*int
	for i, v := range vals {
		out[i] = ptr(v)
	}
	return out
}

func scores(g bowling.Game) []*int {
	out := make([]*int, bowling.NumFrames)
	for i, f := range g {
		out[i] = f.Score
	}
	return out
}

func cumulatives(g bowling.Game) []*int {
	out := make([]*int, bowling.NumFrames)
	for i, f := range g {
		out[i] = f.Cumulative
	}
	return out
}
