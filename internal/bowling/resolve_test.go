package bowling_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

func TestResolveWholeGames(t *testing.T) {
	tests := []struct {
		name  string
		rolls []int
		final int
	}{
		{name: "gutter game", rolls: repeat(0, 20), final: 0},
		{name: "all ones", rolls: repeat(1, 20), final: 20},
		{name: "one spare", rolls: concat([]int{5, 5, 3}, repeat(0, 17)), final: 16},
		{name: "one strike", rolls: concat([]int{10, 3, 4}, repeat(0, 16)), final: 24},
		{name: "nine and miss", rolls: []int{9, 0, 9, 0, 9, 0, 9, 0, 9, 0, 9, 0, 9, 0, 9, 0, 9, 0, 9, 0}, final: 90},
		{name: "all spares", rolls: repeat(5, 21), final: 150},
		{name: "perfect game", rolls: repeat(10, 12), final: bowling.PerfectScore},
		{name: "tenth spare bonus", rolls: concat(repeat(0, 18), []int{7, 3, 5}), final: 15},
		{name: "tenth strike then spare", rolls: concat(repeat(0, 18), []int{10, 7, 3}), final: 20},
		{name: "strike into tenth", rolls: concat(repeat(0, 16), []int{10, 9, 0}), final: 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustRolls(t, tt.rolls...)
			require.True(t, g.Complete())
			require.NotNil(t, g.Final())
			assert.Equal(t, tt.final, *g.Final())
		})
	}
}

func TestResolvePerfectCumulatives(t *testing.T) {
	g := mustRolls(t, repeat(10, 12)...)
	for i, f := range g {
		require.NotNil(t, f.Score, "frame %d", i+1)
		assert.Equal(t, 30, *f.Score)
		assert.Equal(t, 30*(i+1), *f.Cumulative)
	}
}

func TestResolvePartialGames(t *testing.T) {
	t.Run("spare waits for its bonus ball", func(t *testing.T) {
		g := mustRolls(t, 7, 3)
		assert.Nil(t, g[0].Score)

		g, err := g.Roll(4)
		require.NoError(t, err)
		assert.Equal(t, 14, *g[0].Score)
		assert.Equal(t, 14, *g[0].Cumulative)
		assert.Nil(t, g[1].Score)
	})

	t.Run("strikes chain their bonus balls", func(t *testing.T) {
		g := mustRolls(t, 10, 10, 5, 3)
		assert.Equal(t, []*int{ptr(25), ptr(18), ptr(8), nil, nil, nil, nil, nil, nil, nil}, scores(g))
		assert.Equal(t, []*int{ptr(25), ptr(43), ptr(51), nil, nil, nil, nil, nil, nil, nil}, cumulatives(g))
	})

	t.Run("strike before a half-bowled frame", func(t *testing.T) {
		g := mustRolls(t, 10, 5)
		assert.Nil(t, g[0].Score)
		assert.Nil(t, g[1].Score)
	})

	t.Run("ninth strike uses the tenth frame's first two balls", func(t *testing.T) {
		g := mustRolls(t, concat(repeat(0, 16), []int{10, 10, 10})...)
		require.NotNil(t, g[8].Score)
		assert.Equal(t, 30, *g[8].Score)
		assert.Equal(t, 30, *g[8].Cumulative)
		assert.Nil(t, g[9].Score)
		assert.Nil(t, g.Final())
	})

	t.Run("ninth strike waits on a lone tenth strike", func(t *testing.T) {
		g := mustRolls(t, concat(repeat(0, 16), []int{10, 10})...)
		assert.Nil(t, g[8].Score)
	})
}

func TestResolveOpenTenthEndsGame(t *testing.T) {
	g := mustRolls(t, concat(repeat(0, 18), []int{4, 5})...)
	require.True(t, g.Complete())
	assert.Equal(t, 9, *g.Final())

	_, err := g.Roll(3)
	assert.ErrorIs(t, err, bowling.ErrGameOver)
}

func TestResolveStopsAtGap(t *testing.T) {
	g, err := bowling.FromFrames([][]int{{3, 4}, nil, {5, 2}})
	require.NoError(t, err)
	assert.Equal(t, 7, *g[0].Cumulative)
	assert.Nil(t, g[1].Score)
	assert.Nil(t, g[2].Score, "frames after a gap have no running total")
}

func TestResolveStopsAtIllegalFrame(t *testing.T) {
	var g bowling.Game
	g[0].Rolls = []int{3, 4}
	g[1].Rolls = []int{6, 7}
	g[2].Rolls = []int{1, 1}

	r := bowling.Resolve(g)
	assert.Equal(t, 7, *r[0].Cumulative)
	assert.Nil(t, r[1].Score)
	assert.Nil(t, r[2].Score)

	// an illegal frame is never used as a bonus source either
	g[0].Rolls = []int{10}
	r = bowling.Resolve(g)
	assert.Nil(t, r[0].Score)
}

func TestResolveRecomputesStaleScores(t *testing.T) {
	var g bowling.Game
	g[0] = bowling.Frame{Rolls: []int{7, 3}, Score: ptr(99), Cumulative: ptr(99)}
	g[1] = bowling.Frame{Score: ptr(5), Cumulative: ptr(104)}

	r := bowling.Resolve(g)
	assert.Nil(t, r[0].Score)
	assert.Nil(t, r[1].Cumulative)
	assert.Equal(t, 99, *g[0].Score, "input must not be mutated")
}

func TestResolveIsIdempotent(t *testing.T) {
	games := [][]int{
		nil,
		{10, 10, 5, 3},
		{7, 3, 4},
		repeat(10, 12),
		concat(repeat(0, 18), []int{10, 7}),
		repeat(5, 21),
	}
	for _, rolls := range games {
		g := mustRolls(t, rolls...)
		once := bowling.Resolve(g)
		twice := bowling.Resolve(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("Resolve not idempotent for %v (-once +twice):\n%s", rolls, diff)
		}
	}
}

func TestResolveDoesNotAliasRolls(t *testing.T) {
	var g bowling.Game
	g[0].Rolls = []int{3, 4}
	r := bowling.Resolve(g)
	r[0].Rolls[0] = 9
	assert.Equal(t, 3, g[0].Rolls[0])
}
