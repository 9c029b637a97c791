package scoresheet

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		cell    string
		want    []int
		wantErr error
	}{
		{cell: "", want: nil},
		{cell: "  ", want: nil},
		{cell: "X", want: []int{10}},
		{cell: "x", want: []int{10}},
		{cell: "10", want: []int{10}},
		{cell: "7/", want: []int{7, 3}},
		{cell: "9-", want: []int{9, 0}},
		{cell: "G5", want: []int{0, 5}},
		{cell: "F/", want: []int{0, 10}},
		{cell: "81", want: []int{8, 1}},
		{cell: "8,1", want: []int{8, 1}},
		{cell: "XXX", want: []int{10, 10, 10}},
		{cell: "X 7 /", want: []int{10, 7, 3}},
		{cell: "X X 10", want: []int{10, 10, 10}},
		{cell: "/", wantErr: ErrBadMark},
		{cell: "X/", wantErr: ErrBadMark},
		{cell: "Q", wantErr: ErrBadMark},
		{cell: "4 11", wantErr: ErrBadMark},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, err := ParseCell(tt.cell)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLine(t *testing.T) {
	g, err := ParseLine("X 7/ 9- X X X X X X XXX")
	require.NoError(t, err)
	require.True(t, g.Complete())
	assert.Equal(t, 258, *g.Final())
	assert.Equal(t, 39, *g[1].Cumulative)

	g, err = ParseLine("X | 7 / | 9 -")
	require.NoError(t, err)
	assert.Equal(t, 48, *g[2].Cumulative)
}

func TestParseLineErrors(t *testing.T) {
	_, err := ParseLine("- - - - - - - - - - -")
	assert.ErrorIs(t, err, bowling.ErrBadFrame)

	_, err = ParseLine("X 7/ 9Z")
	assert.ErrorIs(t, err, ErrBadMark)
	assert.ErrorContains(t, err, "frame 3")

	_, err = ParseLine("X 78")
	assert.ErrorIs(t, err, bowling.ErrTooManyPins)
}

// randomFrame bowls one legal frame, clearing the rack about a third of the
// time so strikes and spares show up.
func randomFrame(r *rand.Rand, frame int) []int {
	var rolls []int
	for pos := 1; ; pos++ {
		var legal []int
		for v := 0; v <= bowling.Pins; v++ {
			if bowling.ValidRoll(v, frame, pos, rolls) {
				legal = append(legal, v)
			}
		}
		if len(legal) == 0 {
			return rolls
		}
		pick := legal[r.IntN(len(legal))]
		if r.IntN(3) == 0 {
			pick = legal[len(legal)-1]
		}
		rolls = append(rolls, pick)
	}
}

func TestMarksRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 17))
	for i := 0; i < 5000; i++ {
		frame := r.IntN(bowling.NumFrames)
		rolls := randomFrame(r, frame)
		marks := bowling.Marks(rolls)

		got, err := ParseCell(strings.Join(marks, ""))
		require.NoError(t, err, "frame %d rolls %v marks %v", frame+1, rolls, marks)
		require.Equal(t, rolls, got, "frame %d marks %v", frame+1, marks)

		got, err = ParseCell(strings.Join(marks, " "))
		require.NoError(t, err)
		require.Equal(t, rolls, got)
	}
}
