package httpserver

import (
	"time"

	"github.com/google/uuid"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/store"
)

// Frame numbers on the wire are 1-based.

type frameView struct {
	Frame      int          `json:"frame"`
	Rolls      []int        `json:"rolls"`
	Marks      []string     `json:"marks"`
	Kind       bowling.Kind `json:"kind"`
	Score      *int         `json:"score"`
	Cumulative *int         `json:"cumulative"`
	Guessed    bool         `json:"guessed,omitempty"`
}

type nextBall struct {
	Frame    int `json:"frame"`
	Position int `json:"position"`
}

type gameView struct {
	Frames          []frameView `json:"frames"`
	Final           *int        `json:"final"`
	MaxPossible     int         `json:"max_possible"`
	FirstIncomplete *int        `json:"first_incomplete"`
	Complete        bool        `json:"complete"`
	Next            *nextBall   `json:"next,omitempty"`
}

func newGameView(g bowling.Game) gameView {
	v := gameView{
		Frames:      make([]frameView, 0, bowling.NumFrames),
		Final:       g.Final(),
		MaxPossible: bowling.MaxPossible(g),
		Complete:    g.Complete(),
	}
	for i, f := range g {
		rolls := f.Rolls
		if rolls == nil {
			rolls = []int{}
		}
		v.Frames = append(v.Frames, frameView{
			Frame:      i + 1,
			Rolls:      rolls,
			Marks:      f.Marks(),
			Kind:       f.Kind(i == bowling.LastFrame),
			Score:      f.Score,
			Cumulative: f.Cumulative,
			Guessed:    f.Guessed,
		})
	}
	if fi := bowling.FirstIncomplete(g); fi < bowling.NumFrames {
		n := fi + 1
		v.FirstIncomplete = &n
	}
	if frame, position, ok := g.Next(); ok {
		v.Next = &nextBall{Frame: frame + 1, Position: position}
	}
	return v
}

type sessionView struct {
	ID            uuid.UUID `json:"id"`
	Bowler        string    `json:"bowler"`
	Reconstructed bool      `json:"reconstructed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Game          gameView  `json:"game"`
}

func newSessionView(s store.Session) sessionView {
	return sessionView{
		ID:            s.ID,
		Bowler:        s.Bowler,
		Reconstructed: s.Reconstructed,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Game:          newGameView(s.Game),
	}
}

type reconstructView struct {
	Game       gameView             `json:"game"`
	Confidence []bowling.Confidence `json:"confidence"`
	Overall    bowling.Confidence   `json:"overall"`
}

func newReconstructView(g bowling.Game, rec bowling.Reconstruction) reconstructView {
	return reconstructView{
		Game:       newGameView(g),
		Confidence: rec.Confidence[:],
		Overall:    rec.Overall(),
	}
}
