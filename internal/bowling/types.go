// types.go
package bowling

const (
	// Pins is the number of pins in a full rack.
	Pins = 10
	// NumFrames is the number of frames in a game.
	NumFrames = 10
	// LastFrame is the index of the tenth frame.
	LastFrame = NumFrames - 1
	// PerfectScore is twelve strikes.
	PerfectScore = 300
)

// Kind classifies a frame from its recorded rolls.
type Kind int

const (
	KindIncomplete Kind = iota
	KindOpen
	KindSpare
	KindStrike
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindSpare:
		return "spare"
	case KindStrike:
		return "strike"
	default:
		return "incomplete"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Frame is one scoring unit. Score and Cumulative are nil until resolvable.
// The frame kind is never stored; call Kind.
type Frame struct {
	Rolls      []int `json:"rolls"`
	Score      *int  `json:"score"`
	Cumulative *int  `json:"cumulative"`
	// Guessed marks rolls produced by Reconstruct rather than recorded.
	Guessed bool `json:"guessed,omitempty"`
}

// Kind derives the frame kind. tenth selects the tenth-frame rules.
func (f Frame) Kind(tenth bool) Kind { return Classify(f.Rolls, tenth) }

// Marks renders the recorded rolls as scoresheet marks.
func (f Frame) Marks() []string { return Marks(f.Rolls) }

// Game is ten frames, index = frame number - 1.
type Game [NumFrames]Frame

// NewGame returns an empty game.
func NewGame() Game { return Game{} }

// Clone deep-copies the game so edits never alias the caller's rolls.
func (g Game) Clone() Game {
	var out Game
	for i, f := range g {
		out[i] = Frame{Guessed: f.Guessed}
		if f.Rolls != nil {
			out[i].Rolls = append([]int(nil), f.Rolls...)
		}
		if f.Score != nil {
			out[i].Score = intPtr(*f.Score)
		}
		if f.Cumulative != nil {
			out[i].Cumulative = intPtr(*f.Cumulative)
		}
	}
	return out
}

// Final returns the tenth frame's cumulative score, nil until the game is over.
func (g Game) Final() *int { return g[LastFrame].Cumulative }

// Complete reports whether every frame has all of its balls.
func (g Game) Complete() bool {
	_, _, ok := g.Next()
	return !ok
}

// Next returns the frame and 1-based position of the next ball to bowl.
// ok is false once every frame is complete.
func (g Game) Next() (frame, position int, ok bool) {
	for i := range g {
		if Classify(g[i].Rolls, i == LastFrame) == KindIncomplete {
			return i, len(g[i].Rolls) + 1, true
		}
	}
	return 0, 0, false
}

// Balls flattens every recorded roll in bowling order.
func (g Game) Balls() []int {
	var out []int
	for _, f := range g {
		out = append(out, f.Rolls...)
	}
	return out
}

func intPtr(v int) *int { return &v }
