package sim

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// RandomSource is what a simulated bowler draws from. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// DefaultRNG returns a source backed by crypto/rand, so unseeded runs
// cannot be replayed.
func DefaultRNG() RandomSource { return rand.New(entropy{}) }

// NewSeededRNG returns a reproducible PCG source.
func NewSeededRNG(seed uint64) RandomSource { return rand.New(rand.NewPCG(seed, 0)) }

type entropy struct{}

func (entropy) Uint64() uint64 {
	var buf [8]byte
	_, _ = cryptorand.Read(buf[:]) // never fails since Go 1.24
	return binary.LittleEndian.Uint64(buf[:])
}

// Profile models a bowler. On a fresh rack the ball is a strike with
// probability StrikeProb; on a partial rack it converts the spare with
// probability SpareProb. Misses knock down a uniform count of the pins
// standing, never all of them.
type Profile struct {
	StrikeProb float64 `yaml:"strike_prob" json:"strike_prob"`
	SpareProb  float64 `yaml:"spare_prob" json:"spare_prob"`
}

// Validate checks both probabilities.
func (p Profile) Validate() error {
	if err := validateProb(p.StrikeProb); err != nil {
		return fmt.Errorf("strike_prob %v: %w", p.StrikeProb, err)
	}
	if err := validateProb(p.SpareProb); err != nil {
		return fmt.Errorf("spare_prob %v: %w", p.SpareProb, err)
	}
	return nil
}

// NextBall picks the pins for the next ball of g. It returns 0 when the game
// is over.
func (p Profile) NextBall(g bowling.Game, rng RandomSource) (int, error) {
	frame, _, ok := g.Next()
	if !ok {
		return 0, nil
	}
	standing := bowling.Standing(g[frame].Rolls)

	prob := p.SpareProb
	if standing == bowling.Pins {
		prob = p.StrikeProb
	}
	hit, err := Chance(prob, rng)
	if err != nil {
		return 0, err
	}
	if hit {
		return standing, nil
	}
	return rng.IntN(standing), nil
}

// Bowl plays a full legal game through Game.Roll.
func (p Profile) Bowl(rng RandomSource) (bowling.Game, error) {
	if err := p.Validate(); err != nil {
		return bowling.Game{}, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	g := bowling.NewGame()
	for !g.Complete() {
		pins, err := p.NextBall(g, rng)
		if err != nil {
			return g, err
		}
		if g, err = g.Roll(pins); err != nil {
			return g, fmt.Errorf("bowl %d pins: %w", pins, err)
		}
	}
	return g, nil
}
