package httpserver

import (
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/scoresheet"
)

// scoreReq carries exactly one of: a flat ball sequence, per-frame rolls, or
// a line of scoresheet marks.
type scoreReq struct {
	Rolls  []int   `json:"rolls,omitempty"`
	Frames [][]int `json:"frames,omitempty"`
	Line   string  `json:"line,omitempty"`
}

func (q scoreReq) game() (bowling.Game, error) {
	set := 0
	for _, ok := range []bool{q.Rolls != nil, q.Frames != nil, q.Line != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return bowling.Game{}, errInput
	}
	switch {
	case q.Rolls != nil:
		return bowling.FromRolls(q.Rolls)
	case q.Frames != nil:
		return bowling.FromFrames(q.Frames)
	default:
		return scoresheet.ParseLine(q.Line)
	}
}

var errInput = errors.New("provide exactly one of rolls, frames or line")

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	_, span := s.span(r, "score")
	defer span.End()

	var req scoreReq
	if !decode(w, r, &req) {
		return
	}
	g, err := req.game()
	switch {
	case errors.Is(err, errInput):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	case errors.Is(err, scoresheet.ErrBadMark):
		writeError(w, http.StatusUnprocessableEntity, "bad_mark", err.Error())
		return
	case err != nil:
		fail(span, err)
		s.log.Debug().Err(err).Msg("score rejected")
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameView(g))
}

type validateReq struct {
	Value    int   `json:"value"`
	Frame    int   `json:"frame"` // 1-based
	Position int   `json:"position"`
	Prior    []int `json:"prior"`
}

type validateRes struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	_, span := s.span(r, "validate")
	defer span.End()

	var req validateReq
	if !decode(w, r, &req) {
		return
	}
	span.SetAttributes(attribute.Int("frame", req.Frame), attribute.Int("position", req.Position))

	err := bowling.CheckRoll(req.Value, req.Frame-1, req.Position, req.Prior)
	res := validateRes{Valid: err == nil, Reason: bowling.Reason(err)}
	if err != nil {
		res.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, res)
}

type reconstructReq struct {
	Totals []*int `json:"totals"`
}

func (q reconstructReq) totals() ([bowling.NumFrames]*int, bool) {
	var out [bowling.NumFrames]*int
	if len(q.Totals) > bowling.NumFrames {
		return out, false
	}
	copy(out[:], q.Totals)
	return out, true
}

func (s *Server) handleReconstruct(w http.ResponseWriter, r *http.Request) {
	_, span := s.span(r, "reconstruct")
	defer span.End()

	var req reconstructReq
	if !decode(w, r, &req) {
		return
	}
	totals, ok := req.totals()
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "at most 10 totals")
		return
	}
	rec := bowling.Reconstruct(totals)
	s.metrics.ObserveReconstruction(rec.Overall())
	span.SetAttributes(attribute.String("confidence", rec.Overall().String()))
	writeJSON(w, http.StatusOK, newReconstructView(rec.Game, rec))
}
