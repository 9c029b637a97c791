package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/chart"
	"github.com/xtding233/bowling-backend/internal/store"
)

type createGameReq struct {
	Bowler string `json:"bowler"`
}

type pinsReq struct {
	Pins *int `json:"pins"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "games.create")
	defer span.End()

	var req createGameReq
	if !decode(w, r, &req) {
		return
	}
	req.Bowler = strings.TrimSpace(req.Bowler)
	if req.Bowler == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "bowler is required")
		return
	}
	sess, err := s.store.Create(ctx, req.Bowler)
	if err != nil {
		fail(span, err)
		writeFailure(w, err)
		return
	}
	s.log.Info().Str("session", sess.ID.String()).Str("bowler", sess.Bowler).Msg("game created")
	writeJSON(w, http.StatusCreated, newSessionView(sess))
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "games.list")
	defer span.End()

	sessions, err := s.store.List(ctx)
	if err != nil {
		fail(span, err)
		writeFailure(w, err)
		return
	}
	out := make([]sessionView, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, newSessionView(sess))
	}
	writeJSON(w, http.StatusOK, out)
}

// sessionID parses the {id} path parameter, writing a 400 when malformed.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed game id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "games.get")
	defer span.End()

	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "games.delete")
	defer span.End()

	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, id); err != nil {
		writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// edit applies fn to the session's game, recording roll metrics and the
// final score when the edit finishes the game.
func (s *Server) edit(w http.ResponseWriter, r *http.Request, name string, fn func(bowling.Game) (bowling.Game, error)) {
	ctx, span := s.span(r, name)
	defer span.End()

	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("session", id.String()))

	var finished bool
	sess, err := s.store.Update(ctx, id, func(cur *store.Session) error {
		wasComplete := cur.Game.Complete()
		g, err := fn(cur.Game)
		if err != nil {
			return err
		}
		cur.Game = g
		finished = !wasComplete && g.Complete()
		return nil
	})
	if isRejection(err) {
		s.metrics.ObserveRoll(err)
	}
	if err != nil {
		fail(span, err)
		s.log.Debug().Err(err).Str("session", id.String()).Msg("edit rejected")
		writeFailure(w, err)
		return
	}
	s.metrics.ObserveRoll(nil)
	if finished {
		s.metrics.ObserveGame(sess.Game)
		s.log.Info().Str("session", id.String()).Int("final", *sess.Game.Final()).Msg("game complete")
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	var req pinsReq
	if !decode(w, r, &req) {
		return
	}
	if req.Pins == nil {
		writeError(w, http.StatusBadRequest, "bad_request", "pins is required")
		return
	}
	s.edit(w, r, "games.roll", func(g bowling.Game) (bowling.Game, error) {
		return g.Roll(*req.Pins)
	})
}

func (s *Server) handleSetRoll(w http.ResponseWriter, r *http.Request) {
	frame, err1 := strconv.Atoi(chi.URLParam(r, "frame"))
	position, err2 := strconv.Atoi(chi.URLParam(r, "position"))
	if err := errors.Join(err1, err2); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "frame and position must be integers")
		return
	}
	var req pinsReq
	if !decode(w, r, &req) {
		return
	}
	if req.Pins == nil {
		writeError(w, http.StatusBadRequest, "bad_request", "pins is required")
		return
	}
	s.edit(w, r, "games.set_roll", func(g bowling.Game) (bowling.Game, error) {
		return g.SetRoll(frame-1, position, *req.Pins)
	})
}

// handleMergeTotals fills frames with no recorded rolls from running totals.
func (s *Server) handleMergeTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "games.reconstruct")
	defer span.End()

	id, ok := sessionID(w, r)
	if !ok {
		return
	}
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
	sess, err := s.store.Update(ctx, id, func(cur *store.Session) error {
		cur.Game = bowling.Merge(cur.Game, rec)
		cur.Reconstructed = true
		return nil
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	s.metrics.ObserveReconstruction(rec.Overall())
	writeJSON(w, http.StatusOK, newReconstructView(sess.Game, rec))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "games.chart")
	defer span.End()

	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	png, err := chart.RenderProgression(sess.Game, sess.Bowler)
	if err != nil {
		fail(span, err)
		s.log.Error().Err(err).Str("session", id.String()).Msg("chart render failed")
		writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
