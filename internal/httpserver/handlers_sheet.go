package httpserver

import (
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xtding233/bowling-backend/internal/scoresheet"
)

const maxSheetBytes = 5 << 20

type sheetEntryView struct {
	Bowler        string   `json:"bowler"`
	Game          gameView `json:"game"`
	Totals        []*int   `json:"totals"`
	Reconstructed bool     `json:"reconstructed"`
	Confidence    string   `json:"confidence"`
	Warnings      []string `json:"warnings,omitempty"`
}

// handleScoresheet parses an uploaded CSV or XLSX sheet (multipart field
// "file") and returns every entry resolved.
func (s *Server) handleScoresheet(w http.ResponseWriter, r *http.Request) {
	_, span := s.span(r, "scoresheets.import")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxSheetBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "multipart field \"file\" is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "could not read upload")
		return
	}
	span.SetAttributes(attribute.String("filename", header.Filename), attribute.Int("bytes", len(data)))

	sheet, err := scoresheet.NewFactory(s.sheetOptions()).Parse(header.Filename, data)
	s.metrics.ObserveSheet(err)
	if err != nil {
		fail(span, err)
		s.log.Info().Err(err).Str("filename", header.Filename).Msg("scoresheet rejected")
		writeError(w, http.StatusUnprocessableEntity, "bad_sheet", err.Error())
		return
	}

	out := make([]sheetEntryView, 0, len(sheet.Entries))
	for _, e := range sheet.Entries {
		if e.Reconstructed {
			s.metrics.ObserveReconstruction(e.Confidence)
		}
		out = append(out, sheetEntryView{
			Bowler:        e.Bowler,
			Game:          newGameView(e.Game),
			Totals:        e.Totals[:],
			Reconstructed: e.Reconstructed,
			Confidence:    e.Confidence.String(),
			Warnings:      e.Warnings,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": out})
}
