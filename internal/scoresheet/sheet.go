package scoresheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// Entry is one bowler's game read from a sheet.
type Entry struct {
	Bowler string       `json:"bowler"`
	Game   bowling.Game `json:"game"`
	// Totals are the running totals written on the sheet, if any.
	Totals        [bowling.NumFrames]*int `json:"totals"`
	Reconstructed bool                    `json:"reconstructed"`
	Confidence    bowling.Confidence      `json:"confidence"`
	Warnings      []string                `json:"warnings,omitempty"`
}

// Sheet is every entry found in one file.
type Sheet struct {
	Entries []Entry `json:"entries"`
}

// Options tune how entries are read.
type Options struct {
	// Reconstructed entries below this confidence get a warning.
	MinConfidence bowling.Confidence
}

// Parser defines the interface for scoresheet parsers.
type Parser interface {
	Parse(data []byte) (*Sheet, error)
}

// parseRows reads a header row ("Bowler", 1..10), then one row of frame
// cells per bowler, each optionally followed by a "Total" row of running
// totals.
func parseRows(rows [][]string, opts Options) (*Sheet, error) {
	header := -1
	for i, row := range rows {
		if len(row) > 0 && isHeader(row[0]) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, errors.New("no header row found (first column must be Bowler or Name)")
	}

	var entries []*rawEntry
	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		name := strings.TrimSpace(row[0])
		if strings.EqualFold(name, "Total") {
			if len(entries) == 0 {
				return nil, fmt.Errorf("line %d: total row before any bowler", i+1)
			}
			last := entries[len(entries)-1]
			if last.hasTotals {
				return nil, fmt.Errorf("line %d: second total row for %q", i+1, last.name)
			}
			last.totals = row[1:]
			last.hasTotals = true
			continue
		}
		entries = append(entries, &rawEntry{name: name, cells: row[1:]})
	}
	if len(entries) == 0 {
		return nil, errors.New("no bowler rows found")
	}

	sheet := &Sheet{Entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		sheet.Entries = append(sheet.Entries, e.build(opts))
	}
	return sheet, nil
}

func isHeader(cell string) bool {
	c := strings.TrimSpace(cell)
	return strings.EqualFold(c, "Bowler") || strings.EqualFold(c, "Name")
}

type rawEntry struct {
	name      string
	cells     []string
	totals    []string
	hasTotals bool
}

func (e *rawEntry) build(opts Options) Entry {
	entry := Entry{Bowler: e.name}
	entry.Totals = e.parseTotals(&entry)

	g := bowling.NewGame()
	marked := false
	for i := 0; i < bowling.NumFrames && i < len(e.cells); i++ {
		rolls, err := ParseCell(e.cells[i])
		if err != nil {
			entry.warn("frame %d: %v", i+1, err)
			continue
		}
		if len(rolls) == 0 {
			continue
		}
		next, err := record(g, i, rolls)
		if err != nil {
			entry.warn("frame %d: %v", i+1, err)
			continue
		}
		g, marked = next, true
	}

	haveTotals := false
	for _, t := range entry.Totals {
		haveTotals = haveTotals || t != nil
	}

	if marked {
		entry.Confidence = bowling.ConfidenceHigh
	}
	if haveTotals && (!marked || !g.Complete()) {
		rec := bowling.Reconstruct(entry.Totals)
		if merged := bowling.Merge(g, rec); hasGuess(merged) {
			g = merged
			entry.Reconstructed = true
			entry.Confidence = rec.Overall()
			if entry.Confidence < opts.MinConfidence {
				entry.warn("reconstruction confidence %s is below %s", entry.Confidence, opts.MinConfidence)
			}
		}
	}

	for i, t := range entry.Totals {
		if t == nil || g[i].Cumulative == nil || g[i].Guessed {
			continue
		}
		if *t != *g[i].Cumulative {
			entry.warn("frame %d: sheet total %d but rolls score %d", i+1, *t, *g[i].Cumulative)
		}
	}
	entry.Game = g
	return entry
}

func (e *rawEntry) parseTotals(entry *Entry) [bowling.NumFrames]*int {
	var totals [bowling.NumFrames]*int
	for i := 0; i < bowling.NumFrames && i < len(e.totals); i++ {
		v := strings.TrimSpace(e.totals[i])
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > bowling.PerfectScore {
			entry.warn("frame %d: unreadable total %q", i+1, v)
			continue
		}
		totals[i] = &n
	}
	return totals
}

// record replays one frame's balls through SetRoll so every ball is checked.
func record(g bowling.Game, frame int, rolls []int) (bowling.Game, error) {
	for pos, pins := range rolls {
		next, err := g.SetRoll(frame, pos+1, pins)
		if err != nil {
			return g, fmt.Errorf("ball %d (%d pins): %w", pos+1, pins, err)
		}
		g = next
	}
	return g, nil
}

func hasGuess(g bowling.Game) bool {
	for _, f := range g {
		if f.Guessed && len(f.Rolls) > 0 {
			return true
		}
	}
	return false
}

func (e *Entry) warn(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}
