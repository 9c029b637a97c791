package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/scoresheet"
	"github.com/xtding233/bowling-backend/internal/sim"
)

func scoreLine(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New(`usage: bowling score "X 7/ 9- ..."`)
	}
	g, err := scoresheet.ParseLine(strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return err
	}
	return writeTable(c.App.Writer, g)
}

func simulate(c *cli.Context) error {
	_, settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	profile := settings.Profile
	if c.IsSet("strike") {
		profile.StrikeProb = c.Float64("strike")
	}
	if c.IsSet("spare") {
		profile.SpareProb = c.Float64("spare")
	}
	trials := settings.Trials
	if c.IsSet("trials") {
		trials = c.Int("trials")
	}
	rng := sim.DefaultRNG()
	switch {
	case c.IsSet("seed"):
		rng = sim.NewSeededRNG(c.Uint64("seed"))
	case settings.Seed != nil:
		rng = sim.NewSeededRNG(*settings.Seed)
	}

	st, err := sim.RunMonteCarlo(profile, trials, rng)
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintf(w, "profile: strike %.2f, spare %.2f, %d games\n", profile.StrikeProb, profile.SpareProb, trials)
	fmt.Fprintf(w, "mean %.1f  stddev %.1f\n", st.Mean, st.StdDev)
	fmt.Fprintf(w, "p50 %.0f  p90 %.0f  p99 %.0f\n", st.P50, st.P90, st.P99)
	fmt.Fprintf(w, "best %d  worst %d  perfect games %d\n", st.Best, st.Worst, st.Perfect)
	return nil
}

func importSheet(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: bowling sheet <file>")
	}
	_, settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	path := c.Args().First()
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := scoresheet.NewFactory(scoresheet.Options{MinConfidence: settings.MinConfidence}).
		Parse(filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	w := c.App.Writer
	for i, e := range sheet.Entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		note := ""
		if e.Reconstructed {
			note = ", rebuilt from totals"
		}
		fmt.Fprintf(w, "%s (confidence %s%s)\n", e.Bowler, e.Confidence, note)
		if err := writeTable(w, e.Game); err != nil {
			return err
		}
		for _, warn := range e.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
	}
	return nil
}

// writeTable prints one row per frame followed by the final or best
// reachable score.
func writeTable(out io.Writer, g bowling.Game) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tMARKS\tKIND\tSCORE\tTOTAL")
	for i, f := range g {
		guess := ""
		if f.Guessed {
			guess = "*"
		}
		fmt.Fprintf(tw, "%d%s\t%s\t%s\t%s\t%s\n",
			i+1, guess, strings.Join(f.Marks(), " "), f.Kind(i == bowling.LastFrame), show(f.Score), show(f.Cumulative))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if final := g.Final(); final != nil {
		_, err := fmt.Fprintf(out, "final %d\n", *final)
		return err
	}
	_, err := fmt.Fprintf(out, "in progress, max possible %d\n", bowling.MaxPossible(g))
	return err
}

func show(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}
