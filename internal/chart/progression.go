package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

var (
	background = drawing.ColorFromHex("10231c")
	scoreLine  = drawing.ColorFromHex("3fa773")
	ceiling    = drawing.ColorFromHex("d4a72c")
	textColor  = drawing.ColorFromHex("e8efe9")
)

// RenderProgression draws the running total after each resolved frame and
// the best final score still reachable as frames were bowled.
func RenderProgression(g bowling.Game, name string) ([]byte, error) {
	played := 0
	for i, f := range g {
		if len(f.Rolls) > 0 {
			played = i + 1
		}
	}
	if played == 0 {
		return renderNoDataPlaceholder("No frames scored")
	}

	xs, ys := []float64{0}, []float64{0}
	for i, f := range g {
		if f.Cumulative == nil {
			break
		}
		xs = append(xs, float64(i+1))
		ys = append(ys, float64(*f.Cumulative))
	}

	cx, cy := make([]float64, 0, played+1), make([]float64, 0, played+1)
	for k := 0; k <= played; k++ {
		var prefix bowling.Game
		copy(prefix[:k], g[:k])
		cx = append(cx, float64(k))
		cy = append(cy, float64(bowling.MaxPossible(prefix)))
	}

	title := name
	if title == "" {
		title = "Score"
	}

	graph := chart.Chart{
		Title:  title,
		Width:  800,
		Height: 400,
		TitleStyle: chart.Style{
			FontColor: textColor,
		},
		Background: chart.Style{
			FillColor: background,
		},
		Canvas: chart.Style{
			FillColor: background,
		},
		XAxis: chart.XAxis{
			Name: "Frame",
			Style: chart.Style{
				FontColor: textColor,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: bowling.NumFrames},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Score",
			Style: chart.Style{
				FontColor: textColor,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: bowling.PerfectScore},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Max possible",
				XValues: cx,
				YValues: cy,
				Style: chart.Style{
					StrokeColor:     ceiling,
					StrokeWidth:     2,
					StrokeDashArray: []float64{5, 5},
				},
			},
			chart.ContinuousSeries{
				Name:    "Running total",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: scoreLine,
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    ceiling,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(msg string) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: background,
		},
		Canvas: chart.Style{
			FillColor: background,
		},
		// go-chart needs one visible series with a non-zero range; this one
		// is drawn in the background colour.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style: chart.Style{
					StrokeColor: background,
					StrokeWidth: 1,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(textColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
