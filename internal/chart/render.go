package chart

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"StockScope/internal/model"
)

// RenderError wraps any failure inside the drawing library, panics included,
// with the original cause preserved.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to generate chart: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Render draws a 30-day closing-price line chart and returns it as PNG bytes.
// The raster context lives entirely within this call, so concurrent renders
// never share state.
func Render(history []model.PricePoint) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &RenderError{Err: fmt.Errorf("render panic: %v", r)}
		}
	}()

	if len(history) == 0 {
		return nil, &RenderError{Err: fmt.Errorf("empty price history")}
	}

	xs := make([]time.Time, 0, len(history)+1)
	ys := make([]float64, 0, len(history)+1)
	for _, p := range history {
		xs = append(xs, p.Date)
		ys = append(ys, p.Close)
	}
	// go-chart needs two points for a drawable x-range; pad a single-point
	// series into a flat line.
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	graph := chart.Chart{
		Title:  "30-Day Stock Price History",
		Width:  1000,
		Height: 600,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
			TickStyle:      chart.Style{TextRotationDegrees: 45},
			GridMajorStyle: chart.Style{StrokeColor: chart.ColorAlternateGray, StrokeWidth: 1.0},
		},
		YAxis: chart.YAxis{
			Name:           "Price",
			GridMajorStyle: chart.Style{StrokeColor: chart.ColorAlternateGray, StrokeWidth: 1.0},
			Range:          yRange(ys),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Close",
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if rerr := graph.Render(chart.PNG, &buf); rerr != nil {
		return nil, &RenderError{Err: rerr}
	}
	return buf.Bytes(), nil
}

// yRange widens a degenerate (flat-line) value range so the axis math never
// sees a zero delta. Non-flat series keep go-chart's automatic range.
func yRange(ys []float64) chart.Range {
	min, max := ys[0], ys[0]
	for _, y := range ys {
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	if min != max {
		return nil
	}
	return &chart.ContinuousRange{Min: min - 1, Max: max + 1}
}
