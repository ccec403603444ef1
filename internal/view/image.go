package view

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrEmptyChart is returned when a chart has nothing to draw.
var ErrEmptyChart = errors.New("chart has no positive values")

// Image dimensions in pixels.
const (
	ImageWidth  = 800
	ImageHeight = 480
)

// RenderPNG draws c as a PNG image of the chart's kind.
func RenderPNG(w io.Writer, c Chart) error {
	maxVal := 0.0
	for _, p := range c.Points {
		maxVal = max(maxVal, p.Value)
	}
	if maxVal <= 0 {
		return ErrEmptyChart
	}

	var err error
	switch c.Kind {
	case ChartPie:
		err = pieChart(c).Render(chart.PNG, w)
	case ChartLine:
		err = lineChart(c, maxVal).Render(chart.PNG, w)
	default:
		err = barChart(c, maxVal).Render(chart.PNG, w)
	}
	if err != nil {
		return fmt.Errorf("rendering %s chart: %w", c.ID, err)
	}
	return nil
}

func pieChart(c Chart) chart.PieChart {
	values := make([]chart.Value, 0, len(c.Points))
	for _, p := range c.Points {
		if p.Value > 0 {
			values = append(values, chart.Value{Label: p.Label, Value: p.Value})
		}
	}
	return chart.PieChart{
		Title:  c.Title,
		Width:  ImageWidth,
		Height: ImageHeight,
		Values: values,
	}
}

func barChart(c Chart, maxVal float64) chart.BarChart {
	bars := make([]chart.Value, 0, len(c.Points))
	for _, p := range c.Points {
		bars = append(bars, chart.Value{Label: p.Label, Value: p.Value})
	}
	return chart.BarChart{
		Title:    c.Title,
		Width:    ImageWidth,
		Height:   ImageHeight,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal},
		},
		Bars: bars,
	}
}

// lineChart plots points at their index. A single point is drawn as a flat
// segment since the x range cannot be zero.
func lineChart(c Chart, maxVal float64) chart.Chart {
	xs := make([]float64, 0, len(c.Points))
	ys := make([]float64, 0, len(c.Points))
	ticks := make([]chart.Tick, 0, len(c.Points))
	for i, p := range c.Points {
		xs = append(xs, float64(i))
		ys = append(ys, p.Value)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.Label})
	}
	if len(xs) == 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[0])
	}

	return chart.Chart{
		Title:  c.Title,
		Width:  ImageWidth,
		Height: ImageHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: xs[len(xs)-1]},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.Title,
				XValues: xs,
				YValues: ys,
			},
		},
	}
}
