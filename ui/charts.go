package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mideck/domain/demo"
)

// SVG canvas sizes in user units.
const (
	chartWidth   = 600.0
	chartHeight  = 120.0
	chartMargin  = 30.0
	lineHeight   = 260.0
	lineMarginY  = 20.0
	lineMarginX  = 50.0
	axisBaseline = 85.0
	pointY       = 45.0
)

type tick struct {
	Pos   float64
	Label string
}

// intervalPlot is the point-with-error-bar chart in pixel space.
type intervalPlot struct {
	Width, Height        float64
	Left, Right          float64
	Baseline, TickEnd    float64
	PointY               float64
	WhiskerTop           float64
	WhiskerBottom        float64
	Estimate             float64
	Lower, Upper         float64
	Ticks                []tick
	XLabel               string
	EstimateLabel        string
	LowerText, UpperText string
}

func newIntervalPlot(cs demo.ChartSpec) intervalPlot {
	inner := chartWidth - 2*chartMargin
	x := func(v float64) float64 { return chartMargin + cs.Scale(v, inner) }

	p := intervalPlot{
		Width:         chartWidth,
		Height:        chartHeight,
		Left:          chartMargin,
		Right:         chartWidth - chartMargin,
		Baseline:      axisBaseline,
		TickEnd:       axisBaseline + 5,
		PointY:        pointY,
		WhiskerTop:    pointY - 8,
		WhiskerBottom: pointY + 8,
		Estimate:      x(cs.Estimate),
		Lower:         x(cs.Lower),
		Upper:         x(cs.Upper),
		XLabel:        cs.XLabel,
		EstimateLabel: fmt.Sprintf("%.2f", cs.Estimate),
		LowerText:     fmt.Sprintf("%.2f", cs.Lower),
		UpperText:     fmt.Sprintf("%.2f", cs.Upper),
	}
	for _, t := range cs.Ticks {
		p.Ticks = append(p.Ticks, tick{Pos: x(t), Label: strconv.FormatFloat(t, 'f', -1, 64)})
	}
	return p
}

// linePlot is the two-series accuracy chart in pixel space.
type linePlot struct {
	Width, Height float64
	Left, Right   float64
	Top, Bottom   float64
	R, SAS        string
	XTicks        []tick
	YTicks        []tick
}

func newLinePlot(series demo.AccuracySeries) linePlot {
	p := linePlot{
		Width:  chartWidth,
		Height: lineHeight,
		Left:   lineMarginX,
		Right:  chartWidth - lineMarginY,
		Top:    lineMarginY,
		Bottom: lineHeight - lineMarginX,
	}
	if len(series.Points) == 0 {
		return p
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, pt := range series.Points {
		lo = math.Min(lo, math.Min(pt.R, pt.SAS))
		hi = math.Max(hi, math.Max(pt.R, pt.SAS))
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1e-3)
	}
	lo, hi = lo-pad, hi+pad

	first := float64(series.Points[0].Visit)
	last := float64(series.Points[len(series.Points)-1].Visit)
	span := last - first
	if span == 0 {
		span = 1
	}
	x := func(v int) float64 { return p.Left + (float64(v)-first)/span*(p.Right-p.Left) }
	y := func(v float64) float64 { return p.Bottom - (v-lo)/(hi-lo)*(p.Bottom-p.Top) }

	var r, sas strings.Builder
	for i, pt := range series.Points {
		if i > 0 {
			r.WriteByte(' ')
			sas.WriteByte(' ')
		}
		fmt.Fprintf(&r, "%.1f,%.1f", x(pt.Visit), y(pt.R))
		fmt.Fprintf(&sas, "%.1f,%.1f", x(pt.Visit), y(pt.SAS))
		if pt.Visit == 1 || pt.Visit%4 == 0 {
			p.XTicks = append(p.XTicks, tick{Pos: x(pt.Visit), Label: strconv.Itoa(pt.Visit)})
		}
	}
	p.R, p.SAS = r.String(), sas.String()

	for i := 0; i <= 4; i++ {
		v := lo + float64(i)*(hi-lo)/4
		p.YTicks = append(p.YTicks, tick{Pos: y(v), Label: fmt.Sprintf("%.3f", v)})
	}
	return p
}
