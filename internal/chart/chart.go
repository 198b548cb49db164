// Package chart renders the report's PNG charts from aggregated series
// values using github.com/wcharczuk/go-chart.
package chart

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hrpulse/hrpulse/schema"
	chart "github.com/wcharczuk/go-chart/v2"
)

// Chart canvas dimensions, sized for a 13.3in widescreen slide.
const (
	chartWidth  = 1000
	chartHeight = 500
	barWidth    = 80
)

// monthTimes converts months to the time values go-chart plots on X.
func monthTimes(months []schema.Month) []time.Time {
	xs := make([]time.Time, len(months))
	for i, m := range months {
		xs[i] = m.Time()
	}
	return xs
}

// renderPNG opens the target file and hands it to the render callback,
// wrapping any failure with the failing path.
func renderPNG(path string, render func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create chart %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := render(file); err != nil {
		return fmt.Errorf("cannot render chart %s: %w", path, err)
	}
	return nil
}

// RenderHeadcountTrend draws the company-wide headcount line chart.
func RenderHeadcountTrend(months []schema.Month, headcounts []float64, path string) error {
	graph := chart.Chart{
		Title:  "Total Headcount Trend",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name:           "Month",
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis: chart.YAxis{Name: "Employees"},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Headcount",
				XValues: monthTimes(months),
				YValues: headcounts,
				Style: chart.Style{
					StrokeWidth: 2.5,
					DotWidth:    4,
				},
			},
		},
	}
	return renderPNG(path, func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

// RenderHiringTurnover draws new hires against the turnover rate, turnover
// on a secondary axis since the scales differ by two orders of magnitude.
func RenderHiringTurnover(months []schema.Month, hires, turnoverPct []float64, path string) error {
	xs := monthTimes(months)
	graph := chart.Chart{
		Title:  "Hiring Activity vs Turnover Rate",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name:           "Month",
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis:          chart.YAxis{Name: "New Hires"},
		YAxisSecondary: chart.YAxis{Name: "Turnover Rate (%)"},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "New Hires",
				XValues: xs,
				YValues: hires,
				Style:   chart.Style{StrokeWidth: 2.5},
			},
			chart.TimeSeries{
				Name:    "Turnover Rate (%)",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: turnoverPct,
				Style:   chart.Style{StrokeWidth: 2.5, StrokeDashArray: []float64{4, 2}},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPNG(path, func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

// RenderDepartmentBreakdown draws the latest month's headcount per
// department as a bar chart, departments in rank order.
func RenderDepartmentBreakdown(rows []schema.BreakdownRow, path string) error {
	bars := make([]chart.Value, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, chart.Value{
			Label: string(r.Department),
			Value: float64(r.Headcount),
		})
	}

	graph := chart.BarChart{
		Title:    "Headcount by Department",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth,
		YAxis:    chart.YAxis{Name: "Employees"},
		Bars:     bars,
	}
	return renderPNG(path, func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}
