package charts

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"suedtirol/server/internal/models"
)

var ErrNoData = errors.New("comparison table has no rows to draw")

// Options sizes the rendered image in pixels.
type Options struct {
	Width  int
	Height int
	Title  string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 900
	}
	if o.Height <= 0 {
		o.Height = 500
	}
	return o
}

var aggregateStyle = chart.Style{
	StrokeColor:     drawing.ColorFromHex("777777"),
	StrokeWidth:     2,
	StrokeDashArray: []float64{6, 4},
}

func seriesStyle(i int) chart.Style {
	return chart.Style{
		StrokeColor: chart.GetDefaultColor(i),
		StrokeWidth: 2,
		DotColor:    chart.GetDefaultColor(i),
		DotWidth:    3,
	}
}

// RenderComparison draws one line per entity mean plus the aggregate line
// and returns the PNG bytes.
func RenderComparison(table *models.ComparisonTable, bounds models.AxisBounds, opts Options) ([]byte, error) {
	if table.IsEmpty() {
		return nil, ErrNoData
	}
	opts = opts.withDefaults()

	xs := make([]float64, len(table.Rows))
	xTicks := make([]chart.Tick, len(table.Rows))
	for i, row := range table.Rows {
		xs[i] = float64(row.Year)
		xTicks[i] = chart.Tick{Value: xs[i], Label: row.Label}
	}
	xRange := &chart.ContinuousRange{Min: xs[0] - 0.5, Max: xs[len(xs)-1] + 0.5}

	// go-chart needs two points per line; a single year becomes a short flat segment
	if len(xs) == 1 {
		xs = []float64{xs[0] - 0.25, xs[0] + 0.25}
	}
	values := func(pick func(models.ComparisonRow) float64) []float64 {
		ys := make([]float64, 0, len(xs))
		for _, row := range table.Rows {
			ys = append(ys, pick(row))
		}
		if len(ys) == 1 {
			ys = append(ys, ys[0])
		}
		return ys
	}

	series := make([]chart.Series, 0, len(table.Entities)+1)
	for i, entity := range table.Entities {
		idx := i
		series = append(series, chart.ContinuousSeries{
			Name:    entity,
			XValues: xs,
			YValues: values(func(r models.ComparisonRow) float64 { return r.Values[idx].Mean }),
			Style:   seriesStyle(i),
		})
	}
	aggregateName := table.AggregateLabel
	if aggregateName == "" {
		aggregateName = "Durchschnitt"
	}
	series = append(series, chart.ContinuousSeries{
		Name:    aggregateName,
		XValues: xs,
		YValues: values(func(r models.ComparisonRow) float64 { return r.Aggregate }),
		Style:   aggregateStyle,
	})

	yTicks := make([]chart.Tick, len(bounds.Ticks))
	for i, v := range bounds.Ticks {
		yTicks[i] = chart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', 0, 64)}
	}
	yName := table.ValueLabel
	if table.Unit != "" {
		yName = fmt.Sprintf("%s (%s)", table.ValueLabel, table.Unit)
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "Jahr", Range: xRange, Ticks: xTicks},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: &chart.ContinuousRange{Min: bounds.Lower, Max: bounds.Upper},
			Ticks: yTicks,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
