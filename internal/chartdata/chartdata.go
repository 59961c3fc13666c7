// Package chartdata shapes tabular records into render-ready chart bundles.
// The bundle is what a frontend binds to its chart library; no rendering
// happens here.
package chartdata

import (
	"math"
	"sort"

	"github.com/fernandopv429/data-gemini-visualizer/internal/dataset"
	"github.com/fernandopv429/data-gemini-visualizer/internal/profile"
)

// NamePoint is a labeled value for bar and pie charts.
type NamePoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// XYPoint is a point on a line chart; X is a label (often temporal).
type XYPoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// ScatterPoint is a named numeric pair.
type ScatterPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Name string  `json:"name,omitempty"`
}

// Titles carries a display title per chart shape.
type Titles struct {
	Bar     string `json:"bar,omitempty"`
	Line    string `json:"line,omitempty"`
	Pie     string `json:"pie,omitempty"`
	Scatter string `json:"scatter,omitempty"`
}

// Bundle holds parallel chart representations of one dataset.
type Bundle struct {
	Bar     []NamePoint    `json:"bar"`
	Line    []XYPoint      `json:"line"`
	Pie     []NamePoint    `json:"pie"`
	Scatter []ScatterPoint `json:"scatter"`
	Titles  Titles         `json:"titles"`
	// Source records how the bundle was produced: "ai" or "local".
	Source string `json:"source,omitempty"`
}

// Empty reports whether the bundle carries no chart data at all.
func (b *Bundle) Empty() bool {
	return len(b.Bar) == 0 && len(b.Line) == 0 && len(b.Pie) == 0 && len(b.Scatter) == 0
}

const maxSlices = 10

// Build produces a Bundle from a table using only local heuristics. It is
// the fallback when the AI chart stage fails, and a full replacement when no
// API key is configured.
func Build(t *dataset.Table, cls profile.Classification) *Bundle {
	b := &Bundle{Source: "local"}

	catCol := firstUsable(cls.Categorical)
	numCol := firstUsable(cls.Numeric)
	tempCol := firstUsable(cls.Temporal)

	if catCol != "" && numCol != "" {
		points := groupSum(t, catCol, numCol)
		sort.Slice(points, func(i, j int) bool { return points[i].Value > points[j].Value })
		if len(points) > maxSlices {
			points = points[:maxSlices]
		}
		b.Bar = points
		b.Pie = points
		b.Titles.Bar = numCol + " by " + catCol
		b.Titles.Pie = numCol + " by " + catCol
	} else if catCol != "" {
		// No numeric column: fall back to category counts.
		points := groupCount(t, catCol)
		sort.Slice(points, func(i, j int) bool { return points[i].Value > points[j].Value })
		if len(points) > maxSlices {
			points = points[:maxSlices]
		}
		b.Bar = points
		b.Pie = points
		b.Titles.Bar = "count by " + catCol
		b.Titles.Pie = "count by " + catCol
	}

	if numCol != "" {
		axis := tempCol
		if axis == "" {
			axis = catCol
		}
		if axis != "" {
			b.Line = lineSeries(t, axis, numCol, tempCol != "")
			b.Titles.Line = numCol + " over " + axis
		}
	}

	if len(cls.Numeric) >= 2 {
		xCol, yCol := cls.Numeric[0], cls.Numeric[1]
		b.Scatter = scatterSeries(t, xCol, yCol, catCol)
		b.Titles.Scatter = yCol + " vs " + xCol
	}
	return b
}

// firstUsable returns the first column name, skipping nothing for now; kept
// as a seam so ID-like columns can be filtered by callers.
func firstUsable(cols []string) string {
	if len(cols) == 0 {
		return ""
	}
	return cols[0]
}

func groupSum(t *dataset.Table, catCol, numCol string) []NamePoint {
	cats := t.Column(catCol)
	nums := t.Column(numCol)
	sums := make(map[string]float64)
	order := make([]string, 0)
	for i, c := range cats {
		if profile.IsMissing(c) || i >= len(nums) {
			continue
		}
		v, ok := profile.ParseNumber(nums[i])
		if !ok {
			continue
		}
		if _, seen := sums[c]; !seen {
			order = append(order, c)
		}
		sums[c] += v
	}
	out := make([]NamePoint, 0, len(order))
	for _, c := range order {
		out = append(out, NamePoint{Name: c, Value: round2(sums[c])})
	}
	return out
}

func groupCount(t *dataset.Table, catCol string) []NamePoint {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, c := range t.Column(catCol) {
		if profile.IsMissing(c) {
			continue
		}
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}
	out := make([]NamePoint, 0, len(order))
	for _, c := range order {
		out = append(out, NamePoint{Name: c, Value: float64(counts[c])})
	}
	return out
}

func lineSeries(t *dataset.Table, axisCol, numCol string, temporal bool) []XYPoint {
	points := groupSum(t, axisCol, numCol)
	out := make([]XYPoint, 0, len(points))
	for _, p := range points {
		out = append(out, XYPoint{X: p.Name, Y: p.Value})
	}
	if temporal {
		sort.Slice(out, func(i, j int) bool {
			return profile.TemporalOrder(out[i].X) < profile.TemporalOrder(out[j].X)
		})
	}
	return out
}

func scatterSeries(t *dataset.Table, xCol, yCol, nameCol string) []ScatterPoint {
	xs := t.Column(xCol)
	ys := t.Column(yCol)
	var names []string
	if nameCol != "" {
		names = t.Column(nameCol)
	}
	out := make([]ScatterPoint, 0, len(xs))
	for i := range xs {
		if i >= len(ys) {
			break
		}
		x, okX := profile.ParseNumber(xs[i])
		y, okY := profile.ParseNumber(ys[i])
		if !okX || !okY {
			continue
		}
		p := ScatterPoint{X: x, Y: y}
		if i < len(names) {
			p.Name = names[i]
		}
		out = append(out, p)
		if len(out) >= 200 {
			break
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
