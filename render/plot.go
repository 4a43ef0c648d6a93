package render

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/posekit"
)

// SavePlot renders one frame of keypoints as a vector plot and saves it.
// The output format follows the file extension (.png, .svg, .pdf, ...).
// Axis ranges are equalised so the figure keeps the body's aspect ratio,
// and the y axis is flipped so screen-convention keypoints come out
// upright.
func SavePlot(path string, topo *posekit.Topology, colours *posekit.ColourMap, keypoints [][]float64, style Style) error {
	if err := checkFrame(topo, keypoints); err != nil {
		return err
	}
	colourMap := colours.Colours(style.Sections)

	p := plot.New()
	p.HideAxes()

	var xs, ys []float64
	for _, bone := range topo.Bones(style.Sections) {
		x1, y1, ok1 := point2D(keypoints[bone.Start])
		x2, y2, ok2 := point2D(keypoints[bone.End])
		if !ok1 || !ok2 {
			continue
		}
		line, err := plotter.NewLine(plotter.XYs{{X: x1, Y: -y1}, {X: x2, Y: -y2}})
		if err != nil {
			return fmt.Errorf("bone line: %w", err)
		}
		line.Color = landmarkColour(colourMap, bone.Start)
		line.Width = vg.Points(style.LineWidth)
		p.Add(line)
		xs = append(xs, x1, x2)
		ys = append(ys, -y1, -y2)
	}

	for idx, col := range colourMap {
		if idx >= len(keypoints) {
			continue
		}
		x, y, ok := point2D(keypoints[idx])
		if !ok {
			continue
		}
		scatter, err := plotter.NewScatter(plotter.XYs{{X: x, Y: -y}})
		if err != nil {
			return fmt.Errorf("landmark marker: %w", err)
		}
		scatter.GlyphStyle.Color = col
		scatter.GlyphStyle.Radius = vg.Points(style.Radius)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		xs = append(xs, x)
		ys = append(ys, -y)
	}

	if len(xs) == 0 {
		return fmt.Errorf("render: no drawable keypoints in frame")
	}
	equaliseAxes(p, xs, ys)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// equaliseAxes centres both axes on the data and gives them the same span,
// padded slightly so edge markers stay visible.
func equaliseAxes(p *plot.Plot, xs, ys []float64) {
	xMin, xMax := floats.Min(xs), floats.Max(xs)
	yMin, yMax := floats.Min(ys), floats.Max(ys)

	span := xMax - xMin
	if s := yMax - yMin; s > span {
		span = s
	}
	if span == 0 {
		span = 1
	}
	span *= 1.1

	xMid := (xMin + xMax) / 2
	yMid := (yMin + yMax) / 2
	p.X.Min, p.X.Max = xMid-span/2, xMid+span/2
	p.Y.Min, p.Y.Max = yMid-span/2, yMid+span/2
}
