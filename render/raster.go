// Package render draws skeletons from precomputed bone and colour data.
//
// Both renderers are thin consumers of a posekit Topology and ColourMap:
// they never recompute connectivity or colours, they only place segments
// and markers at caller-supplied keypoint coordinates. Keypoints are rows
// of at least (x, y) index-aligned to the schema the topology was built
// from; rows with NaN coordinates are treated as not detected in this
// frame and skipped.
package render

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/banshee-data/posekit"
)

// missingColour marks landmarks no body part claims.
var missingColour = posekit.Colour{R: 128, G: 128, B: 128}

// Style controls how a skeleton is drawn.
type Style struct {
	// Radius of the landmark markers in pixels (raster) or points (plot).
	Radius float64
	// LineWidth of the bone segments.
	LineWidth float64
	// Sections selects which skeleton sections to draw.
	Sections posekit.Section
}

// DefaultStyle draws the body outline and head centre line, the usual
// mask for a simple skeleton.
func DefaultStyle() Style {
	return Style{
		Radius:    5,
		LineWidth: 2,
		Sections:  posekit.Main | posekit.Head,
	}
}

// Raster draws one frame of keypoints onto a fresh black canvas and
// returns the image. Each bone is a segment in the colour of its
// gradient-start endpoint; each landmark is a filled circle in its own
// colour.
func Raster(width, height int, topo *posekit.Topology, colours *posekit.ColourMap, keypoints [][]float64, style Style) (image.Image, error) {
	dc := gg.NewContext(width, height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	if err := Draw(dc, topo, colours, keypoints, style); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Draw renders one frame of keypoints onto an existing drawing context,
// e.g. on top of the video frame the pose was estimated from.
func Draw(dc *gg.Context, topo *posekit.Topology, colours *posekit.ColourMap, keypoints [][]float64, style Style) error {
	if err := checkFrame(topo, keypoints); err != nil {
		return err
	}
	colourMap := colours.Colours(style.Sections)

	dc.SetLineWidth(style.LineWidth)
	for _, bone := range topo.Bones(style.Sections) {
		x1, y1, ok1 := point2D(keypoints[bone.Start])
		x2, y2, ok2 := point2D(keypoints[bone.End])
		if !ok1 || !ok2 {
			continue
		}
		dc.SetColor(landmarkColour(colourMap, bone.Start))
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	for idx := range colourMap {
		if idx >= len(keypoints) {
			continue
		}
		x, y, ok := point2D(keypoints[idx])
		if !ok {
			continue
		}
		dc.SetColor(colourMap[idx])
		dc.DrawCircle(x, y, style.Radius)
		dc.Fill()
	}
	return nil
}

// checkFrame verifies the keypoint array actually matches the schema the
// topology indexes into.
func checkFrame(topo *posekit.Topology, keypoints [][]float64) error {
	if want := topo.Schema().Len(); len(keypoints) < want {
		return fmt.Errorf("render: frame has %d keypoints, schema has %d landmarks", len(keypoints), want)
	}
	return nil
}

// point2D extracts drawable x,y from a keypoint row. Rows shorter than two
// coordinates or containing NaN mark landmarks not detected in this frame.
func point2D(row []float64) (x, y float64, ok bool) {
	if len(row) < 2 {
		return 0, 0, false
	}
	if math.IsNaN(row[0]) || math.IsNaN(row[1]) {
		return 0, 0, false
	}
	return row[0], row[1], true
}

func landmarkColour(colours map[int]posekit.Colour, idx int) posekit.Colour {
	if col, ok := colours[idx]; ok {
		return col
	}
	return missingColour
}
