// Package viewer serves an interactive 3D skeleton view in the browser.
//
// It is a thin consumer of a posekit Topology and ColourMap: bones become
// line segments, landmarks become scatter points, both in the colours the
// core assigned. Frames are caller-supplied keypoint arrays aligned to the
// topology's schema; 2D keypoints are lifted to z=0.
package viewer

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/posekit"
)

// RenderHTML writes a self-contained HTML page showing one frame of
// keypoints as an interactive 3D skeleton. Landmarks with NaN coordinates
// are treated as not detected and omitted along with their bones.
func RenderHTML(w io.Writer, topo *posekit.Topology, colours *posekit.ColourMap, frame [][]float64, mask posekit.Section) error {
	if want := topo.Schema().Len(); len(frame) < want {
		return fmt.Errorf("viewer: frame has %d keypoints, schema has %d landmarks", len(frame), want)
	}
	colourMap := colours.Colours(mask)
	schema := topo.Schema()

	bones := charts.NewLine3D()
	bones.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "posekit skeleton",
			Theme:     "dark",
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Skeleton",
			Subtitle: fmt.Sprintf("sections=%v landmarks=%d", mask, schema.Len()),
		}),
	)
	for _, bone := range topo.Bones(mask) {
		start, ok1 := point3D(frame[bone.Start])
		end, ok2 := point3D(frame[bone.End])
		if !ok1 || !ok2 {
			continue
		}
		hex := boneColour(colourMap, bone).Hex()
		name := schema.Name(bone.Start) + " - " + schema.Name(bone.End)
		bones.AddSeries(name,
			[]opts.Chart3DData{{Value: start}, {Value: end}},
			charts.WithLineStyleOpts(opts.LineStyle{Color: hex, Width: 4}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hex}),
		)
	}

	points := charts.NewScatter3D()
	points.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  "dark",
			Width:  "900px",
			Height: "700px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Landmarks"}),
	)
	for _, group := range colourGroups(colourMap, frame) {
		points.AddSeries(group.hex, group.data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: group.hex}),
		)
	}

	page := components.NewPage()
	page.AddCharts(bones, points)
	return page.Render(w)
}

// colourGroup batches the landmarks sharing one colour into a single
// scatter series.
type colourGroup struct {
	hex  string
	data []opts.Chart3DData
}

func colourGroups(colourMap map[int]posekit.Colour, frame [][]float64) []colourGroup {
	byHex := make(map[string][]opts.Chart3DData)
	for idx, col := range colourMap {
		if idx >= len(frame) {
			continue
		}
		value, ok := point3D(frame[idx])
		if !ok {
			continue
		}
		hex := col.Hex()
		byHex[hex] = append(byHex[hex], opts.Chart3DData{Value: value})
	}

	hexes := make([]string, 0, len(byHex))
	for hex := range byHex {
		hexes = append(hexes, hex)
	}
	sort.Strings(hexes)

	groups := make([]colourGroup, 0, len(hexes))
	for _, hex := range hexes {
		groups = append(groups, colourGroup{hex: hex, data: byHex[hex]})
	}
	return groups
}

// point3D lifts a keypoint row to echarts 3D coordinates. 2D rows get z=0;
// rows shorter than two coordinates or containing NaN are not detected.
func point3D(row []float64) ([]interface{}, bool) {
	if len(row) < 2 {
		return nil, false
	}
	z := 0.0
	if len(row) >= 3 {
		z = row[2]
	}
	for _, v := range []float64{row[0], row[1], z} {
		if math.IsNaN(v) {
			return nil, false
		}
	}
	return []interface{}{row[0], row[1], z}, true
}

func boneColour(colourMap map[int]posekit.Colour, bone posekit.Bone) posekit.Colour {
	if col, ok := colourMap[bone.Start]; ok {
		return col
	}
	return posekit.Colour{R: 128, G: 128, B: 128}
}
