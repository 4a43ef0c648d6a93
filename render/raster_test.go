package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/posekit"
)

func testSkeleton(t *testing.T) (*posekit.Topology, *posekit.ColourMap) {
	t.Helper()
	s, err := posekit.NewSchema([]string{"left hip", "right hip", "pelvis"})
	require.NoError(t, err)
	return posekit.NewTopology(s), posekit.NewColourMap(s)
}

func TestRasterDrawsMarkers(t *testing.T) {
	topo, colours := testSkeleton(t)
	keypoints := [][]float64{
		{20, 80}, // left hip
		{80, 80}, // right hip
		{50, 20}, // pelvis
	}

	img, err := Raster(100, 100, topo, colours, keypoints, DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	// Marker centres carry the exact landmark colours: pelvis is the
	// spine gradient end (red), background stays black.
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.At(50, 20))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.At(5, 5))
}

func TestRasterDrawsBones(t *testing.T) {
	topo, colours := testSkeleton(t)
	keypoints := [][]float64{
		{20, 80},
		{80, 80},
		{50, 80}, // pelvis level with the hips: bones form one horizontal line
	}

	style := DefaultStyle()
	style.Radius = 2
	img, err := Raster(100, 100, topo, colours, keypoints, style)
	require.NoError(t, err)

	// Midway between left hip and pelvis, away from any marker, only the
	// bone stroke can have painted this pixel.
	r, g, b, _ := img.At(35, 80).RGBA()
	assert.NotEqual(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b}, "bone segment not drawn")
}

func TestRasterFrameTooShort(t *testing.T) {
	topo, colours := testSkeleton(t)
	_, err := Raster(100, 100, topo, colours, [][]float64{{1, 2}}, DefaultStyle())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 landmarks")
}

func TestRasterSkipsMissingKeypoints(t *testing.T) {
	topo, colours := testSkeleton(t)
	keypoints := [][]float64{
		{math.NaN(), math.NaN()}, // left hip not detected
		{80, 80},
		{50, 20},
	}

	img, err := Raster(100, 100, topo, colours, keypoints, DefaultStyle())
	require.NoError(t, err)
	// The right hip and pelvis still render.
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.At(50, 20))
}

func TestDefaultStyle(t *testing.T) {
	style := DefaultStyle()
	assert.Equal(t, posekit.Main|posekit.Head, style.Sections)
	assert.Equal(t, 5.0, style.Radius)
}
