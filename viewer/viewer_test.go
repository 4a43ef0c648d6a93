package viewer

import (
	"bytes"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
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

func TestRenderHTML(t *testing.T) {
	topo, colours := testSkeleton(t)
	frame := [][]float64{{1, 2, 3}, {4, 5, 6}, {2.5, 3, 4}}

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, topo, colours, frame, posekit.Full))

	html := buf.String()
	assert.Contains(t, html, "line3D")
	assert.Contains(t, html, "scatter3D")
	// Both hip-to-pelvis bones are named series.
	assert.Contains(t, html, "left hip - pelvis")
	assert.Contains(t, html, "right hip - pelvis")
	// The pelvis colour (spine gradient end) appears.
	assert.Contains(t, html, "#ff0000")
}

func TestRenderHTMLLifts2DFrames(t *testing.T) {
	topo, colours := testSkeleton(t)
	frame := [][]float64{{1, 2}, {4, 5}, {2.5, 3}}

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, topo, colours, frame, posekit.Full))
	assert.Positive(t, buf.Len())
}

func TestRenderHTMLSkipsMissingLandmarks(t *testing.T) {
	topo, colours := testSkeleton(t)
	nan := math.NaN()
	frame := [][]float64{{nan, nan}, {4, 5}, {2.5, 3}}

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, topo, colours, frame, posekit.Full))
	assert.NotContains(t, buf.String(), "left hip - pelvis")
	assert.Contains(t, buf.String(), "right hip - pelvis")
}

func TestRenderHTMLFrameTooShort(t *testing.T) {
	topo, colours := testSkeleton(t)
	var buf bytes.Buffer
	err := RenderHTML(&buf, topo, colours, [][]float64{{1, 2}}, posekit.Full)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 landmarks")
}

func TestServerHandleSkeleton(t *testing.T) {
	topo, colours := testSkeleton(t)
	frames := [][][]float64{
		{{1, 2}, {4, 5}, {2.5, 3}},
		{{2, 3}, {5, 6}, {3.5, 4}},
	}
	srv := New("localhost:0", topo, colours, frames)
	mux := srv.ServeMux()

	tests := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{"default frame", "/", http.StatusOK},
		{"explicit frame", "/?frame=1", http.StatusOK},
		{"frame out of range", "/?frame=2", http.StatusBadRequest},
		{"negative frame", "/?frame=-1", http.StatusBadRequest},
		{"explicit sections", "/?sections=main", http.StatusOK},
		{"bad sections", "/?sections=torso", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, strings.Contains(rec.Body.String(), "line3D"))
			}
		})
	}
}

func TestServerFrameCount(t *testing.T) {
	topo, colours := testSkeleton(t)
	srv := New("localhost:0", topo, colours, [][][]float64{{{1, 2}, {3, 4}, {5, 6}}})

	rec := httptest.NewRecorder()
	srv.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frames", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"frames": 1}`, rec.Body.String())
}

func TestServerRejectsPost(t *testing.T) {
	topo, colours := testSkeleton(t)
	srv := New("localhost:0", topo, colours, nil)

	rec := httptest.NewRecorder()
	srv.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
