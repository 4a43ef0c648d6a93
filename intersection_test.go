package posekit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestIntersectionOrdering(t *testing.T) {
	src := MustSchema("nose", "neck", "left hip", "right hip", "pelvis")
	dest := MustSchema("pelvis", "left hip", "left knee", "nose")

	ix := NewIntersection(src, dest)

	// Common landmarks come out in destination order.
	assert.Equal(t, []string{"pelvis", "left hip", "nose"}, ix.Landmarks())
	assert.Equal(t, []int{4, 2, 0}, ix.SourceIndex())
	assert.Equal(t, []int{0, 1, 3}, ix.DestIndex())
	assert.Equal(t, 3, ix.Len())
}

func TestIntersectionCardinality(t *testing.T) {
	tests := []struct {
		name string
		src  []string
		dest []string
		want int
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 2},
		{"reordered", []string{"a", "b", "c"}, []string{"c", "a"}, 2},
		{"disjoint", []string{"a", "b"}, []string{"c", "d"}, 0},
		{"subset", []string{"a", "b", "c", "d"}, []string{"b", "d"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := NewIntersection(MustSchema(tt.src...), MustSchema(tt.dest...))
			assert.Equal(t, tt.want, ix.Len())
		})
	}
}

func TestProjectSingleFrame(t *testing.T) {
	src := MustSchema("nose", "neck", "pelvis")
	dest := MustSchema("pelvis", "nose")
	ix := NewIntersection(src, dest)

	srcFrame := [][]float64{{1, 10}, {2, 20}, {3, 30}}
	got, err := ix.ProjectSource(srcFrame)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3, 30}, {1, 10}}, got)

	destFrame := [][]float64{{7, 70, 0.9}, {8, 80, 0.5}}
	gotDest, err := ix.ProjectDest(destFrame)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{7, 70, 0.9}, {8, 80, 0.5}}, gotDest)
	assert.Len(t, gotDest, ix.Len())
}

func TestProjectCopiesRows(t *testing.T) {
	src := MustSchema("nose", "pelvis")
	dest := MustSchema("pelvis")
	ix := NewIntersection(src, dest)

	frame := [][]float64{{1, 2}, {3, 4}}
	got, err := ix.ProjectSource(frame)
	require.NoError(t, err)
	got[0][0] = 99
	assert.Equal(t, 3.0, frame[1][0], "projection must not alias input rows")
}

func TestProjectFrameSequence(t *testing.T) {
	src := MustSchema("nose", "neck", "pelvis")
	dest := MustSchema("pelvis", "nose")
	ix := NewIntersection(src, dest)

	frames := [][][]float64{
		{{1, 10}, {2, 20}, {3, 30}},
		{{4, 40}, {5, 50}, {6, 60}},
	}
	got, err := ix.ProjectSourceFrames(frames)
	require.NoError(t, err)
	assert.Equal(t, [][][]float64{
		{{3, 30}, {1, 10}},
		{{6, 60}, {4, 40}},
	}, got)
}

func TestProjectOutOfRange(t *testing.T) {
	src := MustSchema("nose", "neck", "pelvis")
	dest := MustSchema("pelvis", "nose")
	ix := NewIntersection(src, dest)

	// The frame claims to be in source layout but is too short for the
	// pelvis index.
	_, err := ix.ProjectSource([][]float64{{1, 10}, {2, 20}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = ix.ProjectSourceFrames([][][]float64{
		{{1, 10}, {2, 20}, {3, 30}},
		{{1, 10}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame 1")
}

func TestProjectMatrix(t *testing.T) {
	src := MustSchema("nose", "neck", "pelvis")
	dest := MustSchema("pelvis", "nose")
	ix := NewIntersection(src, dest)

	m := mat.NewDense(3, 2, []float64{1, 10, 2, 20, 3, 30})
	got, err := ix.ProjectSourceMat(m)
	require.NoError(t, err)
	rows, cols := got.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []float64{3, 30}, mat.Row(nil, 0, got))
	assert.Equal(t, []float64{1, 10}, mat.Row(nil, 1, got))

	short := mat.NewDense(2, 2, []float64{1, 10, 2, 20})
	_, err = ix.ProjectSourceMat(short)
	require.Error(t, err)
}

func TestIntersectionDeterministic(t *testing.T) {
	src := MustSchema("nose", "neck", "left hip", "pelvis")
	dest := MustSchema("pelvis", "left hip", "nose")
	a := NewIntersection(src, dest)
	b := NewIntersection(src, dest)
	if diff := cmp.Diff(a.Landmarks(), b.Landmarks()); diff != "" {
		t.Errorf("rebuilt intersection differs:\n%s", diff)
	}
	if diff := cmp.Diff(a.SourceIndex(), b.SourceIndex()); diff != "" {
		t.Errorf("rebuilt source index differs:\n%s", diff)
	}
}
