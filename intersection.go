package posekit

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Intersection reconciles two landmark schemas into their common subset.
// Different datasets and pose systems carry different landmark sets in
// different orders; an Intersection records the landmarks both share and
// provides projections that subset and reorder keypoint arrays from either
// side into directly comparable form. The common landmarks are ordered by
// the destination schema.
//
// An Intersection is built once per schema pair and immutable afterwards.
type Intersection struct {
	landmarks []string
	srcIndex  []int
	destIndex []int
}

// NewIntersection finds the landmarks src and dest share. For each common
// landmark, in destination order, the source and destination indices are
// recorded so arrays from either schema can be projected onto the common
// layout.
func NewIntersection(src, dest *Schema) *Intersection {
	ix := &Intersection{}
	for destIdx, name := range dest.names {
		if srcIdx, ok := src.Index(name); ok {
			ix.landmarks = append(ix.landmarks, name)
			ix.srcIndex = append(ix.srcIndex, srcIdx)
			ix.destIndex = append(ix.destIndex, destIdx)
		}
	}
	return ix
}

// Len returns the number of common landmarks.
func (ix *Intersection) Len() int { return len(ix.landmarks) }

// Landmarks returns a copy of the common landmark names in destination
// order. This order is the layout of every projected array.
func (ix *Intersection) Landmarks() []string {
	return append([]string(nil), ix.landmarks...)
}

// SourceIndex returns, per common landmark, its index in the source schema.
func (ix *Intersection) SourceIndex() []int {
	return append([]int(nil), ix.srcIndex...)
}

// DestIndex returns, per common landmark, its index in the destination
// schema.
func (ix *Intersection) DestIndex() []int {
	return append([]int(nil), ix.destIndex...)
}

// ProjectSource subsets and reorders one frame of source keypoints (rows =
// landmarks in source order) onto the common layout. Rows are copied,
// never aliased.
func (ix *Intersection) ProjectSource(frame [][]float64) ([][]float64, error) {
	return gatherRows(frame, ix.srcIndex, "source")
}

// ProjectDest subsets one frame of destination keypoints onto the common
// layout.
func (ix *Intersection) ProjectDest(frame [][]float64) ([][]float64, error) {
	return gatherRows(frame, ix.destIndex, "destination")
}

// ProjectSourceFrames projects a frame sequence (frames × landmarks ×
// coordinates) from the source schema onto the common layout.
func (ix *Intersection) ProjectSourceFrames(frames [][][]float64) ([][][]float64, error) {
	return gatherFrames(frames, ix.srcIndex, "source")
}

// ProjectDestFrames projects a frame sequence from the destination schema
// onto the common layout.
func (ix *Intersection) ProjectDestFrames(frames [][][]float64) ([][][]float64, error) {
	return gatherFrames(frames, ix.destIndex, "destination")
}

// ProjectSourceMat projects a gonum matrix (rows = landmarks in source
// order) onto the common layout.
func (ix *Intersection) ProjectSourceMat(m *mat.Dense) (*mat.Dense, error) {
	return gatherMatRows(m, ix.srcIndex, "source")
}

// ProjectDestMat projects a gonum matrix from the destination schema onto
// the common layout.
func (ix *Intersection) ProjectDestMat(m *mat.Dense) (*mat.Dense, error) {
	return gatherMatRows(m, ix.destIndex, "destination")
}

func gatherRows(frame [][]float64, index []int, schema string) ([][]float64, error) {
	out := make([][]float64, len(index))
	for k, i := range index {
		if i >= len(frame) {
			return nil, fmt.Errorf("posekit: %s array has %d landmarks, landmark index %d out of range", schema, len(frame), i)
		}
		out[k] = append([]float64(nil), frame[i]...)
	}
	return out, nil
}

func gatherFrames(frames [][][]float64, index []int, schema string) ([][][]float64, error) {
	out := make([][][]float64, len(frames))
	for f, frame := range frames {
		rows, err := gatherRows(frame, index, schema)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", f, err)
		}
		out[f] = rows
	}
	return out, nil
}

func gatherMatRows(m *mat.Dense, index []int, schema string) (*mat.Dense, error) {
	rows, cols := m.Dims()
	if len(index) == 0 {
		return &mat.Dense{}, nil
	}
	out := mat.NewDense(len(index), cols, nil)
	for k, i := range index {
		if i >= rows {
			return nil, fmt.Errorf("posekit: %s matrix has %d landmarks, landmark index %d out of range", schema, rows, i)
		}
		out.SetRow(k, mat.Row(nil, i, m))
	}
	return out, nil
}
