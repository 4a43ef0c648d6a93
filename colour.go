package posekit

import (
	"fmt"
	"math"
)

// Colour is an 8-bit RGB triple.
type Colour struct {
	R, G, B uint8
}

// RGBA implements the image/color Color interface. Colours are always
// fully opaque.
func (c Colour) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Lerp interpolates between c (t=0) and other (t=1), rounding each channel
// to the nearest integer.
func (c Colour) Lerp(other Colour, t float64) Colour {
	return Colour{
		R: lerpChannel(c.R, other.R, t),
		G: lerpChannel(c.G, other.G, t),
		B: lerpChannel(c.B, other.B, t),
	}
}

// Hex returns the colour as "#rrggbb".
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a)*(1-t) + float64(b)*t))
}

// ColourMap assigns a colour to every landmark of a schema that belongs to
// a known body part, partitioned by section. Chain-shaped parts spread
// their gradient across exactly the joints present in the schema, so a
// two-joint chain gets precisely the start and end colours and a one-joint
// chain gets the end colour. Tree-shaped parts use one flat colour per
// part and side.
//
// A ColourMap is built once per schema and immutable afterwards; it is
// safe for concurrent readers.
type ColourMap struct {
	schema  *Schema
	colours map[Section]map[int]Colour
}

// NewColourMap computes the per-landmark colours for the schema.
func NewColourMap(s *Schema) *ColourMap {
	cm := &ColourMap{
		schema:  s,
		colours: make(map[Section]map[int]Colour, len(allSections)),
	}
	for _, sec := range allSections {
		cm.colours[sec] = make(map[int]Colour)
	}

	// owner tracks which section claimed each landmark. Sections are
	// disjoint by construction of the catalog tables; a cross-section
	// claim means the tables were edited into an inconsistent state.
	owner := make(map[int]Section, s.Len())
	assign := func(sec Section, idx int, col Colour) {
		if prev, ok := owner[idx]; ok && prev != sec {
			panic(fmt.Sprintf("posekit: landmark %q claimed by sections %v and %v: catalog misconfigured",
				s.Name(idx), prev, sec))
		}
		owner[idx] = sec
		cm.colours[sec][idx] = col
	}

	for _, part := range bodyParts {
		for _, side := range partSides(part.sided) {
			if part.tree != nil {
				flat := partColours[side+part.name]
				for _, ln := range part.tree {
					if idx, ok := s.Index(side + ln.child); ok {
						assign(part.section, idx, flat)
					}
				}
				continue
			}
			grad := partGradients[side+part.name]
			present := presentJoints(s, prefixed(side, part.chain))
			n := len(present)
			for i, idx := range present {
				t := 1.0
				if n > 1 {
					t = float64(i) / float64(n-1)
				}
				assign(part.section, idx, grad.start.Lerp(grad.end, t))
			}
		}
	}
	return cm
}

// presentJoints returns the schema indices of the chain joints that exist,
// preserving chain order.
func presentJoints(s *Schema, chain []string) []int {
	var present []int
	for _, name := range chain {
		if idx, ok := s.Index(name); ok {
			present = append(present, idx)
		}
	}
	return present
}

// Schema returns the schema the colour map was built from.
func (cm *ColourMap) Schema() *Schema { return cm.schema }

// Colours returns the landmark-index to colour mapping for all sections
// enabled in mask. Sections never share landmark indices, so the union is
// unambiguous. The returned map is a copy and may be modified freely.
func (cm *ColourMap) Colours(mask Section) map[int]Colour {
	out := make(map[int]Colour)
	for _, sec := range allSections {
		if !mask.Has(sec) {
			continue
		}
		for idx, col := range cm.colours[sec] {
			out[idx] = col
		}
	}
	return out
}

// ColourNames is a debugging convenience: the same mapping as Colours but
// keyed by landmark name rather than index.
func (cm *ColourMap) ColourNames(mask Section) map[string]Colour {
	colours := cm.Colours(mask)
	out := make(map[string]Colour, len(colours))
	for idx, col := range colours {
		out[cm.schema.Name(idx)] = col
	}
	return out
}
