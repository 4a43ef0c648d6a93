package posekit

// Bone is an edge between two landmark indices of a specific schema, drawn
// as a connecting segment. Start is the canonical gradient-start endpoint:
// renderers that paint one colour per bone use the Start landmark's colour.
type Bone struct {
	Start, End int
}

// Topology is the full bone graph for one schema, partitioned by section.
// It is built once per schema, immutable afterwards, and safe for
// concurrent readers. Output is a pure function of the schema: identical
// schemas always yield identical, identically ordered bones.
type Topology struct {
	schema *Schema
	bones  map[Section][]Bone
}

// NewTopology works out every skeletal connection the schema supports.
// Canonical joints absent from the schema are skipped, not errors: chains
// bridge gaps by connecting the nearest present neighbours, and limb and
// head attachments fall back through progressively coarser anchor points.
func NewTopology(s *Schema) *Topology {
	t := &Topology{
		schema: s,
		bones:  make(map[Section][]Bone, len(allSections)),
	}

	main := connectChainSides(s, armChain)
	main = append(main, shoulderAttachment(s).connect(s)...)
	main = append(main, connectChainSides(s, legChain)...)
	main = append(main, hipAttachment.connect(s)...)
	main = append(main, connectChain(s, spineChain)...)
	t.bones[Main] = main

	head := connectChain(s, headChain)
	if bone, ok := headSpineLink(s); ok {
		head = append(head, bone)
	}
	t.bones[Head] = head

	t.bones[Face] = connectTreeSides(s, faceTree)
	t.bones[Hands] = connectTreeSides(s, handTree)
	t.bones[Feet] = connectTreeSides(s, footTree)
	t.bones[Objects] = connectChain(s, objectsChain)
	return t
}

// Schema returns the schema the topology was built from.
func (t *Topology) Schema() *Schema { return t.schema }

// Bones returns the bones of all sections enabled in mask, concatenated in
// canonical section order. The returned slice is a copy.
func (t *Topology) Bones(mask Section) []Bone {
	var bones []Bone
	for _, sec := range allSections {
		if mask.Has(sec) {
			bones = append(bones, t.bones[sec]...)
		}
	}
	return bones
}

// BoneNames is a debugging convenience: the same bones as Bones but as
// landmark name pairs.
func (t *Topology) BoneNames(mask Section) [][2]string {
	bones := t.Bones(mask)
	out := make([][2]string, len(bones))
	for i, b := range bones {
		out[i] = [2]string{t.schema.Name(b.Start), t.schema.Name(b.End)}
	}
	return out
}

// connectChain connects consecutive present joints of an ordered chain,
// silently bridging over absent ones. The result is a single connected
// path through whatever subset of the chain the schema carries.
func connectChain(s *Schema, chain []string) []Bone {
	var bones []Bone
	prev := -1
	for _, name := range chain {
		idx, ok := s.Index(name)
		if !ok {
			continue
		}
		if prev >= 0 {
			bones = append(bones, Bone{Start: prev, End: idx})
		}
		prev = idx
	}
	return bones
}

// connectChainSides applies connectChain once per side prefix.
func connectChainSides(s *Schema, chain []string) []Bone {
	var bones []Bone
	for _, side := range sides {
		bones = append(bones, connectChain(s, prefixed(side, chain))...)
	}
	return bones
}

// connectTree emits one bone per child→parent pair where both joints are
// present. Pairs are independent; no bridging applies.
func connectTree(s *Schema, tree []boneLink, side string) []Bone {
	var bones []Bone
	for _, ln := range tree {
		child, ok := s.Index(side + ln.child)
		if !ok {
			continue
		}
		parent, ok := s.Index(side + ln.parent)
		if !ok {
			continue
		}
		bones = append(bones, Bone{Start: child, End: parent})
	}
	return bones
}

// connectTreeSides applies connectTree once per side prefix.
func connectTreeSides(s *Schema, tree []boneLink) []Bone {
	var bones []Bone
	for _, side := range sides {
		bones = append(bones, connectTree(s, tree, side)...)
	}
	return bones
}

// limbAttachment connects a symmetric limb pair (shoulders or hips) to the
// spine. The strategies are tried in order and the search stops at the
// first one that finds a spine connection; earlier strategies may still
// contribute edges (the limb-end bridge) before yielding.
type limbAttachment struct {
	limbEnd    string
	preferred  []string
	search     []string
	strategies []attachStrategy
}

// attachStrategy produces edges for one fallback step. done reports that a
// spine connection was made and later strategies must not run.
type attachStrategy func(a limbAttachment, s *Schema, ends [2]int) (bones []Bone, done bool)

// shoulderAttachment picks the arm's limb-end joint (clavicle where both
// sides have one, else shoulder) and wires the full shoulder fallback
// including the torso-closing last resort.
func shoulderAttachment(s *Schema) limbAttachment {
	end := shoulderJoints[len(shoulderJoints)-1]
	for _, joint := range shoulderJoints {
		if s.Has(sides[0]+joint) && s.Has(sides[1]+joint) {
			end = joint
			break
		}
	}
	return limbAttachment{
		limbEnd:    end,
		preferred:  shoulderAttach,
		search:     shoulderSearch,
		strategies: []attachStrategy{attachPreferred, bridgeAndAnchor, closeTorso},
	}
}

// hipAttachment has no last-resort step: if the spine search fails the
// bridge between the hips from the second strategy already stands.
var hipAttachment = limbAttachment{
	limbEnd:    "hip",
	preferred:  hipAttach,
	search:     hipSearch,
	strategies: []attachStrategy{attachPreferred, bridgeAndAnchor},
}

// connect runs the fallback strategies. Both side limb ends must be
// present; otherwise there is nothing to attach and no edges are emitted.
func (a limbAttachment) connect(s *Schema) []Bone {
	left, lok := s.Index(sides[0] + a.limbEnd)
	right, rok := s.Index(sides[1] + a.limbEnd)
	if !lok || !rok {
		return nil
	}
	ends := [2]int{left, right}
	var bones []Bone
	for _, strategy := range a.strategies {
		b, done := strategy(a, s, ends)
		bones = append(bones, b...)
		if done {
			return bones
		}
	}
	return bones
}

// attachPreferred connects both limb ends straight to the first present
// preferred spine point.
func attachPreferred(a limbAttachment, s *Schema, ends [2]int) ([]Bone, bool) {
	for _, name := range a.preferred {
		if idx, ok := s.Index(name); ok {
			return []Bone{{ends[0], idx}, {ends[1], idx}}, true
		}
	}
	return nil, false
}

// bridgeAndAnchor connects the limb ends to each other and then to the
// first present point of the remaining spine, forming a triangle on one
// shared anchor. The bridge edge stands even when no anchor is found.
func bridgeAndAnchor(a limbAttachment, s *Schema, ends [2]int) ([]Bone, bool) {
	bones := []Bone{{ends[0], ends[1]}}
	for _, name := range a.search {
		if idx, ok := s.Index(name); ok {
			return append(bones, Bone{ends[0], idx}, Bone{ends[1], idx}), true
		}
	}
	return bones, false
}

// closeTorso is the shoulder-only last resort with no spine at all: each
// shoulder connects to the same-side hip, closing a torso quadrilateral.
func closeTorso(a limbAttachment, s *Schema, ends [2]int) ([]Bone, bool) {
	var bones []Bone
	for i, side := range sides {
		if hip, ok := s.Index(side + "hip"); ok {
			bones = append(bones, Bone{ends[i], hip})
		}
	}
	return bones, true
}

// headSpineLink connects the head centre line to the spine with at most
// one edge. Head points are scanned most detailed first (nose before head
// top), spine points in priority order; the first present pair wins.
func headSpineLink(s *Schema) (Bone, bool) {
	for i := len(headChain) - 1; i >= 0; i-- {
		headIdx, ok := s.Index(headChain[i])
		if !ok {
			continue
		}
		for _, name := range headLinkSpine {
			if spineIdx, ok := s.Index(name); ok {
				return Bone{Start: headIdx, End: spineIdx}, true
			}
		}
	}
	return Bone{}, false
}
