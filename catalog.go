package posekit

// Canonical body-part tables. Most parts are linear and described as ordered
// joint chains, connected consecutively while skipping joints a given schema
// lacks. Hands, feet and faces branch and are described as child→parent
// links connected independently per pair. Attaching limbs to a variable
// spine does not fit either shape and is worked out in topology.go.
//
// Sided parts (leg, arm, hand, foot, face) are instantiated once per side
// prefix. All tables are package-level constants in effect: nothing in this
// package mutates them after load.

// sides holds the prefixes applied to sided part joint names.
var sides = [2]string{"left ", "right "}

var (
	legChain = []string{"foot", "ankle", "knee", "hip"}
	armChain = []string{"hand", "wrist", "elbow", "shoulder", "clavicle"}

	// spineChain runs from the base of the head down to the pelvis.
	// Each point occurs at most once per schema and different capture
	// systems carry very different subsets of it.
	spineChain = []string{
		"head centre", "head", "neck", "shoulder centre", "thorax",
		"mid torso", "belly", "pelvis",
	}

	// headChain is the head centre line. Facial detail is in faceTree.
	headChain = []string{"head top", "nose"}

	// objectsChain covers held equipment, connected sequentially like the
	// spine. Good enough for stick-shaped objects.
	objectsChain = []string{"stick top", "stick end"}
)

// boneLink is one child→parent connection of a tree-shaped part.
type boneLink struct {
	child, parent string
}

var (
	faceTree = []boneLink{
		{"ear", "eye"},
		{"eye", "nose"},
	}
	handTree = []boneLink{
		{"handtip", "hand"},
		{"thumb", "hand"},
	}
	footTree = []boneLink{
		{"big toe", "ankle"},
		{"small toe", "foot"},
		{"heel", "ankle"},
	}
)

// bodyPart ties a template to its section. Exactly one of chain or tree is
// set. The declaration order below fixes colour assignment order.
type bodyPart struct {
	name    string
	section Section
	sided   bool
	chain   []string
	tree    []boneLink
}

var bodyParts = []bodyPart{
	{name: "leg", section: Main, sided: true, chain: legChain},
	{name: "arm", section: Main, sided: true, chain: armChain},
	{name: "spine", section: Main, chain: spineChain},
	{name: "head", section: Head, chain: headChain},
	{name: "face", section: Face, sided: true, tree: faceTree},
	{name: "hand", section: Hands, sided: true, tree: handTree},
	{name: "foot", section: Feet, sided: true, tree: footTree},
	{name: "objects", section: Objects, chain: objectsChain},
}

// Limb attachment tables. Shoulders prefer a named attachment point high on
// the spine; hips prefer the pelvis. When no preferred point exists the
// limb ends bridge each other and search the remaining spine, shoulders
// top-down and hips bottom-up.
var (
	// shoulderJoints lists limb-end candidates in preference order; the
	// first joint present on both sides anchors the arms.
	shoulderJoints = []string{"clavicle", "shoulder"}

	shoulderAttach = []string{"shoulder centre", "neck"}
	shoulderSearch = spineChain[3:]

	hipAttach = []string{"pelvis"}
	hipSearch = []string{"belly", "mid torso", "thorax", "shoulder centre", "neck"}

	// headLinkSpine lists spine points the head centre line may attach
	// to, in priority order. The pelvis is deliberately absent: with the
	// whole torso missing the head stays unattached rather than drawing
	// a bone across the body.
	headLinkSpine = spineChain[:7]
)

// gradient is a start→end colour range interpolated along a chain.
type gradient struct {
	start, end Colour
}

// partGradients colours chain-shaped parts. Keys include the side prefix
// for sided parts. Start maps to the first chain joint (foot, hand, head
// top), end to the last (hip, clavicle, pelvis).
var partGradients = map[string]gradient{
	"spine":     {Colour{255, 255, 0}, Colour{255, 0, 0}},
	"left leg":  {Colour{255, 0, 255}, Colour{75, 0, 150}},
	"right leg": {Colour{100, 100, 255}, Colour{0, 0, 150}},
	"left arm":  {Colour{0, 255, 0}, Colour{0, 120, 0}},
	"right arm": {Colour{0, 255, 255}, Colour{0, 120, 120}},
	"head":      {Colour{170, 170, 0}, Colour{210, 210, 0}},
	"objects":   {Colour{175, 0, 0}, Colour{175, 100, 0}},
}

// partColours gives tree-shaped parts one flat colour per part and side.
var partColours = map[string]Colour{
	"left hand":  {120, 255, 120},
	"right hand": {180, 255, 255},
	"left foot":  {255, 145, 255},
	"right foot": {130, 180, 255},
	"left face":  {120, 120, 0},
	"right face": {120, 120, 0},
}

// partSides returns the side prefixes a part is instantiated for.
func partSides(sided bool) []string {
	if sided {
		return sides[:]
	}
	return []string{""}
}

// prefixed returns the chain with every joint name side-prefixed.
func prefixed(side string, chain []string) []string {
	if side == "" {
		return chain
	}
	out := make([]string, len(chain))
	for i, name := range chain {
		out[i] = side + name
	}
	return out
}
