package posekit

import (
	"fmt"
	"strings"
)

// Section selects one or more parts of the skeleton. Values are bit flags
// and combine with bitwise OR: Main|Head selects the body outline plus the
// head centre line.
type Section uint8

const (
	// Main covers the limbs, torso and spine.
	Main Section = 1 << iota
	// Head covers the head centre line (head top, nose).
	Head
	// Face covers facial detail points (ears, eyes).
	Face
	// Hands covers finger and thumb points.
	Hands
	// Feet covers toe and heel points.
	Feet
	// Objects covers non-body points such as held equipment.
	Objects

	// Full selects the whole body. Objects are excluded and must be
	// requested explicitly.
	Full = Main | Head | Face | Hands | Feet
)

// allSections fixes the canonical iteration order for per-section results.
var allSections = [...]Section{Main, Head, Face, Hands, Feet, Objects}

var sectionNames = map[Section]string{
	Main:    "main",
	Head:    "head",
	Face:    "face",
	Hands:   "hands",
	Feet:    "feet",
	Objects: "objects",
}

// Has reports whether every section in flag is enabled in s.
func (s Section) Has(flag Section) bool { return s&flag == flag }

// String returns the enabled section names joined by "|".
func (s Section) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, sec := range allSections {
		if s.Has(sec) {
			parts = append(parts, sectionNames[sec])
		}
	}
	return strings.Join(parts, "|")
}

// ParseSections parses a comma-separated list of section names
// ("main,head,objects"). The names "full" and "all" expand to Full.
func ParseSections(list string) (Section, error) {
	var s Section
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(strings.ToLower(tok))
		if tok == "" {
			continue
		}
		if tok == "full" || tok == "all" {
			s |= Full
			continue
		}
		found := false
		for sec, name := range sectionNames {
			if tok == name {
				s |= sec
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("posekit: unknown section %q", tok)
		}
	}
	if s == 0 {
		return 0, fmt.Errorf("posekit: no sections in %q", list)
	}
	return s, nil
}
