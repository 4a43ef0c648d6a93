// Package posekit aligns and connects anatomical landmark data produced by
// heterogeneous pose-estimation systems.
//
// Capture systems report different, partially overlapping sets of named
// joints in different orders. posekit reconciles two such landmark schemas
// into a common aligned subset (Intersection) and, given one schema,
// deterministically synthesises an anatomically plausible bone graph
// (Topology) and a smooth per-joint colour scheme (ColourMap) that degrade
// gracefully as joints go missing.
//
// A Schema is an ordered, duplicate-free list of landmark names; the
// position of a name is the index used everywhere else. Topology and
// ColourMap are built once per schema and are immutable afterwards, so a
// single instance can be shared across frames and goroutines without
// locking. Rendering is left to consumers: Bones returns index pairs to
// draw as segments, Colours returns a landmark-index to colour mapping.
// The render and viewer packages in this repository are thin consumers of
// those two outputs.
package posekit
