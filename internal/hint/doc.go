// Package hint implements the hint engine core: label-space
// generation, distance-ranked assignment of labels to words, and the
// session that owns the currently visible hints.
//
// Label generation is pure and deterministic (Generate). Assignment
// ranks candidate words by cursor distance so nearer words receive
// earlier, shorter labels (Assigner). A Session holds the resulting
// mappings for exactly one interaction; at most one session is visible
// at a time, enforced by the engine package.
package hint
