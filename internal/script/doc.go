// Package script turns raw dialogue-script rows into normalized ADR cues.
//
// Rows come from a RowSource: an ordered list of rows, each an ordered list
// of (field key, cell text) pairs. The Normalizer walks them strictly in
// document order, resolving speakers against a casting registry and fanning
// multi-speaker rows out into one cue per line segment.
package script
