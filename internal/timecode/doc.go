// Package timecode models dialogue timing as integer ticks at a fixed
// sub-frame resolution.
//
// One frame is TicksPerFrame ticks, so a timecode's frame rate only matters
// when converting to or from "HH:MM:SS:FF" text. Arithmetic between values is
// plain tick arithmetic and is meaningful only when both sides were parsed at
// the same frame rate.
//
// Region pairs a start and end timecode. Construction does not enforce
// start <= end; Duration always measures the absolute span.
package timecode
