// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect executes ffprobe and returns the parsed Result; Runtime turns the
// container duration into a timecode at the video frame rate so cue density
// can be measured against the real programme length.
package ffprobe
