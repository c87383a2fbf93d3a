// Package textutil provides the string helpers shared by speaker resolution
// and the batch commands.
//
// The primary use cases are:
//   - Scoring name similarity on a 0-100 scale (Ratio)
//   - Canonical upper-casing and case folding of character names
//   - Deriving production/episode output names from script file names
//
// Ratio is the indel-distance similarity: twice the longest common
// subsequence divided by the combined rune length, so "bob" against "bobby"
// scores 75. Comparisons are case-folded.
package textutil
