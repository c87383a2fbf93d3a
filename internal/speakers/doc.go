// Package speakers resolves raw speaker labels from production scripts to
// canonical characters in a casting registry.
//
// Resolution runs in a fixed order: strip the listener clause ("BOB to
// ALICE" keeps "BOB"), detect glob speakers such as "everyone", strip
// delivery-mode variations ("BOB'S VOICE", "BOB ON PHONE"), then look the
// canonical name up by name or nickname and finally by fuzzy similarity.
// Unresolvable names are never an error; they come back unchanged with the
// CastMe casting sentinel.
//
// The package also carries the offline registry tooling: casting
// aggregation over observed samples, alias discovery, and bootstrapping a
// registry document from plain-text character and casting lists.
package speakers
