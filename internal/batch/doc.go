// Package batch runs a per-file task over many inputs.
//
// The input set is partitioned into equal-sized groups up front and every
// group is handed to its own worker goroutine. Workers share nothing mutable;
// a file that fails is logged and skipped, and Run returns only after every
// worker has finished. An exclusive lock on the output directory keeps two
// runs from interleaving writes.
package batch
