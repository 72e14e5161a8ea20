// Package pipeline runs the chunked, parallel classification of a record
// table.
//
// The index range [0, Len) is split into fixed-size chunks. Each chunk is
// decoded and classified by one task into a private bucket.Accumulator,
// which is then merged into the shared accumulator under a single lock.
// Lock traffic therefore scales with the number of chunks, not records.
// The shared accumulator is drained once, after every task has returned,
// so the result does not depend on scheduling.
package pipeline
