// Package conv provides checked integer and offset conversions.
//
// Database files use 1-based byte offsets throughout: header fields, row
// positions and string pointers all count from 1, with 0 reserved for
// "absent". OneBased is the only place that turns such an offset into a
// slice index; every reader goes through it.
//
// For conversions that are provably safe by construction (loop indices,
// bounded counters), use direct type casts instead.
package conv
