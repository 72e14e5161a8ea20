package conv

import (
	"fmt"
	"math"
)

// OneBased converts the 1-based offset pos into a 0-based slice index for a
// read of n bytes from a buffer of size bytes.
//
// It reports false when pos is 0 (the "absent" sentinel), when n is
// negative, or when [pos-1, pos-1+n) does not lie inside the buffer. The
// arithmetic is overflow-safe for any 64-bit pos.
func OneBased(pos uint64, n, size int) (int, bool) {
	if pos == 0 || n < 0 || size < 0 {
		return 0, false
	}
	start := pos - 1
	if start > uint64(size) || uint64(n) > uint64(size)-start {
		return 0, false
	}
	return int(start), true
}

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}
