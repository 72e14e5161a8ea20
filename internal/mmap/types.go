package mmap

import "errors"

// AccessPattern is a hint to the kernel about how mapped pages are read.
type AccessPattern int

const (
	// AccessDefault applies no specific advice.
	AccessDefault AccessPattern = iota
	// AccessSequential expects pages to be read front to back.
	AccessSequential
	// AccessRandom expects scattered reads (string pool lookups).
	AccessRandom
	// AccessWillNeed asks the kernel to prefetch.
	AccessWillNeed
)

var (
	// ErrClosed is returned when a closed mapping is accessed.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the file size cannot be mapped.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrNotRegular is returned when the path does not name a regular file.
	ErrNotRegular = errors.New("mmap: not a regular file")
)
