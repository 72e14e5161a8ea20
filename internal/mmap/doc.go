// Package mmap maps database files read-only into memory.
//
// A Mapping is immutable once opened, so any number of goroutines may read
// Bytes() concurrently without synchronization. Close is idempotent; callers
// must stop reading before they close.
//
//	m, err := mmap.Open("IP2PROXY-LITE-PX10.BIN")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix platforms use mmap(2) and madvise(2). On Windows the file is mapped
// with CreateFileMapping/MapViewOfFile and Advise is a no-op.
package mmap
