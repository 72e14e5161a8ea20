// Package ip2db decodes IP2Proxy-style binary databases.
//
// The file starts with a fixed header, followed by an IPv4 table of
// fixed-width rows. Each row is ColumnCount little-endian uint32 columns:
// the first column is the range start, the last is the exclusive range end,
// and the columns in between are pointers into a pool of length-prefixed
// strings. All offsets in the file are 1-based; 0 means "absent".
//
// A DB never fails on malformed content. Reads that fall outside the file
// yield absent rows, zero pointers or the "-" placeholder string, so one
// corrupt record cannot abort a scan.
package ip2db
