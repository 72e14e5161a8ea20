package ip2db

import "encoding/binary"

// Len returns the declared number of IPv4 rows.
func (db *DB) Len() uint32 { return db.header.IPv4Count }

// rowPos returns the 1-based offset of row index.
func (db *DB) rowPos(index uint32) uint64 {
	return uint64(db.header.IPv4Base) + uint64(index)*uint64(db.header.RowWidth())
}

// Row decodes the address span of row index. to is the exclusive end of the
// span. ok is false when the row does not lie inside the image, which covers
// truncated files and indexes past the declared count.
func (db *DB) Row(index uint32) (from, to uint32, ok bool) {
	width := db.header.RowWidth()
	if width < 4 {
		return 0, 0, false
	}
	row, ok := db.bytesAt(db.rowPos(index), width)
	if !ok {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint32(row), binary.LittleEndian.Uint32(row[width-4:]), true
}
