package ip2db

import "fmt"

// HeaderSize is the number of bytes the header occupies.
const HeaderSize = 13

// Header describes the geometry of the IPv4 table.
type Header struct {
	// DatabaseType selects the column layout (see LayoutFor).
	DatabaseType uint8
	// ColumnCount is the number of uint32 columns per row.
	ColumnCount uint8
	// IPv4Count is the declared number of IPv4 rows.
	IPv4Count uint32
	// IPv4Base is the 1-based offset of the first IPv4 row.
	IPv4Base uint32
}

// RowWidth returns the byte width of one row.
func (h Header) RowWidth() int {
	return int(h.ColumnCount) * 4
}

// TableEnd returns the 1-based offset one past the last declared row.
func (h Header) TableEnd() uint64 {
	return uint64(h.IPv4Base) + uint64(h.IPv4Count)*uint64(h.RowWidth())
}

// Fits reports whether the declared IPv4 table lies inside a file of size
// bytes. A header that does not fit is still usable; rows past the end of
// the file read as absent.
func (h Header) Fits(size int) bool {
	if h.IPv4Count == 0 {
		return true
	}
	if h.IPv4Base == 0 || h.RowWidth() < 4 {
		return false
	}
	return h.TableEnd()-1 <= uint64(size)
}

func (h Header) String() string {
	return fmt.Sprintf("type=%d columns=%d ipv4_count=%d ipv4_base=%d",
		h.DatabaseType, h.ColumnCount, h.IPv4Count, h.IPv4Base)
}

// readHeader decodes the header. Bytes missing from a short file read as
// zero; nothing else is validated here.
func readHeader(db *DB) Header {
	return Header{
		DatabaseType: db.U8At(1),
		ColumnCount:  db.U8At(2),
		IPv4Count:    db.U32At(6),
		IPv4Base:     db.U32At(10),
	}
}
