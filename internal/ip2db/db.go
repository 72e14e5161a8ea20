package ip2db

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/hupe1980/proxylist/internal/conv"
	"github.com/hupe1980/proxylist/internal/mmap"
)

// Absent is substituted for every string field that cannot be resolved.
const Absent = "-"

// DB is a read-only view over a database image. It is safe for concurrent use.
type DB struct {
	m      *mmap.Mapping
	data   []byte
	header Header
	layout Layout
}

// Open memory-maps the database at path.
func Open(path string) (*DB, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	// Rows are scanned in order per chunk, but string pointers jump around.
	_ = m.Advise(mmap.AccessRandom)

	db := newDB(m.Bytes())
	db.m = m
	return db, nil
}

// FromBytes returns a view over an in-memory database image.
// The caller must not modify data while the view is in use.
func FromBytes(data []byte) *DB {
	return newDB(data)
}

func newDB(data []byte) *DB {
	db := &DB{data: data}
	db.header = readHeader(db)
	db.layout = LayoutFor(db.header.DatabaseType)
	return db
}

// Close releases the mapping. Views created with FromBytes have nothing to
// release.
func (db *DB) Close() error {
	if db.m == nil {
		return nil
	}
	return db.m.Close()
}

// Header returns the header decoded at open.
func (db *DB) Header() Header { return db.header }

// Layout returns the column layout for the database type.
func (db *DB) Layout() Layout { return db.layout }

// Size returns the image size in bytes.
func (db *DB) Size() int { return len(db.data) }

// bytesAt returns the n bytes starting at the 1-based offset pos.
func (db *DB) bytesAt(pos uint64, n int) ([]byte, bool) {
	i, ok := conv.OneBased(pos, n, len(db.data))
	if !ok {
		return nil, false
	}
	return db.data[i : i+n], true
}

// U8At returns the byte at the 1-based offset pos, or 0 when out of range.
func (db *DB) U8At(pos uint64) uint8 {
	b, ok := db.bytesAt(pos, 1)
	if !ok {
		return 0
	}
	return b[0]
}

// U32At returns the little-endian uint32 at the 1-based offset pos.
// It returns 0, the "absent" pointer, when pos is 0 or out of range.
func (db *DB) U32At(pos uint64) uint32 {
	b, ok := db.bytesAt(pos, 4)
	if !ok {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// StringAt decodes the length-prefixed string at the 1-based offset pos.
// It returns Absent when pos is 0 or out of range, when the declared length
// runs past the end of the image, or when the bytes are not valid UTF-8.
// The result does not alias the image.
func (db *DB) StringAt(pos uint64) string {
	s, _ := db.stringAt(pos)
	return s
}

func (db *DB) stringAt(pos uint64) (string, bool) {
	prefix, ok := db.bytesAt(pos, 1)
	if !ok {
		return Absent, false
	}
	b, ok := db.bytesAt(pos+1, int(prefix[0]))
	if !ok || !utf8.Valid(b) {
		return Absent, false
	}
	return string(b), true
}
