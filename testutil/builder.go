package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/proxylist/internal/ip2db"
)

// Row is one table entry of a synthetic database. Empty field strings are
// written as null pointers.
type Row struct {
	From   uint32
	To     uint32
	Proxy  string
	Usage  string
	Threat string

	// Pointers, when non-nil, are written verbatim instead of pointers to
	// the field strings.
	Pointers *[ip2db.NumFields]uint32
}

// Builder assembles a database image: a 13 byte header, the IPv4 table
// starting at offset 14, then a pool of length-prefixed strings.
type Builder struct {
	DatabaseType uint8
	ColumnCount  uint8

	// DeclaredCount overrides the row count written to the header when > 0.
	DeclaredCount uint32

	rows []Row
}

// NewBuilder returns a builder for the given database type and column count.
func NewBuilder(databaseType, columnCount uint8) *Builder {
	return &Builder{DatabaseType: databaseType, ColumnCount: columnCount}
}

// Add appends a row with the given proxy, usage and threat values. Missing
// trailing values are left empty.
func (b *Builder) Add(from, to uint32, fields ...string) *Builder {
	row := Row{From: from, To: to}
	for i, f := range fields {
		switch ip2db.Field(i) {
		case ip2db.FieldProxy:
			row.Proxy = f
		case ip2db.FieldUsage:
			row.Usage = f
		case ip2db.FieldThreat:
			row.Threat = f
		}
	}
	return b.AddRow(row)
}

// AddRow appends row.
func (b *Builder) AddRow(row Row) *Builder {
	b.rows = append(b.rows, row)
	return b
}

// AddRows appends rows.
func (b *Builder) AddRows(rows []Row) *Builder {
	b.rows = append(b.rows, rows...)
	return b
}

// Bytes renders the image.
//
// Field pointers are written at the column positions of the database type.
// A layout column beyond ColumnCount lands in the following row, or after
// the table for the last row; callers combining such layouts with several
// rows get overlapping writes, exactly as a real file would.
func (b *Builder) Bytes() []byte {
	width := int(b.ColumnCount) * 4
	cols := ip2db.LayoutFor(b.DatabaseType).Columns()

	tableSize := len(b.rows) * width
	if n := len(b.rows); n > 0 {
		last := (n - 1) * width
		for _, c := range cols {
			if end := last + int(c)*4; end > tableSize {
				tableSize = end
			}
		}
	}

	const base = ip2db.HeaderSize + 1
	buf := make([]byte, ip2db.HeaderSize+tableSize)
	buf[0] = b.DatabaseType
	buf[1] = b.ColumnCount
	count := uint32(len(b.rows))
	if b.DeclaredCount > 0 {
		count = b.DeclaredCount
	}
	binary.LittleEndian.PutUint32(buf[5:], count)
	binary.LittleEndian.PutUint32(buf[9:], base)

	pool := map[string]uint32{}
	intern := func(s string) uint32 {
		if s == "" {
			return 0
		}
		if p, ok := pool[s]; ok {
			return p
		}
		// The pointer addresses the length byte with 0-based numbering,
		// which is how IP2Proxy files store it.
		p := uint32(len(buf))
		buf = append(buf, byte(len(s)))
		buf = append(buf, s...)
		pool[s] = p
		return p
	}

	for i, row := range b.rows {
		off := ip2db.HeaderSize + i*width
		if width >= 4 {
			binary.LittleEndian.PutUint32(buf[off:], row.From)
			binary.LittleEndian.PutUint32(buf[off+width-4:], row.To)
		}

		ptrs := [ip2db.NumFields]uint32{intern(row.Proxy), intern(row.Usage), intern(row.Threat)}
		if row.Pointers != nil {
			ptrs = *row.Pointers
		}
		for f, c := range cols {
			if c == 0 {
				continue
			}
			binary.LittleEndian.PutUint32(buf[off+int(c-1)*4:], ptrs[f])
		}
	}
	return buf
}

// WriteFile renders the image into a file below t.TempDir and returns its path.
func (b *Builder) WriteFile(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "IP2PROXY-TEST.BIN")
	if err := os.WriteFile(path, b.Bytes(), 0o600); err != nil {
		t.Fatalf("write database: %v", err)
	}
	return path
}
