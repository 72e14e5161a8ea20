package ip2db

import "strings"

// Record is one decoded row: its address span and the upper-cased
// classification fields.
type Record struct {
	From   uint32
	To     uint32 // exclusive
	Fields [NumFields]string
}

// Single reports whether the record covers exactly one address.
func (r Record) Single() bool {
	return uint64(r.To) == uint64(r.From)+1
}

// Valid reports whether the span is non-empty.
func (r Record) Valid() bool {
	return r.To > r.From
}

// Field resolves the string field stored at column col of the row that
// starts at the 1-based offset rowPos. The result is upper-cased; absent or
// unreadable fields yield Absent.
func (db *DB) Field(rowPos uint64, col Column) string {
	ptr, ok := db.pointer(rowPos, col)
	if !ok {
		return Absent
	}
	return strings.ToUpper(db.StringAt(uint64(ptr) + 1))
}

func (db *DB) pointer(rowPos uint64, col Column) (uint32, bool) {
	if col == 0 {
		return 0, false
	}
	ptr := db.U32At(rowPos + 4*uint64(col-1))
	if ptr == 0 || uint64(ptr) >= uint64(len(db.data)) {
		return 0, false
	}
	return ptr, true
}

type cached struct {
	s  string
	ok bool
}

// Resolver decodes full records. The same handful of classification
// strings is referenced by many rows, so a Resolver caches decoded strings
// by pointer. A Resolver is not safe for concurrent use; create one per
// goroutine.
type Resolver struct {
	db       *DB
	cols     [NumFields]Column
	cache    map[uint32]cached
	degraded int
}

// NewResolver returns a resolver bound to db's layout.
func (db *DB) NewResolver() *Resolver {
	return &Resolver{
		db:    db,
		cols:  db.layout.Columns(),
		cache: make(map[uint32]cached, 64),
	}
}

// Record decodes row index. ok is false when the row is outside the image.
func (r *Resolver) Record(index uint32) (Record, bool) {
	from, to, ok := r.db.Row(index)
	if !ok {
		return Record{}, false
	}

	rec := Record{From: from, To: to}
	pos := r.db.rowPos(index)
	for i, col := range r.cols {
		rec.Fields[i] = r.field(pos, col)
	}
	return rec, true
}

// Degraded returns how many fields of existing columns could not be
// decoded so far. A stored "-" is a value, not a degraded field.
func (r *Resolver) Degraded() int { return r.degraded }

func (r *Resolver) field(pos uint64, col Column) string {
	if col == 0 {
		return Absent
	}
	ptr, ok := r.db.pointer(pos, col)
	if !ok {
		r.degraded++
		return Absent
	}
	c, hit := r.cache[ptr]
	if !hit {
		s, ok := r.db.stringAt(uint64(ptr) + 1)
		c = cached{s: strings.ToUpper(s), ok: ok}
		r.cache[ptr] = c
	}
	if !c.ok {
		r.degraded++
	}
	return c.s
}
