package ip2db

// Column is a 1-based column position within a row. 0 means the field does
// not exist for the database type.
type Column uint8

// Field indexes the classification fields of a Record.
type Field int

const (
	FieldProxy Field = iota
	FieldUsage
	FieldThreat

	// NumFields is the number of classification fields per record.
	NumFields
)

func (f Field) String() string {
	switch f {
	case FieldProxy:
		return "proxy_type"
	case FieldUsage:
		return "usage_type"
	case FieldThreat:
		return "threat"
	default:
		return "unknown"
	}
}

// Layout holds the column positions of the classification fields for one
// database type.
type Layout struct {
	Proxy  Column
	Usage  Column
	Threat Column
}

// Columns returns the positions indexed by Field.
func (l Layout) Columns() [NumFields]Column {
	return [NumFields]Column{l.Proxy, l.Usage, l.Threat}
}

// layouts is the IP2Proxy schema table, indexed by database type (PX0..PX12).
var layouts = [...]Layout{
	0:  {},
	1:  {},
	2:  {Proxy: 2},
	3:  {Proxy: 2},
	4:  {Proxy: 2},
	5:  {Proxy: 2},
	6:  {Proxy: 2, Usage: 8},
	7:  {Proxy: 2, Usage: 8},
	8:  {Proxy: 2, Usage: 8},
	9:  {Proxy: 2, Usage: 8, Threat: 12},
	10: {Proxy: 2, Usage: 8, Threat: 12},
	11: {Proxy: 2, Usage: 8, Threat: 12},
	12: {Proxy: 2, Usage: 8, Threat: 12},
}

// LayoutFor returns the layout for databaseType. Unknown types have no
// classification fields.
func LayoutFor(databaseType uint8) Layout {
	if int(databaseType) >= len(layouts) {
		return Layout{}
	}
	return layouts[databaseType]
}
