// Package codec centralizes document encoding.
//
// Every codec must produce the same JSON: object keys of maps are emitted
// in sorted order, so encoding the same document twice yields identical
// bytes.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Names returns the names accepted by ByName.
func Names() []string {
	return []string{"go-json", "json"}
}
