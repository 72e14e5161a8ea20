package proxylist

import (
	"slices"
	"time"

	"github.com/hupe1980/proxylist/internal/bucket"
	"github.com/hupe1980/proxylist/internal/pipeline"
)

// Range is an inclusive address range [start, end]. It encodes as a
// two-element JSON array.
type Range = bucket.Range

// Stats describes how many records an extraction read and skipped.
type Stats = pipeline.Stats

// List is the content of one bucket: single addresses in ascending order
// and ranges ordered by (start, end). Neither contains duplicates.
type List struct {
	Addresses []uint64 `json:"addresses"`
	Networks  []Range  `json:"networks"`
}

// Document is the extraction result handed to the serializer.
type Document struct {
	// Timestamp is the capture time in seconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
	// Lists maps bucket names to their content. Empty buckets are absent.
	Lists map[string]List `json:"lists"`

	// Stats is not serialized.
	Stats Stats `json:"-"`
}

// Names returns the bucket names in ascending order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Lists))
	for name := range d.Lists {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func assemble(lists []bucket.List, stats Stats, now time.Time) *Document {
	doc := &Document{
		Timestamp: now.Unix(),
		Lists:     make(map[string]List, len(lists)),
		Stats:     stats,
	}
	for _, l := range lists {
		doc.Lists[l.Name] = List{
			Addresses: nonNil(l.Addresses),
			Networks:  nonNil(l.Networks),
		}
	}
	return doc
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
