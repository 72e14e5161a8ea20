package testutil

import (
	"math/rand"
	"sync"
)

// ProxyTypes, UsageTypes and Threats are realistic field values used by Rows.
var (
	ProxyTypes = []string{"VPN", "TOR", "PUB", "WEB", "RES", "DCH", "SES", "CPN", "EPN", "-"}
	UsageTypes = []string{"COM", "ORG", "GOV", "MIL", "EDU", "LIB", "CDN", "ISP", "MOB", "DCH", "SES", "RSV", "-"}
	Threats    = []string{"SPAM", "SCANNER", "BOTNET", "MALWARE", "PHISHING", "BOGON", "SPAM/SCANNER", "-"}
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Rows generates n rows with ascending, non-overlapping spans. Roughly half
// of the spans cover a single address. Field values are drawn from
// ProxyTypes, UsageTypes and Threats, with "-" meaning no value.
func (r *RNG) Rows(n int) []Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]Row, 0, n)
	next := uint64(r.rand.Intn(1 << 16))
	for i := 0; i < n; i++ {
		width := uint64(1)
		if r.rand.Intn(2) == 0 {
			width += uint64(r.rand.Intn(4096))
		}
		if next+width > 1<<32-1 {
			break
		}
		rows = append(rows, Row{
			From:   uint32(next),
			To:     uint32(next + width),
			Proxy:  pick(r.rand, ProxyTypes),
			Usage:  pick(r.rand, UsageTypes),
			Threat: pick(r.rand, Threats),
		})
		next += width + uint64(r.rand.Intn(64))
	}
	return rows
}

// Duplicate returns rows followed by a shuffled copy of a random subset, so
// that the same span is classified more than once.
func (r *RNG) Duplicate(rows []Row) []Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]Row(nil), rows...)
	for _, row := range rows {
		if r.rand.Intn(3) == 0 {
			out = append(out, row)
		}
	}
	tail := out[len(rows):]
	r.rand.Shuffle(len(tail), func(i, j int) { tail[i], tail[j] = tail[j], tail[i] })
	return out
}

func pick(rnd *rand.Rand, values []string) string {
	v := values[rnd.Intn(len(values))]
	if v == "-" {
		return ""
	}
	return v
}
