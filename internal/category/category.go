// Package category classifies resolved record fields into named buckets.
package category

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTable is returned for pattern tables that cannot be matched.
var ErrInvalidTable = errors.New("invalid category table")

// Pattern maps a substring of an upper-cased field value to a bucket.
type Pattern struct {
	Substring string
	Bucket    string
}

// Table is an ordered list of patterns. Patterns are not mutually
// exclusive: a record is added to every bucket whose pattern matches.
type Table []Pattern

// Default is the IP2Proxy proxy-type, usage-type and threat table.
var Default = Table{
	{"VPN", "ip2proxy_vpn"},
	{"TOR", "ip2proxy_tor"},
	{"PUB", "ip2proxy_pub"},
	{"WEB", "ip2proxy_web"},
	{"RES", "ip2proxy_res"},
	{"DCH", "ip2proxy_dch"},
	{"COM", "ip2proxy_com"},
	{"EDU", "ip2proxy_edu"},
	{"GOV", "ip2proxy_gov"},
	{"ISP", "ip2proxy_isp"},
	{"MOB", "ip2proxy_mob"},
	{"SPAM", "ip2proxy_spam"},
	{"SCANNER", "ip2proxy_scanner"},
	{"BOTNET", "ip2proxy_botnet"},
	{"MALWARE", "ip2proxy_malware"},
	{"PHISHING", "ip2proxy_phishing"},
	{"BOGON", "ip2proxy_bogon"},
}

// Matcher tests field values against a validated table.
// It is immutable and safe for concurrent use.
type Matcher struct {
	patterns []string
	buckets  []string
}

// NewMatcher validates table and returns a matcher for it.
func NewMatcher(table Table) (*Matcher, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no patterns", ErrInvalidTable)
	}

	m := &Matcher{
		patterns: make([]string, 0, len(table)),
		buckets:  make([]string, 0, len(table)),
	}
	seen := make(map[string]struct{}, len(table))
	for i, p := range table {
		if p.Substring == "" {
			return nil, fmt.Errorf("%w: pattern %d is empty", ErrInvalidTable, i)
		}
		if p.Bucket == "" {
			return nil, fmt.Errorf("%w: pattern %q has no bucket", ErrInvalidTable, p.Substring)
		}
		if _, dup := seen[p.Bucket]; dup {
			return nil, fmt.Errorf("%w: duplicate bucket %q", ErrInvalidTable, p.Bucket)
		}
		seen[p.Bucket] = struct{}{}
		m.patterns = append(m.patterns, p.Substring)
		m.buckets = append(m.buckets, p.Bucket)
	}
	return m, nil
}

// Buckets returns the bucket names in table order. Bucket indexes passed to
// Match callbacks index this slice.
func (m *Matcher) Buckets() []string {
	return m.buckets
}

// Match calls fn with the index of every bucket whose pattern occurs in at
// least one of fields. Matching is a case-sensitive substring test, so
// "SPAM/SCANNER" lands in both the spam and the scanner bucket.
func (m *Matcher) Match(fields []string, fn func(bucket int)) {
	for i, p := range m.patterns {
		for _, f := range fields {
			if strings.Contains(f, p) {
				fn(i)
				break
			}
		}
	}
}
