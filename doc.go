// Package proxylist turns an IP2Proxy binary database into deduplicated,
// sorted IPv4 block lists, one per proxy or threat category.
//
// The database file is memory-mapped and its IPv4 table is scanned in
// fixed-size chunks by a bounded pool of workers. Every record's proxy-type,
// usage-type and threat fields are matched against a category table; a
// record spanning one address lands in the bucket's address list, a wider
// span in its network list as an inclusive [start, end] pair.
//
// # Quick Start
//
//	doc, err := proxylist.Extract(ctx, "IP2PROXY-LITE-PX10.BIN")
//	if err != nil {
//	    return err
//	}
//	err = proxylist.WriteFile("lists.json.zst", doc)
//
// # Configuration
//
//	e, err := proxylist.Open(path,
//	    proxylist.WithChunkSize(50_000),
//	    proxylist.WithWorkers(4),
//	    proxylist.WithTimeout(5*time.Minute),
//	    proxylist.WithLogger(proxylist.NewJSONLogger(slog.LevelInfo)),
//	)
//	defer e.Close()
//	doc, err := e.Extract(ctx)
//
// # Malformed Input
//
// Format violations never fail a run. Unresolvable fields read as "-" and
// match no category; rows that lie outside the file or have an empty span
// are skipped. Both are counted in Document.Stats.
//
// # Output
//
// WriteFile encodes the document as JSON with sorted keys, optionally
// compressed with zstd or lz4, and publishes it with an atomic rename:
//
//	{"timestamp":1700000000,"lists":{"ip2proxy_vpn":{"addresses":[16909060],"networks":[]}}}
package proxylist
