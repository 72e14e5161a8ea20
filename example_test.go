package proxylist_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/proxylist"
	"github.com/hupe1980/proxylist/testutil"
)

// Example demonstrates extracting the category lists of a database.
func Example() {
	dir, err := os.MkdirTemp("", "proxylist-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// A PX10 database with one single-address row and one /24 range.
	db := testutil.NewBuilder(10, 13).
		Add(16909060, 16909061, "VPN", "DCH", "-").
		Add(167772160, 167772416, "PUB", "-", "SPAM").
		Bytes()
	path := filepath.Join(dir, "IP2PROXY-LITE-PX10.BIN")
	if err := os.WriteFile(path, db, 0o644); err != nil {
		log.Fatal(err)
	}

	doc, err := proxylist.Extract(context.Background(), path)
	if err != nil {
		log.Fatal(err)
	}

	for _, name := range doc.Names() {
		l := doc.Lists[name]
		fmt.Println(name, l.Addresses, l.Networks)
	}
	// Output:
	// ip2proxy_dch [16909060] []
	// ip2proxy_pub [] [[167772160 167772415]]
	// ip2proxy_spam [] [[167772160 167772415]]
	// ip2proxy_vpn [16909060] []
}

// ExampleWriteFile demonstrates publishing a compressed document.
func ExampleWriteFile() {
	dir, err := os.MkdirTemp("", "proxylist-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	doc := &proxylist.Document{
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		Lists: map[string]proxylist.List{
			"ip2proxy_tor": {Addresses: []uint64{3232235777}, Networks: []proxylist.Range{}},
		},
	}

	path := filepath.Join(dir, "lists.json.zst")
	if err := proxylist.WriteFile(path, doc); err != nil {
		log.Fatal(err)
	}
	fmt.Println(proxylist.CompressionFromPath(path))
	// Output: zstd
}
