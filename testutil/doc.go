// Package testutil provides testing utilities for proxylist.
//
// This package is intended for use in tests and benchmarks only. It builds
// synthetic IP2Proxy-style database images and generates reproducible
// random row sets.
//
// # Database Images
//
//	b := testutil.NewBuilder(10, 13)
//	b.Add(16909060, 16909061, "VPN", "DCH", "-")
//	path := b.WriteFile(t)
//
// # Random Rows
//
//	rng := testutil.NewRNG(seed)
//	rows := rng.Rows(1000)
package testutil
