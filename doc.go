// Package addrange provides an address range allocator for IPv4 and IPv6.
// A Range covers a contiguous [first, last] interval and keeps it partitioned
// into sorted free spans and individually occupied addresses, each occupied
// address carrying the name of its holder. Occupy splits a free span and Free
// merges the released address back into its free neighbours.
//
// A Range is not safe for concurrent use.
//
// Example:
//
//	import "github.com/yago-123/addrange"
//
//	// Create a range for the 10.0.0.0/24 network
//	r, err := addrange.ParseCIDR("10.0.0.0/24")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Hand out an address to a host
//	ip := netip.MustParseAddr("10.0.0.7")
//	if err := r.Occupy(ip, "host-a"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Walk the free spans
//	it := r.FreeSpans()
//	for n := range it.Seq() {
//	    fmt.Println(n)
//	}
//
//	// Release the address
//	if err := r.Free(ip); err != nil {
//	    log.Fatal(err)
//	}
package addrange
