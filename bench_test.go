package addrange //nolint:testpackage // it's OK to be just addrange

import (
	"net/netip"
	"testing"
)

// fragmented returns a range over 10.0.0.0/16 where every other address of
// the first n*2 addresses is occupied.
func fragmented(b *testing.B, n int) *Range {
	b.Helper()
	r, err := ParseCIDR("10.0.0.0/16")
	if err != nil {
		b.Fatal(err)
	}
	ip := r.First().Addr()
	for i := 0; i < n; i++ {
		if errOccupy := r.Occupy(ip, "bench"); errOccupy != nil {
			b.Fatal(errOccupy)
		}
		ip = ip.Next().Next()
	}
	return r
}

func BenchmarkOccupyFreeInterior(b *testing.B) {
	b.ReportAllocs()
	r, _ := ParseCIDR("10.0.0.0/16")
	ip := netip.MustParseAddr("10.0.128.1")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.Occupy(ip, "bench"); err != nil {
			b.Fatal(err)
		}
		if err := r.Free(ip); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAllocateRelease(b *testing.B) {
	b.ReportAllocs()
	r, _ := ParseCIDR("2001:db8::/64")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ip, err := r.Allocate("bench")
		if err != nil {
			b.Fatal(err)
		}
		if errRelease := r.Free(ip.Addr()); errRelease != nil {
			b.Fatal(errRelease)
		}
	}
}

func BenchmarkLookupFragmented(b *testing.B) {
	cases := []struct {
		name string
		n    int
	}{
		{"Occupied16", 16},
		{"Occupied1024", 1024},
		{"Occupied16384", 16384},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			r := fragmented(b, c.n)
			ip := netip.MustParseAddr("10.0.0.2")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := r.Lookup(ip); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFreeFragmented(b *testing.B) {
	cases := []struct {
		name string
		n    int
	}{
		{"Occupied16", 16},
		{"Occupied1024", 1024},
		{"Occupied16384", 16384},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			r := fragmented(b, c.n)
			ip := netip.MustParseAddr("10.0.0.8")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := r.Free(ip); err != nil {
					b.Fatal(err)
				}

				b.StopTimer()
				// Occupy it again under StopTimer so the next iteration can free it
				if err := r.Occupy(ip, "bench"); err != nil {
					b.Fatal(err)
				}
				b.StartTimer()
			}
		})
	}
}

func BenchmarkIterateFree(b *testing.B) {
	b.ReportAllocs()
	r := fragmented(b, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := r.FreeSpans()
		for range it.Seq() {
		}
	}
}

// BenchmarkParseCIDR measures the cost of creating a new Range.
func BenchmarkParseCIDR(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParseCIDR("2001:db8::/64"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIncrement(b *testing.B) {
	buf := []byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Increment(buf)
	}
}
