package checked

import "testing"

// The wrappers are supposed to be near-zero overhead over a raw pointer:
// one counter mutation per end of life. These benchmarks keep that
// honest (and allocation-free; run with -benchmem).

func BenchmarkPtr_MakeReset(b *testing.B) {
	n := &node{}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p := MakePtr(n)
		p.Reset()
	}
	n.Destroy()
}

func BenchmarkPtr_Clone(b *testing.B) {
	n := &node{}
	p := MakePtr(n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q := p.Clone()
		q.Reset()
	}
	b.StopTimer()
	p.Reset()
	n.Destroy()
}

func BenchmarkRef_RoundTrip(b *testing.B) {
	n := &node{}
	p := MakePtr(n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := p.ReleaseNonNil()
		p.Adopt(&r)
	}
	b.StopTimer()
	p.Reset()
	n.Destroy()
}
