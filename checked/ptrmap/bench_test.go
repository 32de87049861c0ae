package ptrmap

import "testing"

func BenchmarkMap_PutDelete(b *testing.B) {
	n := &mnode{}
	var m Map[*mnode, int]
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Put(n, 1)
		m.Delete(n)
	}
	m.Reset()
	n.Destroy()
}

func BenchmarkMap_Get(b *testing.B) {
	nodes := newNodes(1024)
	var m Map[*mnode, int]
	for i, n := range nodes {
		m.Put(n, i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(nodes[i&1023])
	}
	b.StopTimer()
	m.Reset()
	for _, n := range nodes {
		n.Destroy()
	}
}
