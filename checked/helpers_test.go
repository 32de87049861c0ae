package checked

// Shared test pointees.

// node is the canonical counted target: a struct embedding Counter.
type node struct {
	Counter
	name string
}

// tracer records the order of count mutations into a shared log, so
// tests can verify increment-before-decrement ordering across two
// distinct pointees.
type tracer struct {
	Counter
	log  *[]string
	name string
}

func (t *tracer) IncRef() {
	*t.log = append(*t.log, "inc "+t.name)
	t.Counter.IncRef()
}

func (t *tracer) DecRef() {
	*t.log = append(*t.log, "dec "+t.name)
	t.Counter.DecRef()
}
