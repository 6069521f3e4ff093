package streamson

import "bytes"

// filterFrame tracks per-container elision state: whether any member made it
// to the output yet, and whether the elided member was the container's
// first.
type filterFrame struct {
	emittedChild bool
	firstElided  bool
}

// Filter passes the input through except for matched elements, which are
// elided together with their object key and the adjacent comma so the output
// stays well-formed JSON. For an elided member with a preceding sibling the
// comma before it (and the whitespace between that comma and the member) is
// dropped; for an elided first member the comma after it (and the whitespace
// up to the next member) is dropped instead. Whitespace before the
// separating comma and before the closing bracket is preserved verbatim.
//
// Handlers attached to bindings observe the removed elements' bytes;
// converter output never reaches the stream.
type Filter struct {
	core
	depth  int
	elide  int // element depth owning the current elision, 0 when none
	frames []filterFrame
	kinds  []Kind
	gap    []byte // buffered structural bytes between children
	active []capture
}

func NewFilter() *Filter {
	return &Filter{core: newCore()}
}

// AddMatcher registers a binding; handler may be nil.
func (f *Filter) AddMatcher(m Matcher, handler Handler) {
	f.addBinding(m, handler)
}

func (f *Filter) Process(chunk []byte) ([]Output, error) {
	return f.process(chunk, f)
}

func (f *Filter) Terminate() ([]Output, error) {
	return f.terminate(f)
}

func (f *Filter) elementStart(p *Path, kind Kind) error {
	f.depth++
	if f.depth == 1 {
		f.out = append(f.out, Output{Kind: OutputStart})
	}
	matched := f.matchStart(&f.active, p, f.depth, kind, true, false)
	if f.elide == 0 {
		f.disposeGap(matched)
		if matched {
			f.elide = f.depth
		}
	}
	f.kinds = append(f.kinds, kind)
	if kind.Container() {
		f.frames = append(f.frames, filterFrame{})
	}
	return nil
}

func (f *Filter) data(b []byte) error {
	feedCaptures(f.active, b)
	if f.elide > 0 {
		return nil
	}
	if n := len(f.kinds); n > 0 && f.kinds[n-1].Container() {
		// structural bytes between the container's children; held back
		// until the next child decides the elision
		f.gap = append(f.gap, b...)
		return nil
	}
	f.emitData(b)
	return nil
}

func (f *Filter) separator(b []byte) error {
	f.emitData(b)
	return nil
}

func (f *Filter) elementEnd(*Path) error {
	var ended []capture
	f.active, ended = popCaptures(f.active, f.depth)
	for i := range ended {
		// removed bytes are observed by the binding's handler; output is
		// discarded either way
		replay(ended[i].handler, &ended[i], ended[i].data) //nolint:errcheck
	}

	kind := f.kinds[len(f.kinds)-1]
	f.kinds = f.kinds[:len(f.kinds)-1]
	if kind.Container() {
		f.frames = f.frames[:len(f.frames)-1]
	}

	switch {
	case f.elide == f.depth:
		f.elide = 0
		f.gap = f.gap[:0]
	case f.elide == 0 && kind.Container():
		// trailing whitespace and the closing bracket
		f.emitData(f.gap)
		f.gap = f.gap[:0]
	}

	if f.depth == 1 {
		f.out = append(f.out, Output{Kind: OutputEnd})
	}
	f.depth--
	return nil
}

// disposeGap routes the buffered inter-child bytes once the next child's
// fate is known.
func (f *Filter) disposeGap(matched bool) {
	g := f.gap
	if len(f.frames) == 0 {
		// a top-level value: nothing is ever buffered here
		if !matched {
			f.emitData(g)
		}
		f.gap = f.gap[:0]
		return
	}
	parent := &f.frames[len(f.frames)-1]

	if matched {
		if parent.emittedChild {
			// drop from the separating comma on; whitespace before it is
			// preserved
			if ci := bytes.IndexByte(g, ','); ci >= 0 {
				f.emitData(g[:ci])
			} else {
				f.emitData(g)
			}
		} else {
			// first child: keep the opening bracket and leading whitespace
			i := 0
			if len(g) > 0 && (g[0] == '{' || g[0] == '[') {
				i = 1
			}
			for i < len(g) && isJSONSpace(g[i]) {
				i++
			}
			f.emitData(g[:i])
			parent.firstElided = true
		}
		f.gap = f.gap[:0]
		return
	}

	if parent.firstElided && !parent.emittedChild {
		// the elided child was first: drop the comma that follows it and
		// the whitespace after the comma, up to this child
		if ci := bytes.IndexByte(g, ','); ci >= 0 {
			j := ci + 1
			for j < len(g) && isJSONSpace(g[j]) {
				j++
			}
			f.emitData(g[j:])
		} else {
			f.emitData(g)
		}
	} else {
		f.emitData(g)
	}
	parent.emittedChild = true
	parent.firstElided = false
	f.gap = f.gap[:0]
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
