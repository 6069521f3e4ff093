package streamson

// Extract emits only the matched parts of the input. Each matched element is
// delivered as an OutputStart (carrying the element path unless disabled), a
// single OutputData with its raw or converted bytes, and an OutputEnd, in
// document End order. Unmatched regions produce no output; nested matches
// are delivered independently.
type Extract struct {
	core
	requirePath bool
	depth       int
	active      []capture
}

// NewExtract creates an Extract strategy that attaches path snapshots to
// its output.
func NewExtract() *Extract {
	return &Extract{core: newCore(), requirePath: true}
}

// WithoutPath disables path snapshots on output records.
func (e *Extract) WithoutPath() *Extract {
	e.requirePath = false
	return e
}

// AddMatcher registers a binding. handler may be nil; a converter handler's
// output replaces the element's bytes in the emitted records.
func (e *Extract) AddMatcher(m Matcher, handler Handler) {
	e.addBinding(m, handler)
}

func (e *Extract) Process(chunk []byte) ([]Output, error) {
	return e.process(chunk, e)
}

func (e *Extract) Terminate() ([]Output, error) {
	return e.terminate(e)
}

func (e *Extract) elementStart(p *Path, kind Kind) error {
	e.depth++
	e.matchStart(&e.active, p, e.depth, kind, false, e.requirePath)
	return nil
}

func (e *Extract) data(b []byte) error {
	feedCaptures(e.active, b)
	return nil
}

func (e *Extract) separator([]byte) error { return nil }

func (e *Extract) elementEnd(*Path) error {
	var ended []capture
	e.active, ended = popCaptures(e.active, e.depth)
	for i := range ended {
		e.finish(&ended[i])
	}
	e.depth--
	return nil
}

func (e *Extract) finish(cp *capture) {
	data := cp.data
	if cp.handler != nil {
		out, err := replay(cp.handler, cp, data)
		if err != nil {
			// abort the element, keep the stream alive
			return
		}
		if cp.handler.IsConverter() {
			data = out
		}
	}
	var p *Path
	if e.requirePath {
		p = cp.path
	}
	e.out = append(e.out, Output{Kind: OutputStart, Path: p})
	e.out = append(e.out, Output{Kind: OutputData, Data: append([]byte(nil), data...)})
	e.out = append(e.out, Output{Kind: OutputEnd, Path: p})
}
