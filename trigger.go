package streamson

// Trigger passes all bytes through unchanged and invokes handlers purely for
// side effects on matched elements; handler output is discarded. Every
// matching Start/End pair fires its handlers independently, inner elements
// before outer ones, regardless of nesting.
type Trigger struct {
	core
	depth  int
	active []capture
}

func NewTrigger() *Trigger {
	return &Trigger{core: newCore()}
}

// AddMatcher registers a binding; the handler receives the matched element's
// bytes.
func (t *Trigger) AddMatcher(m Matcher, handler Handler) {
	t.addBinding(m, handler)
}

func (t *Trigger) Process(chunk []byte) ([]Output, error) {
	if _, err := t.process(chunk, t); err != nil {
		return nil, err
	}
	return []Output{{Kind: OutputData, Data: append([]byte(nil), chunk...)}}, nil
}

func (t *Trigger) Terminate() ([]Output, error) {
	return t.terminate(t)
}

func (t *Trigger) elementStart(p *Path, kind Kind) error {
	t.depth++
	t.matchStart(&t.active, p, t.depth, kind, true, false)
	return nil
}

func (t *Trigger) data(b []byte) error {
	feedCaptures(t.active, b)
	return nil
}

func (t *Trigger) separator([]byte) error { return nil }

func (t *Trigger) elementEnd(*Path) error {
	var ended []capture
	t.active, ended = popCaptures(t.active, t.depth)
	for i := range ended {
		replay(ended[i].handler, &ended[i], ended[i].data) //nolint:errcheck
	}
	t.depth--
	return nil
}
