package streamson

import "fmt"

// binding pairs one matcher with an optional handler; the matcher index
// handlers receive is the binding's registration position.
type binding struct {
	matcher Matcher
	handler Handler
}

// capture accumulates the raw bytes of one live matched element between its
// Start and End.
type capture struct {
	path       *Path // snapshot, nil when the strategy/handler needs none
	depth      int   // element-stack depth at Start, pairs the End
	matcherIdx int
	kind       Kind
	handler    Handler
	data       []byte
}

// core carries the pieces every strategy shares: the emitter, the bindings
// and the output accumulator with sticky-error semantics.
type core struct {
	em       *emitter
	bindings []binding
	out      []Output
	err      error
}

func newCore() core {
	return core{em: newEmitter()}
}

func (c *core) addBinding(m Matcher, h Handler) {
	c.bindings = append(c.bindings, binding{matcher: m, handler: h})
}

func (c *core) process(chunk []byte, s sink) ([]Output, error) {
	if c.err != nil {
		return nil, c.err
	}
	if err := c.em.process(chunk, s); err != nil {
		// fatal: buffered pending elements are discarded
		c.err = err
		c.out = nil
		return nil, err
	}
	out := c.out
	c.out = nil
	return out, nil
}

func (c *core) terminate(s sink) ([]Output, error) {
	if c.err != nil {
		return nil, c.err
	}
	if err := c.em.terminate(s); err != nil {
		c.err = err
		c.out = nil
		return nil, err
	}
	out := c.out
	c.out = nil
	return out, nil
}

// emitData appends one data record, copying b so outputs stay valid after
// the chunk buffer is reused.
func (c *core) emitData(b []byte) {
	if len(b) == 0 {
		return
	}
	c.out = append(c.out, Output{Kind: OutputData, Data: append([]byte(nil), b...)})
}

// matchStart records a capture for every binding matching p, returning
// whether any did. withHandlersOnly skips bindings without a handler (their
// match still counts).
func (c *core) matchStart(active *[]capture, p *Path, depth int, kind Kind, withHandlersOnly bool, snapshotAlways bool) bool {
	matched := false
	for i, b := range c.bindings {
		if !b.matcher.Match(p) {
			continue
		}
		matched = true
		if withHandlersOnly && b.handler == nil {
			continue
		}
		var snap *Path
		if snapshotAlways || (b.handler != nil && b.handler.UsePath()) {
			snap = p.Snapshot()
		}
		*active = append(*active, capture{
			path:       snap,
			depth:      depth,
			matcherIdx: i,
			kind:       kind,
			handler:    b.handler,
		})
	}
	return matched
}

// feedCaptures appends one data run to every live capture.
func feedCaptures(active []capture, b []byte) {
	for i := range active {
		active[i].data = append(active[i].data, b...)
	}
}

// popCaptures splits off the captures opened at depth; they occupy the tail
// of the stack in registration order.
func popCaptures(active []capture, depth int) (rest, ended []capture) {
	i := len(active)
	for i > 0 && active[i-1].depth == depth {
		i--
	}
	return active[:i], active[i:]
}

// replay runs one fully captured element through h as a serialized
// Start/Feed/End sequence, feeding data instead of the capture's raw bytes,
// and returns the bytes the handler emitted.
func replay(h Handler, cp *capture, data []byte) ([]byte, error) {
	p := cp.path
	if !h.UsePath() {
		p = nil
	}
	var out []byte
	b, err := h.Start(p, cp.matcherIdx, cp.kind)
	if err != nil {
		return nil, fmt.Errorf("handler start: %w", err)
	}
	out = append(out, b...)
	b, err = h.Feed(data, cp.matcherIdx)
	if err != nil {
		return nil, fmt.Errorf("handler feed: %w", err)
	}
	out = append(out, b...)
	b, err = h.End(p, cp.matcherIdx)
	if err != nil {
		return nil, fmt.Errorf("handler end: %w", err)
	}
	return append(out, b...), nil
}
