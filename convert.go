package streamson

// Convert passes the input through except for matched elements, whose bytes
// are replaced by their handlers' converter output. When several bindings
// match the same element their handlers chain in registration order, each
// converting the previous one's result. Conversions do not nest: the
// outermost matched element owns the output region; matches inside it still
// fire their handlers but their returned bytes are discarded.
type Convert struct {
	core
	depth  int
	conv   int // element depth of the converting element, 0 when none
	active []capture
}

func NewConvert() *Convert {
	return &Convert{core: newCore()}
}

// AddMatcher registers a binding. The handler should be a converter (or a
// chain containing one); with a pure observer the element passes unchanged.
func (c *Convert) AddMatcher(m Matcher, handler Handler) {
	c.addBinding(m, handler)
}

func (c *Convert) Process(chunk []byte) ([]Output, error) {
	return c.process(chunk, c)
}

func (c *Convert) Terminate() ([]Output, error) {
	return c.terminate(c)
}

func (c *Convert) elementStart(p *Path, kind Kind) error {
	c.depth++
	if c.depth == 1 {
		c.out = append(c.out, Output{Kind: OutputStart})
	}
	matched := c.matchStart(&c.active, p, c.depth, kind, false, false)
	if matched && c.conv == 0 {
		c.conv = c.depth
	}
	return nil
}

func (c *Convert) data(b []byte) error {
	if c.conv > 0 {
		feedCaptures(c.active, b)
		return nil
	}
	c.emitData(b)
	return nil
}

func (c *Convert) separator(b []byte) error {
	c.emitData(b)
	return nil
}

func (c *Convert) elementEnd(*Path) error {
	var ended []capture
	c.active, ended = popCaptures(c.active, c.depth)

	switch {
	case c.conv == c.depth:
		// thread the raw bytes through every matched binding in
		// registration order
		var cur []byte
		if len(ended) > 0 {
			cur = ended[0].data
		}
		for i := range ended {
			if ended[i].handler == nil {
				continue
			}
			out, err := replay(ended[i].handler, &ended[i], cur)
			if err != nil {
				continue // element left unchanged by the failing handler
			}
			if ended[i].handler.IsConverter() {
				cur = out
			}
		}
		c.emitData(cur)
		c.conv = 0
	case c.conv > 0:
		// nested inside a conversion: side effects only
		for i := range ended {
			if ended[i].handler == nil {
				continue
			}
			replay(ended[i].handler, &ended[i], ended[i].data) //nolint:errcheck
		}
	}

	if c.depth == 1 {
		c.out = append(c.out, Output{Kind: OutputEnd})
	}
	c.depth--
	return nil
}
