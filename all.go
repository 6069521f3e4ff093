package streamson

// All treats every element as matched: its handlers run against the whole
// document without any matcher. Element Start and End fire for every value
// at every depth; each byte run is fed exactly once, attributed to the
// innermost open element, so the concatenation of feeds reproduces every
// top-level value. Whitespace between top-level values is not fed to the
// handlers.
//
// In convert mode the output byte stream is rebuilt entirely from the
// handlers' returned bytes; in observer mode the input passes through
// verbatim.
type All struct {
	core
	handlers []Handler
	convert  bool
	depth    int
}

func NewAll(convert bool) *All {
	return &All{core: newCore(), convert: convert}
}

// AddHandler registers a handler (or chain) that runs against every element.
func (a *All) AddHandler(h Handler) {
	a.handlers = append(a.handlers, h)
}

func (a *All) Process(chunk []byte) ([]Output, error) {
	out, err := a.process(chunk, a)
	if err != nil {
		return nil, err
	}
	if !a.convert {
		return []Output{{Kind: OutputData, Data: append([]byte(nil), chunk...)}}, nil
	}
	return out, nil
}

func (a *All) Terminate() ([]Output, error) {
	out, err := a.terminate(a)
	if err != nil {
		return nil, err
	}
	if !a.convert {
		return nil, nil
	}
	return out, nil
}

func (a *All) elementStart(p *Path, kind Kind) error {
	a.depth++
	if a.convert && a.depth == 1 {
		a.out = append(a.out, Output{Kind: OutputStart})
	}
	for _, h := range a.handlers {
		b, err := h.Start(a.handlerPath(h, p), 0, kind)
		if err != nil {
			continue
		}
		if a.convert {
			a.emitData(b)
		}
	}
	return nil
}

func (a *All) data(b []byte) error {
	for _, h := range a.handlers {
		out, err := h.Feed(b, 0)
		if err != nil {
			continue
		}
		if a.convert && h.IsConverter() {
			a.emitData(out)
		}
	}
	return nil
}

func (a *All) separator(b []byte) error {
	if a.convert {
		a.emitData(b)
	}
	return nil
}

func (a *All) elementEnd(p *Path) error {
	for _, h := range a.handlers {
		b, err := h.End(a.handlerPath(h, p), 0)
		if err != nil {
			continue
		}
		if a.convert {
			a.emitData(b)
		}
	}
	if a.convert && a.depth == 1 {
		a.out = append(a.out, Output{Kind: OutputEnd})
	}
	a.depth--
	return nil
}

func (a *All) handlerPath(h Handler, p *Path) *Path {
	if !h.UsePath() {
		return nil
	}
	return p
}
