package streamson

import (
	"github.com/xenking/streamson/internal/lexer"
)

// sink receives the path-tagged element events the emitter produces. Start
// and End are emitted for every element at every depth; filtering to matched
// elements is the strategy's job. Data carries bytes belonging to at least
// one open element, exactly once each; separator carries bytes outside any
// element (whitespace between top-level values).
type sink interface {
	elementStart(p *Path, kind Kind) error
	data(b []byte) error
	separator(b []byte) error
	elementEnd(p *Path) error
}

type elemFrame struct {
	kind       Kind
	pathPushed bool
}

type containerFrame struct {
	isArray bool
	next    int // running index for the next array element
}

// emitter drives the lexer over input chunks, maintains the Path and the
// per-array index counters, and dispatches element events to a sink.
type emitter struct {
	lx         *lexer.Lexer
	path       Path
	elems      []elemFrame
	containers []containerFrame
	pendingKey string
}

func newEmitter() *emitter {
	return &emitter{lx: lexer.New()}
}

func (e *emitter) process(chunk []byte, s sink) error {
	evs, serr := e.lx.Scan(chunk)

	run := 0
	flush := func(to int) error {
		if to <= run {
			return nil
		}
		b := chunk[run:to]
		run = to
		if len(e.elems) > 0 {
			return s.data(b)
		}
		return s.separator(b)
	}

	for _, ev := range evs {
		switch ev.Type {
		case lexer.EvKeyEnd:
			e.pendingKey = string(e.lx.Key())

		case lexer.EvValueStart:
			if err := flush(ev.Off); err != nil {
				return err
			}
			pushed := false
			if n := len(e.containers); n > 0 {
				top := &e.containers[n-1]
				if top.isArray {
					e.path.PushIndex(top.next)
					top.next++
				} else {
					e.path.PushKey(e.pendingKey)
				}
				pushed = true
			}
			e.elems = append(e.elems, elemFrame{kind: ev.Kind, pathPushed: pushed})
			if err := s.elementStart(&e.path, ev.Kind); err != nil {
				return err
			}
			if ev.Kind.Container() {
				e.containers = append(e.containers, containerFrame{isArray: ev.Kind == KindArray})
			}

		case lexer.EvValueEnd:
			if err := flush(ev.Off); err != nil {
				return err
			}
			fr := e.elems[len(e.elems)-1]
			if fr.kind.Container() {
				e.containers = e.containers[:len(e.containers)-1]
			}
			if err := s.elementEnd(&e.path); err != nil {
				return err
			}
			e.elems = e.elems[:len(e.elems)-1]
			if fr.pathPushed {
				e.path.Pop()
			}
		}
	}

	if serr != nil {
		return serr
	}
	return flush(len(chunk))
}

// terminate validates end of input. A top-level number still open in a
// terminal state is completed here; anything else open is a truncation
// error.
func (e *emitter) terminate(s sink) error {
	endNumber, err := e.lx.Finish()
	if err != nil {
		return err
	}
	if endNumber {
		if err := s.elementEnd(&e.path); err != nil {
			return err
		}
		e.elems = e.elems[:0]
	}
	return nil
}
