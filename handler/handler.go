// Package handler provides the built-in handlers invoked by streamson
// strategies on matched elements: per-element sinks (Buffer, File, Stdout,
// Indexer), converters (Replace, Shorten, Unstringify, Regex, Indenter), the
// Analyser observer and handler chaining.
package handler

import (
	"github.com/xenking/streamson"
)

// Nop supplies default no-op callbacks; embed it in handlers that only need
// a subset of the streamson.Handler interface.
type Nop struct{}

func (Nop) Start(*streamson.Path, int, streamson.Kind) ([]byte, error) { return nil, nil }

func (Nop) Feed([]byte, int) ([]byte, error) { return nil, nil }

func (Nop) End(*streamson.Path, int) ([]byte, error) { return nil, nil }

func (Nop) IsConverter() bool { return false }

func (Nop) UsePath() bool { return true }

// Chain composes handlers: within one element, the bytes a converter returns
// become the feed input of the next handler, and residual End output is
// flushed through the rest of the chain. Observers see the stream at their
// position and pass it along unchanged.
type Chain struct {
	handlers []streamson.Handler
}

func NewChain(handlers ...streamson.Handler) *Chain {
	return &Chain{handlers: handlers}
}

func (c *Chain) IsConverter() bool {
	for _, h := range c.handlers {
		if h.IsConverter() {
			return true
		}
	}
	return false
}

func (c *Chain) UsePath() bool {
	for _, h := range c.handlers {
		if h.UsePath() {
			return true
		}
	}
	return false
}

func (c *Chain) Start(p *streamson.Path, idx int, kind streamson.Kind) ([]byte, error) {
	starts := make([][]byte, len(c.handlers))
	for i, h := range c.handlers {
		out, err := h.Start(memberPath(h, p), idx, kind)
		if err != nil {
			return nil, err
		}
		starts[i] = out
	}
	var res []byte
	for i, out := range starts {
		if len(out) == 0 {
			continue
		}
		r, err := c.feedFrom(i+1, out, idx)
		if err != nil {
			return nil, err
		}
		res = append(res, r...)
	}
	return res, nil
}

func (c *Chain) Feed(data []byte, idx int) ([]byte, error) {
	return c.feedFrom(0, data, idx)
}

func (c *Chain) End(p *streamson.Path, idx int) ([]byte, error) {
	var cur []byte
	for _, h := range c.handlers {
		pass := cur
		if len(cur) > 0 {
			out, err := h.Feed(cur, idx)
			if err != nil {
				return nil, err
			}
			if h.IsConverter() {
				pass = out
			}
		}
		end, err := h.End(memberPath(h, p), idx)
		if err != nil {
			return nil, err
		}
		if h.IsConverter() {
			if len(pass) == 0 && len(end) == 0 {
				cur = nil
			} else {
				cur = append(append([]byte(nil), pass...), end...)
			}
		} else {
			cur = pass
		}
	}
	return cur, nil
}

// feedFrom pushes data through handlers[from:] and returns the bytes that
// exit the chain.
func (c *Chain) feedFrom(from int, data []byte, idx int) ([]byte, error) {
	cur := data
	for _, h := range c.handlers[from:] {
		out, err := h.Feed(cur, idx)
		if err != nil {
			return nil, err
		}
		if h.IsConverter() {
			cur = out
			if len(cur) == 0 {
				return nil, nil
			}
		}
	}
	return cur, nil
}

func memberPath(h streamson.Handler, p *streamson.Path) *streamson.Path {
	if !h.UsePath() {
		return nil
	}
	return p
}
