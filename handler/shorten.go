package handler

import (
	"github.com/xenking/streamson"
	"github.com/xenking/streamson/internal"
)

// Shorten is a converter emitting at most the first max bytes of each
// element, followed by the terminator when the element was actually
// truncated. Truncation ignores JSON well-formedness; picking a terminator
// that keeps the output valid (e.g. `..."` for strings) is the caller's
// responsibility.
type Shorten struct {
	Nop
	max        int
	terminator string
	written    int
	truncated  bool
}

func NewShorten(max int, terminator string) (*Shorten, error) {
	if max <= 0 {
		return nil, &internal.HandlerConfigError{Handler: "shorten", Reason: "length must be positive"}
	}
	return &Shorten{max: max, terminator: terminator}, nil
}

func (h *Shorten) Start(*streamson.Path, int, streamson.Kind) ([]byte, error) {
	h.written = 0
	h.truncated = false
	return nil, nil
}

func (h *Shorten) Feed(data []byte, _ int) ([]byte, error) {
	if h.truncated {
		return nil, nil
	}
	rem := h.max - h.written
	if len(data) <= rem {
		h.written += len(data)
		return data, nil
	}
	h.truncated = true
	out := make([]byte, 0, rem+len(h.terminator))
	out = append(out, data[:rem]...)
	out = append(out, h.terminator...)
	h.written = h.max
	return out, nil
}

func (h *Shorten) IsConverter() bool { return true }

func (h *Shorten) UsePath() bool { return false }
