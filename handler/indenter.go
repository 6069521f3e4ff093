package handler

import (
	"github.com/xenking/streamson"
)

// Indenter is a converter re-emitting elements in pretty-printed form with
// the configured indent, or in compact form when spaces is negative. It
// operates on the raw byte stream with a string-aware state machine, so it
// works both per matched element (Convert) and over the whole document
// (All), where feeds arrive once per byte run.
type Indenter struct {
	spaces int
	depth  int

	inString bool
	escape   bool
	needBrk  bool
	empty    bool // just opened a container, nothing inside yet

	out []byte
}

func NewIndenter(spaces int) *Indenter {
	return &Indenter{spaces: spaces}
}

// NewCompactor returns an Indenter in compact mode.
func NewCompactor() *Indenter { return NewIndenter(-1) }

func (h *Indenter) Start(_ *streamson.Path, _ int, _ streamson.Kind) ([]byte, error) {
	// a fresh top-level element resets the machine; nested Starts arrive
	// mid-stream and must not
	if h.depth == 0 && !h.inString {
		h.needBrk = false
		h.empty = false
		h.escape = false
	}
	return nil, nil
}

func (h *Indenter) Feed(data []byte, _ int) ([]byte, error) {
	h.out = h.out[:0]
	for _, c := range data {
		h.consume(c)
	}
	if len(h.out) == 0 {
		return nil, nil
	}
	return h.out, nil
}

func (h *Indenter) End(*streamson.Path, int) ([]byte, error) { return nil, nil }

func (h *Indenter) IsConverter() bool { return true }

func (h *Indenter) UsePath() bool { return false }

func (h *Indenter) consume(c byte) {
	if h.inString {
		h.out = append(h.out, c)
		switch {
		case h.escape:
			h.escape = false
		case c == '\\':
			h.escape = true
		case c == '"':
			h.inString = false
		}
		return
	}

	switch c {
	case ' ', '\t', '\n', '\r':
		return
	case '{', '[':
		h.breakLine()
		h.out = append(h.out, c)
		h.depth++
		h.needBrk = true
		h.empty = true
	case '}', ']':
		h.depth--
		h.needBrk = !h.empty
		h.breakLine()
		h.out = append(h.out, c)
	case ',':
		h.out = append(h.out, c)
		h.needBrk = true
	case ':':
		h.out = append(h.out, c)
		if h.spaces >= 0 {
			h.out = append(h.out, ' ')
		}
	default:
		h.breakLine()
		if c == '"' {
			h.inString = true
		}
		h.out = append(h.out, c)
	}
}

// breakLine emits the pending newline and indentation, if any.
func (h *Indenter) breakLine() {
	brk := h.needBrk
	h.needBrk = false
	h.empty = false
	if !brk || h.spaces < 0 {
		return
	}
	h.out = append(h.out, '\n')
	for i := 0; i < h.depth*h.spaces; i++ {
		h.out = append(h.out, ' ')
	}
}
