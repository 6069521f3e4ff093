package handler

import (
	"encoding/json"

	"github.com/xenking/streamson"
	"github.com/xenking/streamson/internal/lexer"
	"github.com/xenking/streamson/internal/scratch"
)

// Unstringify is a converter interpreting each element as a JSON string
// whose content is itself JSON, emitting the inner JSON. Elements that are
// not strings, or whose unescaped content is not valid JSON, pass through
// unchanged.
type Unstringify struct {
	Nop
	buf     []byte
	scratch *scratch.Scratch
}

func NewUnstringify() *Unstringify {
	return &Unstringify{scratch: scratch.New(256)}
}

func (h *Unstringify) Start(*streamson.Path, int, streamson.Kind) ([]byte, error) {
	h.buf = h.buf[:0]
	return nil, nil
}

func (h *Unstringify) Feed(data []byte, _ int) ([]byte, error) {
	h.buf = append(h.buf, data...)
	return nil, nil
}

func (h *Unstringify) End(*streamson.Path, int) ([]byte, error) {
	return h.unstringify(), nil
}

func (h *Unstringify) unstringify() []byte {
	if len(h.buf) < 2 || h.buf[0] != '"' || h.buf[len(h.buf)-1] != '"' {
		return h.buf
	}
	inner, err := lexer.Unescape(h.buf[1:len(h.buf)-1], h.scratch)
	if err != nil || !json.Valid(inner) {
		return h.buf
	}
	return inner
}

func (h *Unstringify) IsConverter() bool { return true }

func (h *Unstringify) UsePath() bool { return false }
