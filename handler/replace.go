package handler

import (
	"github.com/xenking/streamson"
)

// Replace is a converter emitting fixed bytes in place of each matched
// element.
type Replace struct {
	Nop
	data []byte
}

func NewReplace(data []byte) *Replace {
	return &Replace{data: append([]byte(nil), data...)}
}

func (h *Replace) End(*streamson.Path, int) ([]byte, error) {
	return h.data, nil
}

func (h *Replace) IsConverter() bool { return true }

func (h *Replace) UsePath() bool { return false }
