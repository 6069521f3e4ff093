package handler

import (
	"github.com/xenking/streamson"
)

// Record is one captured element.
type Record struct {
	Path string
	Data []byte
}

// Buffer captures the bytes of each matched element and exposes them as a
// FIFO of records. Nested matched elements are tracked independently: an
// inner element's record is queued before the outer one's.
type Buffer struct {
	usePath bool
	open    []Record
	queue   []Record
}

func NewBuffer() *Buffer {
	return &Buffer{usePath: true}
}

// WithoutPath stops the buffer from requesting path snapshots; records keep
// an empty path.
func (b *Buffer) WithoutPath() *Buffer {
	b.usePath = false
	return b
}

func (b *Buffer) Start(p *streamson.Path, _ int, _ streamson.Kind) ([]byte, error) {
	var path string
	if p != nil {
		path = p.String()
	}
	b.open = append(b.open, Record{Path: path})
	return nil, nil
}

func (b *Buffer) Feed(data []byte, _ int) ([]byte, error) {
	for i := range b.open {
		b.open[i].Data = append(b.open[i].Data, data...)
	}
	return nil, nil
}

func (b *Buffer) End(*streamson.Path, int) ([]byte, error) {
	n := len(b.open) - 1
	b.queue = append(b.queue, b.open[n])
	b.open = b.open[:n]
	return nil, nil
}

func (b *Buffer) IsConverter() bool { return false }

func (b *Buffer) UsePath() bool { return b.usePath }

// PopFront removes and returns the oldest captured record.
func (b *Buffer) PopFront() (Record, bool) {
	if len(b.queue) == 0 {
		return Record{}, false
	}
	r := b.queue[0]
	b.queue = b.queue[1:]
	return r, true
}
