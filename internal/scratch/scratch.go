package scratch

import (
	"unicode/utf8"
)

// Scratch is a reusable byte accumulator for partial tokens (object keys,
// unescaped string contents). It grows with the token, never with the input.
type Scratch struct {
	data []byte
	fill int
}

func New(size int) *Scratch {
	if size <= 0 {
		size = 64
	}
	return &Scratch{data: make([]byte, size)}
}

// reset scratch buffer
func (s *Scratch) Reset() { s.fill = 0 }

// bytes returns the written contents of scratch buffer
func (s *Scratch) Bytes() []byte { return s.data[0:s.fill] }

func (s *Scratch) Len() int { return s.fill }

// grow scratch buffer until it can hold n more bytes
func (s *Scratch) grow(n int) {
	size := cap(s.data) * 2
	for size < s.fill+n {
		size *= 2
	}
	ndata := make([]byte, size)
	copy(ndata, s.data[:s.fill])
	s.data = ndata
}

// append single byte to scratch buffer
func (s *Scratch) Add(c byte) {
	if s.fill+1 >= cap(s.data) {
		s.grow(1)
	}

	s.data[s.fill] = c
	s.fill++
}

// append a byte slice to scratch buffer
func (s *Scratch) Append(b []byte) {
	if s.fill+len(b) >= cap(s.data) {
		s.grow(len(b))
	}

	copy(s.data[s.fill:], b)
	s.fill += len(b)
}

// append encoded rune to scratch buffer
func (s *Scratch) AddRune(r rune) int {
	if s.fill+utf8.UTFMax >= cap(s.data) {
		s.grow(utf8.UTFMax)
	}

	n := utf8.EncodeRune(s.data[s.fill:], r)
	s.fill += n
	return n
}
