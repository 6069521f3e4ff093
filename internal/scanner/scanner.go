// Package scanner pumps fixed-size chunks out of an io.Reader, prefetching
// the next chunk on a background goroutine while the caller processes the
// current one.
package scanner

import (
	"io"
)

type fill struct {
	n   int
	err error
}

// Scanner double-buffers reads: while the caller holds the chunk returned by
// Next, the fill goroutine is already reading the following one.
type Scanner struct {
	cur  []byte
	next []byte
	done error

	fillReq   chan struct{}
	fillReady chan fill
}

func New(r io.Reader, size int) *Scanner {
	if size <= 0 {
		size = 1 << 20
	}
	s := &Scanner{
		cur:       make([]byte, size),
		next:      make([]byte, size),
		fillReq: make(chan struct{}, 1),
		// buffered so the final in-flight fill never blocks the goroutine
		// against a caller that stopped consuming
		fillReady: make(chan fill, 1),
	}

	go func() {
		for range s.fillReq {
			var n int
			var err error
			for {
				n, err = r.Read(s.next)
				if n > 0 || err != nil {
					break
				}
				// no data and no error, retry fill
			}
			s.fillReady <- fill{n, err}
		}
	}()

	s.fillReq <- struct{}{} // initial fill

	return s
}

// Next returns the next chunk, valid until the following call. It returns
// nil, io.EOF once the reader is exhausted.
func (s *Scanner) Next() ([]byte, error) {
	if s.done != nil {
		return nil, s.done
	}
	f := <-s.fillReady
	if f.err != nil {
		s.done = f.err
	}
	if f.n == 0 {
		return nil, s.done
	}
	s.cur, s.next = s.next, s.cur
	if s.done == nil {
		s.fillReq <- struct{}{} // request next fill to be prepared
	}
	return s.cur[:f.n], nil
}

// Close stops the fill goroutine. The underlying reader is not closed.
func (s *Scanner) Close() {
	close(s.fillReq)
}
