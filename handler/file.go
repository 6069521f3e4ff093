package handler

import (
	"fmt"
	"io"
	"os"

	"github.com/xenking/streamson"
)

// File appends each matched element's bytes, optionally prefixed by its
// path, plus a newline to a file.
type File struct {
	Nop
	w         io.Writer
	f         *os.File
	writePath bool
	path      string
	buf       []byte
}

func NewFile(path string, writePath bool) (*File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &File{w: f, f: f, writePath: writePath}, nil
}

// NewStdout is the File variant writing to standard output.
func NewStdout(writePath bool) *File {
	return &File{w: os.Stdout, writePath: writePath}
}

func (h *File) Start(p *streamson.Path, _ int, _ streamson.Kind) ([]byte, error) {
	h.path = ""
	if p != nil {
		h.path = p.String()
	}
	h.buf = h.buf[:0]
	return nil, nil
}

func (h *File) Feed(data []byte, _ int) ([]byte, error) {
	h.buf = append(h.buf, data...)
	return nil, nil
}

func (h *File) End(*streamson.Path, int) ([]byte, error) {
	var err error
	if h.writePath {
		_, err = fmt.Fprintf(h.w, "%s: %s\n", h.path, h.buf)
	} else {
		_, err = fmt.Fprintf(h.w, "%s\n", h.buf)
	}
	return nil, err
}

func (h *File) UsePath() bool { return h.writePath }

// Close closes the underlying file; a no-op for the Stdout variant.
func (h *File) Close() error {
	if h.f == nil {
		return nil
	}
	return h.f.Close()
}
