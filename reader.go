package streamson

import (
	"io"

	"github.com/xenking/streamson/internal/scanner"
)

// ProcessReader drives a strategy over r in bufSize chunks, invoking fn for
// every output record, and terminates the strategy once the reader is
// exhausted. Chunks are prefetched on a background goroutine while the
// current one is being processed.
func ProcessReader(st Strategy, r io.Reader, bufSize int, fn func(Output) error) error {
	sc := scanner.New(r, bufSize)
	defer sc.Close()

	for {
		chunk, err := sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		outs, perr := st.Process(chunk)
		for _, o := range outs {
			if err := fn(o); err != nil {
				return err
			}
		}
		if perr != nil {
			return perr
		}
	}

	outs, err := st.Terminate()
	for _, o := range outs {
		if ferr := fn(o); ferr != nil {
			return ferr
		}
	}
	return err
}
