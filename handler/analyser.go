package handler

import (
	"sort"
	"strings"

	"github.com/xenking/streamson"
)

// PathCount is one aggregated entry of the Analyser report.
type PathCount struct {
	Path  string
	Count int
}

// Analyser is an observer counting elements per normalized path, where every
// array index collapses to `[]`. It is typically run under the All strategy
// to report the shape of a document.
type Analyser struct {
	Nop
	counts map[string]int
}

func NewAnalyser() *Analyser {
	return &Analyser{counts: make(map[string]int)}
}

func (h *Analyser) Start(p *streamson.Path, _ int, _ streamson.Kind) ([]byte, error) {
	h.counts[normalize(p)]++
	return nil, nil
}

// Results returns the aggregated counts sorted by path.
func (h *Analyser) Results() []PathCount {
	res := make([]PathCount, 0, len(h.counts))
	for p, n := range h.counts {
		res = append(res, PathCount{Path: p, Count: n})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Path < res[j].Path })
	return res
}

func normalize(p *streamson.Path) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for i := 0; i < p.Depth(); i++ {
		e := p.At(i)
		if key, ok := e.Key(); ok {
			b.WriteString(`{"`)
			b.WriteString(key)
			b.WriteString(`"}`)
		} else {
			b.WriteString("[]")
		}
	}
	return b.String()
}
