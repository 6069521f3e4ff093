package streamson

import "strconv"

// Element is a single step of a Path: an object member name or an array
// position.
type Element struct {
	key   string
	index int
	isKey bool
}

// KeyElement builds an object-key element. raw holds the key's original
// bytes between the quotes, escapes preserved.
func KeyElement(raw string) Element { return Element{key: raw, isKey: true} }

// IndexElement builds an array-index element.
func IndexElement(i int) Element { return Element{index: i} }

// Key returns the raw key and whether the element is an object key.
func (e Element) Key() (string, bool) { return e.key, e.isKey }

// Index returns the array index and whether the element is an array index.
func (e Element) Index() (int, bool) { return e.index, !e.isKey }

// String returns the canonical segment form, `{"key"}` or `[index]`.
func (e Element) String() string { return string(e.appendTo(nil)) }

func (e Element) appendTo(b []byte) []byte {
	if e.isKey {
		b = append(b, '{', '"')
		b = append(b, e.key...)
		return append(b, '"', '}')
	}
	b = append(b, '[')
	b = strconv.AppendInt(b, int64(e.index), 10)
	return append(b, ']')
}

// Path is the ordered sequence of elements from the document root to the
// current position. The emitter owns one mutable Path and snapshots it for
// handlers; a snapshot never changes. The zero value is the root path.
//
// The serialized form is maintained incrementally: pushes append to a
// running buffer and pops truncate it, so String only copies the cached
// bytes.
type Path struct {
	elems []Element
	ser   []byte
	marks []int
}

// PushKey appends an object-key element. raw keeps the original (escaped)
// bytes of the key.
func (p *Path) PushKey(raw string) {
	p.marks = append(p.marks, len(p.ser))
	p.elems = append(p.elems, KeyElement(raw))
	p.ser = p.elems[len(p.elems)-1].appendTo(p.ser)
}

// PushIndex appends an array-index element.
func (p *Path) PushIndex(i int) {
	p.marks = append(p.marks, len(p.ser))
	p.elems = append(p.elems, IndexElement(i))
	p.ser = p.elems[len(p.elems)-1].appendTo(p.ser)
}

// Pop removes the innermost element.
func (p *Path) Pop() {
	n := len(p.elems) - 1
	p.ser = p.ser[:p.marks[n]]
	p.elems = p.elems[:n]
	p.marks = p.marks[:n]
}

// Depth returns the number of elements; the root path has depth 0.
func (p *Path) Depth() int { return len(p.elems) }

// At returns the i-th element from the root.
func (p *Path) At(i int) Element { return p.elems[i] }

// String returns the canonical serialized form; the root path serializes to
// the empty string.
func (p *Path) String() string { return string(p.ser) }

// Snapshot returns an independent copy that is unaffected by further pushes
// and pops.
func (p *Path) Snapshot() *Path {
	s := &Path{
		elems: make([]Element, len(p.elems)),
		ser:   make([]byte, len(p.ser)),
		marks: make([]int, len(p.marks)),
	}
	copy(s.elems, p.elems)
	copy(s.ser, p.ser)
	copy(s.marks, p.marks)
	return s
}

// Equal reports whether two paths serialize identically.
func (p *Path) Equal(o *Path) bool {
	if p == nil || o == nil {
		return p == o
	}
	return string(p.ser) == string(o.ser)
}
