package streamson

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/xenking/streamson/internal"
	"github.com/xenking/streamson/internal/lexer"
)

// Matcher is a pure predicate over a Path. A matcher is evaluated on the
// path captured at an element's Start; if it matches there the element stays
// live until its paired End. Matchers are immutable once constructed and the
// algebra is closed under Not, And and Or.
type Matcher interface {
	Match(p *Path) bool
}

type segmentKind uint8

const (
	segKey segmentKind = iota
	segIndex
	segAnyKey
	segAnyIndex
)

type segment struct {
	kind  segmentKind
	key   string // unescaped
	index int
}

// SimpleMatcher matches a path-shaped pattern where each segment is either a
// literal `{"name"}` or `[index]`, or a wildcard `{}` (any key) or `[]` (any
// index). A pattern matches iff segment counts equal and each segment
// matches positionally; there is no deep wildcard.
//
// For example `{"users"}[]` matches `{"users"}[0]`, `{"users"}[1]`, … and
// `{}[0]` matches `{"users"}[0]`, `{"groups"}[0]`, …
type SimpleMatcher struct {
	segments []segment
	def      string
}

// NewSimpleMatcher parses def into a SimpleMatcher.
func NewSimpleMatcher(def string) (*SimpleMatcher, error) {
	m := &SimpleMatcher{def: def}
	i := 0
	for i < len(def) {
		switch def[i] {
		case '{':
			seg, n, err := parseKeySegment(def[i:])
			if err != nil {
				return nil, &internal.MatcherParseError{Definition: def, Reason: err.Error()}
			}
			m.segments = append(m.segments, seg)
			i += n
		case '[':
			seg, n, err := parseIndexSegment(def[i:])
			if err != nil {
				return nil, &internal.MatcherParseError{Definition: def, Reason: err.Error()}
			}
			m.segments = append(m.segments, seg)
			i += n
		default:
			return nil, &internal.MatcherParseError{Definition: def, Reason: "segment must start with '{' or '['"}
		}
	}
	return m, nil
}

func parseKeySegment(s string) (segment, int, error) {
	if len(s) >= 2 && s[1] == '}' {
		return segment{kind: segAnyKey}, 2, nil
	}
	if len(s) < 2 || s[1] != '"' {
		return segment{}, 0, errSegment(`expected '{"' or '{}'`)
	}
	// scan the quoted key, honoring escapes
	i := 2
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case '"':
			key, err := lexer.UnescapeString(s[2:i])
			if err != nil {
				return segment{}, 0, err
			}
			if i+1 >= len(s) || s[i+1] != '}' {
				return segment{}, 0, errSegment(`unterminated key segment`)
			}
			return segment{kind: segKey, key: key}, i + 2, nil
		}
		i++
	}
	return segment{}, 0, errSegment(`unterminated key string`)
}

func parseIndexSegment(s string) (segment, int, error) {
	if len(s) >= 2 && s[1] == ']' {
		return segment{kind: segAnyIndex}, 2, nil
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return segment{}, 0, errSegment(`unterminated index segment`)
	}
	idx, err := strconv.Atoi(s[1:end])
	if err != nil || idx < 0 {
		return segment{}, 0, errSegment(`index must be a non-negative integer`)
	}
	return segment{kind: segIndex, index: idx}, end + 1, nil
}

type segmentError string

func errSegment(s string) error      { return segmentError(s) }
func (e segmentError) Error() string { return string(e) }

func (m *SimpleMatcher) Match(p *Path) bool {
	if p.Depth() != len(m.segments) {
		return false
	}
	for i, seg := range m.segments {
		e := p.At(i)
		switch seg.kind {
		case segAnyKey:
			if _, ok := e.Key(); !ok {
				return false
			}
		case segAnyIndex:
			if _, ok := e.Index(); !ok {
				return false
			}
		case segKey:
			raw, ok := e.Key()
			if !ok {
				return false
			}
			if !strings.ContainsRune(raw, '\\') {
				if raw != seg.key {
					return false
				}
				continue
			}
			key, err := lexer.UnescapeString(raw)
			if err != nil || key != seg.key {
				return false
			}
		case segIndex:
			idx, ok := e.Index()
			if !ok || idx != seg.index {
				return false
			}
		}
	}
	return true
}

// DepthMatcher matches every path whose depth lies within [min, max]; a
// negative max means unbounded.
type DepthMatcher struct {
	min, max int
}

func NewDepthMatcher(min, max int) *DepthMatcher { return &DepthMatcher{min: min, max: max} }

// ParseDepthMatcher parses the textual forms "N" (min=max=N) and "N-M"
// (M omitted after the dash means unbounded).
func ParseDepthMatcher(def string) (*DepthMatcher, error) {
	parseErr := func(reason string) error {
		return &internal.MatcherParseError{Definition: def, Reason: reason}
	}
	lo, hi, ok := strings.Cut(def, "-")
	min, err := strconv.Atoi(lo)
	if err != nil || min < 0 {
		return nil, parseErr("minimal depth must be a non-negative integer")
	}
	if !ok {
		return NewDepthMatcher(min, min), nil
	}
	if hi == "" {
		return NewDepthMatcher(min, -1), nil
	}
	max, err := strconv.Atoi(hi)
	if err != nil || max < min {
		return nil, parseErr("maximal depth must be an integer >= minimal depth")
	}
	return NewDepthMatcher(min, max), nil
}

func (m *DepthMatcher) Match(p *Path) bool {
	d := p.Depth()
	return d >= m.min && (m.max < 0 || d <= m.max)
}

// RegexMatcher matches when its regex matches the serialized path string.
type RegexMatcher struct {
	re *regexp2.Regexp
}

func NewRegexMatcher(pattern string) (*RegexMatcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, &internal.MatcherParseError{Definition: pattern, Reason: err.Error()}
	}
	return &RegexMatcher{re: re}, nil
}

func (m *RegexMatcher) Match(p *Path) bool {
	ok, err := m.re.MatchString(p.String())
	return err == nil && ok
}

// AllMatcher matches every path.
type AllMatcher struct{}

func NewAllMatcher() *AllMatcher { return &AllMatcher{} }

func (*AllMatcher) Match(*Path) bool { return true }

// NotMatcher inverts a matcher.
type NotMatcher struct {
	m Matcher
}

func Not(m Matcher) *NotMatcher { return &NotMatcher{m: m} }

func (n *NotMatcher) Match(p *Path) bool { return !n.m.Match(p) }

// AndMatcher matches when both operands match. Evaluation preserves the
// user-written order and short-circuits; matchers are pure, so this is
// unobservable.
type AndMatcher struct {
	a, b Matcher
}

func And(a, b Matcher) *AndMatcher { return &AndMatcher{a: a, b: b} }

func (m *AndMatcher) Match(p *Path) bool { return m.a.Match(p) && m.b.Match(p) }

// OrMatcher matches when either operand matches.
type OrMatcher struct {
	a, b Matcher
}

func Or(a, b Matcher) *OrMatcher { return &OrMatcher{a: a, b: b} }

func (m *OrMatcher) Match(p *Path) bool { return m.a.Match(p) || m.b.Match(p) }
