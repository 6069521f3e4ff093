package handler

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/xenking/streamson"
	"github.com/xenking/streamson/internal"
)

// Rule is one regex replacement applied by the Regex handler.
type Rule struct {
	Pattern     *regexp2.Regexp
	Replacement string
}

// ParseRule parses a sed-style substitution, `s/pattern/replacement/`, with
// any single-byte delimiter after the leading 's'.
func ParseRule(def string) (Rule, error) {
	configErr := func(reason string) error {
		return &internal.HandlerConfigError{Handler: "regex", Reason: reason}
	}
	if len(def) < 4 || def[0] != 's' {
		return Rule{}, configErr("definition must look like s/pattern/replacement/")
	}
	sep := string(def[1])
	parts := strings.Split(def[2:], sep)
	if len(parts) != 3 || parts[2] != "" {
		return Rule{}, configErr("definition must look like s/pattern/replacement/")
	}
	re, err := regexp2.Compile(parts[0], regexp2.None)
	if err != nil {
		return Rule{}, configErr(err.Error())
	}
	return Rule{Pattern: re, Replacement: parts[1]}, nil
}

// Regex is a converter applying ordered regex replacements to each element's
// bytes.
type Regex struct {
	Nop
	rules []Rule
	buf   []byte
}

func NewRegex(rules ...Rule) *Regex {
	return &Regex{rules: rules}
}

func (h *Regex) Start(*streamson.Path, int, streamson.Kind) ([]byte, error) {
	h.buf = h.buf[:0]
	return nil, nil
}

func (h *Regex) Feed(data []byte, _ int) ([]byte, error) {
	h.buf = append(h.buf, data...)
	return nil, nil
}

func (h *Regex) End(*streamson.Path, int) ([]byte, error) {
	s := string(h.buf)
	for _, r := range h.rules {
		out, err := r.Pattern.Replace(s, r.Replacement, -1, -1)
		if err != nil {
			return nil, err
		}
		s = out
	}
	return []byte(s), nil
}

func (h *Regex) IsConverter() bool { return true }

func (h *Regex) UsePath() bool { return false }
