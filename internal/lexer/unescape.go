package lexer

import (
	"unicode/utf16"

	"github.com/xenking/streamson/internal"
	"github.com/xenking/streamson/internal/scratch"
)

// Unescape decodes JSON string escapes in raw (the bytes between the quotes
// of a string literal) into s and returns the decoded bytes, which remain
// valid until the next use of s.
func Unescape(raw []byte, s *scratch.Scratch) ([]byte, error) {
	s.Reset()
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			if c < 0x20 {
				return nil, escErr("in string literal", c)
			}
			s.Add(c)
			continue
		}

		i++
		if i >= len(raw) {
			return nil, escErr("in string escape code", c)
		}
		switch raw[i] {
		case '"', '\\', '/':
			s.Add(raw[i])
		case 'b':
			s.Add('\b')
		case 'f':
			s.Add('\f')
		case 'n':
			s.Add('\n')
		case 'r':
			s.Add('\r')
		case 't':
			s.Add('\t')
		case 'u':
			r, n := u4(raw[i+1:])
			if r < 0 {
				return nil, escErr("in unicode escape sequence", raw[i])
			}
			i += n
			// check for a following low surrogate
			if utf16.IsSurrogate(r) && i+2 < len(raw) && raw[i+1] == '\\' && raw[i+2] == 'u' {
				if r2, n2 := u4(raw[i+3:]); r2 >= 0 {
					r = utf16.DecodeRune(r, r2)
					i += n2 + 2
				}
			}
			s.AddRune(r)
		default:
			return nil, escErr("in string escape code", raw[i])
		}
	}
	return s.Bytes(), nil
}

// UnescapeString is a convenience form of Unescape for small inputs.
func UnescapeString(raw string) (string, error) {
	b, err := Unescape([]byte(raw), scratch.New(len(raw)))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// u4 reads four hex digits following a \u escape
func u4(b []byte) (rune, int) {
	if len(b) < 4 {
		return -1, 0
	}
	var r rune
	for i := 0; i < 4; i++ {
		h := hexDigit(b[i])
		if h < 0 {
			return -1, 0
		}
		r = r<<4 | rune(h)
	}
	return r, 4
}

func escErr(context string, c byte) error {
	e := internal.ErrSyntax
	e.Context = context
	e.AtChar = c
	return e
}
