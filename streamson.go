// Package streamson processes JSON byte streams incrementally. It locates
// sub-values whose path matches composable predicates and extracts, removes,
// rewrites or observes them without ever materializing the whole document.
//
// Input is fed in arbitrary-sized chunks to one of five strategies (Extract,
// Filter, Convert, Trigger, All); each strategy binds path matchers to
// handlers and assembles an output byte stream while preserving JSON
// well-formedness.
package streamson

import (
	"github.com/xenking/streamson/internal"
	"github.com/xenking/streamson/internal/lexer"
)

// Kind classifies a JSON value.
type Kind = lexer.Kind

// Different kinds of JSON value
const (
	KindUnknown = lexer.KindUnknown
	KindNull    = lexer.KindNull
	KindString  = lexer.KindString
	KindNumber  = lexer.KindNumber
	KindBoolean = lexer.KindBoolean
	KindArray   = lexer.KindArray
	KindObject  = lexer.KindObject
)

// Predefined errors. Strategy errors compare with errors.Is against these
// sentinels.
var (
	// ErrSyntax reports a byte the lexer rejected.
	ErrSyntax = internal.ErrSyntax
	// ErrTruncated reports input that ended inside an unclosed container or
	// literal.
	ErrTruncated = internal.ErrUnexpectedEOF
)

// OutputKind tags strategy output records.
type OutputKind uint8

const (
	// OutputStart opens one emitted element (Extract) or one top-level value
	// (Filter, Convert, and All in convert mode); Path is attached when the
	// strategy carries paths. Trigger and All in observer mode emit no
	// Start/End records, only one data record per input chunk.
	OutputStart OutputKind = iota
	// OutputData carries output bytes.
	OutputData
	// OutputEnd closes the element opened by the pairing OutputStart.
	OutputEnd
)

// Output is a single record produced by Process or Terminate.
type Output struct {
	Kind OutputKind
	Path *Path
	Data []byte
}

// Handler consumes the Start/Feed/End callbacks of matched elements. Each
// callback may return bytes; converter handlers' returned bytes replace the
// element's bytes in converting strategies, observer handlers' return values
// are ignored. Embed handler.Nop for default no-op callbacks.
type Handler interface {
	// Start is invoked when a matched element begins. path is nil when
	// UsePath is false or the strategy does not carry paths.
	Start(path *Path, matcherIdx int, kind Kind) ([]byte, error)
	// Feed is invoked with the element's bytes.
	Feed(data []byte, matcherIdx int) ([]byte, error)
	// End is invoked when the matched element terminates.
	End(path *Path, matcherIdx int) ([]byte, error)
	// IsConverter declares whether returned bytes replace the element.
	IsConverter() bool
	// UsePath declares whether the handler wants path snapshots.
	UsePath() bool
}

// Strategy is the common surface of the five processing drivers. A strategy
// is not safe for concurrent use; Process and Terminate calls must be
// serialized by the caller.
type Strategy interface {
	// Process consumes one input chunk and returns the output records it
	// produced. After a fatal error every further call returns that error.
	Process(chunk []byte) ([]Output, error)
	// Terminate signals end of input, flushing trailing output.
	Terminate() ([]Output, error)
}
