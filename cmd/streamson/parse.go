package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xenking/streamson"
	"github.com/xenking/streamson/handler"
)

type strategyKind int

const (
	strategyExtract strategyKind = iota
	strategyFilter
	strategyConvert
	strategyTrigger
	strategyAll
)

func (s strategyKind) String() string {
	return [...]string{"extract", "filter", "convert", "trigger", "all"}[s]
}

// availableHandlers mirrors the original tool's per-strategy handler table.
var availableHandlers = map[strategyKind][]string{
	strategyExtract: {"file", "regex", "shorten", "unstringify"},
	strategyFilter:  {"file", "regex", "shorten", "unstringify"},
	strategyConvert: {"file", "regex", "replace", "shorten", "unstringify"},
	strategyTrigger: {"file", "regex", "shorten", "unstringify"},
	strategyAll:     {"analyser", "indenter"},
}

// flagSpec is one parsed -m or -h value: NAME[.GROUP][,OPTION...][:DEFINITION].
type flagSpec struct {
	name       string
	group      string
	options    []string
	definition string
}

func parseFlagSpec(v string) flagSpec {
	var s flagSpec
	head, def, hasDef := strings.Cut(v, ":")
	if hasDef {
		s.definition = def
	}
	parts := strings.Split(head, ",")
	if len(parts) > 1 {
		s.options = parts[1:]
	}
	name, group, _ := strings.Cut(parts[0], ".")
	s.name = name
	s.group = group
	return s
}

// group pairs the OR-combined matcher and the chained handlers sharing one
// GROUP name; ungrouped flags share the anonymous group.
type group struct {
	key      string
	matcher  streamson.Matcher
	handlers []streamson.Handler
}

// buildState carries everything assembled from the command line flags.
type buildState struct {
	groups    []*group
	analysers []*handler.Analyser
	closers   []io.Closer
}

func (b *buildState) group(key string) *group {
	for _, g := range b.groups {
		if g.key == key {
			return g
		}
	}
	g := &group{key: key}
	b.groups = append(b.groups, g)
	return g
}

// close releases file-backed handlers.
func (b *buildState) close() {
	for _, c := range b.closers {
		c.Close() //nolint:errcheck
	}
}

// bindingHandler returns the group's handler chain as a single handler.
func (g *group) bindingHandler() streamson.Handler {
	switch len(g.handlers) {
	case 0:
		return nil
	case 1:
		return g.handlers[0]
	default:
		return handler.NewChain(g.handlers...)
	}
}

func buildFlags(matcherSpecs, handlerSpecs []string, st strategyKind) (*buildState, error) {
	b := &buildState{}

	for _, v := range matcherSpecs {
		s := parseFlagSpec(v)
		m, err := buildMatcher(s)
		if err != nil {
			b.close()
			return nil, err
		}
		g := b.group(s.group)
		if g.matcher != nil {
			g.matcher = streamson.Or(g.matcher, m)
		} else {
			g.matcher = m
		}
	}

	for _, v := range handlerSpecs {
		s := parseFlagSpec(v)
		h, err := b.buildHandler(s, st)
		if err != nil {
			b.close()
			return nil, err
		}
		g := b.group(s.group)
		g.handlers = append(g.handlers, h)
	}

	if st != strategyAll {
		for _, g := range b.groups {
			if g.matcher == nil {
				b.close()
				return nil, fmt.Errorf("handler group %q has no matcher", g.key)
			}
		}
	}
	return b, nil
}

func buildMatcher(s flagSpec) (streamson.Matcher, error) {
	if len(s.options) > 0 {
		return nil, fmt.Errorf("matcher %q takes no options", s.name)
	}
	switch s.name {
	case "s", "simple":
		return streamson.NewSimpleMatcher(s.definition)
	case "d", "depth":
		return streamson.ParseDepthMatcher(s.definition)
	case "x", "regex":
		return streamson.NewRegexMatcher(s.definition)
	}
	return nil, fmt.Errorf("unknown matcher name %q", s.name)
}

func (b *buildState) buildHandler(s flagSpec, st strategyKind) (streamson.Handler, error) {
	name, err := canonicalHandler(s.name)
	if err != nil {
		return nil, err
	}
	if !contains(availableHandlers[st], name) {
		return nil, fmt.Errorf("handler %q can not be used in %q strategy", name, st)
	}

	switch name {
	case "analyser":
		if s.definition != "" || len(s.options) > 0 {
			return nil, fmt.Errorf("analyser handler has no definition nor options")
		}
		a := handler.NewAnalyser()
		b.analysers = append(b.analysers, a)
		return a, nil

	case "file":
		if s.definition == "" {
			return nil, fmt.Errorf("file handler requires a path definition")
		}
		writePath := len(s.options) == 1 && strings.EqualFold(s.options[0], "true")
		f, err := handler.NewFile(s.definition, writePath)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, f)
		return f, nil

	case "indenter":
		if len(s.options) > 0 {
			return nil, fmt.Errorf("indenter handler has no options")
		}
		if s.definition == "" {
			return handler.NewCompactor(), nil
		}
		spaces, err := strconv.Atoi(s.definition)
		if err != nil || spaces < 0 {
			return nil, fmt.Errorf("indenter can't parse number of spaces")
		}
		return handler.NewIndenter(spaces), nil

	case "regex":
		if len(s.options) > 0 {
			return nil, fmt.Errorf("regex handler has no options")
		}
		rule, err := handler.ParseRule(s.definition)
		if err != nil {
			return nil, err
		}
		return handler.NewRegex(rule), nil

	case "replace":
		if len(s.options) > 0 {
			return nil, fmt.Errorf("replace handler has no options")
		}
		return handler.NewReplace([]byte(s.definition)), nil

	case "shorten":
		if len(s.options) > 0 {
			return nil, fmt.Errorf("shorten handler has no options")
		}
		sizeStr, terminator, ok := strings.Cut(s.definition, ",")
		if !ok {
			return nil, fmt.Errorf("shorten handler has wrong definition (size,terminator)")
		}
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return nil, fmt.Errorf("shorten handler has wrong definition (size,terminator)")
		}
		return handler.NewShorten(size, terminator)

	case "unstringify":
		if s.definition != "" || len(s.options) > 0 {
			return nil, fmt.Errorf("unstringify handler has no definition nor options")
		}
		return handler.NewUnstringify(), nil
	}
	return nil, fmt.Errorf("unknown handler name %q", name)
}

func canonicalHandler(name string) (string, error) {
	switch name {
	case "a", "analyser":
		return "analyser", nil
	case "f", "file":
		return "file", nil
	case "d", "indenter":
		return "indenter", nil
	case "x", "regex":
		return "regex", nil
	case "r", "replace":
		return "replace", nil
	case "s", "shorten":
		return "shorten", nil
	case "u", "unstringify":
		return "unstringify", nil
	}
	return "", fmt.Errorf("unknown handler name %q", name)
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
