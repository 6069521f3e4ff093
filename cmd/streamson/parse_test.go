package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagSpec(t *testing.T) {
	tests := []struct {
		in   string
		want flagSpec
	}{
		{`s:{"users"}[]`, flagSpec{name: "s", definition: `{"users"}[]`}},
		{`simple.grp:{"a"}`, flagSpec{name: "simple", group: "grp", definition: `{"a"}`}},
		{`d:0-1`, flagSpec{name: "d", definition: "0-1"}},
		{`f,true:/tmp/out.txt`, flagSpec{name: "f", options: []string{"true"}, definition: "/tmp/out.txt"}},
		{`a`, flagSpec{name: "a"}},
		{`s.g,o1,o2:size,term`, flagSpec{name: "s", group: "g", options: []string{"o1", "o2"}, definition: "size,term"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFlagSpec(tt.in))
		})
	}
}

func TestBuildFlagsGroups(t *testing.T) {
	b, err := buildFlags(
		[]string{`s.g1:{"users"}[]`, `d.g1:2`, `s.g2:{"groups"}`},
		[]string{`r.g1:"x"`, `u.g2`},
		strategyConvert,
	)
	require.NoError(t, err)
	defer b.close()

	require.Len(t, b.groups, 2)
	assert.Equal(t, "g1", b.groups[0].key)
	assert.NotNil(t, b.groups[0].matcher)
	assert.Len(t, b.groups[0].handlers, 1)
	assert.Equal(t, "g2", b.groups[1].key)
	assert.Len(t, b.groups[1].handlers, 1)
}

func TestBuildFlagsUngroupedShareOneBinding(t *testing.T) {
	b, err := buildFlags(
		[]string{`s:{"a"}`, `s:{"b"}`},
		nil,
		strategyFilter,
	)
	require.NoError(t, err)
	defer b.close()
	require.Len(t, b.groups, 1)
}

func TestBuildFlagsErrors(t *testing.T) {
	tests := []struct {
		name     string
		matchers []string
		handlers []string
		strategy strategyKind
	}{
		{"unknown matcher", []string{`q:{"a"}`}, nil, strategyFilter},
		{"bad simple", []string{`s:nope`}, nil, strategyFilter},
		{"bad depth", []string{`d:x`}, nil, strategyFilter},
		{"unknown handler", nil, []string{`q`}, strategyFilter},
		{"handler not available", nil, []string{`d:2`}, strategyFilter},
		{"replace outside convert", []string{`s:{"a"}`}, []string{`r:"x"`}, strategyFilter},
		{"handler without matcher", nil, []string{`u`}, strategyConvert},
		{"shorten bad definition", []string{`s:{"a"}`}, []string{`s:nope`}, strategyConvert},
		{"file without path", []string{`s:{"a"}`}, []string{`f`}, strategyConvert},
		{"analyser with definition", nil, []string{`a:x`}, strategyAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildFlags(tt.matchers, tt.handlers, tt.strategy)
			require.Error(t, err)
		})
	}
}

func TestDefaultBufferSize(t *testing.T) {
	t.Setenv("STREAMSON_BUFFER_SIZE", "")
	assert.Equal(t, 1<<20, defaultBufferSize())
	t.Setenv("STREAMSON_BUFFER_SIZE", "4096")
	assert.Equal(t, 4096, defaultBufferSize())
	t.Setenv("STREAMSON_BUFFER_SIZE", "bogus")
	assert.Equal(t, 1<<20, defaultBufferSize())
}
