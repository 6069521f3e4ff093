package streamson_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/streamson"
	"github.com/xenking/streamson/handler"
)

const usersDoc = `{"users": ["john","carl","bob"]}`

func TestExtractSimple(t *testing.T) {
	st := streamson.NewExtract()
	st.AddMatcher(simple(t, `{"users"}[]`), nil)

	got := frames(t, feed(t, st, usersDoc, 0))
	want := []elem{
		{path: `{"users"}[0]`, hasPath: true, data: `"john"`},
		{path: `{"users"}[1]`, hasPath: true, data: `"carl"`},
		{path: `{"users"}[2]`, hasPath: true, data: `"bob"`},
	}
	assert.Equal(t, want, got)
}

func TestExtractDepth(t *testing.T) {
	m, err := streamson.ParseDepthMatcher("1")
	require.NoError(t, err)
	st := streamson.NewExtract()
	st.AddMatcher(m, nil)

	got := frames(t, feed(t, st, usersDoc, 0))
	want := []elem{
		{path: `{"users"}`, hasPath: true, data: `["john","carl","bob"]`},
	}
	assert.Equal(t, want, got)
}

func TestExtractDepthRange(t *testing.T) {
	m, err := streamson.ParseDepthMatcher("0-1")
	require.NoError(t, err)
	st := streamson.NewExtract()
	st.AddMatcher(m, nil)

	got := frames(t, feed(t, st, usersDoc, 0))
	want := []elem{
		{path: `{"users"}`, hasPath: true, data: `["john","carl","bob"]`},
		{path: ``, hasPath: true, data: usersDoc},
	}
	assert.Equal(t, want, got)
}

func TestExtractInvert(t *testing.T) {
	st := streamson.NewExtract()
	st.AddMatcher(streamson.Not(streamson.NewDepthMatcher(2, -1)), nil)

	got := frames(t, feed(t, st, usersDoc, 0))
	want := []elem{
		{path: `{"users"}`, hasPath: true, data: `["john","carl","bob"]`},
		{path: ``, hasPath: true, data: usersDoc},
	}
	assert.Equal(t, want, got)
}

func TestExtractAnd(t *testing.T) {
	st := streamson.NewExtract()
	st.AddMatcher(streamson.And(simple(t, `{"users"}[]`), simple(t, `{}[1]`)), nil)

	got := frames(t, feed(t, st, usersDoc, 0))
	want := []elem{
		{path: `{"users"}[1]`, hasPath: true, data: `"carl"`},
	}
	assert.Equal(t, want, got)
}

func TestExtractComplexCombination(t *testing.T) {
	m := streamson.And(
		streamson.Or(streamson.NewDepthMatcher(2, 2), simple(t, `{"users"}`)),
		streamson.Not(simple(t, `{"users"}[0]`)),
	)
	st := streamson.NewExtract()
	st.AddMatcher(m, nil)

	got := frames(t, feed(t, st, usersDoc, 0))
	want := []elem{
		{path: `{"users"}[1]`, hasPath: true, data: `"carl"`},
		{path: `{"users"}[2]`, hasPath: true, data: `"bob"`},
		{path: `{"users"}`, hasPath: true, data: `["john","carl","bob"]`},
	}
	assert.Equal(t, want, got)
}

func TestExtractWithoutPath(t *testing.T) {
	st := streamson.NewExtract().WithoutPath()
	st.AddMatcher(simple(t, `{"users"}[]`), nil)

	got := frames(t, feed(t, st, usersDoc, 0))
	want := []elem{
		{data: `"john"`},
		{data: `"carl"`},
		{data: `"bob"`},
	}
	assert.Equal(t, want, got)
}

func TestExtractConverterHandler(t *testing.T) {
	st := streamson.NewExtract()
	st.AddMatcher(simple(t, `{"users"}[]`), handler.NewReplace([]byte(`"x"`)))

	got := frames(t, feed(t, st, usersDoc, 0))
	want := []elem{
		{path: `{"users"}[0]`, hasPath: true, data: `"x"`},
		{path: `{"users"}[1]`, hasPath: true, data: `"x"`},
		{path: `{"users"}[2]`, hasPath: true, data: `"x"`},
	}
	assert.Equal(t, want, got)
}

func TestExtractBoundaryIndependence(t *testing.T) {
	doc := `{"a": {"b": [1, 2.5, -3e2, true, false, null, "s\"té"]}, "c": [[], {}]}`
	ref := frames(t, feed(t, mustExtract(t), doc, 0))
	require.NotEmpty(t, ref)
	for _, size := range chunkSizes {
		t.Run(fmt.Sprintf("chunk-%d", size), func(t *testing.T) {
			got := frames(t, feed(t, mustExtract(t), doc, size))
			assert.Equal(t, ref, got)
		})
	}
}

func mustExtract(t *testing.T) *streamson.Extract {
	t.Helper()
	st := streamson.NewExtract()
	st.AddMatcher(streamson.NewDepthMatcher(0, -1), nil)
	return st
}

// Every Start carries the same path as its pairing End, and extraction with
// a depth-0 matcher reproduces each top-level value verbatim.
func TestExtractTopLevelConcatenation(t *testing.T) {
	doc := `{"a":1} [2,3] "four" true 5`
	st := streamson.NewExtract()
	st.AddMatcher(streamson.NewDepthMatcher(0, 0), nil)

	got := frames(t, feed(t, st, doc, 3))
	var joined []string
	for _, e := range got {
		assert.True(t, e.hasPath)
		assert.Equal(t, "", e.path)
		joined = append(joined, e.data)
	}
	assert.Equal(t, strings.Join(strings.Fields(doc), " "), strings.Join(joined, " "))
}

func TestExtractSyntaxError(t *testing.T) {
	st := streamson.NewExtract()
	st.AddMatcher(streamson.NewAllMatcher(), nil)

	_, err := st.Process([]byte(`{"a": nope}`))
	require.Error(t, err)
	require.ErrorIs(t, err, streamson.ErrSyntax)

	// the error is sticky
	_, err = st.Process([]byte(`{}`))
	require.ErrorIs(t, err, streamson.ErrSyntax)
}

func TestExtractTruncated(t *testing.T) {
	st := streamson.NewExtract()
	st.AddMatcher(streamson.NewAllMatcher(), nil)

	_, err := st.Process([]byte(`{"a": [1, 2`))
	require.NoError(t, err)
	_, err = st.Terminate()
	require.ErrorIs(t, err, streamson.ErrTruncated)
}

func TestExtractTrailingNumber(t *testing.T) {
	st := streamson.NewExtract()
	st.AddMatcher(streamson.NewDepthMatcher(0, 0), nil)

	outs, err := st.Process([]byte(`42`))
	require.NoError(t, err)
	term, err := st.Terminate()
	require.NoError(t, err)

	got := frames(t, append(outs, term...))
	require.Len(t, got, 1)
	assert.Equal(t, "42", got[0].data)
}

func TestProcessReader(t *testing.T) {
	st := streamson.NewExtract()
	st.AddMatcher(simple(t, `{"users"}[]`), nil)

	var data bytes.Buffer
	err := streamson.ProcessReader(st, strings.NewReader(usersDoc), 7, func(o streamson.Output) error {
		if o.Kind == streamson.OutputData {
			data.Write(o.Data)
			data.WriteByte('\n')
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "\"john\"\n\"carl\"\n\"bob\"\n", data.String())
}
