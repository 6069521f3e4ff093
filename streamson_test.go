package streamson_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xenking/streamson"
)

// chunkSizes exercises buffer boundary crossing; strategy output must be
// identical for every chunking of the same input.
var chunkSizes = []int{1, 5, 17, 1024}

// feed drives a strategy over input in fixed-size chunks and terminates it.
func feed(t *testing.T, st streamson.Strategy, input string, chunk int) []streamson.Output {
	t.Helper()
	if chunk <= 0 {
		chunk = len(input)
	}
	data := []byte(input)
	var outs []streamson.Output
	for i := 0; i < len(data); i += chunk {
		end := i + chunk
		if end > len(data) {
			end = len(data)
		}
		o, err := st.Process(data[i:end])
		require.NoError(t, err)
		outs = append(outs, o...)
	}
	o, err := st.Terminate()
	require.NoError(t, err)
	return append(outs, o...)
}

// concatData joins the bytes of every data record.
func concatData(outs []streamson.Output) string {
	var b []byte
	for _, o := range outs {
		if o.Kind == streamson.OutputData {
			b = append(b, o.Data...)
		}
	}
	return string(b)
}

// elem is one Start..End framed element of a strategy's output.
type elem struct {
	path    string
	hasPath bool
	data    string
}

// frames folds the output records into framed elements. Data outside any
// frame is ignored.
func frames(t *testing.T, outs []streamson.Output) []elem {
	t.Helper()
	var res []elem
	var cur *elem
	for _, o := range outs {
		switch o.Kind {
		case streamson.OutputStart:
			require.Nil(t, cur, "nested Start in strategy output")
			cur = &elem{}
			if o.Path != nil {
				cur.path = o.Path.String()
				cur.hasPath = true
			}
		case streamson.OutputData:
			if cur != nil {
				cur.data += string(o.Data)
			}
		case streamson.OutputEnd:
			require.NotNil(t, cur, "End without Start in strategy output")
			res = append(res, *cur)
			cur = nil
		}
	}
	require.Nil(t, cur, "unbalanced Start in strategy output")
	return res
}

func simple(t *testing.T, def string) streamson.Matcher {
	t.Helper()
	m, err := streamson.NewSimpleMatcher(def)
	require.NoError(t, err)
	return m
}
