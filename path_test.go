package streamson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xenking/streamson"
)

func TestPathSerialization(t *testing.T) {
	var p streamson.Path
	assert.Equal(t, "", p.String())
	assert.Equal(t, 0, p.Depth())

	p.PushKey("users")
	assert.Equal(t, `{"users"}`, p.String())

	p.PushIndex(2)
	assert.Equal(t, `{"users"}[2]`, p.String())
	assert.Equal(t, 2, p.Depth())

	p.Pop()
	assert.Equal(t, `{"users"}`, p.String())

	p.PushIndex(10)
	assert.Equal(t, `{"users"}[10]`, p.String())

	p.Pop()
	p.Pop()
	assert.Equal(t, "", p.String())
	assert.Equal(t, 0, p.Depth())
}

func TestPathRawKeyKeepsEscapes(t *testing.T) {
	var p streamson.Path
	p.PushKey(`a\nb`)
	assert.Equal(t, `{"a\nb"}`, p.String())

	key, ok := p.At(0).Key()
	assert.True(t, ok)
	assert.Equal(t, `a\nb`, key)
}

func TestPathSnapshotIndependence(t *testing.T) {
	var p streamson.Path
	p.PushKey("a")
	p.PushIndex(0)

	snap := p.Snapshot()
	p.Pop()
	p.PushIndex(1)
	p.PushKey("deep")

	assert.Equal(t, `{"a"}[0]`, snap.String())
	assert.Equal(t, `{"a"}[1]{"deep"}`, p.String())
	assert.Equal(t, 2, snap.Depth())
}

func TestPathElements(t *testing.T) {
	var p streamson.Path
	p.PushKey("k")
	p.PushIndex(3)

	_, isKey := p.At(0).Key()
	assert.True(t, isKey)
	idx, isIndex := p.At(1).Index()
	assert.True(t, isIndex)
	assert.Equal(t, 3, idx)

	assert.Equal(t, `{"k"}`, p.At(0).String())
	assert.Equal(t, `[3]`, p.At(1).String())
}

func TestPathEqual(t *testing.T) {
	var a, b streamson.Path
	a.PushKey("x")
	b.PushKey("x")
	assert.True(t, a.Equal(&b))
	b.PushIndex(0)
	assert.False(t, a.Equal(&b))
}
