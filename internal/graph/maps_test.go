package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstMaps(t *testing.T) {
	cm := ConstArcMap(7)
	assert.Equal(t, int64(7), cm.Get(0))
	assert.Equal(t, int64(7), cm.Get(10000))

	nm := ConstNodeMap(-3)
	assert.Equal(t, int64(-3), nm.Get(42))
}

func TestArcSliceMap(t *testing.T) {
	g := NewListDigraph()
	g.AddNodes(2)
	a := g.AddArc(0, 1)
	b := g.AddArc(1, 0)

	m := NewArcSliceMap(g)
	assert.Equal(t, int64(0), m.Get(a))

	m.Set(a, 11)
	m.Set(b, -4)
	assert.Equal(t, int64(11), m.Get(a))
	assert.Equal(t, int64(-4), m.Get(b))

	// Ids past the current length read as zero and grow on write.
	assert.Equal(t, int64(0), m.Get(99))
	m.Set(99, 5)
	assert.Equal(t, int64(5), m.Get(99))
	assert.Equal(t, int64(11), m.Get(a))
}

func TestNodeSliceMap(t *testing.T) {
	g := NewFullDigraph(3)
	m := NewNodeSliceMap(g)

	m.Set(2, 20)
	assert.Equal(t, int64(20), m.Get(2))
	assert.Equal(t, int64(0), m.Get(0))
	assert.Equal(t, int64(0), m.Get(50))
}

func TestUncapacitatedSentinel(t *testing.T) {
	// The sentinel must survive the int64 round trip used by the maps.
	m := ConstArcMap(Uncapacitated)
	assert.Equal(t, Uncapacitated, m.Get(3))
}
