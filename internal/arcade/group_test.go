package arcade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticGroupKeepsCreationOrder(t *testing.T) {
	w := newTestWorld(t, Vec{})
	g := w.NewStaticGroup()
	a := g.Create(10, 10, 8, 8)
	b := g.Create(30, 10, 8, 8)
	c := g.Create(50, 10, 8, 8)

	assert.True(t, a.Static())
	assert.Equal(t, 3, g.Len())

	assert.True(t, g.Remove(b))
	assert.Equal(t, []*Body{a, c}, g.Bodies())
	assert.Equal(t, []*Body{a, c}, w.Bodies())
}

func TestStaticGroupRejectsForeignBodies(t *testing.T) {
	w := newTestWorld(t, Vec{})
	g := w.NewStaticGroup()
	other := w.NewStaticGroup()
	mine := g.Create(10, 10, 8, 8)
	theirs := other.Create(30, 10, 8, 8)
	loose := w.AddBody(50, 50, 8, 8)

	assert.False(t, g.Remove(theirs))
	assert.False(t, g.Remove(loose))
	assert.False(t, g.Remove(nil))
	assert.True(t, theirs.Enabled())
	assert.True(t, g.contains(mine))
}

func TestStaticBodiesDoNotMove(t *testing.T) {
	w := newTestWorld(t, Vec{Y: 300})
	g := w.NewStaticGroup()
	b := g.Create(100, 100, 8, 8)
	b.SetVelocity(50, 50)

	w.Step(1)

	assert.Equal(t, 100.0, b.X())
	assert.Equal(t, 100.0, b.Y())
}

func TestRectOverlapIgnoresTouchingEdges(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, r.Overlaps(Rect{X: 9, Y: 9, W: 10, H: 10}))
	assert.False(t, r.Overlaps(Rect{X: 10, Y: 0, W: 10, H: 10}))
	assert.False(t, r.Overlaps(Rect{X: 0, Y: -10, W: 10, H: 10}))
}
