package arcade

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// StaticGroup owns a set of static bodies, e.g. a wall of bricks.
type StaticGroup struct {
	world  *World
	bodies *intmap.Map[uint32, *Body]
	order  []uint32
}

// Create adds a static body centred at (x, y) to the group.
func (g *StaticGroup) Create(x, y, w, h float64) *Body {
	b := g.world.newBody(x, y, w, h, true)
	b.group = g
	g.bodies.Put(b.id, b)
	g.order = append(g.order, b.id)
	return b
}

// Remove detaches b from the group and destroys it. It returns false if b was not a member.
func (g *StaticGroup) Remove(b *Body) bool {
	if !g.contains(b) {
		return false
	}
	g.world.Destroy(b)
	return true
}

func (g *StaticGroup) forget(b *Body) {
	if !g.bodies.Del(b.id) {
		return
	}
	if i := slices.Index(g.order, b.id); i >= 0 {
		g.order = slices.Delete(g.order, i, i+1)
	}
}

func (g *StaticGroup) Len() int {
	return g.bodies.Len()
}

// Bodies returns the live members in creation order.
func (g *StaticGroup) Bodies() []*Body {
	out := make([]*Body, 0, len(g.order))
	for _, id := range g.order {
		if b, ok := g.bodies.Get(id); ok {
			out = append(out, b)
		}
	}
	return out
}

func (g *StaticGroup) members() []*Body { return g.Bodies() }

func (g *StaticGroup) contains(b *Body) bool {
	if b == nil || b.group != g {
		return false
	}
	_, ok := g.bodies.Get(b.id)
	return ok
}
