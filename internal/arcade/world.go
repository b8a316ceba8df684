package arcade

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/solarlune/resolv"
)

const defaultCellSize = 32

type Config struct {
	Width, Height float64
	Gravity       Vec
	// CellSize is the broadphase cell edge in pixels. Zero means 32.
	CellSize int
	Debug    bool
}

// CollideFunc is called after two overlapping bodies have been separated.
// a belongs to the first side of the collider and b to the second.
type CollideFunc func(a, b *Body)

// Collidable is either a single *Body or a *StaticGroup.
type Collidable interface {
	members() []*Body
	contains(b *Body) bool
}

type Collider struct {
	a, b     Collidable
	callback CollideFunc
	active   bool
}

// Destroy stops the collider from being processed on later steps.
func (c *Collider) Destroy() {
	c.active = false
}

// World integrates bodies, keeps them inside its bounds and resolves colliders.
type World struct {
	Gravity Vec
	Debug   bool

	bounds         Rect
	checkCollision Edges
	space          *resolv.Space
	bodies         []*Body
	colliders      []*Collider
	nextID         uint32
}

func NewWorld(cfg Config) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid world size %vx%v", cfg.Width, cfg.Height)
	}
	cell := cfg.CellSize
	if cell <= 0 {
		cell = defaultCellSize
	}
	return &World{
		Gravity:        cfg.Gravity,
		Debug:          cfg.Debug,
		bounds:         Rect{W: cfg.Width, H: cfg.Height},
		checkCollision: Edges{Left: true, Right: true, Up: true, Down: true},
		space:          resolv.NewSpace(roundUp(cfg.Width, cell), roundUp(cfg.Height, cell), cell, cell),
	}, nil
}

// roundUp pads a space dimension to whole cells so the world edges are covered.
func roundUp(v float64, cell int) int {
	return int(math.Ceil(v/float64(cell))) * cell
}

func (w *World) Bounds() Rect { return w.bounds }

// SetBoundsCollision chooses which world edges stop bodies that collide with world bounds.
func (w *World) SetBoundsCollision(left, right, up, down bool) {
	w.checkCollision = Edges{Left: left, Right: right, Up: up, Down: down}
}

func (w *World) BoundsCollision() Edges { return w.checkCollision }

// AddBody creates a dynamic body centred at (x, y). Gravity applies unless disabled.
func (w *World) AddBody(x, y, width, height float64) *Body {
	b := w.newBody(x, y, width, height, false)
	b.AllowGravity = true
	return b
}

func (w *World) NewStaticGroup() *StaticGroup {
	return &StaticGroup{
		world:  w,
		bodies: intmap.New[uint32, *Body](32),
	}
}

func (w *World) newBody(x, y, width, height float64, static bool) *Body {
	w.nextID++
	b := &Body{
		id:      w.nextID,
		w:       width,
		h:       height,
		static:  static,
		enabled: true,
		world:   w,
	}
	b.obj = resolv.NewObject(
		x-width/2-broadphasePad, y-height/2-broadphasePad,
		width+2*broadphasePad, height+2*broadphasePad,
	)
	b.obj.Data = b
	w.space.Add(b.obj)
	w.bodies = append(w.bodies, b)
	b.SetPosition(x, y)
	return b
}

// Destroy removes b from the world and from its group. Calling it twice is a no-op.
func (w *World) Destroy(b *Body) {
	if b == nil || !b.enabled || b.world != w {
		return
	}
	b.enabled = false
	w.space.Remove(b.obj)
	if i := slices.Index(w.bodies, b); i >= 0 {
		w.bodies = slices.Delete(w.bodies, i, i+1)
	}
	if g := b.group; g != nil {
		b.group = nil
		g.forget(b)
	}
}

// Bodies returns every live body, static ones included, in creation order.
func (w *World) Bodies() []*Body {
	return slices.Clone(w.bodies)
}

// AddCollider registers a pair that is separated and reported on every step.
func (w *World) AddCollider(a, b Collidable, cb CollideFunc) *Collider {
	c := &Collider{a: a, b: b, callback: cb, active: true}
	w.colliders = append(w.colliders, c)
	return c
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	for _, b := range w.Bodies() {
		if b.static {
			continue
		}
		b.prevX, b.prevY = b.x, b.y
		if b.AllowGravity {
			b.Velocity = b.Velocity.Add(w.Gravity.Scale(dt))
		}
		b.x += b.Velocity.X * dt
		b.y += b.Velocity.Y * dt
		if b.CollideWorldBounds {
			w.collideBounds(b)
		}
		b.sync()
	}

	for _, c := range w.colliders {
		if c.active {
			w.collide(c)
		}
	}
}

func (w *World) collideBounds(b *Body) {
	r, bb := b.Bounds(), w.bounds
	if w.checkCollision.Left && r.Left() < bb.Left() {
		b.x = bb.Left() + b.w/2
		if b.Velocity.X < 0 {
			b.Velocity.X = -b.Velocity.X * b.Bounce.X
		}
	} else if w.checkCollision.Right && r.Right() > bb.Right() {
		b.x = bb.Right() - b.w/2
		if b.Velocity.X > 0 {
			b.Velocity.X = -b.Velocity.X * b.Bounce.X
		}
	}
	if w.checkCollision.Up && r.Top() < bb.Top() {
		b.y = bb.Top() + b.h/2
		if b.Velocity.Y < 0 {
			b.Velocity.Y = -b.Velocity.Y * b.Bounce.Y
		}
	} else if w.checkCollision.Down && r.Bottom() > bb.Bottom() {
		b.y = bb.Bottom() - b.h/2
		if b.Velocity.Y > 0 {
			b.Velocity.Y = -b.Velocity.Y * b.Bounce.Y
		}
	}
}

func (w *World) collide(c *Collider) {
	for _, a := range c.a.members() {
		for _, o := range w.candidates(a, c.b) {
			// the callback may have destroyed either side
			if !a.enabled {
				break
			}
			if !o.enabled || !a.Bounds().Overlaps(o.Bounds()) {
				continue
			}
			separate(a, o)
			if c.callback != nil {
				c.callback(a, o)
			}
		}
	}
}

// candidates asks the broadphase for bodies of set that share a cell with a. The exact
// overlap test is left to the caller.
func (w *World) candidates(a *Body, set Collidable) []*Body {
	if !a.enabled {
		return nil
	}
	coll := a.obj.Check(0, 0)
	if coll == nil {
		return nil
	}
	var out []*Body
	for _, obj := range coll.Objects {
		if o, ok := obj.Data.(*Body); ok && o != a && set.contains(o) {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(x, y *Body) int { return cmp.Compare(x.id, y.id) })
	return out
}
