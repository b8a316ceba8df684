package arcade

import "github.com/solarlune/resolv"

// Body is an axis-aligned physics body. Positions are centre based, like a sprite with a
// 0.5 origin; Bounds converts to the top-left rectangle used for collision.
type Body struct {
	id   uint32
	x, y float64
	w, h float64

	// prevX/prevY hold the centre before the current step's integration.
	prevX, prevY float64

	Velocity Vec
	Bounce   Vec

	// Immovable bodies are never pushed during separation.
	Immovable          bool
	AllowGravity       bool
	CollideWorldBounds bool

	// Data is free for the owner of the body.
	Data any

	static  bool
	enabled bool
	world   *World
	group   *StaticGroup
	obj     *resolv.Object
}

func (b *Body) ID() uint32 { return b.id }

func (b *Body) X() float64 { return b.x }

func (b *Body) Y() float64 { return b.y }

func (b *Body) Static() bool { return b.static }

// Enabled is false once the body has been destroyed.
func (b *Body) Enabled() bool { return b.enabled }

func (b *Body) Bounds() Rect {
	return Rect{X: b.x - b.w/2, Y: b.y - b.h/2, W: b.w, H: b.h}
}

func (b *Body) prevBounds() Rect {
	return Rect{X: b.prevX - b.w/2, Y: b.prevY - b.h/2, W: b.w, H: b.h}
}

// SetPosition moves the body without affecting its velocity. The previous position is
// reset too, so a teleport is never treated as movement through other bodies.
func (b *Body) SetPosition(x, y float64) *Body {
	b.x, b.y = x, y
	b.prevX, b.prevY = x, y
	b.sync()
	return b
}

// SetX moves the body horizontally, keeping the previous position for collision sweeps.
func (b *Body) SetX(x float64) *Body {
	b.x = x
	b.sync()
	return b
}

func (b *Body) SetVelocity(x, y float64) *Body {
	b.Velocity = Vec{x, y}
	return b
}

func (b *Body) SetVelocityX(x float64) *Body {
	b.Velocity.X = x
	return b
}

// SetBounce sets the same restitution on both axes.
func (b *Body) SetBounce(v float64) *Body {
	b.Bounce = Vec{v, v}
	return b
}

func (b *Body) SetImmovable(v bool) *Body {
	b.Immovable = v
	return b
}

func (b *Body) SetCollideWorldBounds(v bool) *Body {
	b.CollideWorldBounds = v
	return b
}

func (b *Body) movable() bool {
	return !b.static && !b.Immovable
}

// broadphasePad grows the rectangle registered with resolv, which assigns cells on whole
// pixels and would otherwise drop sub-pixel overlaps across a cell edge.
const broadphasePad = 1

// sync pushes the padded body rectangle into the broadphase.
func (b *Body) sync() {
	if b.obj == nil || !b.enabled {
		return
	}
	r := b.Bounds()
	b.obj.X, b.obj.Y = r.X-broadphasePad, r.Y-broadphasePad
	b.obj.W, b.obj.H = r.W+2*broadphasePad, r.H+2*broadphasePad
	b.obj.Update()
}

// members lets a single body be used on either side of a collider.
func (b *Body) members() []*Body { return []*Body{b} }

func (b *Body) contains(o *Body) bool { return b == o }
