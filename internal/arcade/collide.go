package arcade

import "math"

type axis int

const (
	axisX axis = iota
	axisY
)

func overlapX(a, b Rect) float64 {
	return math.Min(a.Right(), b.Right()) - math.Max(a.Left(), b.Left())
}

func overlapY(a, b Rect) float64 {
	return math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top(), b.Top())
}

// crossedAxis picks the axis along which m entered o. If the previous position already
// separated the two on exactly one axis, that axis wins; otherwise the shallower
// penetration does, with ties going to Y.
func crossedAxis(m, o *Body) axis {
	prev, ob := m.prevBounds(), o.Bounds()
	apartX := prev.Right() <= ob.Left() || prev.Left() >= ob.Right()
	apartY := prev.Bottom() <= ob.Top() || prev.Top() >= ob.Bottom()
	switch {
	case apartX && !apartY:
		return axisX
	case apartY && !apartX:
		return axisY
	}
	cur := m.Bounds()
	if overlapX(cur, ob) < overlapY(cur, ob) {
		return axisX
	}
	return axisY
}

// separate pushes the movable side out of the other and reflects its velocity on the
// crossed axis. When both sides are movable the overlap is shared and the velocities on
// that axis are exchanged.
func separate(a, b *Body) {
	switch {
	case a.movable() && b.movable():
		share(a, b, crossedAxis(a, b))
	case a.movable():
		push(a, b, crossedAxis(a, b))
	case b.movable():
		push(b, a, crossedAxis(b, a))
	}
}

func push(m, o *Body, ax axis) {
	ob := o.Bounds()
	switch ax {
	case axisX:
		if m.x < o.x || (m.x == o.x && m.Velocity.X > 0) {
			m.x = ob.Left() - m.w/2
			if m.Velocity.X > 0 {
				m.Velocity.X = -m.Velocity.X * m.Bounce.X
			}
		} else {
			m.x = ob.Right() + m.w/2
			if m.Velocity.X < 0 {
				m.Velocity.X = -m.Velocity.X * m.Bounce.X
			}
		}
	case axisY:
		if m.y < o.y || (m.y == o.y && m.Velocity.Y > 0) {
			m.y = ob.Top() - m.h/2
			if m.Velocity.Y > 0 {
				m.Velocity.Y = -m.Velocity.Y * m.Bounce.Y
			}
		} else {
			m.y = ob.Bottom() + m.h/2
			if m.Velocity.Y < 0 {
				m.Velocity.Y = -m.Velocity.Y * m.Bounce.Y
			}
		}
	}
	m.sync()
}

func share(a, b *Body, ax axis) {
	ar, br := a.Bounds(), b.Bounds()
	switch ax {
	case axisX:
		half := overlapX(ar, br) / 2
		if a.x < b.x {
			a.x -= half
			b.x += half
		} else {
			a.x += half
			b.x -= half
		}
		av, bv := a.Velocity.X, b.Velocity.X
		a.Velocity.X, b.Velocity.X = bv*a.Bounce.X, av*b.Bounce.X
	case axisY:
		half := overlapY(ar, br) / 2
		if a.y < b.y {
			a.y -= half
			b.y += half
		} else {
			a.y += half
			b.y -= half
		}
		av, bv := a.Velocity.Y, b.Velocity.Y
		a.Velocity.Y, b.Velocity.Y = bv*a.Bounce.Y, av*b.Bounce.Y
	}
	a.sync()
	b.sync()
}
