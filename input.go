package breakout

import "github.com/hajimehoshi/ebiten/v2"

// pointerReader 返回当前指针位置，touched 表示位置来自触摸
type pointerReader func() (x, y int, touched bool)

// ebitenPointer 读取第一个触摸点，没有触摸时读取鼠标位置
func ebitenPointer() pointerReader {
	var touches []ebiten.TouchID
	return func() (int, int, bool) {
		touches = ebiten.AppendTouchIDs(touches[:0])
		if len(touches) > 0 {
			x, y := ebiten.TouchPosition(touches[0])
			return x, y, true
		}
		x, y := ebiten.CursorPosition()
		return x, y, false
	}
}

// pointer 将鼠标与触摸统一为水平位置
// 鼠标第一次移动或第一次触摸之前，返回初始位置
type pointer struct {
	x    float64
	read pointerReader

	primed    bool
	following bool
	cx, cy    int
}

func newPointer(startX float64, read pointerReader) *pointer {
	return &pointer{x: startX, read: read}
}

func (p *pointer) update() {
	x, y, touched := p.read()
	if touched {
		p.x = float64(x)
		p.following = true
		return
	}

	if !p.primed {
		p.cx, p.cy, p.primed = x, y, true
		return
	}
	if x != p.cx || y != p.cy {
		p.following = true
	}
	p.cx, p.cy = x, y
	if p.following {
		p.x = float64(x)
	}
}

func (p *pointer) PointerX() float64 {
	return p.x
}
