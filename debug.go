package breakout

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

const fontSize = 10

var (
	debugDynamicColor  = color.RGBA{255, 0, 255, 255} // 洋红
	debugStaticColor   = color.RGBA{0, 0, 255, 255}
	debugVelocityColor = color.RGBA{0, 255, 0, 255}
	debugTextColor     = color.White
)

func loadHUDFace() (text.Face, error) {
	ft, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	return text.NewGoXFace(face), nil
}

// drawText 辅助函数，简化 text/v2 的文本绘制
func drawText(screen *ebiten.Image, face text.Face, str string, x, y int, clr color.Color) {
	for i, line := range strings.Split(str, "\n") {
		dopt := &text.DrawOptions{}
		dopt.GeoM.Translate(float64(x), float64(y+i*(fontSize+2)))
		dopt.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, line, face, dopt)
	}
}

// drawDebug 绘制所有物体的轮廓、速度向量（一半长度）以及调试信息
func (g *Game) drawDebug(screen *ebiten.Image) {
	for _, b := range g.scene.World().Bodies() {
		r := b.Bounds()
		clr := debugDynamicColor
		if b.Static() {
			clr = debugStaticColor
		}
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, clr, false)

		if !b.Static() {
			x, y := float32(b.X()), float32(b.Y())
			vx, vy := float32(b.Velocity.X/2), float32(b.Velocity.Y/2)
			vector.StrokeLine(screen, x, y, x+vx, y+vy, 1, debugVelocityColor, false)
		}
	}

	ball := g.scene.Ball()
	hud := fmt.Sprintf("TPS %.1f\nball (%.0f, %.0f)\nvel (%.0f, %.0f)\nblocks %d  resets %d",
		ebiten.ActualTPS(),
		ball.X(), ball.Y(),
		ball.Velocity.X, ball.Velocity.Y,
		len(g.scene.Blocks()), g.scene.Resets(),
	)
	drawText(screen, g.hudFace, hud, 4, g.cfg.Height-4*(fontSize+2)-4, debugTextColor)
}
