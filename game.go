package breakout

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"

	"breakout/internal/arcade"
	"breakout/internal/config"
	"breakout/internal/scene"
)

var backgroundColor = color.Black

var exitFlag atomic.Bool

// ShouldExit 供 Android 检查是否需要退出应用
func ShouldExit() bool {
	return exitFlag.Load()
}

// SetExitFlag 设置退出标志
func SetExitFlag(exit bool) {
	exitFlag.Store(exit)
}

// Game 实现 ebiten.Game 接口，驱动打砖块场景
type Game struct {
	cfg       *config.Config
	log       logrus.FieldLogger
	resources *ResourceManager
	scene     *scene.GameScene
	pointer   *pointer

	ballImage  *ebiten.Image
	blockImage *ebiten.Image
	boardImage *ebiten.Image

	hudFace text.Face
}

// NewGame 预加载图片并创建场景，引擎运行前不会绘制任何内容
func NewGame(cfg *config.Config, log logrus.FieldLogger) (*Game, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	world, err := arcade.NewWorld(arcade.Config{
		Width:   float64(cfg.Width),
		Height:  float64(cfg.Height),
		Gravity: arcade.Vec{X: cfg.Gravity.X, Y: cfg.Gravity.Y},
		Debug:   cfg.Debug,
	})
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.WithField("seed", seed).Debug("block tint seed")

	sc, err := scene.New(scene.Options{
		World:   world,
		Rand:    rand.New(rand.NewPCG(seed, seed>>1)),
		Logger:  log,
		TintMin: cfg.TintMin,
		TintMax: cfg.TintMax,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		log:       log,
		resources: NewResourceManager(log),
		scene:     sc,
	}

	if err := g.resources.PreloadResources(); err != nil {
		return nil, err
	}
	if err := sc.Preload(g.resources); err != nil {
		return nil, err
	}
	if err := sc.Create(); err != nil {
		return nil, err
	}
	g.pointer = newPointer(sc.Paddle().X(), ebitenPointer())

	g.ballImage = g.resources.GetResource(ResourceBall)
	g.blockImage = g.resources.GetResource(ResourceBlock)
	g.boardImage = g.resources.GetResource(ResourceBoard)

	if g.hudFace, err = loadHUDFace(); err != nil {
		return nil, fmt.Errorf("load debug font: %w", err)
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.log.Info("exit requested")
		SetExitFlag(true)
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		w := g.scene.World()
		w.Debug = !w.Debug
	}

	g.pointer.update()
	g.scene.Update(1/float64(ebiten.TPS()), g.pointer)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, b := range g.scene.Blocks() {
		op := &ebiten.DrawImageOptions{}
		r := b.Body.Bounds()
		op.GeoM.Translate(r.X, r.Y)
		op.ColorScale.ScaleWithColor(b.Tint)
		screen.DrawImage(g.blockImage, op)
	}

	drawBody(screen, g.boardImage, g.scene.Paddle())
	drawBody(screen, g.ballImage, g.scene.Ball())

	if g.scene.World().Debug {
		g.drawDebug(screen)
	}
}

func drawBody(screen, img *ebiten.Image, b *arcade.Body) {
	if img == nil || b == nil {
		return
	}
	r := b.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(r.X, r.Y)
	screen.DrawImage(img, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Configure 根据配置设置窗口，需在 ebiten.RunGame 之前调用
func Configure(cfg *config.Config) {
	ebiten.SetWindowSize(int(float64(cfg.Width)*cfg.Window.Scale), int(float64(cfg.Height)*cfg.Window.Scale))
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.TPS)
}
