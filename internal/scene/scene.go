package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"breakout/internal/arcade"
)

// Image names, shared with the resource manager.
const (
	BallName  = "ball"
	BlockName = "block"
	BoardName = "board"
)

const (
	paddleStartX = 200
	paddleStartY = 550

	ballStartX = 200
	ballStartY = 500
	ballSpeed  = 200

	// horizontal speed gained per pixel of distance from the paddle centre
	paddleReflect = 10

	blockWidth   = 64
	blockHeight  = 32
	blockCols    = 5
	blockRows    = 5
	blockOffsetX = 40 + 32
	blockOffsetY = 50
	blockSpacing = 0
)

// Texture is anything with pixel bounds, e.g. *ebiten.Image.
type Texture interface {
	Bounds() image.Rectangle
}

// Loader resolves an image by name.
type Loader interface {
	Texture(name string) (Texture, error)
}

// Input reports the pointer position in canvas coordinates.
type Input interface {
	PointerX() float64
}

// Block is the per-brick data stored on its static body.
type Block struct {
	Body     *arcade.Body
	Row, Col int
	Tint     color.RGBA
}

type Options struct {
	World  *arcade.World
	Rand   *rand.Rand
	Logger logrus.FieldLogger
	// TintMin and TintMax bound the random block tint (0xRRGGBB), both inclusive.
	TintMin, TintMax uint32
}

// GameScene is the single Breakout scene: a paddle, a ball and a wall of blocks.
type GameScene struct {
	physics *arcade.World
	rng     *rand.Rand
	log     logrus.FieldLogger

	tintMin, tintMax uint32

	textures map[string]Texture

	ball   *arcade.Body
	paddle *arcade.Body
	blocks *arcade.StaticGroup

	destroyed int
	resets    int
	cleared   bool
}

var ErrNotPreloaded = errors.New("scene: images not preloaded")

func New(opts Options) (*GameScene, error) {
	if opts.World == nil {
		return nil, errors.New("scene: physics world is required")
	}
	s := &GameScene{
		physics:  opts.World,
		rng:      opts.Rand,
		log:      opts.Logger,
		tintMin:  opts.TintMin,
		tintMax:  opts.TintMax,
		textures: make(map[string]Texture),
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.tintMin > s.tintMax || s.tintMax > 0xFFFFFF {
		return nil, fmt.Errorf("scene: invalid tint range %#06x-%#06x", s.tintMin, s.tintMax)
	}
	return s, nil
}

// Preload fetches the three images the scene draws.
func (s *GameScene) Preload(l Loader) error {
	for _, name := range []string{BallName, BlockName, BoardName} {
		tex, err := l.Texture(name)
		if err != nil {
			return fmt.Errorf("preload %s: %w", name, err)
		}
		s.textures[name] = tex
	}
	return nil
}

// Create builds the entities and wires the colliders. It must follow Preload.
func (s *GameScene) Create() error {
	for _, name := range []string{BallName, BlockName, BoardName} {
		if _, ok := s.textures[name]; !ok {
			return fmt.Errorf("%w: %s", ErrNotPreloaded, name)
		}
	}

	s.createBlocks()

	bw, bh := s.size(BoardName)
	s.paddle = s.physics.AddBody(paddleStartX, paddleStartY, bw, bh).SetImmovable(true)
	s.paddle.AllowGravity = false

	cw, ch := s.size(BallName)
	s.ball = s.physics.AddBody(ballStartX, ballStartY, cw, ch).
		SetCollideWorldBounds(true).
		SetBounce(1).
		SetVelocity(0, ballSpeed)

	s.physics.AddCollider(s.ball, s.paddle, s.hitPaddle)
	s.physics.AddCollider(s.ball, s.blocks, s.hitBlock)

	// the bottom edge stays open so a missed ball falls out
	s.physics.SetBoundsCollision(true, true, true, false)

	s.log.WithField("blocks", s.blocks.Len()).Info("scene created")
	return nil
}

// Update runs one frame: physics first, then the paddle and the out-of-bounds rule.
func (s *GameScene) Update(dt float64, in Input) {
	s.physics.Step(dt)

	s.paddle.SetX(in.PointerX())

	if s.ball.Y() > s.physics.Bounds().Bottom() {
		s.resetBall()
	}
}

func (s *GameScene) createBlocks() {
	s.blocks = s.physics.NewStaticGroup()
	w, h := s.size(BlockName)

	for row := 0; row < blockRows; row++ {
		for col := 0; col < blockCols; col++ {
			x := float64(blockOffsetX + col*(blockWidth+blockSpacing))
			y := float64(blockOffsetY + row*(blockHeight+blockSpacing))
			b := s.blocks.Create(x, y, w, h)
			b.Data = &Block{
				Body: b,
				Row:  row,
				Col:  col,
				Tint: tintColor(s.randomInt(s.tintMin, s.tintMax)),
			}
		}
	}
}

// randomInt returns an integer in [lo, hi].
func (s *GameScene) randomInt(lo, hi uint32) uint32 {
	return lo + uint32(s.rng.Uint64N(uint64(hi-lo)+1))
}

func tintColor(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// hitPaddle steers the ball by where it struck the paddle.
func (s *GameScene) hitPaddle(ball, paddle *arcade.Body) {
	switch {
	case ball.X() < paddle.X():
		diff := paddle.X() - ball.X()
		ball.SetVelocityX(-paddleReflect * diff)
	case ball.X() > paddle.X():
		diff := ball.X() - paddle.X()
		ball.SetVelocityX(paddleReflect * diff)
	}
}

func (s *GameScene) hitBlock(_, block *arcade.Body) {
	if !s.blocks.Remove(block) {
		return
	}
	s.destroyed++

	fields := logrus.Fields{"id": block.ID(), "remaining": s.blocks.Len()}
	if b, ok := block.Data.(*Block); ok {
		fields["row"], fields["col"] = b.Row, b.Col
	}
	s.log.WithFields(fields).Debug("block destroyed")

	if s.blocks.Len() == 0 && !s.cleared {
		s.cleared = true
		s.log.Info("all blocks cleared")
	}
}

func (s *GameScene) resetBall() {
	s.ball.SetPosition(ballStartX, ballStartY)
	s.ball.SetVelocity(0, ballSpeed)
	s.resets++
	s.log.WithField("resets", s.resets).Info("ball reset")
}

func (s *GameScene) size(name string) (float64, float64) {
	r := s.textures[name].Bounds()
	return float64(r.Dx()), float64(r.Dy())
}

func (s *GameScene) Ball() *arcade.Body { return s.ball }

func (s *GameScene) Paddle() *arcade.Body { return s.paddle }

func (s *GameScene) World() *arcade.World { return s.physics }

// Blocks returns the remaining blocks in grid order.
func (s *GameScene) Blocks() []*Block {
	if s.blocks == nil {
		return nil
	}
	bodies := s.blocks.Bodies()
	out := make([]*Block, 0, len(bodies))
	for _, b := range bodies {
		if blk, ok := b.Data.(*Block); ok {
			out = append(out, blk)
		}
	}
	return out
}

func (s *GameScene) Destroyed() int { return s.destroyed }

func (s *GameScene) Resets() int { return s.resets }
