package scene

import (
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"breakout/internal/arcade"
)

const frame = 1.0 / 60

type fakeTexture struct{ w, h int }

func (t fakeTexture) Bounds() image.Rectangle { return image.Rect(0, 0, t.w, t.h) }

type fakeLoader map[string]fakeTexture

func (l fakeLoader) Texture(name string) (Texture, error) {
	tex, ok := l[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return tex, nil
}

var defaultImages = fakeLoader{
	BallName:  {16, 16},
	BlockName: {64, 32},
	BoardName: {96, 16},
}

type pointer float64

func (p pointer) PointerX() float64 { return float64(p) }

const (
	tintMin = 0x444444
	tintMax = 0xFFFFFF
)

func newTestScene(t *testing.T, gravity arcade.Vec) (*GameScene, *test.Hook) {
	t.Helper()
	world, err := arcade.NewWorld(arcade.Config{Width: 400, Height: 600, Gravity: gravity})
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s, err := New(Options{
		World:  world,
		Rand:    rand.New(rand.NewPCG(1, 2)),
		Logger:  logger,
		TintMin: tintMin,
		TintMax: tintMax,
	})
	require.NoError(t, err)
	require.NoError(t, s.Preload(defaultImages))
	require.NoError(t, s.Create())
	return s, hook
}

func TestPreloadReportsMissingImage(t *testing.T) {
	world, err := arcade.NewWorld(arcade.Config{Width: 400, Height: 600})
	require.NoError(t, err)
	s, err := New(Options{World: world})
	require.NoError(t, err)

	err = s.Preload(fakeLoader{BallName: {16, 16}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), BlockName)

	err = s.Create()
	assert.ErrorIs(t, err, ErrNotPreloaded)
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	world, err := arcade.NewWorld(arcade.Config{Width: 400, Height: 600})
	require.NoError(t, err)
	_, err = New(Options{World: world, TintMin: 0xFFFFFF, TintMax: 0x000001})
	assert.Error(t, err)
}

func TestCreateBuildsBlockGrid(t *testing.T) {
	s, hook := newTestScene(t, arcade.Vec{})

	blocks := s.Blocks()
	require.Len(t, blocks, 25)

	first, last := blocks[0], blocks[24]
	assert.Equal(t, 72.0, first.Body.X())
	assert.Equal(t, 50.0, first.Body.Y())
	assert.Equal(t, 328.0, last.Body.X())
	assert.Equal(t, 178.0, last.Body.Y())
	assert.Equal(t, 4, last.Row)
	assert.Equal(t, 4, last.Col)

	for _, b := range blocks {
		v := uint32(b.Tint.R)<<16 | uint32(b.Tint.G)<<8 | uint32(b.Tint.B)
		assert.GreaterOrEqual(t, v, uint32(tintMin))
		assert.LessOrEqual(t, v, uint32(tintMax))
		assert.Equal(t, uint8(0xff), b.Tint.A)
		assert.True(t, b.Body.Static())
	}

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "scene created", hook.LastEntry().Message)
}

func TestZeroTintRangeIsBlack(t *testing.T) {
	world, err := arcade.NewWorld(arcade.Config{Width: 400, Height: 600})
	require.NoError(t, err)
	s, err := New(Options{World: world})
	require.NoError(t, err)
	require.NoError(t, s.Preload(defaultImages))
	require.NoError(t, s.Create())

	for _, b := range s.Blocks() {
		assert.Equal(t, color.RGBA{A: 0xff}, b.Tint)
	}
}

func TestTintsAreReproducibleForASeed(t *testing.T) {
	a, _ := newTestScene(t, arcade.Vec{})
	b, _ := newTestScene(t, arcade.Vec{})

	for i, blk := range a.Blocks() {
		assert.Equal(t, blk.Tint, b.Blocks()[i].Tint)
	}
}

func TestInitialEntities(t *testing.T) {
	s, _ := newTestScene(t, arcade.Vec{})

	assert.Equal(t, 200.0, s.Paddle().X())
	assert.Equal(t, 550.0, s.Paddle().Y())
	assert.True(t, s.Paddle().Immovable)
	assert.False(t, s.Paddle().AllowGravity)

	assert.Equal(t, 200.0, s.Ball().X())
	assert.Equal(t, 500.0, s.Ball().Y())
	assert.Equal(t, arcade.Vec{Y: 200}, s.Ball().Velocity)
	assert.Equal(t, arcade.Vec{X: 1, Y: 1}, s.Ball().Bounce)
	assert.True(t, s.Ball().CollideWorldBounds)

	assert.Equal(t, arcade.Edges{Left: true, Right: true, Up: true}, s.World().BoundsCollision())
}

func TestPaddleFollowsPointer(t *testing.T) {
	s, _ := newTestScene(t, arcade.Vec{})

	s.Update(frame, pointer(123))

	assert.Equal(t, 123.0, s.Paddle().X())
	assert.Equal(t, 550.0, s.Paddle().Y())
}

func TestHitPaddleSteersByOffset(t *testing.T) {
	s, _ := newTestScene(t, arcade.Vec{})
	ball, paddle := s.Ball(), s.Paddle()

	ball.SetPosition(190, 530).SetVelocity(30, -200)
	s.hitPaddle(ball, paddle)
	assert.InDelta(t, -100, ball.Velocity.X, 1e-9)

	ball.SetPosition(215, 530)
	s.hitPaddle(ball, paddle)
	assert.InDelta(t, 150, ball.Velocity.X, 1e-9)

	ball.SetPosition(200, 530).SetVelocityX(42)
	s.hitPaddle(ball, paddle)
	assert.InDelta(t, 42, ball.Velocity.X, 1e-9)
	assert.InDelta(t, -200, ball.Velocity.Y, 1e-9)
}

func TestBallBouncesOffPaddle(t *testing.T) {
	s, _ := newTestScene(t, arcade.Vec{})

	for i := 0; i < 60 && s.Ball().Velocity.Y > 0; i++ {
		s.Update(frame, pointer(210))
	}

	assert.InDelta(t, -200, s.Ball().Velocity.Y, 1e-9)
	assert.InDelta(t, -100, s.Ball().Velocity.X, 1e-9)
	assert.LessOrEqual(t, s.Ball().Bounds().Bottom(), s.Paddle().Bounds().Top())
}

func TestBallDestroysBlockOnce(t *testing.T) {
	s, hook := newTestScene(t, arcade.Vec{})
	s.Ball().SetPosition(72, 220).SetVelocity(0, -200)

	for i := 0; i < 60 && s.Destroyed() == 0; i++ {
		s.Update(frame, pointer(380))
	}

	require.Equal(t, 1, s.Destroyed())
	assert.Len(t, s.Blocks(), 24)
	assert.Greater(t, s.Ball().Velocity.Y, 0.0)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "block destroyed", entry.Message)
	assert.Equal(t, 4, entry.Data["row"])
	assert.Equal(t, 0, entry.Data["col"])
	assert.Equal(t, 24, entry.Data["remaining"])
	// blocks are the first bodies created, in grid order
	assert.Equal(t, uint32(21), entry.Data["id"])

	for _, b := range s.Blocks() {
		assert.False(t, b.Row == 4 && b.Col == 0)
	}
}

func TestBallResetsBelowBottom(t *testing.T) {
	s, hook := newTestScene(t, arcade.Vec{})
	s.Ball().SetPosition(200, 590).SetVelocity(50, 200)

	for i := 0; i < 10 && s.Resets() == 0; i++ {
		s.Update(frame, pointer(380))
	}

	require.Equal(t, 1, s.Resets())
	assert.Equal(t, 200.0, s.Ball().X())
	assert.Equal(t, 500.0, s.Ball().Y())
	assert.Equal(t, arcade.Vec{Y: 200}, s.Ball().Velocity)
	assert.Equal(t, "ball reset", hook.LastEntry().Message)
}

func TestBallBouncesOffSideWall(t *testing.T) {
	s, _ := newTestScene(t, arcade.Vec{})
	s.Ball().SetPosition(10, 300).SetVelocity(-300, 0)

	s.Update(frame, pointer(200))

	assert.Equal(t, 8.0, s.Ball().X())
	assert.InDelta(t, 300, s.Ball().Velocity.X, 1e-9)
}

func TestGravitySkipsPaddle(t *testing.T) {
	s, _ := newTestScene(t, arcade.Vec{Y: 60})

	s.Update(frame, pointer(200))

	assert.InDelta(t, 201, s.Ball().Velocity.Y, 1e-9)
	assert.Zero(t, s.Paddle().Velocity.Y)
	assert.Equal(t, 550.0, s.Paddle().Y())
}

func TestClearingAllBlocksIsLoggedOnce(t *testing.T) {
	s, hook := newTestScene(t, arcade.Vec{})
	for _, b := range s.Blocks() {
		s.hitBlock(s.Ball(), b.Body)
	}
	s.hitBlock(s.Ball(), s.Paddle())

	assert.Equal(t, 25, s.Destroyed())
	assert.Empty(t, s.Blocks())

	var cleared int
	for _, e := range hook.AllEntries() {
		if e.Message == "all blocks cleared" {
			cleared++
		}
	}
	assert.Equal(t, 1, cleared)
}
