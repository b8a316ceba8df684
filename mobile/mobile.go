package mobile

import (
	"breakout"
	"breakout/internal/config"
	"breakout/internal/logging"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func init() {
	// yourgame.Game must implement ebiten.Game interface.
	// For more details, see
	// * https://pkg.go.dev/github.com/hajimehoshi/ebiten/v2#Game

	cfg, err := config.Load(viper.New(), nil)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log, err := logging.New(cfg.Log, nil)
	if err != nil {
		logrus.Fatalf("logging: %v", err)
	}

	game, err := breakout.NewGame(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("create game")
	}
	breakout.Configure(cfg)
	mobile.SetGame(game)
}

// ShouldExit 导出函数，供 Android 检查是否需要退出应用
//
//export ShouldExit
func ShouldExit() bool {
	return breakout.ShouldExit()
}

// SetExitFlag 导出函数，供游戏内部设置退出标志
//
//export SetExitFlag
func SetExitFlag(exit bool) {
	breakout.SetExitFlag(exit)
}

// Dummy is a dummy exported function.
//
// gomobile doesn't compile a package that doesn't include any exported function.
// Dummy forces gomobile to compile this package.
func Dummy() {}
