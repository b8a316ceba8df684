package main

import (
	"errors"
	"os"

	_ "github.com/ebitengine/hideconsole"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"breakout"
	"breakout/internal/config"
	"breakout/internal/logging"
)

func main() {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.Flags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(viper.New(), fs)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log, err := logging.New(cfg.Log, nil)
	if err != nil {
		logrus.Fatalf("logging: %v", err)
	}
	defer log.Close()

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("breakout stopped")
		log.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logging.Logger) error {
	game, err := breakout.NewGame(cfg, log)
	if err != nil {
		return err
	}

	breakout.Configure(cfg)
	log.WithFields(logrus.Fields{
		"width":  cfg.Width,
		"height": cfg.Height,
		"debug":  cfg.Debug,
	}).Info("starting")

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
