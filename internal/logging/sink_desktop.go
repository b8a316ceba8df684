//go:build !android && !js

package logging

import (
	"io"

	"breakout/internal/config"
)

func fileSink(cfg config.Log) (io.WriteCloser, string) {
	return rotating(cfg.File, cfg), cfg.File
}
