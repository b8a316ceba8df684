package logging

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"

	"breakout/internal/config"
)

// rotating wraps the configured path in a lumberjack logger.
func rotating(path string, cfg config.Log) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}
