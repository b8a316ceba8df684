//go:build android

package logging

import (
	"io"
	"os"
	"path/filepath"

	"breakout/internal/config"
)

// fileSink keeps the log under the user config dir (or the temp dir); the working
// directory is read-only on Android.
func fileSink(cfg config.Log) (io.WriteCloser, string) {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, filepath.Base(cfg.File))
	return rotating(path, cfg), path
}
