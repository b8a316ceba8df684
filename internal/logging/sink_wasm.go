//go:build js && wasm

package logging

import (
	"io"

	"breakout/internal/config"
)

// fileSink returns nothing in the browser: there is no file system, logs go to the console only.
func fileSink(config.Log) (io.WriteCloser, string) {
	return nil, ""
}
