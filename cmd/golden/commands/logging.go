package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/agiangrant/golden"
)

// setupLogging installs the configured logger. Without a log file the
// output goes to fallback; nil discards it. The returned func closes the
// file.
func setupLogging(cfg golden.LogConfig, fallback io.Writer) (func(), error) {
	out, closeFn := fallback, func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}
	if out == nil {
		golden.SetLogger(nil)
		return closeFn, nil
	}
	l, err := golden.NewLogger(cfg, out)
	if err != nil {
		closeFn()
		return nil, err
	}
	golden.SetLogger(l)
	return closeFn, nil
}
