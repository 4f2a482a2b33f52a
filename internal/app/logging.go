package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/blackwell-systems/libractl/internal/config"
	"github.com/blackwell-systems/libractl/internal/util"
)

// newLogger builds the diagnostic logger. Commands log to stderr through a
// console writer; the TUI owns the terminal, so it logs to lc.File.
func newLogger(lc config.LogConfig, interactive bool) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil || lc.Level == "" {
		level = zerolog.WarnLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    flagNoColor,
	}
	if interactive {
		f, err := openLogFile(lc.File)
		if err != nil {
			return zerolog.Nop(), err
		}
		w = f
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

func openLogFile(path string) (*os.File, error) {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
