package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger writes to the console and, when logFile is set, additionally to a
// rotating file.
func InitLogger(level, logFile string) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			log.Warn().Err(err).Str("file", logFile).Msg("Could not create log directory, logging to console only")
		} else {
			out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    50,
				MaxBackups: 5,
				MaxAge:     28,
				Compress:   true,
			})
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return log.Output(out).Level(lvl)
}
