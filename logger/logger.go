package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger. Console output is always on. When file
// is set, JSON lines are appended to it as well; close the returned closer on exit.
func Setup(level string, file string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if file == "" {
		log.Logger = zerolog.New(console).With().Timestamp().Logger()
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, f)).With().Timestamp().Logger()
	return f, nil
}

// Writer forwards each write as one log line, for libraries that expect an io.Writer.
type Writer struct {
	Level zerolog.Level
}

func (w Writer) Write(p []byte) (int, error) {
	log.WithLevel(w.Level).Msg(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
