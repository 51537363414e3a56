// Package logs builds the structured logger used by the turing command.
package logs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"

	"github.com/ezrec/tinyturing/translate"
)

var f = translate.From

var ErrLevel = errors.New(f("unknown log level"))

// Options selects the log sinks.
type Options struct {
	Writer  io.Writer // Text sink. Defaults to os.Stderr.
	Level   string    // debug, info, warn or error.
	File    string    // If set, JSON records are appended to this file.
	Journal bool      // If set, records are also sent to the systemd journal.
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (level slog.Level, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		err = &ErrLevelName{Name: name}
	}
	return
}

// ErrLevelName indicates an unknown level name.
type ErrLevelName struct {
	Name string
}

func (err *ErrLevelName) Error() string {
	return f("%v: %q", ErrLevel, err.Name)
}

func (err *ErrLevelName) Unwrap() error {
	return ErrLevel
}

type closers []io.Closer

func (c closers) Close() (err error) {
	for _, closer := range c {
		err = errors.Join(err, closer.Close())
	}
	return
}

// New builds a logger fanning out to every configured sink. The returned
// closer releases the log file, if any.
func New(opts Options) (logger *slog.Logger, closer io.Closer, err error) {
	level := new(slog.LevelVar)
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return
	}
	level.Set(lvl)

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	var handlers []slog.Handler
	var files closers

	terminalHandler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	})
	handlers = append(handlers, terminalHandler)

	if opts.File != "" {
		var file *os.File
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		files = append(files, file)
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level: level,
		}))
	}

	if opts.Journal {
		journalHandler, jerr := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if jerr != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", jerr)
			_ = terminalHandler.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	logger = slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
	closer = files

	return
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}
