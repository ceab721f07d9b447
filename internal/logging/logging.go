package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	slogseq "github.com/sokkalf/slog-seq"
)

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	// Enable if any handler is enabled for this level
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// Options selects where records go
type Options struct {
	Level  slog.Level
	Output io.Writer // console destination, stderr when nil
	SeqURL string    // Seq ingestion endpoint, console only when empty
	RunID  string    // attached to every record, generated when empty
}

// SetupLogger builds the run logger and returns a cleanup function that
// flushes pending Seq batches.
//
// Console output goes to stderr so stdout stays free for the joined table.
func SetupLogger(opts Options) (*slog.Logger, func()) {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.Level <= slog.LevelDebug {
		handlerOpts.AddSource = true
	}

	// Console handler
	consoleHandler := slog.NewTextHandler(opts.Output, handlerOpts)

	if opts.SeqURL == "" {
		return slog.New(consoleHandler).With(slog.String("run_id", opts.RunID)), func() {}
	}

	// Seq handler
	_, seqHandler := slogseq.NewLogger(
		opts.SeqURL,
		slogseq.WithBatchSize(50),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(handlerOpts),
	)

	// If Seq is not available, use console only
	if seqHandler == nil {
		return slog.New(consoleHandler).With(slog.String("run_id", opts.RunID)), func() {}
	}

	// Combine both handlers
	multi := &multiHandler{
		handlers: []slog.Handler{consoleHandler, seqHandler},
	}

	logger := slog.New(multi).With(slog.String("run_id", opts.RunID))

	closeFn := func() {
		seqHandler.Close()
	}

	return logger, closeFn
}

// ParseLevel maps a level name to its slog level. The empty string means
// warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "quiet":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// LevelFromVerbosity maps the -d count and --quiet flag onto a level.
// Zero verbosity keeps base.
func LevelFromVerbosity(base slog.Level, debug int, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case debug >= 2:
		return slog.LevelDebug
	case debug == 1:
		return slog.LevelInfo
	default:
		return base
	}
}
