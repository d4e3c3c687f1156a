package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported backends for New.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
	BackendNone = "none"
)

// New builds a Logger writing JSON lines to w at the given level
// (debug, info, warn or error; empty means info). An empty backend is
// BackendNone.
func New(backend, level string, w io.Writer) (Logger, error) {
	if level == "" {
		level = "info"
	}

	switch strings.ToLower(backend) {
	case "", BackendNone:
		return &NoopLogger{}, nil

	case BackendSlog:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("logger: invalid level %q: %w", level, err)
		}
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
		return NewSlogAdapter(slog.New(h)), nil

	case BackendZap:
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logger: invalid level %q: %w", level, err)
		}
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(lvl))
		return NewZapAdapter(zap.New(core)), nil

	default:
		return nil, fmt.Errorf("logger: unknown backend %q", backend)
	}
}
