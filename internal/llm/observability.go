package llm

import (
	"context"
	"io"
	"log/slog"
)

// LLMCallEvent describes one Generate call, after all of its attempts.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string // TIMEOUT, UNAVAILABLE, REJECTED, EMPTY, UNKNOWN
}

// Observer receives one event per Generate call.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver logs each call as an slog text line.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []slog.Attr{
		slog.String("task", string(event.Task)),
		slog.String("provider", string(event.Provider)),
		slog.String("model", event.Model),
		slog.Int64("latency_ms", event.LatencyMs),
	}
	if event.Success {
		o.logger.LogAttrs(context.Background(), slog.LevelInfo, "llm_call", attrs...)
		return
	}
	attrs = append(attrs, slog.String("error_code", event.ErrorCode))
	o.logger.LogAttrs(context.Background(), slog.LevelWarn, "llm_call", attrs...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
