package gen

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// loggingMiddleware captures structured logs for the generation request
// lifecycle: operation, latency, token usage, and error classification.
// Prompt text is redacted when configured.
type loggingMiddleware struct {
	logger        *slog.Logger
	redactPrompts bool
}

// NewLoggingMiddleware creates observability middleware with structured
// logging. A nil logger falls back to slog.Default.
func NewLoggingMiddleware(logger *slog.Logger, redactPrompts bool) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	lm := &loggingMiddleware{
		logger:        logger.With("component", "gen"),
		redactPrompts: redactPrompts,
	}
	return lm.middleware
}

func (m *loggingMiddleware) middleware(next Handler) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		if req.TraceID == "" {
			req.TraceID = uuid.New().String()
		}

		prompt := req.User
		if m.redactPrompts {
			prompt = "[REDACTED]"
		}
		m.logger.DebugContext(ctx, "generation request",
			"trace_id", req.TraceID,
			"operation", req.Operation,
			"prompt", prompt,
		)

		start := time.Now()
		resp, err := next.Handle(ctx, req)
		latency := time.Since(start)

		if err != nil {
			m.logger.WarnContext(ctx, "generation failed",
				"trace_id", req.TraceID,
				"operation", req.Operation,
				"latency_ms", latency.Milliseconds(),
				"error", err,
			)
			return nil, err
		}

		m.logger.InfoContext(ctx, "generation completed",
			"trace_id", req.TraceID,
			"operation", req.Operation,
			"latency_ms", latency.Milliseconds(),
			"model", resp.Model,
			"prompt_tokens", resp.Usage.PromptTokens,
			"completion_tokens", resp.Usage.CompletionTokens,
		)
		return resp, nil
	})
}
