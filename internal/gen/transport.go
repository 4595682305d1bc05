// Package gen provides the text-generation client used by the classify,
// reasoning, and synthesis steps. Requests flow through a composable
// middleware pipeline (logging, rate limiting, retry) around a core HTTP
// handler speaking the OpenAI-compatible chat-completions wire format.
package gen

import "context"

// Operation identifies which workflow step a generation request serves.
// It is a closed set; the pipeline never dispatches on generator-chosen
// operation names.
type Operation string

const (
	// OpClassify requests intent classification of the user query.
	OpClassify Operation = "classify"

	// OpReason requests a free-text reasoning narrative over evidence.
	OpReason Operation = "reason"

	// OpSynthesize requests the structured final answer.
	OpSynthesize Operation = "synthesize"
)

// Request is a single generation call.
type Request struct {
	// Operation tags the request for logging and middleware decisions.
	Operation Operation `json:"operation"`

	// System is the system prompt establishing the generator's role.
	System string `json:"system"`

	// User is the user-turn content.
	User string `json:"user"`

	// Temperature controls sampling randomness. Zero is deliberate for
	// classification; flaky intent detection breaks the whole pipeline.
	Temperature float64 `json:"temperature"`

	// MaxTokens bounds the completion length. Zero means provider default.
	MaxTokens int `json:"max_tokens,omitempty"`

	// TraceID correlates the request across logs. Generated when empty.
	TraceID string `json:"trace_id,omitempty"`
}

// Response is the generator's reply.
type Response struct {
	// Content is the raw completion text. Steps own parsing and fallbacks.
	Content string `json:"content"`

	// Model is the model that actually served the request.
	Model string `json:"model,omitempty"`

	// Usage reports token consumption when the provider returns it.
	Usage Usage `json:"usage"`
}

// Usage reports token consumption for a single request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Handler processes generation requests through the middleware pipeline.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(context.Context, *Request) (*Response, error)

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Middleware transforms a Handler into an enhanced Handler.
// Applied in reverse order with the last middleware closest to the core
// handler.
type Middleware func(Handler) Handler

// Chain builds a middleware pipeline around a core handler. Middleware
// executes in the order provided with the first middleware outermost.
func Chain(h Handler, middlewares ...Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
