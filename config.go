package assist

import (
	"fmt"
	"math"
	"time"
)

// Options represents per-call settings shared by all operations.
type Options struct {
	Model       ModelChoice
	Temperature *float32
	TopP        *float32
	TopK        *float32
	MaxTokens   int32
	Timeout     time.Duration
	MaxRetries  int           // 0 → no retry
	Backoff     time.Duration // backoff duration for retries
	Runner      Runner        // nil → DefaultRunner (embeddings fan-out only)
	SessionID   string        // chat only; empty → the default session
}

// Option mutates Options.
type Option func(*Options)

// WithModel selects the model tier for this call.
func WithModel(c ModelChoice) Option {
	return func(o *Options) { o.Model = c }
}

// WithTemperature sets the sampling temperature. Values outside [0, 2] are
// rejected at call time, not clamped.
func WithTemperature(t float32) Option {
	return func(o *Options) { o.Temperature = &t }
}

// WithTopP sets the nucleus-sampling probability mass.
func WithTopP(p float32) Option {
	return func(o *Options) { o.TopP = &p }
}

// WithTopK sets the top-k sampling cutoff.
func WithTopK(k float32) Option {
	return func(o *Options) { o.TopK = &k }
}

// WithMaxTokens caps the reply length.
func WithMaxTokens(n int32) Option {
	return func(o *Options) { o.MaxTokens = n }
}

// WithTimeout bounds the outbound call with a deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithRetry makes the gateway call retryable with exponential backoff.
// The default is a single attempt.
func WithRetry(max int, backoff time.Duration) Option {
	return func(o *Options) {
		o.MaxRetries = max
		o.Backoff = backoff
	}
}

// WithRunner overrides the concurrency model used for batched calls.
func WithRunner(r Runner) Option {
	return func(o *Options) { o.Runner = r }
}

// WithSessionID addresses a named conversation instead of the shared
// default session.
func WithSessionID(id string) Option {
	return func(o *Options) { o.SessionID = id }
}

func buildOptions(optFns []Option) (Options, error) {
	var o Options
	for _, fn := range optFns {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (o *Options) validate() error {
	if !o.Model.Valid() {
		return fmt.Errorf("model %q: %w", o.Model, ErrInvalidInput)
	}
	if t := o.Temperature; t != nil {
		f := float64(*t)
		if math.IsNaN(f) || f < 0 || f > 2 {
			return fmt.Errorf("temperature %v must be between 0.0 and 2.0: %w", *t, ErrInvalidInput)
		}
	}
	if p := o.TopP; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("topP %v must be between 0.0 and 1.0: %w", *p, ErrInvalidInput)
	}
	if k := o.TopK; k != nil && *k <= 0 {
		return fmt.Errorf("topK %v must be greater than 0: %w", *k, ErrInvalidInput)
	}
	if o.MaxTokens < 0 {
		return fmt.Errorf("maxTokens %d must not be negative: %w", o.MaxTokens, ErrInvalidInput)
	}
	return nil
}
