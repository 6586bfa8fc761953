// Package assist orchestrates requests to a generative-AI backend. It turns
// heterogeneous inputs (raw text, validated image bytes, decoded document
// and CSV content, caller-supplied extraction schemas) into well-formed
// multimodal Gemini requests, tracks multi-turn conversational state, and
// normalizes model replies into typed results.
//
// The package sits between an HTTP layer (not included here) and the
// google.golang.org/genai SDK. It owns prompt construction, model selection,
// conversation history and reply parsing; it does not own transport
// concerns, file-format validation, or persistence.
//
// # Basic Usage
//
//	ctx := context.Background()
//	client, _ := genai.NewClient(ctx, nil)
//	a := assist.New(client)
//
//	resp, err := a.Translate(ctx, assist.TranslateRequest{
//	    Text:           "Hello world",
//	    TargetLanguage: "español",
//	})
//	// resp.TranslatedText == "Hola mundo"
//
// # Operations
//
// One method per operation: AnalyzeText, Chat (plus History and
// ClearHistory), Sentiment, Translate, Summarize, GrammarCheck,
// AnalyzeImage, CompareImages, ExtractStructuredData, AnalyzeDocument,
// AnalyzeCSV, GenerateContent and Embeddings. Every method validates its
// request, builds the instruction deterministically, performs at most one
// gateway invocation and maps the reply to a typed response.
//
// # Conversation State
//
// Chat is the only stateful operation. Turns live in a mutex-guarded
// Session; sessions are keyed by identifier in a SessionStore so concurrent
// tenants never share history. Callers that pass no id share one default
// session. The user turn is appended before the gateway call and the
// assistant turn only after a successful reply, so a failed call leaves the
// user turn in the history.
//
//	resp, _ := a.Chat(ctx, assist.ChatRequest{Message: "Hola"},
//	    assist.WithSessionID("tenant-42"))
//	hist := a.History("tenant-42")
//
// # Schema-Guided Extraction
//
// ExtractStructuredData takes an ordered field → description schema, asks
// the model for strict "field: value" lines and parses the reply back into
// an order-preserving result. Fields the model never addressed map to nil;
// a reply with zero recognizable lines fails with ErrUnparseableResponse so
// "nothing found" and "unusable output" stay distinguishable.
//
//	schema := assist.NewSchema().
//	    Add("paciente", "nombre completo del paciente").
//	    Add("edad", "edad en años")
//	resp, err := a.ExtractStructuredData(ctx, assist.ExtractRequest{
//	    Document: reportBytes,
//	    Schema:   schema,
//	})
//
// # Models and Options
//
// Two tiers are configured: flash (default for text operations) and pro
// (vision, documents, long generation). Per-call settings use functional
// options: WithModel, WithTemperature, WithTimeout, WithRetry,
// WithSessionID. Temperature outside [0, 2] is rejected, not clamped.
//
// # Errors
//
// Failures wrap one of the sentinel errors ErrInvalidInput,
// ErrUpstreamUnavailable, ErrUpstreamRateLimited, ErrUpstreamTimeout,
// ErrUnparseableResponse or ErrInternal, so callers can branch with
// errors.Is. The orchestrator never retries on its own; WithRetry injects
// an explicit policy with exponential backoff at the gateway boundary.
//
// # Prompts
//
// Instruction wording lives in Twig templates rendered through
// StickPromptProvider. The defaults mirror the Spanish-language service
// this package fronts and can be overridden per tag:
//
//	prompts, _ := assist.NewStickPromptProvider(
//	    assist.WithTemplates(map[string]string{
//	        "analyze-image": "Describe this image in detail",
//	    }))
//	a := assist.NewWithLogger(client, prompts, logger)
package assist
