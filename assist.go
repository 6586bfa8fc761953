package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// defaultSessionID names the shared conversation used when the caller does
// not address a session explicitly.
const defaultSessionID = "default"

const defaultEmbedTaskType = "retrieval_document"

// Assistant is the orchestration façade: it validates operation requests,
// builds prompts, performs at most one gateway invocation per call (unless
// the caller injects a retry policy) and keeps conversation state for the
// chat operation. All other operations are stateless and side-effect free.
type Assistant struct {
	invoker  Invoker
	builder  *promptBuilder
	sessions *SessionStore
	log      *slog.Logger
}

// New returns an Assistant backed by the Google GenAI client and the
// built-in prompt catalog, logging with slog.Default().
func New(client *genai.Client) *Assistant {
	return NewWithLogger(client, nil, slog.Default())
}

// NewWithLogger lets the caller supply a prompt provider and logger. A nil
// provider falls back to the default templates; a nil logger falls back to
// slog.Default().
func NewWithLogger(client *genai.Client, prompts PromptProvider, log *slog.Logger) *Assistant {
	if log == nil {
		log = slog.Default()
	}
	return NewWithInvoker(NewGoogleInvoker(client, log), prompts, log)
}

// NewWithInvoker wires an arbitrary Invoker, which is also the seam tests
// use to substitute a deterministic stub for the backend.
func NewWithInvoker(invoker Invoker, prompts PromptProvider, log *slog.Logger) *Assistant {
	if log == nil {
		log = slog.Default()
	}
	if prompts == nil {
		prompts, _ = NewStickPromptProvider()
	}
	return &Assistant{
		invoker:  invoker,
		builder:  &promptBuilder{prompts: prompts},
		sessions: NewSessionStore(),
		log:      log,
	}
}

// Sessions exposes the session store so callers can manage conversations
// directly (multi-tenant keying, cleanup).
func (a *Assistant) Sessions() *SessionStore { return a.sessions }

func (a *Assistant) session(id string) *Session {
	if id == "" {
		id = defaultSessionID
	}
	return a.sessions.Get(id)
}

// generate runs the single gateway invocation for a call, applying the
// caller's timeout and retry policy.
func (a *Assistant) generate(ctx context.Context, opts Options, def ModelChoice, messages []*Message) (string, error) {
	model := opts.Model.orDefault(def).Resolve()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	var reply string
	err := retryable(func() error {
		r, genErr := a.invoker.Generate(ctx, model, messages, opts.generateConfig())
		if genErr != nil {
			return genErr
		}
		reply = r
		return nil
	}, opts.MaxRetries, opts.Backoff, a.log)
	return reply, err
}

func (a *Assistant) generateParts(ctx context.Context, opts Options, def ModelChoice, parts []*Part) (string, error) {
	return a.generate(ctx, opts, def, []*Message{NewUserMessage(parts...)})
}

// AnalyzeTextResponse is the result of AnalyzeText.
type AnalyzeTextResponse struct {
	Response string `json:"response"`
	Model    Model  `json:"model_used"`
}

// AnalyzeText sends free-form text for analysis.
func (a *Assistant) AnalyzeText(ctx context.Context, req AnalyzeTextRequest, optFns ...Option) (*AnalyzeTextResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}
	parts, err := a.builder.analyzeText(req)
	if err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelFlash, parts)
	if err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}
	return &AnalyzeTextResponse{
		Response: reply,
		Model:    opts.Model.orDefault(ModelFlash).Resolve(),
	}, nil
}

// ChatResponse is the result of Chat.
type ChatResponse struct {
	Response      string `json:"response"`
	SessionID     string `json:"session_id"`
	HistoryLength int    `json:"history_length"`
	Model         Model  `json:"model_used"`
}

// Chat appends the user message to the session, sends the whole history and
// appends the assistant reply on success. On failure the user turn stays in
// the session: context is not silently dropped, at the cost of a failed turn
// still consuming history.
func (a *Assistant) Chat(ctx context.Context, req ChatRequest, optFns ...Option) (*ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}

	session := a.session(opts.SessionID)
	if req.ClearHistory {
		session.Clear()
	}
	history := session.History()
	session.AppendUser(req.Message)

	messages := chatMessages(history, req.Message)
	reply, err := a.generate(ctx, opts, ModelFlash, messages)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	session.AppendAssistant(reply)

	id := opts.SessionID
	if id == "" {
		id = defaultSessionID
	}
	return &ChatResponse{
		Response:      reply,
		SessionID:     id,
		HistoryLength: session.Len(),
		Model:         opts.Model.orDefault(ModelFlash).Resolve(),
	}, nil
}

// HistoryResponse is the result of History.
type HistoryResponse struct {
	History       []Turn `json:"history"`
	TotalMessages int    `json:"total_messages"`
}

// History returns a snapshot of a conversation.
func (a *Assistant) History(sessionID string) *HistoryResponse {
	turns := a.session(sessionID).History()
	return &HistoryResponse{History: turns, TotalMessages: len(turns)}
}

// ClearHistoryResponse is the result of ClearHistory.
type ClearHistoryResponse struct {
	Cleared         bool `json:"cleared"`
	MessagesCleared int  `json:"messages_cleared"`
}

// ClearHistory resets a conversation to empty.
func (a *Assistant) ClearHistory(sessionID string) *ClearHistoryResponse {
	n := a.session(sessionID).Clear()
	return &ClearHistoryResponse{Cleared: true, MessagesCleared: n}
}

// SentimentResponse is the result of Sentiment. Simple mode fills Sentiment
// with the bare classification; detailed mode fills Detail with the model's
// full breakdown.
type SentimentResponse struct {
	Sentiment string `json:"sentiment"`
	Detail    string `json:"detail,omitempty"`
}

// Sentiment classifies the sentiment of a text.
func (a *Assistant) Sentiment(ctx context.Context, req SentimentRequest, optFns ...Option) (*SentimentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("sentiment: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("sentiment: %w", err)
	}
	parts, err := a.builder.sentiment(req)
	if err != nil {
		return nil, fmt.Errorf("sentiment: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelFlash, parts)
	if err != nil {
		return nil, fmt.Errorf("sentiment: %w", err)
	}
	if req.Detailed {
		return &SentimentResponse{Detail: reply}, nil
	}
	return &SentimentResponse{Sentiment: normalizeSentiment(reply)}, nil
}

func normalizeSentiment(reply string) string {
	s := strings.ToLower(strings.TrimSpace(reply))
	s = strings.Trim(s, "\"'.")
	return s
}

// TranslateResponse is the result of Translate.
type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// Translate translates text into the target language.
func (a *Assistant) Translate(ctx context.Context, req TranslateRequest, optFns ...Option) (*TranslateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	parts, err := a.builder.translate(req)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelFlash, parts)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	source := strings.TrimSpace(req.SourceLanguage)
	if source == "" {
		source = "auto"
	}
	return &TranslateResponse{
		TranslatedText: strings.TrimSpace(reply),
		SourceLanguage: source,
		TargetLanguage: req.TargetLanguage,
	}, nil
}

// SummarizeResponse is the result of Summarize.
type SummarizeResponse struct {
	Summary      string        `json:"summary"`
	Length       SummaryLength `json:"summary_length_type"`
	BulletPoints bool          `json:"bullet_points"`
}

// Summarize condenses a text.
func (a *Assistant) Summarize(ctx context.Context, req SummarizeRequest, optFns ...Option) (*SummarizeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	parts, err := a.builder.summarize(req)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelPro, parts)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	length := req.Length
	if length == "" {
		length = SummaryMedium
	}
	return &SummarizeResponse{Summary: reply, Length: length, BulletPoints: req.BulletPoints}, nil
}

// GrammarResponse is the result of GrammarCheck.
type GrammarResponse struct {
	Result   string `json:"result"`
	Language string `json:"language"`
}

// GrammarCheck reviews grammar and spelling.
func (a *Assistant) GrammarCheck(ctx context.Context, req GrammarRequest, optFns ...Option) (*GrammarResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("grammar check: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("grammar check: %w", err)
	}
	parts, err := a.builder.grammar(req)
	if err != nil {
		return nil, fmt.Errorf("grammar check: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelPro, parts)
	if err != nil {
		return nil, fmt.Errorf("grammar check: %w", err)
	}
	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = "español"
	}
	return &GrammarResponse{Result: reply, Language: language}, nil
}

// ImageAnalysisResponse is the result of AnalyzeImage.
type ImageAnalysisResponse struct {
	Analysis   string `json:"analysis"`
	PromptUsed string `json:"prompt_used"`
}

// AnalyzeImage describes or analyzes one image.
func (a *Assistant) AnalyzeImage(ctx context.Context, req AnalyzeImageRequest, optFns ...Option) (*ImageAnalysisResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("analyze image: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("analyze image: %w", err)
	}
	parts, err := a.builder.analyzeImage(req)
	if err != nil {
		return nil, fmt.Errorf("analyze image: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelPro, parts)
	if err != nil {
		return nil, fmt.Errorf("analyze image: %w", err)
	}
	return &ImageAnalysisResponse{Analysis: reply, PromptUsed: parts[0].Text}, nil
}

// ImageComparisonResponse is the result of CompareImages.
type ImageComparisonResponse struct {
	Comparison string `json:"comparison"`
}

// CompareImages describes differences and similarities between two images.
func (a *Assistant) CompareImages(ctx context.Context, req CompareImagesRequest, optFns ...Option) (*ImageComparisonResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("compare images: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("compare images: %w", err)
	}
	parts, err := a.builder.compareImages(req)
	if err != nil {
		return nil, fmt.Errorf("compare images: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelPro, parts)
	if err != nil {
		return nil, fmt.Errorf("compare images: %w", err)
	}
	return &ImageComparisonResponse{Comparison: reply}, nil
}

// ExtractResponse is the result of ExtractStructuredData.
type ExtractResponse struct {
	ExtractedData *ExtractionResult `json:"extracted_data"`
}

// ExtractStructuredData extracts an ordered field → value mapping from
// document text, guided by the caller's schema.
func (a *Assistant) ExtractStructuredData(ctx context.Context, req ExtractRequest, optFns ...Option) (*ExtractResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("extract structured data: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("extract structured data: %w", err)
	}
	parts, err := a.builder.extract(req)
	if err != nil {
		return nil, fmt.Errorf("extract structured data: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelPro, parts)
	if err != nil {
		return nil, fmt.Errorf("extract structured data: %w", err)
	}
	result, err := parseExtraction(reply, req.Schema)
	if err != nil {
		return nil, fmt.Errorf("extract structured data: %w", err)
	}
	return &ExtractResponse{ExtractedData: result}, nil
}

// DocumentAnalysisResponse is the result of AnalyzeDocument.
type DocumentAnalysisResponse struct {
	AnalysisType   DocumentAnalysis `json:"analysis_type"`
	Result         string           `json:"result"`
	DocumentLength int              `json:"document_length"`
}

// AnalyzeDocument analyzes decoded document text.
func (a *Assistant) AnalyzeDocument(ctx context.Context, req AnalyzeDocumentRequest, optFns ...Option) (*DocumentAnalysisResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	parts, err := a.builder.analyzeDocument(req)
	if err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelPro, parts)
	if err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	analysisType := req.AnalysisType
	if analysisType == "" {
		analysisType = DocumentSummary
	}
	return &DocumentAnalysisResponse{
		AnalysisType:   analysisType,
		Result:         reply,
		DocumentLength: len(req.Document),
	}, nil
}

// CSVAnalysisResponse is the result of AnalyzeCSV.
type CSVAnalysisResponse struct {
	Analysis string `json:"analysis"`
	Question string `json:"request"`
}

// AnalyzeCSV answers a question about tabular data.
func (a *Assistant) AnalyzeCSV(ctx context.Context, req AnalyzeCSVRequest, optFns ...Option) (*CSVAnalysisResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("analyze csv: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("analyze csv: %w", err)
	}
	parts, err := a.builder.analyzeCSV(req)
	if err != nil {
		return nil, fmt.Errorf("analyze csv: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelPro, parts)
	if err != nil {
		return nil, fmt.Errorf("analyze csv: %w", err)
	}
	return &CSVAnalysisResponse{Analysis: reply, Question: req.Question}, nil
}

// GenerateContentResponse is the result of GenerateContent.
type GenerateContentResponse struct {
	Content string      `json:"content"`
	Kind    ContentKind `json:"content_type"`
}

// GenerateContent produces creative content from a prompt.
func (a *Assistant) GenerateContent(ctx context.Context, req GenerateContentRequest, optFns ...Option) (*GenerateContentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	parts, err := a.builder.generateContent(req)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	reply, err := a.generateParts(ctx, opts, ModelPro, parts)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	kind := req.Kind
	if kind == "" {
		kind = ContentGeneral
	}
	return &GenerateContentResponse{Content: reply, Kind: kind}, nil
}

// Embedding pairs an input text with its vector.
type Embedding struct {
	Text       string    `json:"text"`
	Values     []float32 `json:"embedding"`
	Dimensions int       `json:"dimensions"`
}

// EmbeddingsResponse is the result of Embeddings.
type EmbeddingsResponse struct {
	Embeddings []Embedding `json:"embeddings"`
	TaskType   string      `json:"task_type"`
}

// Embeddings generates one vector per input text, preserving input order.
// Requests fan out with bounded concurrency.
func (a *Assistant) Embeddings(ctx context.Context, req EmbeddingsRequest, optFns ...Option) (*EmbeddingsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	taskType := req.TaskType
	if taskType == "" {
		taskType = defaultEmbedTaskType
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	runner := opts.Runner
	if runner == nil {
		runner = DefaultRunner(ctx)
	}

	out := make([]Embedding, len(req.Texts))
	for i, text := range req.Texts {
		i, text := i, text
		runner.Go(func() error {
			vectors, embErr := a.invoker.Embed(ctx, []string{text}, taskType)
			if embErr != nil {
				return embErr
			}
			if len(vectors) != 1 {
				return fmt.Errorf("%w: got %d vectors for one text", ErrInternal, len(vectors))
			}
			out[i] = Embedding{Text: text, Values: vectors[0], Dimensions: len(vectors[0])}
			return nil
		})
	}
	if err := runner.Wait(); err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	return &EmbeddingsResponse{Embeddings: out, TaskType: taskType}, nil
}
