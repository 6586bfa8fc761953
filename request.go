package assist

import (
	"fmt"
	"strings"
)

// SummaryLength controls how long a summary should be.
type SummaryLength string

const (
	SummaryShort  SummaryLength = "short"
	SummaryMedium SummaryLength = "medium"
	SummaryLong   SummaryLength = "long"
)

// DocumentAnalysis selects the angle of a document analysis.
type DocumentAnalysis string

const (
	DocumentSummary   DocumentAnalysis = "summary"
	DocumentKeyPoints DocumentAnalysis = "key_points"
	DocumentSentiment DocumentAnalysis = "sentiment"
	DocumentEntities  DocumentAnalysis = "entities"
)

// ContentKind selects the flavor of generated content.
type ContentKind string

const (
	ContentStory   ContentKind = "story"
	ContentPoem    ContentKind = "poem"
	ContentArticle ContentKind = "article"
	ContentCode    ContentKind = "code"
	ContentGeneral ContentKind = "general"
)

// AnalyzeTextRequest asks for a free-form analysis of text.
type AnalyzeTextRequest struct {
	Text string
}

func (r AnalyzeTextRequest) Validate() error {
	return requireText("text", r.Text)
}

// ChatRequest adds one user message to a conversation.
type ChatRequest struct {
	Message      string
	ClearHistory bool // reset the session before answering
}

func (r ChatRequest) Validate() error {
	return requireText("message", r.Message)
}

// SentimentRequest asks for sentiment classification.
type SentimentRequest struct {
	Text     string
	Detailed bool
}

func (r SentimentRequest) Validate() error {
	return requireText("text", r.Text)
}

// TranslateRequest asks for a translation. An empty SourceLanguage means
// automatic detection.
type TranslateRequest struct {
	Text           string
	TargetLanguage string
	SourceLanguage string
}

func (r TranslateRequest) Validate() error {
	if err := requireText("text", r.Text); err != nil {
		return err
	}
	return requireText("target_language", r.TargetLanguage)
}

// SummarizeRequest asks for a summary.
type SummarizeRequest struct {
	Text         string
	Length       SummaryLength // empty → medium
	BulletPoints bool
}

func (r SummarizeRequest) Validate() error {
	if err := requireText("text", r.Text); err != nil {
		return err
	}
	switch r.Length {
	case "", SummaryShort, SummaryMedium, SummaryLong:
		return nil
	}
	return fmt.Errorf("summary_length %q: %w", r.Length, ErrInvalidInput)
}

// GrammarRequest asks for grammar and spelling review. An empty Language
// defaults to Spanish, matching the service this library fronts.
type GrammarRequest struct {
	Text     string
	Language string
}

func (r GrammarRequest) Validate() error {
	return requireText("text", r.Text)
}

// AnalyzeImageRequest asks for a description of one image. The bytes must
// come from the upstream file-validation layer.
type AnalyzeImageRequest struct {
	Image    []byte
	MimeType string // optional, detected from bytes when empty
	Prompt   string // optional, defaults to the built-in instruction
}

func (r AnalyzeImageRequest) Validate() error {
	return requireBytes("image", r.Image)
}

// CompareImagesRequest asks for a comparison of two images.
type CompareImagesRequest struct {
	ImageA    []byte
	ImageB    []byte
	MimeTypeA string
	MimeTypeB string
	Prompt    string // optional
}

func (r CompareImagesRequest) Validate() error {
	if err := requireBytes("image_a", r.ImageA); err != nil {
		return err
	}
	return requireBytes("image_b", r.ImageB)
}

// ExtractRequest asks for schema-guided extraction from decoded document
// text bytes.
type ExtractRequest struct {
	Document []byte
	Schema   *Schema
}

func (r ExtractRequest) Validate() error {
	if err := requireBytes("document", r.Document); err != nil {
		return err
	}
	if r.Schema == nil || r.Schema.Len() == 0 {
		return fmt.Errorf("schema is empty: %w", ErrInvalidInput)
	}
	return nil
}

// AnalyzeDocumentRequest asks for an analysis of decoded document text.
type AnalyzeDocumentRequest struct {
	Document     []byte
	AnalysisType DocumentAnalysis // empty → summary
}

func (r AnalyzeDocumentRequest) Validate() error {
	if err := requireBytes("document", r.Document); err != nil {
		return err
	}
	switch r.AnalysisType {
	case "", DocumentSummary, DocumentKeyPoints, DocumentSentiment, DocumentEntities:
		return nil
	}
	return fmt.Errorf("analysis_type %q: %w", r.AnalysisType, ErrInvalidInput)
}

// AnalyzeCSVRequest asks a question about tabular data.
type AnalyzeCSVRequest struct {
	File     []byte
	Question string
}

func (r AnalyzeCSVRequest) Validate() error {
	if err := requireBytes("file", r.File); err != nil {
		return err
	}
	return requireText("question", r.Question)
}

// GenerateContentRequest asks for creative content.
type GenerateContentRequest struct {
	Prompt string
	Kind   ContentKind // empty → general
}

func (r GenerateContentRequest) Validate() error {
	if err := requireText("prompt", r.Prompt); err != nil {
		return err
	}
	switch r.Kind {
	case "", ContentStory, ContentPoem, ContentArticle, ContentCode, ContentGeneral:
		return nil
	}
	return fmt.Errorf("kind %q: %w", r.Kind, ErrInvalidInput)
}

// EmbeddingsRequest asks for one embedding vector per text.
type EmbeddingsRequest struct {
	Texts    []string
	TaskType string // empty → retrieval_document
}

func (r EmbeddingsRequest) Validate() error {
	if len(r.Texts) == 0 {
		return fmt.Errorf("texts is empty: %w", ErrInvalidInput)
	}
	for i, t := range r.Texts {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("texts[%d] is empty: %w", i, ErrInvalidInput)
		}
	}
	return nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is empty: %w", field, ErrInvalidInput)
	}
	return nil
}

func requireBytes(field string, value []byte) error {
	if len(value) == 0 {
		return fmt.Errorf("%s is empty: %w", field, ErrInvalidInput)
	}
	return nil
}
