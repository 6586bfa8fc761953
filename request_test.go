package assist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestValidation(t *testing.T) {
	valid := []struct {
		name string
		req  interface{ Validate() error }
	}{
		{"analyze text", AnalyzeTextRequest{Text: "hola"}},
		{"chat", ChatRequest{Message: "hola"}},
		{"sentiment", SentimentRequest{Text: "hola"}},
		{"translate", TranslateRequest{Text: "hola", TargetLanguage: "inglés"}},
		{"summarize default length", SummarizeRequest{Text: "hola"}},
		{"summarize long", SummarizeRequest{Text: "hola", Length: SummaryLong}},
		{"grammar", GrammarRequest{Text: "hola"}},
		{"image", AnalyzeImageRequest{Image: []byte("x")}},
		{"compare", CompareImagesRequest{ImageA: []byte("a"), ImageB: []byte("b")}},
		{"extract", ExtractRequest{Document: []byte("x"), Schema: NewSchema().Add("f", "d")}},
		{"document", AnalyzeDocumentRequest{Document: []byte("x")}},
		{"csv", AnalyzeCSVRequest{File: []byte("a,b"), Question: "¿qué?"}},
		{"generate", GenerateContentRequest{Prompt: "algo", Kind: ContentCode}},
		{"embeddings", EmbeddingsRequest{Texts: []string{"uno", "dos"}}},
	}
	for _, tc := range valid {
		t.Run("valid "+tc.name, func(t *testing.T) {
			assert.NoError(t, tc.req.Validate())
		})
	}

	invalid := []struct {
		name string
		req  interface{ Validate() error }
	}{
		{"whitespace text", AnalyzeTextRequest{Text: " \t\n"}},
		{"empty message", ChatRequest{}},
		{"missing target language", TranslateRequest{Text: "hola"}},
		{"unknown summary length", SummarizeRequest{Text: "hola", Length: "gigantic"}},
		{"no image bytes", AnalyzeImageRequest{Prompt: "describe"}},
		{"one image missing", CompareImagesRequest{ImageA: []byte("a")}},
		{"nil schema", ExtractRequest{Document: []byte("x")}},
		{"empty schema", ExtractRequest{Document: []byte("x"), Schema: NewSchema()}},
		{"unknown analysis type", AnalyzeDocumentRequest{Document: []byte("x"), AnalysisType: "haiku"}},
		{"csv without question", AnalyzeCSVRequest{File: []byte("a,b")}},
		{"unknown content kind", GenerateContentRequest{Prompt: "x", Kind: "screenplay"}},
		{"no texts", EmbeddingsRequest{}},
		{"blank embedded text", EmbeddingsRequest{Texts: []string{"ok", "  "}}},
	}
	for _, tc := range invalid {
		t.Run("invalid "+tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestBuildOptions(t *testing.T) {
	t.Run("temperature in range", func(t *testing.T) {
		opts, err := buildOptions([]Option{WithTemperature(1.5), WithModel(ModelPro)})
		assert.NoError(t, err)
		assert.Equal(t, float32(1.5), *opts.Temperature)
		assert.Equal(t, ModelPro, opts.Model)
	})

	t.Run("temperature bounds are inclusive", func(t *testing.T) {
		_, err := buildOptions([]Option{WithTemperature(0)})
		assert.NoError(t, err)
		_, err = buildOptions([]Option{WithTemperature(2)})
		assert.NoError(t, err)
	})

	t.Run("unknown model rejected", func(t *testing.T) {
		_, err := buildOptions([]Option{WithModel("ultra")})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("topP out of range rejected", func(t *testing.T) {
		_, err := buildOptions([]Option{WithTopP(1.2)})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("topK must be positive", func(t *testing.T) {
		_, err := buildOptions([]Option{WithTopK(0)})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

func TestModelChoiceResolve(t *testing.T) {
	assert.Equal(t, modelNameFlash, ModelFlash.Resolve())
	assert.Equal(t, modelNamePro, ModelPro.Resolve())
	assert.Equal(t, modelNameFlash, ModelChoice("").Resolve())
}
