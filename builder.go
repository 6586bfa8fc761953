package assist

import (
	"bytes"
	"encoding/csv"
	"strings"
)

// promptBuilder turns validated requests into instruction text and ordered
// prompt parts. Builders are pure: same request, same parts.
type promptBuilder struct {
	prompts PromptProvider
}

// Preview bounds for tabular data embedded into a prompt.
const (
	previewMaxRows = 50
	previewMaxCols = 20
	previewMaxRaw  = 8192
)

var summaryLengthPhrases = map[SummaryLength]string{
	SummaryShort:  "muy breve (2-3 oraciones)",
	SummaryMedium: "moderado (1 párrafo)",
	SummaryLong:   "detallado (2-3 párrafos)",
}

var contentKindPrefixes = map[ContentKind]string{
	ContentStory:   "Escribe una historia creativa sobre:",
	ContentPoem:    "Escribe un poema sobre:",
	ContentArticle: "Escribe un artículo informativo sobre:",
	ContentCode:    "Genera código para:",
	ContentGeneral: "",
}

func (b *promptBuilder) analyzeText(req AnalyzeTextRequest) ([]*Part, error) {
	text, err := b.prompts.Render(promptAnalyzeText, map[string]any{"text": req.Text})
	if err != nil {
		return nil, err
	}
	return []*Part{NewTextPart(text)}, nil
}

func (b *promptBuilder) sentiment(req SentimentRequest) ([]*Part, error) {
	tag := promptSentiment
	if req.Detailed {
		tag = promptSentimentDetailed
	}
	text, err := b.prompts.Render(tag, map[string]any{"text": req.Text})
	if err != nil {
		return nil, err
	}
	return []*Part{NewTextPart(text)}, nil
}

func (b *promptBuilder) translate(req TranslateRequest) ([]*Part, error) {
	source := strings.TrimSpace(req.SourceLanguage)
	tag := promptTranslate
	vars := map[string]any{"text": req.Text, "target": req.TargetLanguage}
	if source != "" && source != "auto" {
		tag = promptTranslateFrom
		vars["source"] = source
	}
	text, err := b.prompts.Render(tag, vars)
	if err != nil {
		return nil, err
	}
	return []*Part{NewTextPart(text)}, nil
}

func (b *promptBuilder) summarize(req SummarizeRequest) ([]*Part, error) {
	length := req.Length
	if length == "" {
		length = SummaryMedium
	}
	format := "en formato de párrafo"
	if req.BulletPoints {
		format = "en formato de puntos clave"
	}
	text, err := b.prompts.Render(promptSummarize, map[string]any{
		"text":   req.Text,
		"length": summaryLengthPhrases[length],
		"format": format,
	})
	if err != nil {
		return nil, err
	}
	return []*Part{NewTextPart(text)}, nil
}

func (b *promptBuilder) grammar(req GrammarRequest) ([]*Part, error) {
	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = "español"
	}
	text, err := b.prompts.Render(promptGrammar, map[string]any{
		"text":     req.Text,
		"language": language,
	})
	if err != nil {
		return nil, err
	}
	return []*Part{NewTextPart(text)}, nil
}

// analyzeImage attaches the image as a binary part after the instruction.
func (b *promptBuilder) analyzeImage(req AnalyzeImageRequest) ([]*Part, error) {
	instruction := strings.TrimSpace(req.Prompt)
	if instruction == "" {
		rendered, err := b.prompts.Render(promptAnalyzeImage, nil)
		if err != nil {
			return nil, err
		}
		instruction = rendered
	}
	return []*Part{
		NewTextPart(instruction),
		NewImagePart(req.Image, req.MimeType),
	}, nil
}

// compareImages keeps a single instruction referencing both images, then
// both binary parts in request order.
func (b *promptBuilder) compareImages(req CompareImagesRequest) ([]*Part, error) {
	instruction := strings.TrimSpace(req.Prompt)
	if instruction == "" {
		rendered, err := b.prompts.Render(promptCompareImages, nil)
		if err != nil {
			return nil, err
		}
		instruction = rendered
	}
	return []*Part{
		NewTextPart(instruction),
		NewImagePart(req.ImageA, req.MimeTypeA),
		NewImagePart(req.ImageB, req.MimeTypeB),
	}, nil
}

// analyzeDocument embeds the decoded document content as a text segment
// preceding the instruction. These operations reason over decoded content,
// never raw bytes.
func (b *promptBuilder) analyzeDocument(req AnalyzeDocumentRequest) ([]*Part, error) {
	tag := promptDocSummary
	switch req.AnalysisType {
	case DocumentKeyPoints:
		tag = promptDocKeyPoints
	case DocumentSentiment:
		tag = promptDocSentiment
	case DocumentEntities:
		tag = promptDocEntities
	}
	instruction, err := b.prompts.Render(tag, nil)
	if err != nil {
		return nil, err
	}
	return []*Part{
		NewTextPart(string(req.Document)),
		NewTextPart(instruction),
	}, nil
}

// analyzeCSV embeds a bounded textual preview of the tabular data before
// the instruction.
func (b *promptBuilder) analyzeCSV(req AnalyzeCSVRequest) ([]*Part, error) {
	instruction, err := b.prompts.Render(promptAnalyzeTabular, map[string]any{
		"question": req.Question,
	})
	if err != nil {
		return nil, err
	}
	preview := tabularPreview(req.File, previewMaxRows, previewMaxCols)
	return []*Part{
		NewTextPart("Datos:\n" + preview),
		NewTextPart(instruction),
	}, nil
}

func (b *promptBuilder) generateContent(req GenerateContentRequest) ([]*Part, error) {
	kind := req.Kind
	if kind == "" {
		kind = ContentGeneral
	}
	text, err := b.prompts.Render(promptGenerate, map[string]any{"prompt": req.Prompt})
	if err != nil {
		return nil, err
	}
	if prefix := contentKindPrefixes[kind]; prefix != "" {
		text = prefix + " " + text
	}
	return []*Part{NewTextPart(text)}, nil
}

func (b *promptBuilder) extract(req ExtractRequest) ([]*Part, error) {
	text, err := b.prompts.Render(promptExtract, map[string]any{
		"fields": req.Schema.enumerate(),
		"text":   string(req.Document),
	})
	if err != nil {
		return nil, err
	}
	return []*Part{NewTextPart(text)}, nil
}

// chatMessages rebuilds the conversation as role-alternating messages and
// appends the new user message last.
func chatMessages(history []Turn, message string) []*Message {
	msgs := make([]*Message, 0, len(history)+1)
	for _, turn := range history {
		part := NewTextPart(turn.Text)
		if turn.Role == RoleAssistant {
			msgs = append(msgs, NewAssistantMessage(part))
		} else {
			msgs = append(msgs, NewUserMessage(part))
		}
	}
	return append(msgs, NewUserMessage(NewTextPart(message)))
}

// tabularPreview renders the first rows and columns of CSV data as text.
// Ragged or unparseable input degrades to a truncated raw dump rather than
// failing the call.
func tabularPreview(data []byte, maxRows, maxCols int) string {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var sb strings.Builder
	rows := 0
	truncated := false
	for rows < maxRows {
		record, err := reader.Read()
		if err != nil {
			if rows == 0 {
				return rawPreview(data)
			}
			break
		}
		if len(record) > maxCols {
			record = record[:maxCols]
			truncated = true
		}
		sb.WriteString(strings.Join(record, ", "))
		sb.WriteByte('\n')
		rows++
	}
	if rows == maxRows {
		if _, err := reader.Read(); err == nil {
			truncated = true
		}
	}
	if truncated {
		sb.WriteString("…\n")
	}
	return sb.String()
}

func rawPreview(data []byte) string {
	if len(data) > previewMaxRaw {
		return string(data[:previewMaxRaw]) + "…"
	}
	return string(data)
}
