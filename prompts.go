package assist

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tyler-sommer/stick"
)

// PromptProvider returns the rendered instruction text for an operation tag.
type PromptProvider interface {
	Render(tag string, vars map[string]any) (string, error)
}

// Prompt template tags, one per operation variant.
const (
	promptAnalyzeText       = "analyze-text"
	promptSentiment         = "sentiment"
	promptSentimentDetailed = "sentiment-detailed"
	promptTranslate         = "translate"
	promptTranslateFrom     = "translate-from"
	promptSummarize         = "summarize"
	promptGrammar           = "grammar"
	promptAnalyzeImage      = "analyze-image"
	promptCompareImages     = "compare-images"
	promptDocSummary        = "document-summary"
	promptDocKeyPoints      = "document-key-points"
	promptDocSentiment      = "document-sentiment"
	promptDocEntities       = "document-entities"
	promptAnalyzeTabular    = "analyze-tabular"
	promptExtract           = "extract"
	promptGenerate          = "generate-content"
)

// DefaultPrompts returns the built-in instruction templates. The wording
// mirrors the production service this library fronts, which answers in
// Spanish by default.
func DefaultPrompts() map[string]string {
	return map[string]string{
		promptAnalyzeText: "{{ text }}",

		promptSentiment: "Analiza el sentimiento del siguiente texto.\n" +
			"Responde solo con: \"positivo\", \"negativo\" o \"neutral\"\n\n" +
			"Texto: {{ text }}",

		promptSentimentDetailed: "Analiza el sentimiento del siguiente texto y proporciona:\n" +
			"1. Sentimiento general (positivo/negativo/neutral)\n" +
			"2. Score de confianza (0-100)\n" +
			"3. Emociones detectadas\n" +
			"4. Aspectos específicos y su sentimiento\n\n" +
			"Texto: {{ text }}\n\n" +
			"Responde en formato JSON.",

		promptTranslate:     "Traduce el siguiente texto a {{ target }}:\n\n{{ text }}",
		promptTranslateFrom: "Traduce el siguiente texto de {{ source }} a {{ target }}:\n\n{{ text }}",

		promptSummarize: "Resume el siguiente texto de forma {{ length }} {{ format }}:\n\n{{ text }}",

		promptGrammar: "Revisa el siguiente texto en {{ language }} y proporciona:\n" +
			"1. Texto corregido\n" +
			"2. Lista de errores encontrados\n" +
			"3. Sugerencias de mejora\n\n" +
			"Texto original:\n{{ text }}\n\n" +
			"Responde en formato JSON con las claves: \"texto_corregido\", \"errores\", \"sugerencias\"",

		promptAnalyzeImage:  "Describe esta imagen en detalle",
		promptCompareImages: "Compara estas dos imágenes y describe sus diferencias y similitudes",

		promptDocSummary:   "Resume el documento anterior de forma concisa.",
		promptDocKeyPoints: "Extrae los puntos clave del documento anterior.",
		promptDocSentiment: "Analiza el sentimiento y tono del documento anterior.",
		promptDocEntities:  "Identifica las entidades principales (personas, lugares, organizaciones) en el documento anterior.",

		promptAnalyzeTabular: "Analiza los datos anteriores y responde la pregunta.\n\n" +
			"Pregunta/Análisis solicitado:\n{{ question }}",

		promptExtract: "Extrae la siguiente información del texto:\n\n" +
			"{{ fields }}\n\n" +
			"Responde únicamente con una línea por campo, en el formato exacto:\n" +
			"campo: valor\n\n" +
			"Si un campo no aparece en el texto, omite su línea.\n\n" +
			"Texto:\n{{ text }}",

		promptGenerate: "{{ prompt }}",
	}
}

// StickPromptProvider renders Twig templates and is fs-agnostic.
type StickPromptProvider struct {
	env       *stick.Env
	templates map[string]string
	vars      map[string]any // variables shared by every template
}

// PromptOption keeps the constructor flexible.
type PromptOption func(*StickPromptProvider) error

// WithFS loads every *.twig file found under dir in the supplied FS.
func WithFS[F fs.FS](fsys F, dir string) PromptOption {
	return func(p *StickPromptProvider) error {
		return fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".twig") {
				return nil
			}
			content, readErr := fs.ReadFile(fsys, path)
			if readErr != nil {
				return fmt.Errorf("read %s: %w", path, readErr)
			}
			tag := strings.TrimSuffix(filepath.Base(path), ".twig")
			p.templates[tag] = string(content)
			return nil
		})
	}
}

// WithTemplates merges an in-memory template map, overriding defaults with
// the same tag.
func WithTemplates(m map[string]string) PromptOption {
	return func(p *StickPromptProvider) error {
		for k, v := range m {
			p.templates[k] = v
		}
		return nil
	}
}

// WithPromptVar adds a variable available in every template.
func WithPromptVar(key string, value any) PromptOption {
	return func(p *StickPromptProvider) error {
		p.vars[key] = value
		return nil
	}
}

// NewStickPromptProvider builds a provider pre-loaded with the default
// templates; options may override or extend them.
func NewStickPromptProvider(opts ...PromptOption) (*StickPromptProvider, error) {
	p := &StickPromptProvider{
		env:       stick.New(nil),
		templates: DefaultPrompts(),
		vars:      make(map[string]any),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddTemplate updates or inserts one template.
func (p *StickPromptProvider) AddTemplate(tag, tpl string) { p.templates[tag] = tpl }

// Render executes the template for tag with the given variables.
func (p *StickPromptProvider) Render(tag string, vars map[string]any) (string, error) {
	tpl, ok := p.templates[tag]
	if !ok {
		return "", fmt.Errorf("template %q not found", tag)
	}

	templateCtx := make(map[string]stick.Value, len(p.vars)+len(vars)+1)
	templateCtx["tag"] = tag
	for k, v := range p.vars {
		templateCtx[k] = v
	}
	for k, v := range vars {
		templateCtx[k] = v
	}

	var out strings.Builder
	if err := p.env.Execute(tpl, &out, templateCtx); err != nil {
		return "", fmt.Errorf("execute %q: %w", tag, err)
	}
	return out.String(), nil
}
