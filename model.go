package assist

// Model represents a model identifier as sent to the backend.
type Model string

// ModelChoice selects between the two configured Gemini tiers.
type ModelChoice string

const (
	// ModelFlash is the fast, cheaper tier. It is the default for text
	// operations.
	ModelFlash ModelChoice = "flash"
	// ModelPro is the multimodal-capable tier used for vision and
	// document reasoning.
	ModelPro ModelChoice = "pro"
)

const (
	modelNameFlash Model = "gemini-1.5-flash-latest"
	modelNamePro   Model = "gemini-1.5-pro-latest"
)

// Resolve maps the choice to the concrete backend model name. Unknown or
// empty choices resolve to the flash tier.
func (c ModelChoice) Resolve() Model {
	if c == ModelPro {
		return modelNamePro
	}
	return modelNameFlash
}

// Valid reports whether the choice names a known tier. The empty choice is
// valid and means "use the operation default".
func (c ModelChoice) Valid() bool {
	return c == "" || c == ModelFlash || c == ModelPro
}

// orDefault substitutes def when the choice is empty.
func (c ModelChoice) orDefault(def ModelChoice) ModelChoice {
	if c == "" {
		return def
	}
	return c
}
