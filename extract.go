package assist

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Schema is an ordered field → description mapping that drives extraction.
// Field order is preserved into the result.
type Schema struct {
	fields *orderedmap.OrderedMap[string, string]
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{fields: orderedmap.New[string, string]()}
}

// Add appends or updates a field. It returns the schema for chaining.
func (s *Schema) Add(name, description string) *Schema {
	s.fields.Set(name, description)
	return s
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	if s == nil || s.fields == nil {
		return 0
	}
	return s.fields.Len()
}

// Names returns the field names in insertion order.
func (s *Schema) Names() []string {
	out := make([]string, 0, s.Len())
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// enumerate renders the "- field: description" listing used in the
// extraction instruction.
func (s *Schema) enumerate() string {
	var sb strings.Builder
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		sb.WriteString("- ")
		sb.WriteString(pair.Key)
		sb.WriteString(": ")
		sb.WriteString(pair.Value)
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ExtractionResult maps each schema field, in schema order, to its extracted
// value or nil when the model did not address it. JSON marshaling keeps the
// field order.
type ExtractionResult struct {
	*orderedmap.OrderedMap[string, *string]
}

// Value returns the extracted value for a field; nil means not found.
func (r *ExtractionResult) Value(field string) *string {
	v, _ := r.Get(field)
	return v
}

// parseExtraction reads the model reply line by line. Each line of the form
// "field: value" whose field matches the schema populates that entry;
// anything else is ignored. A reply with zero matches is a total failure,
// distinct from "all fields null".
func parseExtraction(reply string, schema *Schema) (*ExtractionResult, error) {
	result := &ExtractionResult{orderedmap.New[string, *string]()}
	canonical := make(map[string]string, schema.Len())
	for _, name := range schema.Names() {
		result.Set(name, nil)
		canonical[strings.ToLower(name)] = name
	}

	matches := 0
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.Trim(strings.TrimSpace(key), "*`\"")
		name, known := canonical[strings.ToLower(key)]
		if !known {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		result.Set(name, &value)
		matches++
	}

	if matches == 0 {
		return nil, fmt.Errorf("no field lines recognized in reply: %w", ErrUnparseableResponse)
	}
	return result, nil
}
