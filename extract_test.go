package assist

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func medicalSchema() *Schema {
	return NewSchema().
		Add("paciente", "nombre completo del paciente").
		Add("edad", "edad en años").
		Add("diagnostico", "diagnóstico principal")
}

func TestSchema_Enumerate(t *testing.T) {
	schema := medicalSchema()

	assert.Equal(t, 3, schema.Len())
	assert.Equal(t, []string{"paciente", "edad", "diagnostico"}, schema.Names())
	assert.Equal(t,
		"- paciente: nombre completo del paciente\n"+
			"- edad: edad en años\n"+
			"- diagnostico: diagnóstico principal",
		schema.enumerate())
}

func TestParseExtraction_PartialMatch(t *testing.T) {
	result, err := parseExtraction("paciente: Ana\nedad: 34", medicalSchema())
	require.NoError(t, err)

	require.NotNil(t, result.Value("paciente"))
	assert.Equal(t, "Ana", *result.Value("paciente"))
	require.NotNil(t, result.Value("edad"))
	assert.Equal(t, "34", *result.Value("edad"))
	assert.Nil(t, result.Value("diagnostico"))
}

func TestParseExtraction_PreservesSchemaOrder(t *testing.T) {
	result, err := parseExtraction("edad: 34\npaciente: Ana", medicalSchema())
	require.NoError(t, err)

	var order []string
	for pair := result.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	assert.Equal(t, []string{"paciente", "edad", "diagnostico"}, order)
}

func TestParseExtraction_ZeroMatchesIsError(t *testing.T) {
	result, err := parseExtraction("Lo siento, no puedo ayudarte con eso.", medicalSchema())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnparseableResponse))
	assert.Nil(t, result)
}

func TestParseExtraction_IgnoresUnknownAndDecoratedLines(t *testing.T) {
	reply := "Aquí están los datos:\n" +
		"- paciente: Ana López\n" +
		"* edad: 34\n" +
		"telefono: 555-1234\n" + // not in schema
		"\n" +
		"sin separador en esta línea\n"

	result, err := parseExtraction(reply, medicalSchema())
	require.NoError(t, err)
	assert.Equal(t, "Ana López", *result.Value("paciente"))
	assert.Equal(t, "34", *result.Value("edad"))
	assert.Nil(t, result.Value("diagnostico"))
}

func TestParseExtraction_CaseInsensitiveFieldMatch(t *testing.T) {
	result, err := parseExtraction("Paciente: Ana", medicalSchema())
	require.NoError(t, err)
	assert.Equal(t, "Ana", *result.Value("paciente"))
}

func TestParseExtraction_ValueKeepsInnerColons(t *testing.T) {
	schema := NewSchema().Add("hora", "hora de la cita")
	result, err := parseExtraction("hora: 14:30:00", schema)
	require.NoError(t, err)
	assert.Equal(t, "14:30:00", *result.Value("hora"))
}

func TestExtractionResult_MarshalPreservesOrder(t *testing.T) {
	result, err := parseExtraction("paciente: Ana\nedad: 34", medicalSchema())
	require.NoError(t, err)

	data, err := result.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"paciente":"Ana","edad":"34","diagnostico":null}`, string(data))

	// Order matters at the boundary: paciente must serialize first.
	s := string(data)
	assert.Less(t, strings.Index(s, "paciente"), strings.Index(s, "edad"))
	assert.Less(t, strings.Index(s, "edad"), strings.Index(s, "diagnostico"))
}
