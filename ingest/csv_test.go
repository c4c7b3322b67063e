package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLineSimple(t *testing.T) {
	values := ParseLine("John Doe,123 Main St")
	assert.Equal(t, []string{"John Doe", "123 Main St"}, values)
}

func TestParseLineQuotedComma(t *testing.T) {
	values := ParseLine(`"John Doe","123 Main St, Springfield, IL 62704"`)
	assert.Equal(t, []string{"John Doe", "123 Main St, Springfield, IL 62704"}, values)
}

func TestParseLineTrimsWhitespace(t *testing.T) {
	values := ParseLine(` John , 123 Main St `)
	assert.Equal(t, []string{"John", "123 Main St"}, values)
}

func TestParseLineEmptyFields(t *testing.T) {
	values := ParseLine("a,,c")
	assert.Equal(t, []string{"a", "", "c"}, values)
}

func TestParseLineTrailingComma(t *testing.T) {
	values := ParseLine("a,b,")
	assert.Equal(t, []string{"a", "b", ""}, values)
}

func TestParseLineUnterminatedQuote(t *testing.T) {
	// the rest of the line becomes one field
	values := ParseLine(`"John, still John`)
	assert.Equal(t, []string{"John, still John"}, values)
}
