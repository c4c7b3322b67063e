package ingest

import "strings"

// ParseLine splits one CSV line into its field values. A double quote
// toggles quoted mode and is not emitted; a comma inside quotes is a
// literal character. Doubled quotes are not unescaped (simple-toggle
// semantics, kept intentionally).
func ParseLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false

	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
		case char == ',' && !inQuotes:
			result = append(result, current.String())
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}
	result = append(result, current.String())

	for i, val := range result {
		val = strings.TrimPrefix(val, `"`)
		val = strings.TrimSuffix(val, `"`)
		result[i] = strings.TrimSpace(val)
	}
	return result
}
