package ingest

import (
	"errors"
	"strings"

	"github.com/waxsealmail/go-waxseal-server/types"
)

const (
	RejectColumnCount = "column count does not match header"
	RejectNormalize   = "missing required name or address data"
)

// Rejection records one silently-skipped row, for tests and diagnostics.
// Only the aggregate count reaches the user.
type Rejection struct {
	Line   int    `json:"line"` // 1-based line number in the input text
	Reason string `json:"reason"`
}

// Result is the outcome of a successful ingestion. Address order matches
// input row order; duplicates are preserved.
type Result struct {
	Headers    []string        `json:"headers"`
	Addresses  []types.Address `json:"addresses"`
	Rejections []Rejection     `json:"rejections,omitempty"`
}

// Parse ingests a whole CSV file: header validation, per-row
// normalization, silent skip of malformed rows.
func Parse(csvText string) (*Result, error) {
	type numberedLine struct {
		number int
		text   string
	}
	var lines []numberedLine
	for i, line := range strings.Split(csvText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, numberedLine{number: i + 1, text: line})
	}
	if len(lines) < 2 {
		return nil, errors.New("CSV file must contain a header row and at least one data row.")
	}

	headers := ParseLine(lines[0].text)
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	validation := ValidateHeaders(headers)
	if !validation.Valid {
		return nil, errors.New(validation.Message)
	}

	resolver := NewFieldResolver(headers)
	result := &Result{Headers: headers}
	for _, line := range lines[1:] {
		values := ParseLine(line.text)
		if len(values) != len(headers) {
			result.Rejections = append(result.Rejections, Rejection{Line: line.number, Reason: RejectColumnCount})
			continue
		}
		normalized := Normalize(resolver, values)
		if normalized == nil {
			result.Rejections = append(result.Rejections, Rejection{Line: line.number, Reason: RejectNormalize})
			continue
		}
		result.Addresses = append(result.Addresses, *normalized)
	}

	if len(result.Addresses) == 0 {
		return nil, errors.New("No valid addresses found in the CSV file.")
	}
	return result, nil
}
