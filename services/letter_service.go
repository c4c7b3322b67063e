package services

import (
	"strings"

	"github.com/waxsealmail/go-waxseal-server/types"
)

// the fixed set of recognized placeholder tokens
var letterTokens = []string{"FirstName", "LastName", "FullName", "City"}

// RenderLetter replaces every {{Token}} occurrence with its substitution
// value. Unrecognized placeholders are left verbatim.
func RenderLetter(text string, data map[string]string) string {
	for _, token := range letterTokens {
		if value, ok := data[token]; ok {
			text = strings.ReplaceAll(text, "{{"+token+"}}", value)
		}
	}
	return text
}

// SampleRecipient is the substitution set used for composer previews
func SampleRecipient() map[string]string {
	return map[string]string{
		"FirstName": "John",
		"LastName":  "Doe",
		"FullName":  "John Doe",
		"City":      "New York",
	}
}

// RecipientTokens builds the substitution set for one real recipient
func RecipientTokens(a *types.Address) map[string]string {
	return map[string]string{
		"FirstName": a.FirstName,
		"LastName":  a.LastName,
		"FullName":  a.FullName,
		"City":      a.City,
	}
}

// RenderPreview renders the letter against the given recipient data
func RenderPreview(letter *types.Letter, data map[string]string) *types.OutputPreview {
	return &types.OutputPreview{
		Subject:   RenderLetter(letter.Subject, data),
		Body:      RenderLetter(letter.Body, data),
		Closing:   letter.Closing,
		Signature: letter.Signature,
	}
}
