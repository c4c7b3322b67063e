package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waxsealmail/go-waxseal-server/types"
)

func TestRenderLetter(t *testing.T) {
	out := RenderLetter("Dear {{FirstName}} {{LastName}},", SampleRecipient())
	assert.Equal(t, "Dear John Doe,", out)
}

func TestRenderLetterUnknownTokenKeptVerbatim(t *testing.T) {
	out := RenderLetter("Hello {{Nickname}}", SampleRecipient())
	assert.Equal(t, "Hello {{Nickname}}", out)
}

func TestRenderLetterRepeatedToken(t *testing.T) {
	out := RenderLetter("{{FirstName}} and {{FirstName}}", SampleRecipient())
	assert.Equal(t, "John and John", out)
}

func TestRenderPreviewWithRecipient(t *testing.T) {
	letter := &types.Letter{
		Subject:   "Dear {{FirstName}},",
		Body:      "Greetings from {{City}}.",
		Closing:   "Sincerely,",
		Signature: "WaxSeal",
	}
	recipient := RecipientTokens(&types.Address{
		FirstName: "Jane",
		LastName:  "Smith",
		FullName:  "Jane Smith",
		City:      "Boston",
	})

	preview := RenderPreview(letter, recipient)
	assert.Equal(t, "Dear Jane,", preview.Subject)
	assert.Equal(t, "Greetings from Boston.", preview.Body)
	assert.Equal(t, "Sincerely,", preview.Closing)
	assert.Equal(t, "WaxSeal", preview.Signature)
}

func TestRenderPreviewSampleRecipient(t *testing.T) {
	letter := &types.Letter{Subject: "Dear {{FullName}},"}
	preview := RenderPreview(letter, SampleRecipient())
	assert.Equal(t, "Dear John Doe,", preview.Subject)
}
