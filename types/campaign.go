package types

import "strings"

// Address is the canonical recipient record produced by CSV ingestion or
// manual entry. When a combined full address was supplied the street/city/
// state/zip fields stay empty.
type Address struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	FullName    string `json:"fullName"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	FullAddress string `json:"fullAddress"`
}

// Valid reports whether the record carries the minimum data required to
// print and mail a letter
func (a *Address) Valid() bool {
	return a.FullName != "" && (a.FullAddress != "" || a.Street != "")
}

// Letter is the form-letter content. Subject and Body may contain
// placeholder tokens of the form {{TokenName}}
type Letter struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Closing   string `json:"closing"`
	Signature string `json:"signature"`
}

type ReturnAddress struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusSubmitted = "submitted"
)

// Campaign is the top-level aggregate of one mail-merge job
type Campaign struct {
	ID  string `json:"_id,omitempty"`
	Rev string `json:"_rev,omitempty"`

	UserID    string `json:"userId,omitempty"`    // empty until the user authenticates
	SessionID string `json:"sessionId,omitempty"` // anonymous session fallback

	Name             string        `json:"name"`
	StampImage       string        `json:"stampImage,omitempty"`       // data URL, kept for instant preview
	StampImageURL    string        `json:"stampImageUrl,omitempty"`    // object storage URL
	SealLetterImage  string        `json:"sealLetterImage,omitempty"`  // generated letter preview (data URL)
	SealLetterURL    string        `json:"sealLetterImageUrl,omitempty"`
	Addresses        []Address     `json:"addresses"`
	Letter           Letter        `json:"letter"`
	ReturnAddress    ReturnAddress `json:"returnAddress"`
	CurrentStep      int           `json:"currentStep"`
	Status           string        `json:"status,omitempty"`
	IsSample         bool          `json:"isSample"`
	RecipientCount   int           `json:"recipientCount"`
	Created          int64         `json:"created,omitempty"`  // unix millis, server assigned
	Modified         int64         `json:"modified,omitempty"` // unix millis, server assigned
}

// NewCampaign returns an empty draft with the workflow defaults
func NewCampaign() *Campaign {
	return &Campaign{
		Addresses: []Address{},
		Letter: Letter{
			Subject: "Dear {{FirstName}},",
			Closing: "Sincerely,",
		},
		ReturnAddress: ReturnAddress{Country: "USA"},
		CurrentStep:   1,
	}
}

// HasContent reports whether the campaign carries anything worth persisting
// remotely. Guards against creating empty drafts on every page visit.
func (c *Campaign) HasContent() bool {
	return c.StampImage != "" ||
		c.SealLetterImage != "" ||
		len(c.Addresses) > 0 ||
		strings.TrimSpace(c.Letter.Body) != "" ||
		strings.TrimSpace(c.Letter.Signature) != "" ||
		strings.TrimSpace(c.Name) != ""
}

// AnonymousSession tracks campaigns created before the user signed in
type AnonymousSession struct {
	ID           string `json:"_id,omitempty"`
	Rev          string `json:"_rev,omitempty"`
	Created      int64  `json:"created"`
	LastAccessed int64  `json:"lastAccessed"`
}
