package types

// OutputImport reports the aggregate outcome of a CSV ingestion
type OutputImport struct {
	Message   string    `json:"message"`
	Count     int       `json:"count"`
	Skipped   int       `json:"skipped"`
	Headers   []string  `json:"headers"`
	Addresses []Address `json:"addresses"`
}

type OutputAddressList struct {
	Count     int       `json:"count"`
	Addresses []Address `json:"addresses"`
}

// OutputPreview is letter content with placeholder tokens substituted
type OutputPreview struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Closing   string `json:"closing"`
	Signature string `json:"signature"`
}

type OutputCheckout struct {
	URL string `json:"url"`
}

type OutputSeal struct {
	Image string `json:"image"` // data URL of the composited letter
}

type OutputAssociate struct {
	Queued bool `json:"queued"`
}

type OutputSession struct {
	SessionID string `json:"sessionId"`
}
