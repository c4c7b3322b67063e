package types

// InputCsvImport carries the raw CSV file text
type InputCsvImport struct {
	Csv string `json:"csv" validate:"required"`
}

// InputManualAddress are the discrete form fields of the manual entry tab
type InputManualAddress struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Zip       string `json:"zip" validate:"required"`
}

type InputLetter struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Closing   string `json:"closing"`
	Signature string `json:"signature"`
}

type InputLocation struct {
	Path string `json:"path" validate:"required"`
}

type InputAssociate struct {
	SessionID string `json:"sessionId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
}

type InputCheckout struct {
	LetterCount int  `json:"letterCount" validate:"required,gt=0"`
	IsSample    bool `json:"isSample"`
}

// InputSeal is the logo to composite onto the template letter image
type InputSeal struct {
	Image string `json:"image" validate:"required"` // data URL
}
