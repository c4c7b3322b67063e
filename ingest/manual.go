package ingest

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/waxsealmail/go-waxseal-server/types"
)

// ErrMissingFields is surfaced verbatim when any manual-entry field is empty
var ErrMissingFields = errors.New("Please fill in all required fields.")

var validate = validator.New()

// ManualAddress builds a canonical Address from the discrete form fields.
// All six fields are required after trimming.
func ManualAddress(in *types.InputManualAddress) (*types.Address, error) {
	trimmed := types.InputManualAddress{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Street:    strings.TrimSpace(in.Street),
		City:      strings.TrimSpace(in.City),
		State:     strings.TrimSpace(in.State),
		Zip:       strings.TrimSpace(in.Zip),
	}
	if err := validate.Struct(&trimmed); err != nil {
		return nil, ErrMissingFields
	}

	return &types.Address{
		FirstName:   trimmed.FirstName,
		LastName:    trimmed.LastName,
		FullName:    trimmed.FirstName + " " + trimmed.LastName,
		Street:      trimmed.Street,
		City:        trimmed.City,
		State:       trimmed.State,
		Zip:         trimmed.Zip,
		FullAddress: trimmed.Street + ", " + trimmed.City + ", " + trimmed.State + " " + trimmed.Zip,
	}, nil
}
