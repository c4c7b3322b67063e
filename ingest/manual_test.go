package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waxsealmail/go-waxseal-server/types"
)

func TestManualAddress(t *testing.T) {
	a, err := ManualAddress(&types.InputManualAddress{
		FirstName: "Jane",
		LastName:  "Smith",
		Street:    "42 Elm St",
		City:      "Boston",
		State:     "MA",
		Zip:       "02108",
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Jane Smith", a.FullName)
	assert.Equal(t, "42 Elm St, Boston, MA 02108", a.FullAddress)
}

func TestManualAddressMissingZip(t *testing.T) {
	_, err := ManualAddress(&types.InputManualAddress{
		FirstName: "Jane",
		LastName:  "Smith",
		Street:    "42 Elm St",
		City:      "Boston",
		State:     "MA",
		Zip:       "",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	assert.Equal(t, "Please fill in all required fields.", err.Error())
}

func TestManualAddressWhitespaceOnlyField(t *testing.T) {
	_, err := ManualAddress(&types.InputManualAddress{
		FirstName: "Jane",
		LastName:  "Smith",
		Street:    "42 Elm St",
		City:      "   ",
		State:     "MA",
		Zip:       "02108",
	})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestManualAddressTrimsFields(t *testing.T) {
	a, err := ManualAddress(&types.InputManualAddress{
		FirstName: " Jane ",
		LastName:  " Smith ",
		Street:    " 42 Elm St ",
		City:      " Boston ",
		State:     " MA ",
		Zip:       " 02108 ",
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Jane", a.FirstName)
	assert.Equal(t, "42 Elm St, Boston, MA 02108", a.FullAddress)
}
