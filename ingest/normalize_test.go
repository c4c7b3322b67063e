package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waxsealmail/go-waxseal-server/types"
)

func TestNormalizeCombinedNameWins(t *testing.T) {
	r := NewFieldResolver([]string{"name", "first name", "last name", "address"})
	a := Normalize(r, []string{"John Ronald Reuel Tolkien", "J", "T", "1 Bag End"})
	if a == nil {
		t.Fatal("expected a normalized address")
	}
	assert.Equal(t, "John Ronald Reuel Tolkien", a.FullName)
	// split happens on the first space only
	assert.Equal(t, "John", a.FirstName)
	assert.Equal(t, "Ronald Reuel Tolkien", a.LastName)
}

func TestNormalizeCombinedAddressLeavesPartsEmpty(t *testing.T) {
	r := NewFieldResolver([]string{"name", "address", "street", "city"})
	a := Normalize(r, []string{"John Doe", "123 Main St, Springfield, IL", "ignored", "ignored"})
	if a == nil {
		t.Fatal("expected a normalized address")
	}
	assert.Equal(t, "123 Main St, Springfield, IL", a.FullAddress)
	assert.Equal(t, "", a.Street)
	assert.Equal(t, "", a.City)
}

func TestNormalizeMissingNameRejected(t *testing.T) {
	r := NewFieldResolver([]string{"name", "address"})
	assert.Nil(t, Normalize(r, []string{"", "123 Main St"}))
}

func TestNormalizeMissingAddressRejected(t *testing.T) {
	r := NewFieldResolver([]string{"name", "address"})
	assert.Nil(t, Normalize(r, []string{"John Doe", ""}))
}

// rebuilding a row from a split-form Address and normalizing it again
// reproduces an equivalent Address
func TestNormalizeRoundTrip(t *testing.T) {
	headers := []string{"first name", "last name", "street", "city", "state", "zip"}
	r := NewFieldResolver(headers)

	original := Normalize(r, []string{"Jane", "Smith", "42 Elm St", "Boston", "MA", "02108"})
	if original == nil {
		t.Fatal("expected a normalized address")
	}

	row := denormalize(original)
	again := Normalize(r, row)
	if again == nil {
		t.Fatal("expected a normalized address")
	}
	assert.Equal(t, original, again)
}

func denormalize(a *types.Address) []string {
	first := a.FirstName
	last := a.LastName
	if a.FullName != "" && strings.Contains(a.FullName, " ") {
		parts := strings.SplitN(a.FullName, " ", 2)
		first, last = parts[0], parts[1]
	}
	return []string{first, last, a.Street, a.City, a.State, a.Zip}
}
