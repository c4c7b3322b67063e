package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHeadersNameAndAddress(t *testing.T) {
	v := ValidateHeaders([]string{"name", "address"})
	assert.True(t, v.Valid)
}

func TestValidateHeadersSplitColumns(t *testing.T) {
	v := ValidateHeaders([]string{"first name", "last name", "street", "city", "state", "zip"})
	assert.True(t, v.Valid)
}

func TestValidateHeadersMissingName(t *testing.T) {
	v := ValidateHeaders([]string{"street", "city"})
	assert.False(t, v.Valid)
	assert.Equal(t, "CSV must include a Name column (or First Name/Last Name columns).", v.Message)
}

func TestValidateHeadersMissingAddress(t *testing.T) {
	v := ValidateHeaders([]string{"name", "phone"})
	assert.False(t, v.Valid)
	assert.Equal(t, "CSV must include an Address column (or Street, City, State, ZIP columns).", v.Message)
}

func TestValidateHeadersStreetWithoutCity(t *testing.T) {
	v := ValidateHeaders([]string{"name", "street"})
	assert.False(t, v.Valid)
	assert.Equal(t, "CSV must include an Address column (or Street, City, State, ZIP columns).", v.Message)
}

// a first-name column with no last-name column passes the name requirement
func TestValidateHeadersFirstNameAloneIsEnough(t *testing.T) {
	v := ValidateHeaders([]string{"first name", "address"})
	assert.True(t, v.Valid)

	r := NewFieldResolver([]string{"first name", "address"})
	a := Normalize(r, []string{"Jane", "42 Elm St, Boston, MA 02108"})
	if a == nil {
		t.Fatal("expected a normalized address")
	}
	assert.Equal(t, "Jane", a.FullName)
	assert.Equal(t, "", a.LastName)
}

func TestFieldResolverAliasPreference(t *testing.T) {
	// "name" outranks "fullname" but the later alias still backfills
	r := NewFieldResolver([]string{"name", "fullname", "address"})
	a := Normalize(r, []string{"", "Jane Smith", "42 Elm St"})
	if a == nil {
		t.Fatal("expected a normalized address")
	}
	assert.Equal(t, "Jane Smith", a.FullName)
}
