package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCombinedColumns(t *testing.T) {
	csv := "Name,Address\n" +
		`"John Doe","123 Main St, Springfield, IL 62704"`

	result, err := Parse(csv)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Addresses) != 1 {
		t.Fatalf("expected 1 address, got %d", len(result.Addresses))
	}
	a := result.Addresses[0]
	assert.Equal(t, "John Doe", a.FullName)
	assert.Equal(t, "John", a.FirstName)
	assert.Equal(t, "Doe", a.LastName)
	assert.Equal(t, "123 Main St, Springfield, IL 62704", a.FullAddress)
	assert.Equal(t, "", a.Street)
	assert.Equal(t, "", a.City)
}

func TestParseSplitColumns(t *testing.T) {
	csv := "First Name,Last Name,Street,City,State,Zip\n" +
		"Jane,Smith,42 Elm St,Boston,MA,02108"

	result, err := Parse(csv)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Addresses) != 1 {
		t.Fatalf("expected 1 address, got %d", len(result.Addresses))
	}
	a := result.Addresses[0]
	assert.Equal(t, "Jane Smith", a.FullName)
	assert.Equal(t, "42 Elm St, Boston, MA 02108", a.FullAddress)
	assert.Equal(t, "42 Elm St", a.Street)
	assert.Equal(t, "Boston", a.City)
	assert.Equal(t, "MA", a.State)
	assert.Equal(t, "02108", a.Zip)
}

func TestParseHeaderOnly(t *testing.T) {
	_, err := Parse("Name,Address\n")
	if err == nil {
		t.Fatal("expected error")
	}
	assert.Equal(t, "CSV file must contain a header row and at least one data row.", err.Error())
}

func TestParseMissingAddressColumns(t *testing.T) {
	_, err := Parse("Name,Street\nJohn Doe,123 Main St")
	if err == nil {
		t.Fatal("expected error")
	}
	assert.Equal(t, "CSV must include an Address column (or Street, City, State, ZIP columns).", err.Error())
}

func TestParseNoValidRows(t *testing.T) {
	_, err := Parse("Name,Address\n,")
	if err == nil {
		t.Fatal("expected error")
	}
	assert.Equal(t, "No valid addresses found in the CSV file.", err.Error())
}

func TestParseSkipsMalformedRows(t *testing.T) {
	csv := "Name,Address\n" +
		"John Doe,123 Main St\n" +
		"only-one-field\n" +
		",no name here\n" +
		"Jane Smith,42 Elm St"

	result, err := Parse(csv)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, len(result.Addresses))
	assert.Equal(t, 2, len(result.Rejections))
	assert.Equal(t, 3, result.Rejections[0].Line)
	assert.Equal(t, RejectColumnCount, result.Rejections[0].Reason)
	assert.Equal(t, 4, result.Rejections[1].Line)
	assert.Equal(t, RejectNormalize, result.Rejections[1].Reason)
}

// accepted rows keep input order, duplicates included
func TestParsePreservesOrderAndDuplicates(t *testing.T) {
	csv := "Name,Address\n" +
		"A A,1 First St\n" +
		"B B,2 Second St\n" +
		"A A,1 First St"

	result, err := Parse(csv)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Addresses) != 3 {
		t.Fatalf("expected 3 addresses, got %d", len(result.Addresses))
	}
	assert.Equal(t, "A A", result.Addresses[0].FullName)
	assert.Equal(t, "B B", result.Addresses[1].FullName)
	assert.Equal(t, result.Addresses[0], result.Addresses[2])
}

func TestParseIdempotent(t *testing.T) {
	csv := "Name,Address\nJohn Doe,123 Main St\nJane Smith,42 Elm St"

	first, err1 := Parse(csv)
	second, err2 := Parse(csv)
	if err1 != nil || err2 != nil {
		t.Fatal(err1, err2)
	}
	assert.Equal(t, first.Addresses, second.Addresses)
	assert.Equal(t, first.Rejections, second.Rejections)
}

func TestParseSkipsBlankLines(t *testing.T) {
	csv := "Name,Address\n\nJohn Doe,123 Main St\n   \n"

	result, err := Parse(csv)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(result.Addresses))
	assert.Empty(t, result.Rejections)
}

func TestParseHeadersAreCaseInsensitive(t *testing.T) {
	csv := "NAME,ADDRESS\nJohn Doe,123 Main St"

	result, err := Parse(csv)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []string{"name", "address"}, result.Headers)
	assert.Equal(t, 1, len(result.Addresses))
}
