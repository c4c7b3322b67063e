package ingest

import "strings"

// Accepted header aliases per canonical field, in preference order.
var (
	nameAliases        = []string{"name", "fullname", "full name"}
	firstNameAliases   = []string{"firstname", "first name", "first"}
	lastNameAliases    = []string{"lastname", "last name", "last"}
	fullAddressAliases = []string{"address", "full address"}
	streetAliases      = []string{"street", "street address", "address1"}
	cityAliases        = []string{"city"}
	stateAliases       = []string{"state"}
	zipAliases         = []string{"zip", "zipcode", "zip code", "postal"}
)

type HeaderValidation struct {
	Valid   bool
	Message string
}

func containsAny(headers []string, aliases []string) bool {
	for _, a := range aliases {
		for _, h := range headers {
			if h == a {
				return true
			}
		}
	}
	return false
}

// ValidateHeaders decides whether a minimum viable set of name and address
// columns is present. Headers must already be lower-cased and trimmed.
//
// A first-name column alone satisfies the name requirement. Rows from such
// a file still normalize (with an empty last name), so this leniency is
// kept as observed behavior rather than tightened.
func ValidateHeaders(headers []string) HeaderValidation {
	hasFullName := containsAny(headers, nameAliases)
	hasFirst := containsAny(headers, firstNameAliases)
	hasLast := containsAny(headers, lastNameAliases)
	hasName := hasFullName || (hasFirst && hasLast) || hasFirst

	hasFullAddress := containsAny(headers, fullAddressAliases)
	hasStreet := containsAny(headers, streetAliases)
	hasCity := containsAny(headers, cityAliases)
	hasAddress := hasFullAddress || (hasStreet && hasCity)

	if !hasName {
		return HeaderValidation{
			Valid:   false,
			Message: "CSV must include a Name column (or First Name/Last Name columns).",
		}
	}
	if !hasAddress {
		return HeaderValidation{
			Valid:   false,
			Message: "CSV must include an Address column (or Street, City, State, ZIP columns).",
		}
	}
	return HeaderValidation{Valid: true}
}

// FieldResolver maps canonical fields to the CSV columns backing them.
// Alias lookup happens once per header set, not per row.
type FieldResolver struct {
	name        []int
	firstName   []int
	lastName    []int
	fullAddress []int
	street      []int
	city        []int
	state       []int
	zip         []int
}

func columnsFor(headers []string, aliases []string) []int {
	var cols []int
	for _, a := range aliases {
		for i, h := range headers {
			if h == a {
				cols = append(cols, i)
			}
		}
	}
	return cols
}

func NewFieldResolver(headers []string) *FieldResolver {
	return &FieldResolver{
		name:        columnsFor(headers, nameAliases),
		firstName:   columnsFor(headers, firstNameAliases),
		lastName:    columnsFor(headers, lastNameAliases),
		fullAddress: columnsFor(headers, fullAddressAliases),
		street:      columnsFor(headers, streetAliases),
		city:        columnsFor(headers, cityAliases),
		state:       columnsFor(headers, stateAliases),
		zip:         columnsFor(headers, zipAliases),
	}
}

// first non-empty value among the resolved columns
func (r *FieldResolver) value(values []string, cols []int) string {
	for _, c := range cols {
		if c < len(values) {
			if v := strings.TrimSpace(values[c]); v != "" {
				return v
			}
		}
	}
	return ""
}
