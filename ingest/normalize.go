package ingest

import (
	"fmt"
	"strings"

	"github.com/waxsealmail/go-waxseal-server/types"
)

// Normalize maps one raw row into the canonical Address record, or nil when
// the row is missing mandatory data. A combined name field wins over split
// first/last columns; a combined address field wins over street/city/state/
// zip and leaves those empty.
func Normalize(r *FieldResolver, values []string) *types.Address {
	normalized := &types.Address{}

	if combined := r.value(values, r.name); combined != "" {
		normalized.FullName = combined
		parts := strings.Split(combined, " ")
		normalized.FirstName = parts[0]
		normalized.LastName = strings.Join(parts[1:], " ")
	} else {
		normalized.FirstName = r.value(values, r.firstName)
		normalized.LastName = r.value(values, r.lastName)
		normalized.FullName = strings.TrimSpace(normalized.FirstName + " " + normalized.LastName)
	}

	if combined := r.value(values, r.fullAddress); combined != "" {
		normalized.FullAddress = combined
	} else {
		normalized.Street = r.value(values, r.street)
		normalized.City = r.value(values, r.city)
		normalized.State = r.value(values, r.state)
		normalized.Zip = r.value(values, r.zip)
		normalized.FullAddress = strings.TrimSpace(fmt.Sprintf("%s, %s, %s %s",
			normalized.Street, normalized.City, normalized.State, normalized.Zip))
	}

	if !normalized.Valid() {
		return nil
	}
	return normalized
}
