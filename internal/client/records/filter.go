// Package records holds the client-side record views: the list with its
// search filter and the editor that creates or updates a single record.
package records

import (
	"strings"

	"github.com/dmitrijs2005/fraudcheck/internal/client/models"
)

// Filter returns the records matching term, in their original order.
// Name and email match case-insensitively, phone case-sensitively. An empty
// or all-whitespace term matches everything.
func Filter(recs []*models.Record, term string) []*models.Record {
	if strings.TrimSpace(term) == "" {
		out := make([]*models.Record, len(recs))
		copy(out, recs)
		return out
	}

	lower := strings.ToLower(term)
	out := make([]*models.Record, 0, len(recs))
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Name), lower) ||
			strings.Contains(strings.ToLower(r.Email), lower) ||
			strings.Contains(r.Phone, term) {
			out = append(out, r)
		}
	}
	return out
}
