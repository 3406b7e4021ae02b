package agents

import (
	"net/url"

	"github.com/JaimeStill/voice-lab/pkg/query"
)

// Filters contains optional filtering criteria for agent queries.
type Filters struct {
	Name      *string
	CreatedBy *string
	VoiceID   *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var filters Filters
	if n := values.Get("name"); n != "" {
		filters.Name = &n
	}
	if c := values.Get("created_by"); c != "" {
		filters.CreatedBy = &c
	}
	if v := values.Get("voice_id"); v != "" {
		filters.VoiceID = &v
	}
	return filters
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereContains("Name", f.Name)
	b.WhereContains("CreatedBy", f.CreatedBy)
	if f.VoiceID != nil {
		b.WhereEquals("VoiceId", *f.VoiceID)
	}
	return b
}
