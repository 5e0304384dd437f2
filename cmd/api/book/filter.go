package book

import (
	"slices"
	"strings"
)

// Sentinels sent by the client when it does not want to narrow the list.
const (
	AllCategories = "all"
	AllLocations  = "all"
)

// Filter is the predicate used to list books. Zero value matches every book.
type Filter struct {
	Search   string
	Category string
	Location string
}

/* Builds the filter from the optional query parameters, dropping sentinels and blanks. */
func NewFilter(search, category, location string) Filter {
	f := Filter{Search: strings.TrimSpace(search)}
	if category = strings.TrimSpace(category); category != "" && !strings.EqualFold(category, AllCategories) {
		f.Category = category
	}
	if location = strings.TrimSpace(location); location != "" && !strings.EqualFold(location, AllLocations) {
		f.Location = location
	}
	return f
}

func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.Category == "" && f.Location == ""
}

// Match is the in-process form of the predicate. SQL stores translate the same fields.
func (f Filter) Match(b Book) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Author), needle) &&
			!strings.Contains(strings.ToLower(b.Code.String()), needle) {
			return false
		}
	}
	if f.Category != "" && !slices.Contains(b.Categories, f.Category) {
		return false
	}
	if f.Location != "" && b.Location != f.Location {
		return false
	}
	return true
}
