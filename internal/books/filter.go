package books

import "strings"

// SearchFilters is the transient filter state rebuilt on every search
// submission; it is never persisted.
type SearchFilters struct {
	Query             string `json:"query"`
	ShowAvailableOnly bool   `json:"showAvailableOnly"`
}

// Active reports whether the filters would exclude anything at all.
func (f SearchFilters) Active() bool {
	return strings.TrimSpace(f.Query) != "" || f.ShowAvailableOnly
}

// Filter returns the subset of list matching f. It is pure and synchronous: no
// network calls, no side effects, input order preserved. A whitespace-only
// query means "no text filter", not "matches nothing".
func Filter(list []Book, f SearchFilters) []Book {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Book, 0, len(list))
	for _, b := range list {
		if f.ShowAvailableOnly && !b.IsAvailable {
			continue
		}
		if query != "" {
			title := strings.ToLower(b.Title)
			author := strings.ToLower(b.Author)
			if !strings.Contains(title, query) && !strings.Contains(author, query) {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}
