package books

import "testing"

func sampleShelf() []Book {
	return []Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", IsAvailable: true},
		{ID: 2, Title: "Children of Dune", Author: "Frank Herbert", IsAvailable: false},
		{ID: 3, Title: "Neuromancer", Author: "William Gibson", IsAvailable: true},
		{ID: 4, Title: "The Dispossessed", Author: "Ursula K. Le Guin", IsAvailable: false},
	}
}

func ids(list []Book) []int {
	out := make([]int, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		filters  SearchFilters
		expected []int
	}{
		{
			name:     "no filters returns everything in order",
			filters:  SearchFilters{},
			expected: []int{1, 2, 3, 4},
		},
		{
			name:     "case-insensitive title match",
			filters:  SearchFilters{Query: "dune"},
			expected: []int{1, 2},
		},
		{
			name:     "author match",
			filters:  SearchFilters{Query: "herbert"},
			expected: []int{1, 2},
		},
		{
			name:     "title match does not leak into author-only query",
			filters:  SearchFilters{Query: "gibson"},
			expected: []int{3},
		},
		{
			name:     "available only",
			filters:  SearchFilters{ShowAvailableOnly: true},
			expected: []int{1, 3},
		},
		{
			name:     "query and availability combined",
			filters:  SearchFilters{Query: "dune", ShowAvailableOnly: true},
			expected: []int{1},
		},
		{
			name:     "whitespace-only query matches all",
			filters:  SearchFilters{Query: "   "},
			expected: []int{1, 2, 3, 4},
		},
		{
			name:     "no match",
			filters:  SearchFilters{Query: "tolkien"},
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(sampleShelf(), tt.filters))
			if !equalIDs(got, tt.expected) {
				t.Errorf("Expected IDs %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFilterAvailableOnlyExcludesUnavailable(t *testing.T) {
	for _, b := range Filter(sampleShelf(), SearchFilters{ShowAvailableOnly: true}) {
		if !b.IsAvailable {
			t.Errorf("Book %d is not available but passed the availability filter", b.ID)
		}
	}
}

func TestFilterClearedRestoresFullList(t *testing.T) {
	shelf := sampleShelf()
	cleared := Filter(shelf, SearchFilters{Query: "", ShowAvailableOnly: false})
	if !equalIDs(ids(cleared), ids(shelf)) {
		t.Errorf("Clearing filters should restore the full list in order, got %v", ids(cleared))
	}
}

func TestFilterIsPure(t *testing.T) {
	shelf := sampleShelf()
	Filter(shelf, SearchFilters{Query: "dune", ShowAvailableOnly: true})
	if !equalIDs(ids(shelf), []int{1, 2, 3, 4}) {
		t.Error("Filter mutated its input")
	}
}

func TestSearchFiltersActive(t *testing.T) {
	if (SearchFilters{}).Active() {
		t.Error("Empty filters should be inactive")
	}
	if (SearchFilters{Query: "  "}).Active() {
		t.Error("Whitespace-only query should be inactive")
	}
	if !(SearchFilters{Query: "dune"}).Active() {
		t.Error("Query should make filters active")
	}
	if !(SearchFilters{ShowAvailableOnly: true}).Active() {
		t.Error("Availability gate should make filters active")
	}
}
