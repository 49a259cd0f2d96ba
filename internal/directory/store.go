package directory

import "strings"

// Store owns the committed FilterSet and the search box text. Every filter
// change republishes the search summary into the search box, so the summary,
// the highlight terms and the projection always move together.
type Store struct {
	filters    FilterSet
	searchText string
}

// NewStore returns a store with every filter inactive.
func NewStore() *Store {
	return &Store{}
}

// Filters returns a copy of the committed filters.
func (s *Store) Filters() FilterSet {
	return s.filters
}

// Value returns the committed value for key.
func (s *Store) Value(key FilterKey) string {
	return s.filters.Get(key)
}

// SetFilter commits the trimmed value for key. key must be a valid FilterKey.
func (s *Store) SetFilter(key FilterKey, value string) {
	s.filters = s.filters.With(key, value)
	s.publish()
}

// ClearFilter makes key inactive.
func (s *Store) ClearFilter(key FilterKey) {
	s.filters = s.filters.Without(key)
	s.publish()
}

// ClearAll makes every filter inactive and empties the search box.
func (s *Store) ClearAll() {
	s.filters = FilterSet{}
	s.searchText = ""
}

// Summary is the search summary for the committed filters.
func (s *Store) Summary() string {
	return SearchSummary(s.filters)
}

// SearchText is what the search box currently shows.
func (s *Store) SearchText() string {
	return s.searchText
}

// SetSearchText records free text typed into the search box.
func (s *Store) SetSearchText(text string) {
	s.searchText = text
}

// FreeText is the trimmed search text when no filter is active, and "" otherwise.
func (s *Store) FreeText() string {
	if !s.filters.IsEmpty() {
		return ""
	}
	return strings.TrimSpace(s.searchText)
}

// ActiveTerms returns the current highlight terms.
func (s *Store) ActiveTerms() []string {
	return ActiveTerms(s.filters, s.searchText)
}

func (s *Store) publish() {
	s.searchText = SearchSummary(s.filters)
}
