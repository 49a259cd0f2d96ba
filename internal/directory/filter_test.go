package directory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterKey(t *testing.T) {
	t.Parallel()

	for _, k := range Keys() {
		parsed, err := ParseFilterKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseFilterKey("rating")
	assert.True(t, errors.Is(err, ErrUnknownFilterKey))
}

func TestKeys_DeclarationOrder(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(Keys()))
	for _, k := range Keys() {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{"clinicId", "clinicName", "doctorName", "address", "phone", "services"}, names)
}

func TestFilterSet_UnknownKeyPanics(t *testing.T) {
	t.Parallel()

	var f FilterSet
	assert.Panics(t, func() { f.With(FilterKey(42), "x") })
	assert.Panics(t, func() { f.Get(FilterKey(-1)) })
	assert.Panics(t, func() { _ = FilterKey(numKeys).Label() })
	assert.Equal(t, "FilterKey(42)", FilterKey(42).String())
}

func TestFilterSet_WithTrimsAndCopies(t *testing.T) {
	t.Parallel()

	var base FilterSet
	next := base.With(KeyPhone, "  555 ")

	assert.Equal(t, "555", next.Get(KeyPhone))
	assert.True(t, base.IsEmpty(), "original must not change")
	assert.True(t, next.With(KeyPhone, "   ").IsEmpty())
}

func TestSearchSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filters  FilterSet
		expected string
	}{
		{name: "empty", filters: FilterSet{}, expected: ""},
		{name: "single", filters: FilterSet{}.With(KeyServices, "dent"), expected: "Services: dent"},
		{
			name:     "declaration order regardless of set order",
			filters:  FilterSet{}.With(KeyServices, "dent").With(KeyClinicID, "CLIN-1").With(KeyPhone, "555"),
			expected: "Clinic ID: CLIN-1; Phone: 555; Services: dent",
		},
		{
			name:     "all keys",
			filters:  FilterSet{}.With(KeyClinicID, "a").With(KeyClinicName, "b").With(KeyDoctorName, "c").With(KeyAddress, "d").With(KeyPhone, "e").With(KeyServices, "f"),
			expected: "Clinic ID: a; Clinic Name: b; Doctor Name: c; Address: d; Phone: e; Services: f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, SearchSummary(tt.filters))
		})
	}
}

func TestActiveTerms(t *testing.T) {
	t.Parallel()

	filters := FilterSet{}.With(KeyPhone, "555").With(KeyClinicName, "down")
	assert.Equal(t, []string{"down", "555"}, ActiveTerms(filters, "ignored"))
	assert.Equal(t, []string{"health"}, ActiveTerms(FilterSet{}, "  health "))
	assert.Nil(t, ActiveTerms(FilterSet{}, "   "))
}

func TestFilterSet_Map(t *testing.T) {
	t.Parallel()

	filters := FilterSet{}.With(KeyDoctorName, "smith")
	assert.Equal(t, map[string]string{"doctorName": "smith"}, filters.Map())
	assert.Empty(t, FilterSet{}.Map())
}

func TestStore_SummaryRoundTrip(t *testing.T) {
	t.Parallel()

	for _, k := range Keys() {
		other := KeyAddress
		if k == KeyAddress {
			other = KeyPhone
		}

		store := NewStore()
		store.SetFilter(other, "Main St")
		before := store.Summary()

		store.SetFilter(k, "value")
		assert.NotEqual(t, before, store.Summary(), "key %s", k)
		store.ClearFilter(k)
		assert.Equal(t, before, store.Summary(), "key %s", k)
	}
}

func TestStore_PublishesSummaryToSearchBox(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.SetSearchText("free text")
	assert.Equal(t, []string{"free text"}, store.ActiveTerms())
	assert.Equal(t, "free text", store.FreeText())

	store.SetFilter(KeyServices, " dent ")
	assert.Equal(t, "Services: dent", store.SearchText())
	assert.Equal(t, []string{"dent"}, store.ActiveTerms())
	assert.Equal(t, "", store.FreeText())

	store.ClearFilter(KeyServices)
	assert.Equal(t, "", store.SearchText())
	assert.Nil(t, store.ActiveTerms())

	store.SetFilter(KeyPhone, "1")
	store.SetSearchText("typed")
	store.ClearAll()
	assert.True(t, store.Filters().IsEmpty())
	assert.Equal(t, "", store.SearchText())
	assert.Equal(t, "", store.Summary())
}
