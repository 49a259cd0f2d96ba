// Package directory implements the clinic directory's filter and highlight engine:
// the per-field filter set and its search summary, the filter pills, the result
// projection and the session that ties them to a clinic data source.
//
// Everything in this package runs synchronously on a single event loop. The only
// asynchronous boundary is the data source; its results are handed back through
// Session.Receive or Session.Fail.
package directory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFilterKey is returned when user input names a filter that does not exist.
var ErrUnknownFilterKey = errors.New("unknown filter key")

// FilterKey identifies one independently filterable field.
type FilterKey int

// Filter keys in declaration order. The order drives the search summary, the
// active terms and the column order.
const (
	KeyClinicID FilterKey = iota
	KeyClinicName
	KeyDoctorName
	KeyAddress
	KeyPhone
	KeyServices

	numKeys
)

var keyNames = [numKeys]string{"clinicId", "clinicName", "doctorName", "address", "phone", "services"}

var keyLabels = [numKeys]string{"Clinic ID", "Clinic Name", "Doctor Name", "Address", "Phone", "Services"}

// Keys returns every filter key in declaration order.
func Keys() []FilterKey {
	keys := make([]FilterKey, numKeys)
	for i := range keys {
		keys[i] = FilterKey(i)
	}
	return keys
}

// ParseFilterKey maps a key name such as "doctorName" to its FilterKey.
func ParseFilterKey(name string) (FilterKey, error) {
	for i, n := range keyNames {
		if n == name {
			return FilterKey(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilterKey, name)
}

// Valid reports whether k is one of the fixed filter keys.
func (k FilterKey) Valid() bool {
	return k >= 0 && k < numKeys
}

func (k FilterKey) String() string {
	if !k.Valid() {
		return fmt.Sprintf("FilterKey(%d)", int(k))
	}
	return keyNames[k]
}

// Label is the human-readable name used in the search summary and column headers.
func (k FilterKey) Label() string {
	return keyLabels[k.mustValid()]
}

func (k FilterKey) mustValid() FilterKey {
	if !k.Valid() {
		panic(fmt.Sprintf("directory: %v", k))
	}
	return k
}

// FilterSet holds the committed value of every filter key. The zero value has
// every filter inactive. Values are copied, never shared.
type FilterSet struct {
	values [numKeys]string
}

// Get returns the committed value for k ("" when inactive).
func (f FilterSet) Get(k FilterKey) string {
	return f.values[k.mustValid()]
}

// With returns a copy of f with k set to the trimmed value.
func (f FilterSet) With(k FilterKey, value string) FilterSet {
	f.values[k.mustValid()] = strings.TrimSpace(value)
	return f
}

// Without returns a copy of f with k inactive.
func (f FilterSet) Without(k FilterKey) FilterSet {
	f.values[k.mustValid()] = ""
	return f
}

// IsEmpty reports whether no filter is active.
func (f FilterSet) IsEmpty() bool {
	for _, v := range f.values {
		if v != "" {
			return false
		}
	}
	return true
}

// Active returns the keys with a non-empty value, in declaration order.
func (f FilterSet) Active() []FilterKey {
	var keys []FilterKey
	for i, v := range f.values {
		if v != "" {
			keys = append(keys, FilterKey(i))
		}
	}
	return keys
}

// Map returns the non-empty values keyed by key name.
func (f FilterSet) Map() map[string]string {
	m := make(map[string]string)
	for _, k := range f.Active() {
		m[k.String()] = f.values[k]
	}
	return m
}

// SearchSummary renders "<Label>: <value>" for every active filter in
// declaration order, joined by "; ". An empty set yields "".
func SearchSummary(f FilterSet) string {
	active := f.Active()
	parts := make([]string, len(active))
	for i, k := range active {
		parts[i] = k.Label() + ": " + f.values[k]
	}
	return strings.Join(parts, "; ")
}

// ActiveTerms returns the fragments eligible for highlighting: the active filter
// values in declaration order or, when no filter is active, the trimmed free
// text on its own.
func ActiveTerms(f FilterSet, freeText string) []string {
	if !f.IsEmpty() {
		terms := make([]string, 0, numKeys)
		for _, k := range f.Active() {
			terms = append(terms, f.values[k])
		}
		return terms
	}
	if text := strings.TrimSpace(freeText); text != "" {
		return []string{text}
	}
	return nil
}
